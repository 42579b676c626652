package session

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gatekeeper/internal/logger"
)

// Durations holds the two session lifetimes. The remember-me duration is
// used instead of the default when the user opts in at login.
type Durations struct {
	Session    time.Duration
	RememberMe time.Duration
}

// Manager orchestrates the session lifecycle: create, look up, slide the
// TTL forward, delete. Store failures never escape as errors on the read
// path; every failure reads as "not authenticated".
type Manager struct {
	store     Store
	durations Durations
	secure    bool
}

// NewManager creates a session manager on top of the given store.
// secureCookies should be true in production-classified environments.
func NewManager(store Store, durations Durations, secureCookies bool) *Manager {
	return &Manager{
		store:     store,
		durations: durations,
		secure:    secureCookies,
	}
}

func (m *Manager) duration(rememberMe bool) time.Duration {
	if rememberMe {
		return m.durations.RememberMe
	}
	return m.durations.Session
}

func (m *Manager) cookieOptions() CookieOptions {
	return CookieOptions{
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Create writes a new session record with a fresh ID and the full
// configured TTL, and returns the ID.
func (m *Manager) Create(ctx context.Context, subject Subject, rememberMe bool) (string, error) {
	sessionID, err := GenerateID()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(subject)
	if err != nil {
		return "", err
	}

	if err := m.store.Set(ctx, sessionID, data, m.duration(rememberMe)); err != nil {
		return "", err
	}

	return sessionID, nil
}

// Get returns the subject stored under sessionID, or nil when the session
// is missing, expired, or unreadable. It never returns an error.
func (m *Manager) Get(ctx context.Context, sessionID string) *Subject {
	data, err := m.store.Get(ctx, sessionID)
	if err != nil {
		logger.Error("session get failed", map[string]any{"error": err.Error()})
		return nil
	}
	if data == nil {
		return nil
	}

	var subject Subject
	if err := json.Unmarshal(data, &subject); err != nil {
		logger.Error("session record unreadable", map[string]any{"error": err.Error()})
		return nil
	}
	return &subject
}

// Refresh re-arms the full TTL on an existing session. This is the
// sliding-window mechanic: expiry is always "duration from now", never
// accumulating. Returns false when the session does not exist; a missing
// session is a no-op, not an error, and is never created here.
func (m *Manager) Refresh(ctx context.Context, sessionID string, rememberMe bool) bool {
	ok, err := m.store.Refresh(ctx, sessionID, m.duration(rememberMe))
	if err != nil {
		logger.Error("session refresh failed", map[string]any{"error": err.Error()})
		return false
	}
	return ok
}

// Delete removes the session. Deleting an absent session is fine.
func (m *Manager) Delete(ctx context.Context, sessionID string) {
	if err := m.store.Delete(ctx, sessionID); err != nil {
		logger.Error("session delete failed", map[string]any{"error": err.Error()})
	}
}

// IDFromRequest extracts the session ID from the inbound cookie.
func (m *Manager) IDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Validate resolves the inbound request to a subject and slides the
// session's TTL forward. The cookie is checked before any store access:
// no cookie and an invalid cookie both read as nil, indistinguishably.
// The refresh is fire-and-forget; a failed refresh does not invalidate a
// read that already succeeded.
func (m *Manager) Validate(ctx context.Context, r *http.Request) *Subject {
	sessionID, ok := m.IDFromRequest(r)
	if !ok {
		return nil
	}

	subject := m.Get(ctx, sessionID)
	if subject == nil {
		return nil
	}

	m.Refresh(ctx, sessionID, false)
	return subject
}

// SetCookie issues the session cookie with MaxAge equal to the store TTL
// for the chosen duration. The pairing is what keeps cookie lifetime and
// store expiry in sync.
func (m *Manager) SetCookie(w http.ResponseWriter, sessionID string, rememberMe bool) {
	SetCookie(w, sessionID, m.duration(rememberMe), m.cookieOptions())
}

// ClearCookie expires the session cookie on the client.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	ClearCookie(w, m.cookieOptions())
}

// CreateWithCookie creates the session and, only if the store write
// succeeded, issues the matching cookie.
func (m *Manager) CreateWithCookie(ctx context.Context, w http.ResponseWriter, subject Subject, rememberMe bool) (string, error) {
	sessionID, err := m.Create(ctx, subject, rememberMe)
	if err != nil {
		return "", err
	}
	m.SetCookie(w, sessionID, rememberMe)
	return sessionID, nil
}

// DeleteWithCookie deletes the session named by sessionID (or, when empty,
// by the request cookie) and clears the cookie. Note a delete racing a
// concurrent refresh can briefly resurrect the record; there is no version
// check guarding that window.
func (m *Manager) DeleteWithCookie(ctx context.Context, w http.ResponseWriter, r *http.Request, sessionID string) {
	if sessionID == "" {
		sessionID, _ = m.IDFromRequest(r)
	}
	if sessionID != "" {
		m.Delete(ctx, sessionID)
	}
	m.ClearCookie(w)
}
