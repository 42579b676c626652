package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDurations = Durations{
	Session:    24 * time.Hour,
	RememberMe: 720 * time.Hour,
}

// fakeClock drives a MemoryStore deterministically.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestManager() (*Manager, *MemoryStore, *fakeClock) {
	clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
	store := NewMemoryStore()
	store.now = clock.now
	return NewManager(store, testDurations, false), store, clock
}

// errorStore fails every operation, simulating an unreachable backend.
type errorStore struct{}

func (errorStore) Set(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	return errors.New("store down")
}

func (errorStore) Get(ctx context.Context, id string) ([]byte, error) {
	return nil, errors.New("store down")
}

func (errorStore) Refresh(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	return false, errors.New("store down")
}

func (errorStore) Delete(ctx context.Context, id string) error {
	return errors.New("store down")
}

// countingStore records how often the backend is touched.
type countingStore struct {
	Store
	calls int
}

func (s *countingStore) Get(ctx context.Context, id string) ([]byte, error) {
	s.calls++
	return s.Store.Get(ctx, id)
}

func requestWithCookie(sessionID string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: sessionID})
	return r
}

func TestCreateAndGet(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	subject := Subject{UserID: "user-1", Role: "user"}
	sessionID, err := m.Create(ctx, subject, false)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	t.Run("round trips the subject", func(t *testing.T) {
		got := m.Get(ctx, sessionID)
		require.NotNil(t, got)
		assert.Equal(t, subject, *got)
	})

	t.Run("unknown id yields nil", func(t *testing.T) {
		assert.Nil(t, m.Get(ctx, "never-created"))
	})

	t.Run("ids are unique", func(t *testing.T) {
		other, err := m.Create(ctx, subject, false)
		require.NoError(t, err)
		assert.NotEqual(t, sessionID, other)
	})
}

func TestSlidingRenewal(t *testing.T) {
	m, _, clock := newTestManager()
	ctx := context.Background()

	sessionID, err := m.Create(ctx, Subject{UserID: "user-1"}, false)
	require.NoError(t, err)

	t.Run("repeated refreshes keep the session alive past its original window", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			clock.advance(23 * time.Hour)
			require.True(t, m.Refresh(ctx, sessionID, false))
		}
		// 115h after creation, far beyond the 24h duration.
		assert.NotNil(t, m.Get(ctx, sessionID))
	})

	t.Run("inactivity past the duration expires the session", func(t *testing.T) {
		clock.advance(25 * time.Hour)
		assert.Nil(t, m.Get(ctx, sessionID))
	})

	t.Run("refresh after expiry reports false and resurrects nothing", func(t *testing.T) {
		assert.False(t, m.Refresh(ctx, sessionID, false))
		assert.Nil(t, m.Get(ctx, sessionID))
	})
}

func TestRefreshMissingSession(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	assert.False(t, m.Refresh(ctx, "never-created", false))
	assert.Nil(t, m.Get(ctx, "never-created"))
}

func TestDeleteIsIdempotent(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	sessionID, err := m.Create(ctx, Subject{UserID: "user-1"}, false)
	require.NoError(t, err)

	m.Delete(ctx, sessionID)
	assert.Nil(t, m.Get(ctx, sessionID))

	// Deleting again, or deleting something that never existed, is fine.
	m.Delete(ctx, sessionID)
	m.Delete(ctx, "never-created")
	assert.Nil(t, m.Get(ctx, sessionID))
}

func TestValidate(t *testing.T) {
	t.Run("returns the subject and slides the window", func(t *testing.T) {
		m, _, clock := newTestManager()
		ctx := context.Background()

		sessionID, err := m.Create(ctx, Subject{UserID: "user-1", Role: "admin"}, false)
		require.NoError(t, err)

		clock.advance(23 * time.Hour)
		subject := m.Validate(ctx, requestWithCookie(sessionID))
		require.NotNil(t, subject)
		assert.Equal(t, "user-1", subject.UserID)

		// 46h after creation; only the Validate refresh kept it alive.
		clock.advance(23 * time.Hour)
		assert.NotNil(t, m.Get(ctx, sessionID))
	})

	t.Run("no cookie means no store access", func(t *testing.T) {
		store := &countingStore{Store: NewMemoryStore()}
		m := NewManager(store, testDurations, false)

		subject := m.Validate(context.Background(), httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Nil(t, subject)
		assert.Zero(t, store.calls)
	})

	t.Run("stale cookie yields nil without refresh", func(t *testing.T) {
		m, _, _ := newTestManager()
		assert.Nil(t, m.Validate(context.Background(), requestWithCookie("stale-id")))
	})

	t.Run("store failure reads as unauthenticated", func(t *testing.T) {
		m := NewManager(errorStore{}, testDurations, false)
		assert.Nil(t, m.Validate(context.Background(), requestWithCookie("any-id")))
	})
}

func TestCookieStorePairing(t *testing.T) {
	m, _, _ := newTestManager()
	ctx := context.Background()

	find := func(w *httptest.ResponseRecorder) *http.Cookie {
		for _, c := range w.Result().Cookies() {
			if c.Name == CookieName {
				return c
			}
		}
		return nil
	}

	t.Run("default duration", func(t *testing.T) {
		w := httptest.NewRecorder()
		sessionID, err := m.CreateWithCookie(ctx, w, Subject{UserID: "user-1"}, false)
		require.NoError(t, err)

		cookie := find(w)
		require.NotNil(t, cookie)
		assert.Equal(t, sessionID, cookie.Value)
		assert.Equal(t, 86400, cookie.MaxAge)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	})

	t.Run("remember-me duration", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, err := m.CreateWithCookie(ctx, w, Subject{UserID: "user-1"}, true)
		require.NoError(t, err)

		cookie := find(w)
		require.NotNil(t, cookie)
		assert.Equal(t, 2592000, cookie.MaxAge)
	})

	t.Run("store failure suppresses the cookie", func(t *testing.T) {
		failing := NewManager(errorStore{}, testDurations, false)
		w := httptest.NewRecorder()
		_, err := failing.CreateWithCookie(ctx, w, Subject{UserID: "user-1"}, false)
		require.Error(t, err)
		assert.Nil(t, find(w))
	})

	t.Run("delete clears the cookie and the record", func(t *testing.T) {
		w := httptest.NewRecorder()
		sessionID, err := m.CreateWithCookie(ctx, w, Subject{UserID: "user-1"}, false)
		require.NoError(t, err)

		w = httptest.NewRecorder()
		m.DeleteWithCookie(ctx, w, requestWithCookie(sessionID), "")

		cookie := find(w)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
		assert.Nil(t, m.Get(ctx, sessionID))
	})
}
