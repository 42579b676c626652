package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper/internal/middleware"
	"gatekeeper/internal/session"
)

func newGateRouter(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewManager(
		session.NewMemoryStore(),
		session.Durations{Session: 24 * time.Hour, RememberMe: 720 * time.Hour},
		false,
	)

	gate := middleware.NewGate(
		sessions,
		[]string{"/me"},
		[]string{"/auth"},
	)

	router := gin.New()
	router.Use(gate.Handle())

	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	router.GET("/me", ok)
	router.GET("/auth", ok)
	router.GET("/about", ok)

	return router, sessions
}

func loggedInCookie(t *testing.T, sessions *session.Manager) *http.Cookie {
	t.Helper()
	sessionID, err := sessions.Create(context.Background(), session.Subject{UserID: "user-1", Role: "user"}, false)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: sessionID}
}

func TestGateRedirectMatrix(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		authed       bool
		wantStatus   int
		wantLocation string
	}{
		{"valid session on protected route passes", "/me", true, http.StatusOK, ""},
		{"no session on protected route redirects to login", "/me", false, http.StatusFound, "/auth/login?callbackUrl=%2Fme"},
		{"valid session on auth route redirects home", "/auth", true, http.StatusFound, "/"},
		{"no session on auth route passes", "/auth", false, http.StatusOK, ""},
		{"no session on unclassified route passes", "/about", false, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, sessions := newGateRouter(t)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authed {
				req.AddCookie(loggedInCookie(t, sessions))
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestGateAttachesSubject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessions := session.NewManager(
		session.NewMemoryStore(),
		session.Durations{Session: 24 * time.Hour, RememberMe: 720 * time.Hour},
		false,
	)
	gate := middleware.NewGate(sessions, []string{"/me"}, []string{"/auth"})

	router := gin.New()
	router.Use(gate.Handle())
	router.GET("/me", func(c *gin.Context) {
		subject, ok := middleware.SubjectFromContext(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, subject.UserID)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(loggedInCookie(t, sessions))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestGateExpiredSessionRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessions := session.NewManager(
		session.NewMemoryStore(),
		// Everything created through this manager is already expired.
		session.Durations{Session: -time.Second, RememberMe: -time.Second},
		false,
	)
	gate := middleware.NewGate(sessions, []string{"/me"}, []string{"/auth"})

	router := gin.New()
	router.Use(gate.Handle())
	router.GET("/me", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(loggedInCookie(t, sessions))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?callbackUrl=%2Fme", w.Header().Get("Location"))
}
