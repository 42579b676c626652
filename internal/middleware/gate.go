// Package middleware contains the request gate: the single place where
// sessions are validated and slid forward for ordinary navigation, and
// where route-class redirect policy is applied.
package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"gatekeeper/internal/session"
)

// unexported, collision-proof context key
type subjectContextKeyType struct{}

var subjectKey = subjectContextKeyType{}

// SubjectFromContext extracts the authenticated subject placed by the gate.
func SubjectFromContext(ctx context.Context) (session.Subject, bool) {
	subject, ok := ctx.Value(subjectKey).(session.Subject)
	return subject, ok
}

// Gate classifies request paths into protected routes (require a session)
// and auth-only routes (must NOT have a session) and redirects accordingly.
// The two prefix sets are assumed disjoint; if they ever overlap, the
// authenticated/auth-route rule wins.
type Gate struct {
	sessions *session.Manager

	// matched by prefix, like the route matchers upstream of us
	protectedRoutes []string
	authRoutes      []string

	loginPath string
	homePath  string
}

func NewGate(sessions *session.Manager, protectedRoutes, authRoutes []string) *Gate {
	return &Gate{
		sessions:        sessions,
		protectedRoutes: protectedRoutes,
		authRoutes:      authRoutes,
		loginPath:       "/auth/login",
		homePath:        "/",
	}
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Handle runs once per inbound request, before route handling. Validate is
// the sole trigger of the sliding renewal here; a store outage reads as
// "not authenticated" and protected routes bounce to login until the store
// recovers.
func (g *Gate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := g.sessions.Validate(c.Request.Context(), c.Request)
		path := c.Request.URL.Path

		if subject != nil && matchesAny(path, g.authRoutes) {
			c.Redirect(http.StatusFound, g.homePath)
			c.Abort()
			return
		}

		if subject == nil && matchesAny(path, g.protectedRoutes) {
			c.Redirect(http.StatusFound, g.loginPath+"?callbackUrl="+url.QueryEscape(path))
			c.Abort()
			return
		}

		if subject != nil {
			ctx := context.WithValue(c.Request.Context(), subjectKey, *subject)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}
