package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"gatekeeper/internal/auth/credentials"
	"gatekeeper/internal/auth/handler"
	"gatekeeper/internal/auth/token"
	"gatekeeper/internal/config"
	"gatekeeper/internal/middleware"
	"gatekeeper/internal/session"
)

// Route classes for the gate. Protected paths require a session; auth
// paths must be visited without one. Keep the two sets disjoint.
var (
	protectedRoutes = []string{"/me", "/api/auth/me"}
	authRoutes      = []string{"/auth", "/verify"}
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessions := session.NewManager(
		infra.SessionStore,
		session.Durations{
			Session:    cfg.SessionDuration,
			RememberMe: cfg.RememberMeDuration,
		},
		cfg.IsProduction(),
	)

	creds := credentials.NewService(infra.Users)

	authHandler := handler.NewHandler(
		infra.Users,
		creds,
		sessions,
		infra.Email,
		token.NewCodec(token.PasswordResetTTL),
		token.NewCodec(token.EmailVerificationTTL),
		cfg.BaseURL,
	)

	gate := middleware.NewGate(sessions, protectedRoutes, authRoutes)

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// The gate runs on every request; it is the sole trigger of the
	// sliding session renewal.
	router.Use(gate.Handle())

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router, infra.cleanup, nil
}
