package handler

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"gatekeeper/internal/auth/credentials"
	"gatekeeper/internal/auth/token"
	"gatekeeper/internal/email"
	"gatekeeper/internal/session"
	"gatekeeper/internal/user"
)

type Handler struct {
	users       user.Store
	creds       *credentials.Service
	sessions    *session.Manager
	emailer     email.Sender
	resetCodec  *token.Codec
	verifyCodec *token.Codec
	baseURL     string
}

func NewHandler(
	users user.Store,
	creds *credentials.Service,
	sessions *session.Manager,
	emailer email.Sender,
	resetCodec *token.Codec,
	verifyCodec *token.Codec,
	baseURL string,
) *Handler {
	return &Handler{
		users:       users,
		creds:       creds,
		sessions:    sessions,
		emailer:     emailer,
		resetCodec:  resetCodec,
		verifyCodec: verifyCodec,
		baseURL:     baseURL,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/auth")

	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)
	api.GET("/me", h.Me)
	api.PUT("/me", h.UpdateProfile)
	api.POST("/forgot", h.ForgotPassword)
	api.POST("/reset", h.ResetPassword)
	api.POST("/verify", h.VerifyEmail)
}

var (
	hasLower = regexp.MustCompile(`[a-z]`)
	hasUpper = regexp.MustCompile(`[A-Z]`)
	hasDigit = regexp.MustCompile(`\d`)
)

// validPassword enforces the registration/reset password policy: at least
// one lowercase letter, one uppercase letter, and one digit. Length is
// handled by binding tags.
func validPassword(password string) bool {
	return hasLower.MatchString(password) &&
		hasUpper.MatchString(password) &&
		hasDigit.MatchString(password)
}

const passwordPolicyMessage = "Password must contain at least one uppercase letter, one lowercase letter, and one number"
