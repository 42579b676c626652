package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gatekeeper/internal/auth/credentials"
	"gatekeeper/internal/logger"
	"gatekeeper/internal/session"
)

type loginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// Login authenticates and starts the sliding session: a store record with
// the configured TTL plus a cookie carrying the same lifetime.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.creds.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, credentials.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		logger.Error("login failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	subject := session.Subject{UserID: u.ID, Role: u.Role}
	if _, err := h.sessions.CreateWithCookie(c.Request.Context(), c.Writer, subject, req.RememberMe); err != nil {
		logger.Error("session creation failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u.Safe()})
}
