package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gatekeeper/internal/logger"
	"gatekeeper/internal/user"
)

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyEmail marks the account verified. Idempotent: re-verifying an
// already-verified account succeeds without a write.
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	payload, valid := h.verifyCodec.Verify(req.Token)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification token"})
		return
	}

	u, err := h.users.FindByID(c.Request.Context(), payload.UserID)
	if err != nil {
		logger.Error("user lookup failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if u.Email != payload.Email {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email mismatch in verification token"})
		return
	}

	if u.EmailVerified {
		c.JSON(http.StatusOK, gin.H{"message": "Email already verified"})
		return
	}

	verified := true
	if _, err := h.users.Update(c.Request.Context(), u.ID, user.Update{EmailVerified: &verified}); err != nil {
		logger.Error("verification update failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}
