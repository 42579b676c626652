package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gatekeeper/internal/auth/token"
	"gatekeeper/internal/email"
	"gatekeeper/internal/logger"
)

// The forgot-password response is identical whether or not the account
// exists; anything else lets callers enumerate registered emails.
const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		logger.Error("user lookup failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if u == nil {
		c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
		return
	}

	resetToken, err := h.resetCodec.Generate(token.Payload{
		UserID: u.ID,
		Email:  u.Email,
	})
	if err != nil {
		logger.Error("reset token generation failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resetLink := h.baseURL + "/reset?token=" + resetToken

	result := h.emailer.Send(c.Request.Context(), email.Message{
		To:      u.Email,
		Subject: "Reset Your Password",
		HTML:    email.PasswordResetHTML(u.Name, resetLink),
	})
	if !result.Success {
		logger.Error("reset email failed", map[string]any{"error": errString(result.Err)})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email. Please try again later."})
		return
	}

	resp := gin.H{"message": forgotPasswordMessage}
	if result.PreviewURL != "" {
		resp["previewUrl"] = result.PreviewURL
	}

	c.JSON(http.StatusOK, resp)
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

// ResetPassword verifies the emailed token and replaces the credentials
// with a fresh salt and hash.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if !validPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": passwordPolicyMessage})
		return
	}

	payload, valid := h.resetCodec.Verify(req.Token)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or expired reset token. Please request a new password reset link.",
		})
		return
	}

	u, err := h.users.FindByID(c.Request.Context(), payload.UserID)
	if err != nil {
		logger.Error("user lookup failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if u == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "User not found. Please request a new password reset link.",
		})
		return
	}

	// The token binds to the email it was issued for; if the account's
	// email changed since, the token no longer applies.
	if u.Email != payload.Email {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reset token. Please request a new password reset link.",
		})
		return
	}

	if err := h.creds.SetPassword(c.Request.Context(), u.ID, req.Password); err != nil {
		logger.Error("password update failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password has been successfully reset. You can now log in with your new password.",
	})
}
