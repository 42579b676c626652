package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gatekeeper/internal/auth/credentials"
	"gatekeeper/internal/auth/token"
	"gatekeeper/internal/email"
	"gatekeeper/internal/logger"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

// Register creates an account and emails a verification link. It does NOT
// create a session: the user logs in after verifying.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if !validPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": passwordPolicyMessage})
		return
	}

	u, err := h.creds.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, credentials.ErrAlreadyRegistered) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "It seems you already have an account with this email, did you forget your password?",
			})
			return
		}
		logger.Error("registration failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	verificationToken, err := h.verifyCodec.Generate(token.Payload{
		UserID: u.ID,
		Email:  u.Email,
	})
	if err != nil {
		logger.Error("verification token generation failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	verificationLink := h.baseURL + "/verify?token=" + verificationToken

	result := h.emailer.Send(c.Request.Context(), email.Message{
		To:      u.Email,
		Subject: "Verify Your Email Address",
		HTML:    email.EmailVerificationHTML(u.Name, verificationLink),
	})
	if !result.Success {
		// Account exists either way; the user can request a new link.
		logger.Error("verification email failed", map[string]any{"error": errString(result.Err)})
	}

	resp := gin.H{
		"user":    u.Safe(),
		"message": "Registration successful. Please check your email to verify your account.",
	}
	if result.PreviewURL != "" {
		resp["previewUrl"] = result.PreviewURL
	}

	c.JSON(http.StatusCreated, resp)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
