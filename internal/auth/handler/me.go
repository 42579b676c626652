package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gatekeeper/internal/logger"
	"gatekeeper/internal/middleware"
	"gatekeeper/internal/user"
)

// Me returns the authenticated user's profile. The session only carries a
// subject snapshot; profile fields come fresh from the user store.
func (h *Handler) Me(c *gin.Context) {
	subject, ok := middleware.SubjectFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	u, err := h.users.FindByID(c.Request.Context(), subject.UserID)
	if err != nil {
		logger.Error("user lookup failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u.Safe()})
}

type updateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=50"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UpdateProfile updates name and/or email for the authenticated user.
func (h *Handler) UpdateProfile(c *gin.Context) {
	subject, ok := middleware.SubjectFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.users.Update(c.Request.Context(), subject.UserID, user.Update{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		logger.Error("profile update failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u.Safe()})
}
