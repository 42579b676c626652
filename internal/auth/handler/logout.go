package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Logout deletes the session and clears the cookie. Safe to call without
// a session; the response is the same either way.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.DeleteWithCookie(c.Request.Context(), c.Writer, c.Request, "")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
