package stats

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// User returns the caller's own statistics
func User(c *gin.Context, d *internal.Deps) {
	stats, err := d.Store.UserStats(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		response.Store(c, "Failed to load user stats", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
