// Package stats contains the read-only statistics endpoints
package stats

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Dashboard(c *gin.Context, d *internal.Deps) {
	stats, err := d.Store.DashboardStats(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to load dashboard stats", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
