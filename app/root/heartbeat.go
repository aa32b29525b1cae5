// Package root contains endpoints that aren't tied to a resource
package root

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Heartbeat is used to check if the server is alive and can reach its database
func Heartbeat(c *gin.Context, d *internal.Deps) {
	sqlDB, err := d.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}

	if err != nil {
		zap.L().Warn("Heartbeat failed to reach the database", zap.Error(err))
		response.Fail(c, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	c.Status(http.StatusOK)
}
