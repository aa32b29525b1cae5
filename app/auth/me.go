package auth

import (
	"bitwise74/user-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me returns the user behind the token, as currently stored
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    middleware.CurrentUser(c),
	})
}
