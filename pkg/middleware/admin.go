package middleware

import (
	"bitwise74/user-api/internal/model"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after the JWT middleware
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsAdmin() {
			response.Fail(c, http.StatusForbidden, "Admin access required")
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user authenticated by the JWT middleware, nil when
// the route isn't guarded
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}

	u, _ := v.(*model.User)
	return u
}

// SelfOrAdmin reports whether actor may act on the user with targetID
func SelfOrAdmin(actor *model.User, targetID uint) bool {
	if actor == nil {
		return false
	}

	return actor.IsAdmin() || actor.ID == targetID
}
