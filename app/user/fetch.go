package user

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/pkg/middleware"
	"bitwise74/user-api/pkg/request"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Fetch(c *gin.Context, d *internal.Deps) {
	id, ok := targetID(c)
	if !ok {
		return
	}

	user, err := d.Store.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to fetch user", err)
		return
	}

	if user == nil {
		response.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// targetID parses :id and checks the caller may act on it. Permission is
// checked before existence so non-admins can't probe for ids
func targetID(c *gin.Context) (uint, bool) {
	id, ok := request.ID(c)
	if !ok {
		return 0, false
	}

	if !middleware.SelfOrAdmin(middleware.CurrentUser(c), id) {
		response.Fail(c, http.StatusForbidden, "Access denied")
		return 0, false
	}

	return id, true
}
