package user

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Files lists every file created by the user, newest first
func Files(c *gin.Context, d *internal.Deps) {
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

	files, err := d.Store.ListFilesByCreator(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to list user files", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    files,
	})
}
