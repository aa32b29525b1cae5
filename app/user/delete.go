package user

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Delete removes the account for good. Files it created are kept
func Delete(c *gin.Context, d *internal.Deps) {
	id, ok := targetID(c)
	if !ok {
		return
	}

	deleted, err := d.Store.DeleteUser(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to delete user", err)
		return
	}

	if !deleted {
		response.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted",
	})
}
