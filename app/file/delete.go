package file

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/pkg/request"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Delete(c *gin.Context, d *internal.Deps) {
	id, ok := request.ID(c)
	if !ok {
		return
	}

	deleted, err := d.Store.DeleteFile(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "Failed to delete file", err)
		return
	}

	if !deleted {
		response.Fail(c, http.StatusNotFound, "File not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "File deleted",
	})
}
