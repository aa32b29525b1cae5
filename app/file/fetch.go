package file

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/internal/store"
	"bitwise74/user-api/pkg/request"
	"bitwise74/user-api/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fetch returns a file and counts it as a view
func Fetch(c *gin.Context, d *internal.Deps) {
	id, ok := request.ID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	err := d.Store.RecordFileView(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "File not found")
			return
		}

		response.Internal(c, "Failed to record file view", err)
		return
	}

	file, err := d.Store.GetFile(ctx, id)
	if err != nil {
		response.Internal(c, "Failed to fetch file", err)
		return
	}

	// Deleted between the two queries
	if file == nil {
		response.Fail(c, http.StatusNotFound, "File not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"file":    file,
	})
}
