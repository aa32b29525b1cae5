// Package file contains the file metadata endpoints
package file

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/internal/store"
	"bitwise74/user-api/pkg/request"
	"bitwise74/user-api/pkg/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// List supports ?page, ?limit, ?search (name) and ?type (MIME type substring)
func List(c *gin.Context, d *internal.Deps) {
	page, limit, ok := request.Page(c)
	if !ok {
		return
	}

	files, total, err := d.Store.ListFiles(c.Request.Context(), store.FileFilter{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(c.Query("search")),
		Type:   strings.TrimSpace(c.Query("type")),
	})
	if err != nil {
		response.Internal(c, "Failed to list files", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       files,
		"pagination": response.NewPagination(page, limit, total),
	})
}
