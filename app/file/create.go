package file

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/internal/store"
	"bitwise74/user-api/pkg/middleware"
	"bitwise74/user-api/pkg/request"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createBody struct {
	Name        string  `json:"nom" binding:"required"`
	Description *string `json:"description"`
	Type        string  `json:"type" binding:"required"`
	Size        int64   `json:"taille" binding:"required,gt=0"`
	CreatorID   uint    `json:"creeParId"` // Defaults to the caller
}

// Create records the metadata of an upload. No bytes are received, the path
// is derived from the name
func Create(c *gin.Context, d *internal.Deps) {
	var data createBody
	if !request.BindJSON(c, &data) {
		return
	}

	if data.CreatorID == 0 {
		data.CreatorID = middleware.CurrentUser(c).ID
	}

	file, err := d.Store.CreateFile(c.Request.Context(), store.NewFile{
		Name:        data.Name,
		Description: data.Description,
		Type:        data.Type,
		Size:        data.Size,
		CreatorID:   data.CreatorID,
	})
	if err != nil {
		response.Store(c, "Failed to create file", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "File added",
		"file":    file,
	})
}
