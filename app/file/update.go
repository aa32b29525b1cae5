package file

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/internal/store"
	"bitwise74/user-api/pkg/request"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateBody struct {
	Name        *string `json:"nom" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Type        *string `json:"type" binding:"omitempty,min=1"`
	Size        *int64  `json:"taille" binding:"omitempty,gt=0"`
}

func Update(c *gin.Context, d *internal.Deps) {
	id, ok := request.ID(c)
	if !ok {
		return
	}

	var data updateBody
	if !request.BindJSON(c, &data) {
		return
	}

	file, err := d.Store.UpdateFile(c.Request.Context(), id, store.FileUpdate{
		Name:        data.Name,
		Description: data.Description,
		Type:        data.Type,
		Size:        data.Size,
	})
	if err != nil {
		response.Store(c, "Failed to update file", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "File updated",
		"file":    file,
	})
}
