package user

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/internal/model"
	"bitwise74/user-api/internal/store"
	"bitwise74/user-api/pkg/middleware"
	"bitwise74/user-api/pkg/request"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateBody struct {
	LastName   *string     `json:"nom" binding:"omitempty,min=1"`
	FirstNames *string     `json:"prenoms" binding:"omitempty,min=1"`
	Email      *string     `json:"email" binding:"omitempty,email"`
	Password   *string     `json:"password" binding:"omitempty,min=6,max=255"`
	Role       *model.Role `json:"role"` // Checked by the store, only once we know an admin sent it
	Active     *bool       `json:"actif"`
}

// Update merges the given fields. Only admins may change roles, a role sent
// by anyone else is ignored
func Update(c *gin.Context, d *internal.Deps) {
	id, ok := targetID(c)
	if !ok {
		return
	}

	var data updateBody
	if !request.BindJSON(c, &data) {
		return
	}

	if !middleware.CurrentUser(c).IsAdmin() {
		data.Role = nil
	}

	user, err := d.Store.UpdateUser(c.Request.Context(), id, store.UserUpdate{
		LastName:   data.LastName,
		FirstNames: data.FirstNames,
		Email:      data.Email,
		Password:   data.Password,
		Role:       data.Role,
		Active:     data.Active,
	})
	if err != nil {
		response.Store(c, "Failed to update user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated",
		"user":    user,
	})
}
