package auth

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/internal/model"
	"bitwise74/user-api/internal/store"
	"bitwise74/user-api/pkg/request"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerBody struct {
	LastName   string     `json:"nom" binding:"required"`
	FirstNames string     `json:"prenoms" binding:"required"`
	Email      string     `json:"email" binding:"required,email"`
	Password   string     `json:"password" binding:"required,min=6,max=255"`
	Role       model.Role `json:"role" binding:"omitempty,oneof=admin user"`
}

// Register creates an account and logs it in right away
func Register(c *gin.Context, d *internal.Deps) {
	var data registerBody
	if !request.BindJSON(c, &data) {
		return
	}

	user, err := d.Store.CreateUser(c.Request.Context(), store.NewUser{
		LastName:   data.LastName,
		FirstNames: data.FirstNames,
		Email:      data.Email,
		Password:   data.Password,
		Role:       data.Role,
	})
	if err != nil {
		response.Store(c, "Failed to create user", err)
		return
	}

	token, err := d.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		response.Internal(c, "Failed to generate JWT auth token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created",
		"token":   token,
		"user":    user,
	})
}
