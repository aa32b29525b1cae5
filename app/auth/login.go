package auth

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/pkg/request"
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var data loginBody
	if !request.BindJSON(c, &data) {
		return
	}

	user, err := d.Store.Authenticate(c.Request.Context(), data.Email, data.Password)
	if err != nil {
		response.Internal(c, "Failed to authenticate user", err)
		return
	}

	// Unknown email, wrong password and inactive account all look the same
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, "Invalid email or password")

		zap.L().Debug("Rejected login", zap.String("requestID", requestID))
		return
	}

	token, err := d.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		response.Internal(c, "Failed to generate JWT auth token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in",
		"token":   token,
		"user":    user,
	})
}
