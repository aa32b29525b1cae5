// Package user contains the user management endpoints
package user

import (
	"bitwise74/user-api/internal"
	"bitwise74/user-api/internal/model"
	"bitwise74/user-api/internal/store"
	"bitwise74/user-api/pkg/request"
	"bitwise74/user-api/pkg/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// List supports ?page, ?limit, ?search, ?role and ?actif
func List(c *gin.Context, d *internal.Deps) {
	page, limit, ok := request.Page(c)
	if !ok {
		return
	}

	filter := store.UserFilter{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(c.Query("search")),
	}

	if r := c.Query("role"); r != "" {
		role := model.Role(r)
		if !role.Valid() {
			response.Fail(c, http.StatusBadRequest, "Invalid role provided")
			return
		}

		filter.Role = &role
	}

	if filter.Active, ok = request.Bool(c, "actif"); !ok {
		return
	}

	users, total, err := d.Store.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.Internal(c, "Failed to list users", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       users,
		"pagination": response.NewPagination(page, limit, total),
	})
}
