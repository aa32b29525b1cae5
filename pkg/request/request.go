// Package request holds the parsing shared by handlers: JSON bodies, path ids
// and pagination parameters
package request

import (
	"bitwise74/user-api/pkg/response"
	"bitwise74/user-api/pkg/validators"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// BindJSON decodes and validates the body into dst. On failure the response
// is already written and false is returned
func BindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Fail(c, http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
		return false
	}

	response.Invalid(c, validators.Messages(err))
	return false
}

// ID parses the :id path parameter, writing a 400 when it isn't a positive integer
func ID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		response.Fail(c, http.StatusBadRequest, "Invalid id provided")
		return 0, false
	}

	return uint(id), true
}

// Page reads page and limit from the query string
func Page(c *gin.Context) (page, limit int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page <= 0 {
		response.Fail(c, http.StatusBadRequest, "Invalid page provided")
		return 0, 0, false
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit <= 0 || limit > MaxLimit {
		response.Fail(c, http.StatusBadRequest, "Invalid limit provided")
		return 0, 0, false
	}

	return page, limit, true
}

// Bool parses an optional boolean query parameter. Absent means nil
func Bool(c *gin.Context, key string) (*bool, bool) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return nil, true
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid "+key+" provided")
		return nil, false
	}

	return &v, true
}
