// Package response writes the JSON envelope shared by every endpoint
package response

import (
	"bitwise74/user-api/internal/store"
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// Fail aborts the request with a failed envelope carrying msg
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":   false,
		"message":   msg,
		"requestID": c.GetString("requestID"),
	})
}

// Invalid aborts with 400 and one message per rejected field
func Invalid(c *gin.Context, errs []string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success":   false,
		"message":   "Invalid data",
		"errors":    errs,
		"requestID": c.GetString("requestID"),
	})
}

// Internal logs err and aborts with 500. The client never sees the cause
func Internal(c *gin.Context, msg string, err error) {
	requestID := c.GetString("requestID")

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success":   false,
		"message":   "Internal server error",
		"requestID": requestID,
	})

	zap.L().Error(msg, zap.Error(err), zap.String("requestID", requestID))
}

// Store maps an error returned by the store to the matching status
func Store(c *gin.Context, msg string, err error) {
	var verr *store.ValidationError

	switch {
	case errors.As(err, &verr):
		Invalid(c, verr.Errors)
	case errors.Is(err, store.ErrDuplicateEmail):
		Fail(c, http.StatusBadRequest, "This email is already in use")
	case errors.Is(err, store.ErrCreatorNotFound):
		Fail(c, http.StatusBadRequest, "The creator of this file does not exist")
	case errors.Is(err, store.ErrNotFound):
		Fail(c, http.StatusNotFound, "Not found")
	default:
		Internal(c, msg, err)
	}
}
