package middleware

import (
	"bitwise74/user-api/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodySizeLimiter rejects requests whose body is bigger than maxBytes. Bodies
// without a declared length are cut off while being read, the JSON binding then
// fails and the handler answers 400
func BodySizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Fast reject for legit requests
		if c.Request.ContentLength > maxBytes {
			response.Fail(c, http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
