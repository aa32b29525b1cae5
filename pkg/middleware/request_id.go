// Package middleware contains any custom middleware used in the app
package middleware

import (
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const requestIDHeader = "X-Request-ID"

// NewRequestIDMiddleware returns a new middleware function that generates a request ID for
// each incoming request and sets it as requestID. The id is echoed in the X-Request-ID header
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gonanoid.New(12)
		if err != nil {
			// Only fails if the system's random source is broken
			id = "unknown"
		}

		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
