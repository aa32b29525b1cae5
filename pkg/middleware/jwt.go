package middleware

import (
	"bitwise74/user-api/internal/model"
	"bitwise74/user-api/pkg/response"
	"bitwise74/user-api/pkg/security"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TokenVerifier interface {
	Verify(token string) (*security.Claims, error)
}

type UserGetter interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// NewJWTMiddleware authenticates the bearer token and reloads the user it
// names. Deleted or deactivated users are rejected even with a valid token.
// On success "user" (*model.User) and "userID" (uint) are set
func NewJWTMiddleware(tokens TokenVerifier, users UserGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("requestID")

		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Access token required")
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Invalid token")

			zap.L().Debug("Failed to verify token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		user, err := users.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Internal server error")

			zap.L().Error("Failed to load token user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if user == nil || !user.Active {
			response.Fail(c, http.StatusUnauthorized, "Invalid token or inactive user")
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

func bearerToken(h string) (string, bool) {
	scheme, tok, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}
