package middleware

import (
	"bitwise74/user-api/internal/model"
	"bitwise74/user-api/pkg/security"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type userMap map[uint]*model.User

func (m userMap) GetUser(_ context.Context, id uint) (*model.User, error) {
	return m[id], nil
}

type brokenUsers struct{}

func (brokenUsers) GetUser(context.Context, uint) (*model.User, error) {
	return nil, errors.New("db down")
}

func newGuardedRouter(tokens TokenVerifier, users UserGetter, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(NewRequestIDMiddleware())

	handlers := append([]gin.HandlerFunc{NewJWTMiddleware(tokens, users)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, "%d", c.GetUint("userID"))
	})

	r.GET("/", handlers...)
	return r
}

func doGet(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestJWTMiddleware(t *testing.T) {
	iss := security.NewTokenIssuer([]byte("secret"), time.Hour)
	users := userMap{
		1: {ID: 1, Email: "a@x.com", Role: model.RoleUser, Active: true},
		2: {ID: 2, Email: "b@x.com", Role: model.RoleUser, Active: false},
	}

	active, err := iss.Issue(1, "a@x.com")
	require.NoError(t, err)
	inactive, err := iss.Issue(2, "b@x.com")
	require.NoError(t, err)
	deleted, err := iss.Issue(3, "c@x.com")
	require.NoError(t, err)
	foreign, err := security.NewTokenIssuer([]byte("other"), time.Hour).Issue(1, "a@x.com")
	require.NoError(t, err)

	r := newGuardedRouter(iss, users)

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{"valid token", "Bearer " + active, http.StatusOK},
		{"lowercase scheme", "bearer " + active, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + active, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"foreign signature", "Bearer " + foreign, http.StatusUnauthorized},
		{"inactive user", "Bearer " + inactive, http.StatusUnauthorized},
		{"deleted user", "Bearer " + deleted, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(r, tt.auth)
			assert.Equal(t, tt.status, w.Code)

			if tt.status == http.StatusOK {
				assert.Equal(t, "1", w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}
}

func TestJWTMiddlewareStoreFailure(t *testing.T) {
	iss := security.NewTokenIssuer([]byte("secret"), time.Hour)
	tok, err := iss.Issue(1, "a@x.com")
	require.NoError(t, err)

	w := doGet(newGuardedRouter(iss, brokenUsers{}), "Bearer "+tok)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestRequireAdmin(t *testing.T) {
	iss := security.NewTokenIssuer([]byte("secret"), time.Hour)
	users := userMap{
		1: {ID: 1, Role: model.RoleUser, Active: true},
		2: {ID: 2, Role: model.RoleAdmin, Active: true},
	}

	r := newGuardedRouter(iss, users, RequireAdmin())

	userTok, _ := iss.Issue(1, "")
	adminTok, _ := iss.Issue(2, "")

	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+userTok).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+adminTok).Code)
}

func TestSelfOrAdmin(t *testing.T) {
	user := &model.User{ID: 1, Role: model.RoleUser}
	admin := &model.User{ID: 2, Role: model.RoleAdmin}

	assert.True(t, SelfOrAdmin(user, 1))
	assert.False(t, SelfOrAdmin(user, 2))
	assert.True(t, SelfOrAdmin(admin, 1))
	assert.True(t, SelfOrAdmin(admin, 99))
	assert.False(t, SelfOrAdmin(nil, 1))
}

func TestCurrentUserUnguarded(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, CurrentUser(c))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(NewRequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("requestID"))
	})

	w := doGet(r, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Body.String(), 12)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	assert.NotEqual(t, w.Body.String(), doGet(r, "").Body.String())
}

func TestBodySizeLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/", BodySizeLimiter(8), func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		c.Status(http.StatusOK)
	})

	send := func(body string, chunked bool) int {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if chunked {
			req.ContentLength = -1
		}

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("small", false))
	assert.Equal(t, http.StatusRequestEntityTooLarge, send("way too large body", false))
	assert.Equal(t, http.StatusBadRequest, send("way too large body", true))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 2})

	r := gin.New()
	r.GET("/", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, doGet(r, "").Code)
	assert.Equal(t, http.StatusOK, doGet(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, "").Code)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, TTL: time.Nanosecond})
	rl.getVisitor("1.2.3.4")

	time.Sleep(time.Millisecond)
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.visitors)
}
