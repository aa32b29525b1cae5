// Package app wires the HTTP API together
package app

import (
	"bitwise74/user-api/app/auth"
	"bitwise74/user-api/app/file"
	"bitwise74/user-api/app/root"
	"bitwise74/user-api/app/stats"
	"bitwise74/user-api/app/user"
	"bitwise74/user-api/config"
	"bitwise74/user-api/db"
	"bitwise74/user-api/internal"
	"bitwise74/user-api/internal/service"
	"bitwise74/user-api/internal/store"
	"bitwise74/user-api/pkg/middleware"
	"bitwise74/user-api/pkg/security"
	"bitwise74/user-api/pkg/validators"
	"context"
	"fmt"
	"net/http"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

// NewRouter opens the database, seeds the first admin if configured and
// returns the engine serving the API. Background work stops with ctx
func NewRouter(ctx context.Context, cfg *config.Config) (*gin.Engine, error) {
	makeLogger(cfg.App.LogLevel)

	conn, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	argon := security.NewWithParams(cfg.Argon.Memory, cfg.Argon.Iterations, cfg.Argon.Parallelism)

	d := &internal.Deps{
		DB:     conn,
		Store:  store.New(conn, argon),
		Tokens: security.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.TTL),
	}

	_, err = service.SeedAdmin(ctx, d.Store, service.AdminSeed{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		return nil, err
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(validators.JSONTagName)
	}

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.Host.CORS,
			AllowMethods:     []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetUint("userID"); v != 0 {
					fields = append(fields, zap.Uint("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jwt := middleware.NewJWTMiddleware(d.Tokens, d.Store)
	admin := middleware.RequireAdmin()

	statsCache, dropStats := dashboardCache(cfg.Cache.StatsTTL)

	m := router.Group("/api", middleware.BodySizeLimiter(cfg.Security.BodyLimit), dropStats)
	if cfg.Security.RateLimit > 0 {
		rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.Security.RateLimit,
			Burst:             cfg.Security.RateLimit * 2,
		})
		go rl.Run(ctx)

		m.Use(rl.Middleware())
	}

	{
		// HEAD /api/heartbeat 		-> Used to check if the server and database are alive
		m.HEAD("/heartbeat", func(c *gin.Context) { root.Heartbeat(c, d) })
		m.GET("/heartbeat", func(c *gin.Context) { root.Heartbeat(c, d) })

		// GET /api/validate		-> Validates a JWT token
		m.GET("/validate", jwt, root.Validate)
	}

	a := m.Group("/auth")
	{
		// POST /api/auth/register	-> Registers a new user and returns a JWT token
		a.POST("/register", func(c *gin.Context) { auth.Register(c, d) })

		// POST /api/auth/login 	-> Logs in a user and returns a JWT token
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// GET /api/auth/me		-> Returns the user behind the token
		a.GET("/me", jwt, auth.Me)
	}

	u := m.Group("/users", jwt)
	{
		// GET /api/users		-> Lists users with filters and pagination
		u.GET("", admin, func(c *gin.Context) { user.List(c, d) })

		// POST /api/users		-> Creates a user
		u.POST("", admin, func(c *gin.Context) { user.Create(c, d) })

		// GET /api/users/:id		-> Returns a user, self or admin
		u.GET("/:id", func(c *gin.Context) { user.Fetch(c, d) })

		// PUT /api/users/:id		-> Updates a user, self or admin
		u.PUT("/:id", func(c *gin.Context) { user.Update(c, d) })

		// DELETE /api/users/:id 	-> Deletes a user, self or admin
		u.DELETE("/:id", func(c *gin.Context) { user.Delete(c, d) })

		// GET /api/users/:id/files	-> Lists the files a user created
		u.GET("/:id/files", func(c *gin.Context) { user.Files(c, d) })
	}

	f := m.Group("/files", jwt)
	{
		// GET /api/files		-> Lists files with filters and pagination
		f.GET("", func(c *gin.Context) { file.List(c, d) })

		// GET /api/files/:id		-> Returns a file and counts a view
		f.GET("/:id", func(c *gin.Context) { file.Fetch(c, d) })

		// POST /api/files         	-> Stores the metadata of a new file
		f.POST("", admin, func(c *gin.Context) { file.Create(c, d) })

		// PUT /api/files/:id		-> Updates a file
		f.PUT("/:id", admin, func(c *gin.Context) { file.Update(c, d) })

		// DELETE /api/files/:id	-> Deletes a file
		f.DELETE("/:id", admin, func(c *gin.Context) { file.Delete(c, d) })
	}

	s := m.Group("/stats", jwt)
	{
		// GET /api/stats/dashboard	-> Global counters for the admin dashboard
		s.GET("/dashboard", admin, statsCache, func(c *gin.Context) { stats.Dashboard(c, d) })

		// GET /api/stats/user		-> Counters of the calling user
		s.GET("/user", func(c *gin.Context) { stats.User(c, d) })
	}

	return router, nil
}

func makeLogger(level string) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

const dashboardPath = "/api/stats/dashboard"

// dashboardCache returns a handler serving the dashboard from memory for ttl
// and one dropping that entry after every successful write. A zero ttl
// disables both
func dashboardCache(ttl time.Duration) (serve, drop gin.HandlerFunc) {
	if ttl <= 0 {
		next := func(c *gin.Context) { c.Next() }
		return next, next
	}

	mem := persist.NewMemoryStore(time.Minute)

	serve = cache.CacheByRequestPath(mem, ttl)
	drop = func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		if c.Writer.Status() < http.StatusBadRequest {
			// Delete errors when nothing was cached yet
			_ = mem.Delete(dashboardPath)
		}
	}

	return serve, drop
}
