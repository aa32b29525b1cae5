package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 5000, cfg.Host.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Host.CORS)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "database.db", cfg.Database.DSN)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Zero(t, cfg.Cache.StatsTTL)
	assert.EqualValues(t, 64*1024, cfg.Argon.Memory)
	assert.EqualValues(t, 2, cfg.Argon.Parallelism)
	assert.EqualValues(t, 1<<20, cfg.Security.BodyLimit)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[app]
log_level = "debug"

[host]
port = 9000
cors = ["https://a.example", "https://b.example"]

[database]
driver = "postgres"
dsn = "postgres://u:p@localhost/app"

[jwt]
secret = "from-file"
ttl = "2h"

[cache]
stats_ttl = "0s"
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 9000, cfg.Host.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Host.CORS)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Zero(t, cfg.Cache.StatsTTL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[jwt]
secret = "from-file"
`)

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "7000")
	t.Setenv("HOST_CORS", "https://a.example, https://b.example")
	t.Setenv("SEED_ADMIN_EMAIL", "admin@example.com")
	t.Setenv("SEED_ADMIN_PASSWORD", "admin123")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 7000, cfg.Host.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Host.CORS)
	assert.Equal(t, "admin@example.com", cfg.Seed.AdminEmail)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad log level", map[string]string{"APP_LOG_LEVEL": "verbose"}},
		{"bad port", map[string]string{"PORT": "0"}},
		{"bad driver", map[string]string{"DATABASE_DRIVER": "mysql"}},
		{"ssl without cert", map[string]string{"HOST_SSL_ENABLED": "true"}},
		{"half seeded admin", map[string]string{"SEED_ADMIN_EMAIL": "admin@example.com"}},
		{"zero argon memory", map[string]string{"ARGON_MEMORY": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "secret")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.toml"))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestGenSecret(t *testing.T) {
	a, b := GenSecret(), GenSecret()

	assert.Len(t, a, 128)
	assert.NotEqual(t, a, b)
}
