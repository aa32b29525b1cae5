// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configPath     = pflag.String("config", "config.toml", "Path to the TOML config file")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
)

// ErrMissingSecret is returned when no JWT secret is configured. The caller
// should print GenSecret() so the operator can paste it in
var ErrMissingSecret = errors.New("no JWT secret configured")

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Host     HostConfig     `mapstructure:"host"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Argon    ArgonConfig    `mapstructure:"argon"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

type HostConfig struct {
	Port   int       `mapstructure:"port"`
	Domain string    `mapstructure:"domain"`
	CORS   []string  `mapstructure:"cors"`
	SSL    SSLConfig `mapstructure:"ssl"`
}

type SSLConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	CertificatePath    string `mapstructure:"certificate_path"`
	CertificateKeyPath string `mapstructure:"certificate_key_path"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type SecurityConfig struct {
	RateLimit int   `mapstructure:"rate_limit"` // Requests per second per IP, 0 disables
	BodyLimit int64 `mapstructure:"body_limit"` // Bytes
}

type ArgonConfig struct {
	Memory      uint32 `mapstructure:"memory"`
	Iterations  uint32 `mapstructure:"iterations"`
	Parallelism uint8  `mapstructure:"parallelism"`
}

type CacheConfig struct {
	StatsTTL time.Duration `mapstructure:"stats_ttl"` // 0 disables caching
}

type SeedConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

// GenSecret returns a random 64 byte hex encoded secret
func GenSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() (*Config, error) {
	pflag.Parse()

	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	v := viper.New()
	v.BindPFlags(pflag.CommandLine)

	return Load(v, *configPath)
}

// Load reads the config file at path, if it exists, on top of the defaults
// and environment variables, then validates the result
func Load(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")

	v.BindEnv("host.port", "PORT")
	v.BindEnv("host.domain", "HOST_DOMAIN")
	v.BindEnv("host.cors", "HOST_CORS")

	v.BindEnv("host.ssl.enabled", "HOST_SSL_ENABLED")
	v.BindEnv("host.ssl.certificate_path", "HOST_SSL_CERTIFICATE_PATH")
	v.BindEnv("host.ssl.certificate_key_path", "HOST_SSL_CERTIFICATE_KEY_PATH")

	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_URL")

	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.ttl", "JWT_TTL")

	v.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT")
	v.BindEnv("security.body_limit", "SECURITY_BODY_LIMIT")

	v.BindEnv("argon.memory", "ARGON_MEMORY")
	v.BindEnv("argon.iterations", "ARGON_ITERATIONS")
	v.BindEnv("argon.parallelism", "ARGON_PARALLELISM")

	v.BindEnv("cache.stats_ttl", "CACHE_STATS_TTL")

	v.BindEnv("seed.admin_email", "SEED_ADMIN_EMAIL")
	v.BindEnv("seed.admin_password", "SEED_ADMIN_PASSWORD")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 5000)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.cors", []string{"http://localhost:5173"})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db")

	v.SetDefault("jwt.ttl", "24h")

	v.SetDefault("security.rate_limit", 20)
	v.SetDefault("security.body_limit", 1<<20)

	v.SetDefault("argon.memory", 64*1024)
	v.SetDefault("argon.iterations", 3)
	v.SetDefault("argon.parallelism", 2)

	v.SetDefault("cache.stats_ttl", "0s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	// Comma separated lists coming from the environment
	if cors := v.GetString("host.cors"); cors != "" && !v.InConfig("host.cors") {
		v.Set("host.cors", splitList(cors))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config, %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if !slices.Contains(validLogLevels, c.App.LogLevel) {
		return errors.New("invalid log level provided")
	}

	if c.Host.Port <= 0 {
		return errors.New("invalid port provided")
	}

	if c.Host.SSL.Enabled {
		if c.Host.SSL.CertificatePath == "" {
			return errors.New("no ssl certificate path provided")
		}

		if c.Host.SSL.CertificateKeyPath == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if !slices.Contains(validDrivers, c.Database.Driver) {
		return errors.New("invalid database driver provided")
	}

	if c.Database.DSN == "" {
		return errors.New("database dsn can't be empty")
	}

	if c.JWT.TTL <= 0 {
		return errors.New("jwt.ttl must be bigger than 0")
	}

	if c.Security.RateLimit < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if c.Security.BodyLimit <= 0 {
		return errors.New("security.body_limit must be bigger than 0")
	}

	if c.Argon.Memory == 0 || c.Argon.Iterations == 0 || c.Argon.Parallelism == 0 {
		return errors.New("argon parameters must be bigger than 0")
	}

	if c.Cache.StatsTTL < 0 {
		return errors.New("cache.stats_ttl can't be negative")
	}

	if (c.Seed.AdminEmail == "") != (c.Seed.AdminPassword == "") {
		return errors.New("seed.admin_email and seed.admin_password must be set together")
	}

	if c.JWT.Secret == "" {
		return ErrMissingSecret
	}

	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
