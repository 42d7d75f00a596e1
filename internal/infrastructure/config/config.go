package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	// AdminFallbackEmail is treated as admin regardless of profile. Empty
	// disables the fallback.
	AdminFallbackEmail string `env:"ADMIN_FALLBACK_EMAIL, default=admin@soldiers.com"`

	SessionTTL     time.Duration `env:"SESSION_TTL,      default=24h"`
	ListCacheTTL   time.Duration `env:"LIST_CACHE_TTL,   default=30s"`
	CartIdleTTL    time.Duration `env:"CART_IDLE_TTL,    default=2h"`
	ReceiptWorkers int           `env:"RECEIPT_WORKERS,  default=4"`
	CORSOrigins    []string      `env:"CORS_ORIGINS,     default=http://localhost:5173"`

	Backend BackendConfig
	Login   LoginLimitConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=https://soldiersapi.share.zrok.io"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

// LoginLimitConfig throttles sign-in attempts per client IP.
type LoginLimitConfig struct {
	Rate  float64 `env:"LOGIN_RATE,  default=0.2"`
	Burst int     `env:"LOGIN_BURST, default=5"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=soldiers_gateway"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if !strings.HasPrefix(c.Backend.URL, "http://") && !strings.HasPrefix(c.Backend.URL, "https://") {
		return fmt.Errorf("BACKEND_URL must be an http(s) url, got %q", c.Backend.URL)
	}
	if c.ReceiptWorkers <= 0 {
		return errors.New("RECEIPT_WORKERS must be positive")
	}
	if c.Login.Rate <= 0 || c.Login.Burst <= 0 {
		return errors.New("LOGIN_RATE and LOGIN_BURST must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
