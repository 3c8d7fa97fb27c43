package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=72h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// UserServiceURL is the upstream behind the role-gated /user proxy.
	UserServiceURL string `env:"USER_SERVICE_URL, default=http://localhost:9000"`

	Admin AdminConfig
	Login LoginConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AdminConfig is the out-of-band admin bypass identity. Leaving the username
// empty disables the bypass branch entirely.
type AdminConfig struct {
	Username string `env:"GATEWAY_ADMIN_USERNAME"`
	Password string `env:"GATEWAY_ADMIN_PASSWORD"`
	Role     string `env:"GATEWAY_ADMIN_ROLE, default=admin"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=10"`
	Window      time.Duration `env:"LOGIN_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bank_gateway"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
