package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	IdentityProviderGoogle = "google"
	IdentityProviderLocal  = "local"

	SessionBackendCookie = "cookie"
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	UserStoreMemory = "memory"
	UserStoreMongo  = "mongo"

	minSessionSecretLen = 32
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:3000"`

	Identity IdentityConfig
	Session  SessionConfig
	Users    UsersConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type IdentityConfig struct {
	// Audience is the OAuth2 client ID ID tokens must be issued for.
	Audience      string        `env:"GOOGLE_CLIENT_ID, required"`
	Provider      string        `env:"IDENTITY_PROVIDER,       default=google"`
	LocalSecret   string        `env:"IDENTITY_LOCAL_SECRET"`
	VerifyTimeout time.Duration `env:"IDENTITY_VERIFY_TIMEOUT, default=5s"`
}

type SessionConfig struct {
	Secret        string        `env:"SESSION_SECRET, required"`
	Backend       string        `env:"SESSION_BACKEND,  default=cookie"`
	Lifetime      time.Duration `env:"SESSION_LIFETIME, default=336h"`
	SecureCookies bool          `env:"SECURE_COOKIES,   default=false"`
}

type UsersConfig struct {
	Store string `env:"USER_STORE, default=memory"`
	Seed  bool   `env:"MONGO_SEED, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=passenger_auth"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates it. Missing required secrets fail here, before anything starts.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces rules envconfig tags cannot express.
func (c *Config) Validate() error {
	if len(c.Session.Secret) < minSessionSecretLen {
		return fmt.Errorf("config: SESSION_SECRET must be at least %d bytes", minSessionSecretLen)
	}

	switch c.Identity.Provider {
	case IdentityProviderGoogle:
	case IdentityProviderLocal:
		if c.Identity.LocalSecret == "" {
			return fmt.Errorf("config: IDENTITY_LOCAL_SECRET is required when IDENTITY_PROVIDER=%s", IdentityProviderLocal)
		}
	default:
		return fmt.Errorf("config: unknown IDENTITY_PROVIDER %q", c.Identity.Provider)
	}

	switch c.Session.Backend {
	case SessionBackendCookie, SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Session.Backend)
	}

	switch c.Users.Store {
	case UserStoreMemory, UserStoreMongo:
	default:
		return fmt.Errorf("config: unknown USER_STORE %q", c.Users.Store)
	}

	return nil
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// NeedsRedis reports whether any component is backed by Redis.
func (c *Config) NeedsRedis() bool {
	return c.Session.Backend == SessionBackendRedis
}

// NeedsMongo reports whether any component is backed by MongoDB.
func (c *Config) NeedsMongo() bool {
	return c.Users.Store == UserStoreMongo
}
