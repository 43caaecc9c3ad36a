package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"

	EnvProduction = "production"

	defaultSessionSecret = "dev-only-session-secret-change-me"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
}

type AppConfig struct {
	AppName     string `env:"APP_NAME" envDefault:"skill-passport"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`
	SeedDemo    bool   `env:"SEED_DEMO" envDefault:"false"`
}

type DatabaseConfig struct {
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`

	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBSSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`

	PoolMaxConns   int32         `env:"DB_POOL_MAX_CONNS" envDefault:"10"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	AutoMigrate    bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET" envDefault:"dev-only-session-secret-change-me"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
}

type RedisConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED" envDefault:"false"`
	Host     string        `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string        `env:"REDIS_PORT" envDefault:"6379"`
	Password string        `env:"REDIS_PASSWORD"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

type RabbitMQConfig struct {
	URL            string `env:"RABBITMQ_URL"`
	Queue          string `env:"RABBITMQ_QUEUE" envDefault:"skill_events"`
	PublishWorkers int    `env:"RABBITMQ_PUBLISH_WORKERS" envDefault:"2"`
	PublishBuffer  int    `env:"RABBITMQ_PUBLISH_BUFFER" envDefault:"256"`
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidConfig      = errors.New("invalid configuration")
)

// Load reads the environment, overlaying a .env file from the working
// directory first when one exists.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.App.Environment), EnvProduction)
}

func (c Config) UsesPostgres() bool {
	return c.Database.StoreDriver == StoreDriverPostgres
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", strings.TrimSpace(c.Host), strings.TrimSpace(c.Port))
}

func (c *Config) validate() error {
	c.Database.StoreDriver = strings.ToLower(strings.TrimSpace(c.Database.StoreDriver))
	switch c.Database.StoreDriver {
	case StoreDriverMemory, StoreDriverPostgres:
	default:
		return fmt.Errorf("%w: unknown STORE_DRIVER %q", errInvalidConfig, c.Database.StoreDriver)
	}

	var missing []string
	req := func(key, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
	}

	req("HTTP_PORT", c.App.HTTPPort)
	req("SESSION_SECRET", c.Session.Secret)
	req("SESSION_COOKIE_NAME", c.Session.CookieName)
	if c.UsesPostgres() {
		req("DB_HOST", c.Database.DBHost)
		req("DB_NAME", c.Database.DBName)
		req("DB_USER", c.Database.DBUser)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("%w: SESSION_TTL must be positive", errInvalidConfig)
	}
	if c.IsProduction() && c.Session.Secret == defaultSessionSecret {
		return fmt.Errorf("%w: SESSION_SECRET must be set in production", errInvalidConfig)
	}
	return nil
}
