package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		App       AppConfig
		Database  DatabaseConfig
		RateLimit RateLimitConfig
		Redis     RedisConfig
		NATS      NATSConfig
		Log       LogConfig
	}

	AppConfig struct {
		Name    string `env:"APP_NAME" env-default:"profilematch"`
		Port    string `env:"PORT" env-default:"8080"`
		GinMode string `env:"GIN_MODE" env-default:"release"`
	}

	// DatabaseConfig selects the gorm dialector. "sqlite" is meant for local
	// runs; everything else connects to PostgreSQL.
	DatabaseConfig struct {
		Driver     string `env:"DB_DRIVER" env-default:"postgres"`
		Host       string `env:"DB_HOST" env-default:"localhost"`
		Port       string `env:"DB_PORT" env-default:"5432"`
		User       string `env:"DB_USER" env-default:"postgres"`
		Password   string `env:"DB_PASSWORD"`
		Name       string `env:"DB_NAME" env-default:"profilematch"`
		SSLMode    string `env:"DB_SSLMODE" env-default:"disable"`
		TimeZone   string `env:"DB_TIMEZONE" env-default:"UTC"`
		SQLitePath string `env:"SQLITE_PATH" env-default:"profilematch.db"`
	}

	RateLimitConfig struct {
		Requests int           `env:"RATE_LIMIT_REQUESTS" env-default:"100"`
		Window   time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`
	}

	// RedisConfig enables the shared rate limiter when URL is set.
	RedisConfig struct {
		URL string `env:"REDIS_URL"`
	}

	// NATSConfig enables lifecycle event publishing when URL is set.
	NATSConfig struct {
		URL           string `env:"NATS_URL"`
		SubjectPrefix string `env:"NATS_SUBJECT_PREFIX" env-default:"users"`
	}

	LogConfig struct {
		Level  string `env:"LOG_LEVEL" env-default:"info"`
		Format string `env:"LOG_FORMAT" env-default:"json"`
	}
)

// Load reads an optional .env file from each of envFiles, then fills Config
// from the process environment. Variables already set in the environment win
// over .env values.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			log.Printf("No %s file loaded: %v", file, err)
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.RateLimit.Requests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimit.Requests)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimit.Window)
	}
	return nil
}

// PostgresDSN builds the connection string for gorm's postgres driver.
func (d DatabaseConfig) PostgresDSN(appName string) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s "+
			"application_name=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, appName, d.TimeZone,
	)
}
