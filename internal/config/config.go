package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
}

type AppConfig struct {
	Port    string `env:"PORT" env-default:"8080"`
	GinMode string `env:"GIN_MODE" env-default:"debug"`
}

type DBConfig struct {
	// URL is a full connection string (e.g. Railway/Heroku DATABASE_URL).
	// When set it overrides the individual DB_* fields.
	URL      string `env:"DATABASE_URL" env-default:""`
	Driver   string `env:"DB_DRIVER" env-default:"postgres"`
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER" env-default:"todouser"`
	Password string `env:"DB_PASSWORD" env-default:"todopassword"`
	Name     string `env:"DB_NAME" env-default:"todo_tracker"`
}

type RedisConfig struct {
	// Addr is "host:port". Empty disables the dashboard cache.
	Addr     string        `env:"REDIS_ADDR" env-default:""`
	Password string        `env:"REDIS_PASSWORD" env-default:""`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	CacheTTL time.Duration `env:"CACHE_TTL" env-default:"60s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	switch cfg.DB.Driver {
	case "postgres", "mysql":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be postgres or mysql, got %q", cfg.DB.Driver)
	}

	// Some platforms hand out postgres:// URLs; the driver choice follows.
	if strings.HasPrefix(cfg.DB.URL, "postgres://") || strings.HasPrefix(cfg.DB.URL, "postgresql://") {
		cfg.DB.Driver = "postgres"
	}

	return &cfg, nil
}

// DSN returns the connection string for the configured driver.
func (c *DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Driver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name)
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port)
}
