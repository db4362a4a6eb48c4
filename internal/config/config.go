package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const EnvPrefix = "HMS"

type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Validation ValidationConfig `mapstructure:"validation"`
	Audit      AuditConfig      `mapstructure:"audit"`
	Redis      RedisConfig      `mapstructure:"redis"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
	Ops        OpsConfig        `mapstructure:"ops"`
}

type DatabaseConfig struct {
	// Driver is either "postgres" or "memory".
	Driver       string        `mapstructure:"driver"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	Name         string        `mapstructure:"name"`
	SSLMode      string        `mapstructure:"sslmode"`
	QueryTimeout time.Duration `mapstructure:"query_timeout" split_words:"true"`
	MaxOpenConns int           `mapstructure:"max_open_conns" split_words:"true"`
}

// DSN renders the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

type AdminAccount struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type AuthConfig struct {
	MaxAttempts int            `mapstructure:"max_attempts" split_words:"true"`
	Lockout     time.Duration  `mapstructure:"lockout"`
	Rate        float64        `mapstructure:"rate"`
	Burst       int            `mapstructure:"burst"`
	BcryptCost  int            `mapstructure:"bcrypt_cost" split_words:"true"`
	Admins      []AdminAccount `mapstructure:"admins" ignored:"true"`
}

type ValidationConfig struct {
	RequireSpecialChar bool `mapstructure:"require_special_char" split_words:"true"`
}

type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Channel string `mapstructure:"channel"`
}

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type OpsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "hospital")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.query_timeout", 5*time.Second)
	v.SetDefault("database.max_open_conns", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "hms.log")
	v.SetDefault("log.console", false)

	v.SetDefault("auth.max_attempts", 5)
	v.SetDefault("auth.lockout", 5*time.Minute)
	v.SetDefault("auth.rate", 1.0)
	v.SetDefault("auth.burst", 3)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.admins", []map[string]interface{}{
		{"username": "admin", "password": "Admin123"},
	})

	v.SetDefault("validation.require_special_char", false)

	v.SetDefault("audit.enabled", false)
	v.SetDefault("audit.path", "audit.log")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.channel", "hms.events")

	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "noreply@hospital.local")

	v.SetDefault("ops.enabled", false)
	v.SetDefault("ops.addr", ":9090")
}

// LoadConfig layers built-in defaults, an optional config.yaml, an optional .env
// file and finally HMS_* environment overrides. An explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/hms")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database.query_timeout must be positive")
	}
	if c.Auth.MaxAttempts <= 0 {
		return fmt.Errorf("auth.max_attempts must be positive")
	}
	if len(c.Auth.Admins) == 0 {
		return fmt.Errorf("at least one admin account is required")
	}
	if c.Redis.Enabled && c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required when redis is enabled")
	}
	if c.SMTP.Enabled && c.SMTP.Host == "" {
		return fmt.Errorf("smtp.host is required when smtp is enabled")
	}
	return nil
}
