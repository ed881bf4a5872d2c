package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Log          LogConfig          `mapstructure:"log"`
	Access       AccessConfig       `mapstructure:"access"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Confirmation ConfirmationConfig `mapstructure:"confirmation"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Security     SecurityConfig     `mapstructure:"security"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

// Timeout returns the server read/write timeout.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite3".
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

// AccessConfig carries the bcrypt hashes of the shared secrets. Each field may
// be overridden from HIMS_ACCESS_* environment variables.
type AccessConfig struct {
	AppPasswordHash string        `mapstructure:"app_password_hash" envconfig:"APP_PASSWORD_HASH"`
	EditModeHash    string        `mapstructure:"edit_mode_hash" envconfig:"EDIT_MODE_HASH"`
	ClinicalHash    string        `mapstructure:"clinical_hash" envconfig:"CLINICAL_HASH"`
	JWTSecret       string        `mapstructure:"jwt_secret" envconfig:"JWT_SECRET"`
	SessionTTL      time.Duration `mapstructure:"session_ttl" envconfig:"SESSION_TTL"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type ConfirmationConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Channel string `mapstructure:"channel"`
}

type SecurityConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeoutSeconds", 30)
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "file:hims.db?_foreign_keys=on")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", false)
	v.SetDefault("access.session_ttl", 12*time.Hour)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("confirmation.ttl", 5*time.Minute)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.channel", "hims.records")
	v.SetDefault("security.allowed_origins", []string{"*"})

	// Keys without defaults still need registering for AutomaticEnv to see them.
	for _, key := range []string{
		"access.app_password_hash",
		"access.edit_mode_hash",
		"access.clinical_hash",
		"access.jwt_secret",
	} {
		v.SetDefault(key, "")
	}
}

// LoadConfig reads config.yaml from path (or ".", "./config" when path is
// empty), then applies HIMS_ environment overrides.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("HIMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("hims_access", &config.Access); err != nil {
		return nil, fmt.Errorf("failed to process access environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate reports the first setting that would prevent the server starting.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Access.AppPasswordHash == "" {
		return errors.New("access.app_password_hash is required")
	}
	if c.Access.EditModeHash == "" {
		return errors.New("access.edit_mode_hash is required")
	}
	if c.Access.ClinicalHash == "" {
		return errors.New("access.clinical_hash is required")
	}
	if c.Access.JWTSecret == "" {
		return errors.New("access.jwt_secret is required")
	}
	if c.Access.SessionTTL <= 0 {
		return errors.New("access.session_ttl must be positive")
	}
	if c.Confirmation.TTL <= 0 {
		return errors.New("confirmation.ttl must be positive")
	}
	return nil
}
