package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when the loaded settings fail validation
var ErrInvalidConfig = errors.New("invalid config")

// Config 应用配置
type Config struct {
	Bind          string   `mapstructure:"bind"`
	Port          int      `mapstructure:"port"`
	APIValidation bool     `mapstructure:"api_validation"` // Require the api-key header
	APIKey        string   `mapstructure:"api_key"`
	Log           Log      `mapstructure:"log"`
	Database      Database `mapstructure:"database"`
}

// Log configures the zap logger
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// Database selects and configures the storage backend
type Database struct {
	Driver       string `mapstructure:"driver"` // sqlite, mysql or postgres
	Path         string `mapstructure:"path"`   // sqlite only
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Bind         string `mapstructure:"bind"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	AutoSchema   bool   `mapstructure:"auto_schema"`
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bind", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("api_validation", false)
	v.SetDefault("api_key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/transect.db")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.bind", "127.0.0.1")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.name", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.auto_schema", true)
}

// Load 加载配置
//
// Sources, lowest precedence first: defaults, config file, .env, TRANSECT_*
// environment variables. An explicit path must exist; otherwise
// config/config.{yaml,toml,json} is optional.
func Load(path string) (*Config, error) {
	// .env is optional, real environment wins over it
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TRANSECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that would otherwise fail late at runtime
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.APIValidation && c.APIKey == "" {
		return fmt.Errorf("%w: api_validation requires api_key", ErrInvalidConfig)
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfig)
		}
	case "mysql", "postgres":
		if c.Database.User == "" || c.Database.Bind == "" || c.Database.Name == "" {
			return fmt.Errorf("%w: database.user, database.bind and database.name are required for %s",
				ErrInvalidConfig, c.Database.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	return nil
}
