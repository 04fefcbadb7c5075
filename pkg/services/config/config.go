package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// OdooConfig carries the connection settings for the backend.
type OdooConfig struct {
	URL      string `mapstructure:"url" validate:"required,url"`
	Database string `mapstructure:"database" validate:"required"`
	Username string `mapstructure:"username" validate:"required"`
	APIKey   string `mapstructure:"api_key" validate:"required"`
}

// ServerConfig carries the HTTP surface settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"gte=0,lte=65535"`
}

type Config struct {
	Odoo   OdooConfig   `mapstructure:"odoo"`
	Server ServerConfig `mapstructure:"server"`
}

// Load reads the config file at path and validates the result. Environment
// variables prefixed with ODOO_INSIGHT override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ODOO_INSIGHT")
	v.AutomaticEnv()

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
