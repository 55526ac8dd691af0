package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"gridshell/internal/logger"
)

// Configuration keys understood by gridshell. Values resolve with the
// precedence: explicit Set (CLI flags) > environment (GRIDSHELL_*) >
// config file > defaults.
const (
	ConfigKeyPrompt         = "prompt"
	ConfigKeyWorksheet      = "worksheet"
	ConfigKeyRenderMarkdown = "render-markdown"
)

// ConfigurationService loads gridshell settings from a YAML config file,
// .env files, and GRIDSHELL_-prefixed environment variables via viper.
type ConfigurationService struct {
	initialized bool
	v           *viper.Viper
}

// NewConfigurationService creates a new ConfigurationService instance.
func NewConfigurationService() *ConfigurationService {
	return &ConfigurationService{v: viper.GetViper()}
}

// Name returns the service name "configuration" for registration.
func (c *ConfigurationService) Name() string {
	return "configuration"
}

// Initialize loads configuration sources in priority order: defaults, the
// optional config file, .env files, then live environment variables.
func (c *ConfigurationService) Initialize() error {
	if c.initialized {
		return nil
	}

	c.v.SetDefault(ConfigKeyPrompt, "grid> ")
	c.v.SetDefault(ConfigKeyWorksheet, "Sheet1")
	c.v.SetDefault(ConfigKeyRenderMarkdown, true)

	c.loadDotEnv()

	c.v.SetEnvPrefix("GRIDSHELL")
	c.v.AutomaticEnv()

	c.v.SetConfigName("gridshell")
	c.v.SetConfigType("yaml")
	if configDir, err := os.UserConfigDir(); err == nil {
		c.v.AddConfigPath(filepath.Join(configDir, "gridshell"))
	}
	c.v.AddConfigPath(".")
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		logger.Debug("Loaded config file", "path", c.v.ConfigFileUsed())
	}

	c.initialized = true
	return nil
}

// loadDotEnv loads a local .env file when one exists. Missing files are
// fine; malformed ones only warn.
func (c *ConfigurationService) loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("Failed to load .env file", "error", err)
		return
	}
	logger.Debug("Loaded .env file")
}

// GetString returns a configuration value by key.
func (c *ConfigurationService) GetString(key string) string {
	return c.v.GetString(key)
}

// GetBool returns a boolean configuration value by key.
func (c *ConfigurationService) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// Set overrides a configuration value, taking precedence over every other
// source. Used to apply CLI flags.
func (c *ConfigurationService) Set(key string, value any) {
	c.v.Set(key, value)
}
