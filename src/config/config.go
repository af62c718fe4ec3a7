package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"k-stock-insight/src/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables taking precedence over the YAML file.
const (
	EnvAPIBaseURL = "API_BASE_URL"
	EnvMode       = "K_STOCK_MODE"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config from a YAML file, then applies the .env file
// and environment overrides.
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	modelConfig := defaultModelConfig()
	if err := yaml.Unmarshal(data, modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	return finish(modelConfig)
}

// -----------------------------------------------------------------------------

// Default returns the built-in configuration with environment overrides
// applied. Used when no config file is given.
func Default() (*Config, error) {
	return finish(defaultModelConfig())
}

// -----------------------------------------------------------------------------

func finish(modelConfig *models.MConfig) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{MConfig: modelConfig}
	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func defaultModelConfig() *models.MConfig {
	return &models.MConfig{
		Name:     "k-stock-insight",
		Mode:     string(Development),
		Host:     "127.0.0.1",
		Port:     5174,
		LogLevel: "INFO",
		GrpcHost: "127.0.0.1",
		GrpcPort: 50051,
		Storage: models.MStorageConfig{
			DBType:        "sqlite",
			DBPath:        "k_stock_insight.db",
			RetentionDays: 30,
		},
		Network: models.MNetworkConfig{
			RequestTimeout: int(Environments[Development].Timeout / time.Second),
			UserAgent:      "k-stock-insight/1.0",
		},
		Refresh: models.MRefreshConfig{
			IntervalSeconds: 300,
			MarketHoursOnly: true,
			Market:          "xkrx",
		},
	}
}

// -----------------------------------------------------------------------------

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv(EnvMode); v != "" {
		c.Mode = v
	}
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	c.Mode = string(ParseMode(c.Mode))
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = int(Environments[c.ModeValue()].Timeout / time.Second)
	}
	if c.Refresh.Market == "" {
		c.Refresh.Market = "xkrx"
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort < 0 || c.GrpcPort > 65535 {
		return fmt.Errorf("invalid grpc port number: %d", c.GrpcPort)
	}

	// Validate Storage configuration
	if c.Storage.Enabled {
		switch c.Storage.DBType {
		case "sqlite":
			if c.Storage.DBPath == "" {
				return fmt.Errorf("database path cannot be empty for sqlite")
			}
		case "postgres":
			if c.Storage.DBConnectionString == "" {
				return fmt.Errorf("database connection string cannot be empty for postgres")
			}
		default:
			return fmt.Errorf("unsupported database type: %q", c.Storage.DBType)
		}
		if c.Storage.RetentionDays <= 0 {
			return fmt.Errorf("retention days must be greater than 0")
		}
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}

	// Validate Refresh configuration
	if c.Refresh.Enabled && c.Refresh.IntervalSeconds <= 0 {
		return fmt.Errorf("refresh interval must be greater than 0")
	}

	return nil
}

// -----------------------------------------------------------------------------

// ModeValue returns the parsed build mode.
func (c *Config) ModeValue() Mode {
	return ParseMode(c.Mode)
}

// BaseURL resolves the backend address once for the configured mode.
func (c *Config) BaseURL() string {
	return ResolveBaseURL(c.ModeValue(), c.APIBaseURL)
}

// Timeout is the client-wide request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Network.RequestTimeout) * time.Second
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
