package config

import (
	"fmt"
	"os"

	"holdings-observer/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// applyDefaults fills in the momentum policy knobs left unset in the file.
// The 3-position trend band and 20-day window are policy choices, not derived
// values; they live here rather than as constants in the analyzer.
func (c *Config) applyDefaults() {
	if c.Momentum.LookbackDays == 0 {
		c.Momentum.LookbackDays = 20
	}
	if c.Momentum.MinSamples == 0 {
		c.Momentum.MinSamples = 10
	}
	if c.Momentum.TrendBand == 0 {
		c.Momentum.TrendBand = 3
	}
	if c.Momentum.TopLimit == 0 {
		c.Momentum.TopLimit = 20
	}
	if c.Data.CalendarMIC == "" {
		c.Data.CalendarMIC = "xist"
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Storage configuration
	if c.Storage.Enabled && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty when storage is enabled")
	}

	// Validate Data configuration
	if c.Data.SettlementDir == "" {
		return fmt.Errorf("settlement data directory cannot be empty")
	}
	if c.Data.AccumulatedDir == "" {
		return fmt.Errorf("accumulated data directory cannot be empty")
	}

	// Validate Momentum policy
	if c.Momentum.LookbackDays < 2 {
		return fmt.Errorf("momentum lookback must cover at least 2 days")
	}
	if c.Momentum.MinSamples < 2 {
		return fmt.Errorf("momentum min samples must be at least 2")
	}
	if c.Momentum.TrendBand < 1 {
		return fmt.Errorf("momentum trend band must be at least 1")
	}

	return nil
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
