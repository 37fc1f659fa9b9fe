package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the mktverify configuration
type Config struct {
	DataDir      string       `yaml:"data_dir"` // Directory for the run-history store
	Port         int          `yaml:"port"`
	Bind         string       `yaml:"bind"`
	Verification Verification `yaml:"verification"`
}

// Verification contains verifier tuning knobs
type Verification struct {
	Tolerance          float64 `yaml:"tolerance"`             // Absolute tolerance for expected-sum comparison
	MaxSeqErrorDetails int     `yaml:"max_seq_error_details"` // Violations reported individually
	HeadSamples        int     `yaml:"head_samples"`          // Leading records retained for display
	TailSamples        int     `yaml:"tail_samples"`          // Trailing records retained for display
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Verification: Verification{
			Tolerance:          1e-9,
			MaxSeqErrorDetails: 5,
			HeadSamples:        5,
			TailSamples:        3,
		},
	}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides configuration fields from environment variables.
// Variables: MKTVERIFY_DATA_DIR, MKTVERIFY_PORT, MKTVERIFY_BIND,
// MKTVERIFY_TOLERANCE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("MKTVERIFY_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("MKTVERIFY_BIND"); v != "" {
		c.Bind = v
	}

	var err error
	c.Port, err = getEnvAsInt("MKTVERIFY_PORT", c.Port)
	if err != nil {
		return err
	}
	c.Verification.Tolerance, err = getEnvAsFloat("MKTVERIFY_TOLERANCE", c.Verification.Tolerance)
	if err != nil {
		return err
	}

	return nil
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected an integer, got '%s'", key, valueStr)
	}

	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected a number, got '%s'", key, valueStr)
	}

	return value, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./mktverify.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "mktverify")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
