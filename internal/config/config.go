// Package config loads the shared configuration of the Pi services.
//
// The configuration is a YAML file. A missing file is not an error: the
// built-in defaults are used so a freshly imaged Pi works without one. An
// optional environment file is read first and environment variables
// override selected fields.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default locations, overridable through the environment.
const (
	DefaultPath    = "/etc/piservices/config.yaml"
	DefaultEnvFile = "/etc/default/piservices"
)

// Environment variables consulted by FromEnvironment.
const (
	EnvConfig        = "PISERVICES_CONFIG"
	EnvEnvFile       = "PISERVICES_ENV_FILE"
	EnvGPIODriver    = "PISERVICES_GPIO_DRIVER"
	EnvLogFile       = "PISERVICES_LOG_FILE"
	EnvButtonPin     = "PISERVICES_BUTTON_PIN"
	EnvLEDPin        = "PISERVICES_LED_PIN"
	EnvWifiInterface = "PISERVICES_WIFI_INTERFACE"
)

// FromEnvironment loads the env file, resolves the config path and loads it.
// It returns the path that was used.
func FromEnvironment() (Config, string, error) {
	envFile := os.Getenv(EnvEnvFile)
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := LoadEnvFile(envFile); err != nil {
		return Config{}, "", err
	}
	path := os.Getenv(EnvConfig)
	if path == "" {
		path = DefaultPath
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// LoadEnvFile exports the KEY=value pairs of path into the process
// environment. Variables already set win. A missing file is ignored.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("unable to read env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from path on top of Default, applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults
	default:
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvGPIODriver); v != "" {
		cfg.GPIO.Driver = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv(EnvWifiInterface); v != "" {
		cfg.Wifi.Interface = v
	}
	if err := envInt(EnvButtonPin, &cfg.Button.Pin); err != nil {
		return err
	}
	return envInt(EnvLEDPin, &cfg.Indicator.Pin)
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", key, v)
	}
	*dst = n
	return nil
}

// Save writes cfg to path. The file is written to a temporary name first
// and renamed into place so a power cut never leaves half a config behind.
func Save(path string, cfg Config) error {
	bytes, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, bytes, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
