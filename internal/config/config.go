package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the CLI
type Config struct {
	// Environment selects the logger flavour: "development" or "production"
	Environment string

	// LogLevel is one of debug, info, warn, error
	LogLevel string

	// MaxCondition is the largest accepted condition number of the
	// equilibrium matrix
	MaxCondition float64

	// Precision is the number of decimals printed for solved values
	Precision int
}

// Load reads configuration from the environment. Variables in envFile (if
// the file exists) are loaded first without overriding the process
// environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	maxCondition, err := getEnvFloat("GOSTATICS_MAX_CONDITION", 1e12)
	if err != nil {
		return nil, err
	}
	precision, err := getEnvInt("GOSTATICS_PRECISION", 3)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:  getEnv("GOSTATICS_ENV", "production"),
		LogLevel:     getEnv("GOSTATICS_LOG_LEVEL", "warn"),
		MaxCondition: maxCondition,
		Precision:    precision,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	switch c.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("GOSTATICS_ENV must be development or production, got %q", c.Environment)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("GOSTATICS_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.MaxCondition <= 1 {
		return fmt.Errorf("GOSTATICS_MAX_CONDITION must be greater than 1, got %g", c.MaxCondition)
	}
	if c.Precision < 0 || c.Precision > 12 {
		return fmt.Errorf("GOSTATICS_PRECISION must be between 0 and 12, got %d", c.Precision)
	}
	return nil
}

// IsDevelopment reports whether development logging is selected
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns defaultValue when key is unset; a value that does not
// parse is an error.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q: %w", key, value, err)
	}
	return i, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q: %w", key, value, err)
	}
	return f, nil
}
