// Package config holds the tunables of the kmeans command.
//
// Values are resolved from, in increasing precedence: built-in defaults, a
// YAML file, and KMEANS_* environment variables. Command-line arguments are
// applied on top by the caller.
//
// Example file:
//
//	max_iter: 400
//	iteration_ceiling: 800
//	epsilon: 0.001
//	log_level: warn
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	// MaxIter is the iteration budget used when none is given on the command line.
	MaxIter int `yaml:"max_iter"`
	// IterationCeiling is the exclusive upper bound accepted for max_iter.
	IterationCeiling int `yaml:"iteration_ceiling"`
	// Epsilon is the convergence threshold on per-centroid movement.
	Epsilon float64 `yaml:"epsilon"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxIter:          400,
		IterationCeiling: 800,
		Epsilon:          0.001,
		LogLevel:         "warn",
	}
}

// LoadConfig reads a YAML file on top of the defaults.
// Keys missing from the file keep their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w:%w", ErrInvalid, err)
	}
	return cfg, nil
}

// ApplyEnv overrides c with any KMEANS_* variables that are set.
//
//	KMEANS_MAX_ITER           - default iteration budget
//	KMEANS_ITERATION_CEILING  - exclusive upper bound for max_iter
//	KMEANS_EPSILON            - convergence threshold
//	KMEANS_LOG_LEVEL          - debug, info, warn or error
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("KMEANS_MAX_ITER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: KMEANS_MAX_ITER:%w", ErrInvalid, err)
		}
		c.MaxIter = n
	}
	if v := os.Getenv("KMEANS_ITERATION_CEILING"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: KMEANS_ITERATION_CEILING:%w", ErrInvalid, err)
		}
		c.IterationCeiling = n
	}
	if v := os.Getenv("KMEANS_EPSILON"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: KMEANS_EPSILON:%w", ErrInvalid, err)
		}
		c.Epsilon = f
	}
	if v := os.Getenv("KMEANS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks the fields that cannot be rejected later by the clustering
// driver with a more specific error. max_iter itself is left to the driver.
func (c *Config) Validate() error {
	if c.IterationCeiling <= 2 {
		return fmt.Errorf("%w: iteration_ceiling must be greater than 2, got %d", ErrInvalid, c.IterationCeiling)
	}
	if !(c.Epsilon > 0) {
		return fmt.Errorf("%w: epsilon must be positive, got %v", ErrInvalid, c.Epsilon)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level:%w", ErrInvalid, err)
	}
	return level, nil
}
