// Package config provides the configuration of gridlearn experiments.
// Configurations are JSON serializable. Values are layered: defaults
// first, then an optional JSON file, then GRIDLEARN_* environment
// variables, which may also be set in a .env file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/experiment"
)

// EnvPrefix prefixes the names of environment variables which override
// configuration values
const EnvPrefix = "GRIDLEARN_"

// DefaultEnvFile is the .env file loaded when no other is given
const DefaultEnvFile = ".env"

// Config configures the training, sweeping, rendering, and plotting of
// tabular agents in the GridWorld
type Config struct {
	Algorithm    agent.Algorithm
	Seed         uint64
	Episodes     int
	Cutoff       int
	Discount     float64
	Epsilon      float64
	LearningRate float64

	// Sweep settings
	Runs           int
	Availabilities []float64
	Accuracies     []float64

	// AssetDir holds the sprites used for rendering
	AssetDir string

	// RenderDelay is the pause after each rendered frame in seconds
	RenderDelay float64

	LogLevel  string
	OutputDir string
}

// Default returns the default Config
func Default() Config {
	return Config{
		Algorithm:      agent.QLearning,
		Seed:           1,
		Episodes:       500,
		Cutoff:         200,
		Discount:       0.99,
		Epsilon:        0.1,
		LearningRate:   0.1,
		Runs:           5,
		Availabilities: []float64{0.2, 0.5, 0.8},
		Accuracies:     []float64{0.2, 0.5, 0.8, 1.0},
		AssetDir:       "images",
		RenderDelay:    0.1,
		LogLevel:       "info",
		OutputDir:      "results",
	}
}

// Load returns the default Config overridden by the JSON file at path,
// if path is non-empty, and then by environment variables. Environment
// variables are first loaded from envFiles, or from DefaultEnvFile if
// none are given. Missing env files are ignored. Variables already set
// in the environment take precedence over those in env files.
func Load(path string, envFiles ...string) (Config, error) {
	c := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load: %w", err)
		}
		if err := json.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("load: could not parse %v: %w",
				path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, file := range envFiles {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load: %w", err)
		}
	}

	if err := c.fromEnv(); err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}
	return c, nil
}

// fromEnv overrides values with the environment variables that are set
func (c *Config) fromEnv() error {
	if v, ok := lookup("ALGORITHM"); ok {
		if err := c.Algorithm.UnmarshalText([]byte(v)); err != nil {
			return err
		}
	}

	var err error
	if v, ok := lookup("SEED"); ok {
		if c.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return envError("SEED", err)
		}
	}

	ints := map[string]*int{
		"EPISODES": &c.Episodes,
		"CUTOFF":   &c.Cutoff,
		"RUNS":     &c.Runs,
	}
	for key, field := range ints {
		if v, ok := lookup(key); ok {
			if *field, err = strconv.Atoi(v); err != nil {
				return envError(key, err)
			}
		}
	}

	floats := map[string]*float64{
		"DISCOUNT":      &c.Discount,
		"EPSILON":       &c.Epsilon,
		"LEARNING_RATE": &c.LearningRate,
		"RENDER_DELAY":  &c.RenderDelay,
	}
	for key, field := range floats {
		if v, ok := lookup(key); ok {
			if *field, err = strconv.ParseFloat(v, 64); err != nil {
				return envError(key, err)
			}
		}
	}

	lists := map[string]*[]float64{
		"AVAILABILITIES": &c.Availabilities,
		"ACCURACIES":     &c.Accuracies,
	}
	for key, field := range lists {
		if v, ok := lookup(key); ok {
			if *field, err = parseList(v); err != nil {
				return envError(key, err)
			}
		}
	}

	strs := map[string]*string{
		"ASSET_DIR":  &c.AssetDir,
		"LOG_LEVEL":  &c.LogLevel,
		"OUTPUT_DIR": &c.OutputDir,
	}
	for key, field := range strs {
		if v, ok := lookup(key); ok {
			*field = v
		}
	}
	return nil
}

// lookup returns the non-empty value of the environment variable
// EnvPrefix + key
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func envError(key string, err error) error {
	return fmt.Errorf("invalid %v%v: %w", EnvPrefix, key, err)
}

// parseList parses a comma-separated list of floats
func parseList(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	list := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		list[i] = v
	}
	return list, nil
}

// Validate returns an error if the Config is invalid
func (c Config) Validate() error {
	if err := c.Algorithm.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("validate: episodes must be positive, got %d",
			c.Episodes)
	}
	if c.Cutoff < 0 {
		return fmt.Errorf("validate: cutoff must be non-negative, got %d",
			c.Cutoff)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon must be in [0, 1], got %v",
			c.Epsilon)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("validate: learning rate must be positive, got %v",
			c.LearningRate)
	}
	if c.Runs <= 0 {
		return fmt.Errorf("validate: runs must be positive, got %d", c.Runs)
	}
	for _, p := range append(append([]float64{}, c.Availabilities...),
		c.Accuracies...) {
		if p < 0 || p > 1 {
			return fmt.Errorf("validate: probability %v not in [0, 1]", p)
		}
	}
	if c.RenderDelay < 0 {
		return fmt.Errorf("validate: render delay must be non-negative, "+
			"got %v", c.RenderDelay)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// Delay returns the render delay as a Duration
func (c Config) Delay() time.Duration {
	return time.Duration(c.RenderDelay * float64(time.Second))
}

// Level returns the configured logging level
func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// SweepConfig returns the configuration of a sweep on the default
// GridWorld layout
func (c Config) SweepConfig() experiment.SweepConfig {
	return experiment.SweepConfig{
		Algorithm:      c.Algorithm,
		Epsilon:        c.Epsilon,
		LearningRate:   c.LearningRate,
		Episodes:       c.Episodes,
		Cutoff:         c.Cutoff,
		Discount:       c.Discount,
		Runs:           c.Runs,
		Seed:           c.Seed,
		Availabilities: c.Availabilities,
		Accuracies:     c.Accuracies,
	}
}

// Save writes the Config to path as indented JSON
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
