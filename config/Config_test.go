package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gridlearn/agent"
)

// noEnvFile is an env file that does not exist
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c, err := Load("", noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	assert.Equal(t, agent.QLearning, c.Algorithm)
	assert.Equal(t, uint64(1), c.Seed)
	assert.Equal(t, 500, c.Episodes)
	assert.Equal(t, 200, c.Cutoff)
	assert.Equal(t, 0.99, c.Discount)
	assert.Equal(t, 5, c.Runs)
	assert.Equal(t, []float64{0.2, 0.5, 0.8}, c.Availabilities)
	assert.Equal(t, []float64{0.2, 0.5, 0.8, 1.0}, c.Accuracies)
	assert.Equal(t, 100*time.Millisecond, c.Delay())
	assert.Equal(t, logrus.InfoLevel, c.Level())
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"Algorithm": "SARSA",
		"Episodes": 50,
		"Accuracies": [1.0]
	}`)

	c, err := Load(path, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, agent.SARSA, c.Algorithm)
	assert.Equal(t, 50, c.Episodes)
	assert.Equal(t, []float64{1.0}, c.Accuracies)

	// Unset fields keep their defaults
	assert.Equal(t, 200, c.Cutoff)
	assert.Equal(t, []float64{0.2, 0.5, 0.8}, c.Availabilities)
}

func TestLoadJSONErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), noEnvFile(t))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.json", "{"), noEnvFile(t))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "alg.json", `{"Algorithm": "DQN"}`),
		noEnvFile(t))
	assert.True(t, errors.Is(err, agent.ErrUnknownAlgorithm))
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, "config.json", `{"Episodes": 50, "Runs": 2}`)
	t.Setenv("GRIDLEARN_EPISODES", "75")
	t.Setenv("GRIDLEARN_ALGORITHM", "SARSA")
	t.Setenv("GRIDLEARN_AVAILABILITIES", "0.1, 0.9")
	t.Setenv("GRIDLEARN_RENDER_DELAY", "0")
	t.Setenv("GRIDLEARN_LOG_LEVEL", "debug")
	t.Setenv("GRIDLEARN_SEED", "")

	c, err := Load(path, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, 75, c.Episodes)
	assert.Equal(t, 2, c.Runs)
	assert.Equal(t, agent.SARSA, c.Algorithm)
	assert.Equal(t, []float64{0.1, 0.9}, c.Availabilities)
	assert.Equal(t, time.Duration(0), c.Delay())
	assert.Equal(t, logrus.DebugLevel, c.Level())
	assert.Equal(t, uint64(1), c.Seed)
}

func TestLoadEnvFile(t *testing.T) {
	envFile := writeFile(t, "test.env", "GRIDLEARN_CUTOFF=42\n"+
		"GRIDLEARN_OUTPUT_DIR=out\n")
	t.Cleanup(func() {
		os.Unsetenv("GRIDLEARN_CUTOFF")
		os.Unsetenv("GRIDLEARN_OUTPUT_DIR")
	})

	// Variables already in the environment take precedence
	t.Setenv("GRIDLEARN_OUTPUT_DIR", "elsewhere")

	c, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, 42, c.Cutoff)
	assert.Equal(t, "elsewhere", c.OutputDir)
}

func TestLoadEnvErrors(t *testing.T) {
	tests := map[string]string{
		"GRIDLEARN_SEED":          "-1",
		"GRIDLEARN_RUNS":          "two",
		"GRIDLEARN_EPSILON":       "high",
		"GRIDLEARN_ACCURACIES":    "0.5,x",
		"GRIDLEARN_ALGORITHM":     "q-learning",
		"GRIDLEARN_LEARNING_RATE": "-0.1",
		"GRIDLEARN_LOG_LEVEL":     "loud",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load("", noEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"algorithm", func(c *Config) { c.Algorithm = 3 }},
		{"episodes", func(c *Config) { c.Episodes = 0 }},
		{"cutoff", func(c *Config) { c.Cutoff = -1 }},
		{"discount", func(c *Config) { c.Discount = 1.1 }},
		{"epsilon", func(c *Config) { c.Epsilon = -0.1 }},
		{"learning rate", func(c *Config) { c.LearningRate = 0 }},
		{"runs", func(c *Config) { c.Runs = 0 }},
		{"availability", func(c *Config) { c.Availabilities = []float64{2} }},
		{"accuracy", func(c *Config) { c.Accuracies = []float64{-1} }},
		{"delay", func(c *Config) { c.RenderDelay = -1 }},
		{"log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	assert.NoError(t, Default().Validate())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := Default()
			test.modify(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := Default()
	c.Algorithm = agent.SARSA
	c.Accuracies = []float64{0.25, 0.75}

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, c.Save(path))

	loaded, err := Load(path, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestSweepConfig(t *testing.T) {
	c := Default()
	s := c.SweepConfig()

	assert.Equal(t, c.Algorithm, s.Algorithm)
	assert.Equal(t, c.Runs, s.Runs)
	assert.Equal(t, c.Accuracies, s.Accuracies)
	assert.NoError(t, s.Validate())
}
