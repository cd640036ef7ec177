package sarsa

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/environment"
)

func init() {
	agent.Register(agent.SARSA, func(e, lr float64) agent.Config {
		return Config{Epsilon: e, LearningRate: lr}
	})
}

// Config represents a configuration for the Sarsa agent
type Config struct {
	Epsilon      float64
	LearningRate float64
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(env environment.Environment, seed uint64,
	advisor agent.Advisor) (agent.Agent, error) {
	s, err := New(env, c, seed, advisor)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon must be in [0, 1], got %v",
			c.Epsilon)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("validate: learning rate must be positive, got %v",
			c.LearningRate)
	}
	return nil
}

// Algorithm returns the algorithm of the agent constructed by the Config
func (c Config) Algorithm() agent.Algorithm {
	return agent.SARSA
}
