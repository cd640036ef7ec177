package agent

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/environment"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes. If
	// advisor is non-nil, the agent's behaviour policy follows its
	// advice whenever advice is given.
	CreateAgent(env environment.Environment, seed uint64,
		advisor Advisor) (Agent, error)

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Algorithm returns the algorithm of agents created by the Config
	Algorithm() Algorithm
}

// ConfigFunc constructs a Config from hyperparameters
type ConfigFunc func(epsilon, learningRate float64) Config

// Registered Config constructors. Each algorithm package registers its
// own constructor upon initialization to avoid circular imports.
var registered = make(map[Algorithm]ConfigFunc)

// Register registers the Config constructor of an Algorithm so that
// NewConfig can construct Configs of that Algorithm
func Register(alg Algorithm, f ConfigFunc) {
	if err := alg.Validate(); err != nil {
		panic(fmt.Sprintf("register: %v", err))
	}
	registered[alg] = f
}

// NewConfig returns a Config for alg with the given hyperparameters
func NewConfig(alg Algorithm, epsilon, learningRate float64) (Config, error) {
	if err := alg.Validate(); err != nil {
		return nil, fmt.Errorf("newConfig: %w", err)
	}

	f, ok := registered[alg]
	if !ok {
		return nil, fmt.Errorf("newConfig: algorithm %v not registered", alg)
	}
	return f(epsilon, learningRate), nil
}
