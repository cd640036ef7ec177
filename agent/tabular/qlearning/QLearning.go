// Package qlearning implements the tabular Q-Learning algorithm.
//
// Q-Learning is off-policy: it follows an ε-greedy behaviour policy
// while learning the action values of the greedy target policy.
package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/agent/tabular/policy"
	"github.com/samuelfneumann/gridlearn/environment"
)

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	*QLearner
	agent.Policy
	table *tabular.QTable
	seed  uint64
}

// New creates a new QLearning agent. If advisor is non-nil, the
// behaviour policy takes advised actions whenever advice is offered.
func New(env environment.Environment, c Config, seed uint64,
	advisor agent.Advisor) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	table, err := tabular.NewQTableFor(env)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	// Create algorithm components using previous specifications
	var behaviour agent.Policy = policy.NewEGreedy(c.Epsilon, seed, table)
	if advisor != nil {
		behaviour = policy.NewAdvised(behaviour, advisor)
	}
	learner := NewQLearner(table, c.LearningRate)

	return &QLearning{learner, behaviour, table, seed}, nil
}

// Table returns the action values learned by the agent
func (q *QLearning) Table() *tabular.QTable {
	return q.table
}
