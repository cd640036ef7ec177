package qlearning

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/timestep"
)

// QLearner implements the update functionality for the Q-Learning
// algorithm.
type QLearner struct {
	table        *tabular.QTable
	step         timestep.TimeStep
	action       int
	nextStep     timestep.TimeStep
	learningRate float64
	observed     bool
}

// NewQLearner creates a new QLearner which updates table
func NewQLearner(table *tabular.QTable, learningRate float64) *QLearner {
	return &QLearner{table: table, learningRate: learningRate}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: timestep %d is not the first "+
			"in its episode", t.Number)
	}
	q.step = timestep.TimeStep{}
	q.nextStep = t
	q.observed = false
	return nil
}

// Observe observes and records any timestep other than the first timestep
func (q *QLearner) Observe(action mat.Vector, nextStep timestep.TimeStep) error {
	if action.Len() != 1 {
		return fmt.Errorf("observe: value-based methods cannot have "+
			"multi-dimensional actions (action dim = %d)", action.Len())
	}
	q.step = q.nextStep
	q.action = int(action.AtVec(0))
	q.nextStep = nextStep
	q.observed = true
	return nil
}

// Step updates the action values of the Agent's Learner and Policy
func (q *QLearner) Step() error {
	if !q.observed {
		return fmt.Errorf("step: no transition observed")
	}
	state := tabular.StateIndex(q.step.Observation)
	currentEstimate := q.table.At(state, q.action)
	q.table.Set(state, q.action,
		currentEstimate+q.learningRate*(q.target()-currentEstimate))
	return nil
}

// target returns the update target of the last observed transition.
// Terminal states are not bootstrapped from.
func (q *QLearner) target() float64 {
	target := q.nextStep.Reward
	if q.nextStep.EndType() != timestep.TerminalStateReached {
		nextState := tabular.StateIndex(q.nextStep.Observation)
		target += q.nextStep.Discount * q.table.Max(nextState)
	}
	return target
}

// EndEpisode performs cleanup at the end of an episode
func (q *QLearner) EndEpisode() {}

// TdError returns the TD error of the last observed transition
func (q *QLearner) TdError() float64 {
	state := tabular.StateIndex(q.step.Observation)
	return q.target() - q.table.At(state, q.action)
}
