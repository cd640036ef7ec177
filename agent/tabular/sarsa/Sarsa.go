// Package sarsa implements the tabular Sarsa algorithm.
//
// Sarsa is on-policy: the update target bootstraps from the action the
// behaviour policy will actually take in the next state. To keep the
// two consistent, Step selects the next action when it performs the
// update, and the following call to SelectAction returns that action.
package sarsa

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/agent/tabular/policy"
	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/timestep"
)

// Sarsa implements the Sarsa algorithm
type Sarsa struct {
	behaviour    agent.Policy
	table        *tabular.QTable
	learningRate float64
	seed         uint64

	step       timestep.TimeStep
	action     int
	nextStep   timestep.TimeStep
	nextAction *mat.VecDense // Cached for the next call to SelectAction
	observed   bool
}

// New creates a new Sarsa agent. If advisor is non-nil, the behaviour
// policy takes advised actions whenever advice is offered.
func New(env environment.Environment, c Config, seed uint64,
	advisor agent.Advisor) (*Sarsa, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	table, err := tabular.NewQTableFor(env)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	var behaviour agent.Policy = policy.NewEGreedy(c.Epsilon, seed, table)
	if advisor != nil {
		behaviour = policy.NewAdvised(behaviour, advisor)
	}

	return &Sarsa{
		behaviour:    behaviour,
		table:        table,
		learningRate: c.LearningRate,
		seed:         seed,
	}, nil
}

// SelectAction returns the action chosen for t by the last update, or
// otherwise samples one from the behaviour policy
func (s *Sarsa) SelectAction(t timestep.TimeStep) *mat.VecDense {
	if s.nextAction != nil && !s.IsEval() && t.Number == s.nextStep.Number {
		a := s.nextAction
		s.nextAction = nil
		return a
	}
	return s.behaviour.SelectAction(t)
}

// ObserveFirst observes and records the first episodic timestep
func (s *Sarsa) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: timestep %d is not the first "+
			"in its episode", t.Number)
	}
	s.step = timestep.TimeStep{}
	s.nextStep = t
	s.nextAction = nil
	s.observed = false
	return nil
}

// Observe observes and records any timestep other than the first timestep
func (s *Sarsa) Observe(action mat.Vector, nextStep timestep.TimeStep) error {
	if action.Len() != 1 {
		return fmt.Errorf("observe: value-based methods cannot have "+
			"multi-dimensional actions (action dim = %d)", action.Len())
	}
	s.step = s.nextStep
	s.action = int(action.AtVec(0))
	s.nextStep = nextStep
	s.observed = true
	return nil
}

// Step updates the action values using the last observed transition
// and the next action of the behaviour policy
func (s *Sarsa) Step() error {
	if !s.observed {
		return fmt.Errorf("step: no transition observed")
	}

	target := s.nextStep.Reward
	if s.nextStep.EndType() != timestep.TerminalStateReached {
		s.nextAction = s.behaviour.SelectAction(s.nextStep)
		nextState := tabular.StateIndex(s.nextStep.Observation)
		nextValue := s.table.At(nextState, int(s.nextAction.AtVec(0)))
		target += s.nextStep.Discount * nextValue
	}

	state := tabular.StateIndex(s.step.Observation)
	currentEstimate := s.table.At(state, s.action)
	s.table.Set(state, s.action,
		currentEstimate+s.learningRate*(target-currentEstimate))
	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (s *Sarsa) EndEpisode() {
	s.nextAction = nil
}

// Eval sets the agent's policy to evaluation mode
func (s *Sarsa) Eval() {
	s.behaviour.Eval()
}

// Train sets the agent's policy to training mode
func (s *Sarsa) Train() {
	s.behaviour.Train()
}

// IsEval returns whether the agent's policy is in evaluation mode
func (s *Sarsa) IsEval() bool {
	return s.behaviour.IsEval()
}

// Table returns the action values learned by the agent
func (s *Sarsa) Table() *tabular.QTable {
	return s.table
}
