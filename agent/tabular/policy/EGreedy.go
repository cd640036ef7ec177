// Package policy implements policies over tabular action values
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/timestep"
)

// EGreedy implements an ε-greedy policy over a QTable. In evaluation
// mode the policy is greedy.
type EGreedy struct {
	table   *tabular.QTable
	epsilon float64
	seed    rand.Source // Seed for random number generation
	eval    bool
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected. The policy reads
// its action values from table, so updates to table are reflected in
// the actions chosen.
func NewEGreedy(e float64, seed uint64, table *tabular.QTable) *EGreedy {
	if e < 0 || e > 1 {
		panic(fmt.Sprintf("newEGreedy: epsilon must be in [0, 1], got %v", e))
	}
	return &EGreedy{
		table:   table,
		epsilon: e,
		seed:    rand.NewSource(seed),
	}
}

// Probabilities returns the probability of selecting each action in
// state s
func (p *EGreedy) Probabilities(s int) []float64 {
	_, numActions := p.table.Dims()
	greedyAction := p.table.Greedy(s)

	e := p.epsilon
	if p.eval {
		e = 0
	}

	// Calculate the ε probability of choosing any action at random
	prob := e / float64(numActions)
	actionProbabilites := make([]float64, numActions)
	for i := 0; i < numActions; i++ {
		actionProbabilites[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilites[greedyAction] += (1.0 - e)
	return actionProbabilites
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	s := tabular.StateIndex(t.Observation)

	// Construct a categorical distribution over actions using action
	// probabilities and sample an action
	dist := distuv.NewCategorical(p.Probabilities(s), p.seed)
	return mat.NewVecDense(1, []float64{dist.Rand()})
}

// Epsilon returns the exploration probability in training mode
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// Eval sets the policy to evaluation mode
func (p *EGreedy) Eval() {
	p.eval = true
}

// Train sets the policy to training mode
func (p *EGreedy) Train() {
	p.eval = false
}

// IsEval returns whether the policy is in evaluation mode
func (p *EGreedy) IsEval() bool {
	return p.eval
}
