package policy

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/timestep"
)

// Advised wraps a behaviour policy and takes the action suggested by an
// agent.Advisor whenever advice is offered. Advice is ignored in
// evaluation mode.
type Advised struct {
	agent.Policy
	advisor agent.Advisor
	advised int
}

// NewAdvised returns a new Advised policy
func NewAdvised(behaviour agent.Policy, advisor agent.Advisor) *Advised {
	return &Advised{Policy: behaviour, advisor: advisor}
}

// SelectAction selects the advised action if advice is given, and
// otherwise defers to the behaviour policy
func (p *Advised) SelectAction(t timestep.TimeStep) *mat.VecDense {
	if !p.IsEval() {
		if a, ok := p.advisor.Advise(tabular.StateIndex(t.Observation)); ok {
			p.advised++
			return tabular.ActionVec(a)
		}
	}
	return p.Policy.SelectAction(t)
}

// Advised returns the number of actions taken on advice
func (p *Advised) Advised() int {
	return p.advised
}
