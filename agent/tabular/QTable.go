// Package tabular implements the action-value table shared by tabular
// agents and their policies.
//
// States are identified by one-hot observation vectors, as produced by
// gridworld.Env. The index of the single non-zero entry of an
// observation is its state index.
package tabular

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/utils/matutils"
)

// QTable stores one action value per (state, action) pair. Rows are
// states and columns are actions.
type QTable struct {
	values *mat.Dense
}

// NewQTable returns a zero-initialized QTable
func NewQTable(states, actions int) *QTable {
	if states <= 0 || actions <= 0 {
		panic(fmt.Sprintf("newQTable: dimensions must be positive, got "+
			"(%d, %d)", states, actions))
	}
	return &QTable{mat.NewDense(states, actions, nil)}
}

// NewQTableFor returns a zero-initialized QTable sized for env, which
// must have 1-dimensional discrete actions
func NewQTableFor(env environment.Environment) (*QTable, error) {
	actionSpec := env.ActionSpec()
	if actionSpec.Shape.Len() != 1 {
		return nil, fmt.Errorf("newQTableFor: actions must be " +
			"1-dimensional")
	}
	if actionSpec.Cardinality != environment.Discrete {
		return nil, fmt.Errorf("newQTableFor: actions must be discrete")
	}

	actions := int(actionSpec.UpperBound.AtVec(0)) + 1
	states := env.ObservationSpec().Shape.Len()
	return NewQTable(states, actions), nil
}

// Dims returns the number of states and actions
func (q *QTable) Dims() (states, actions int) {
	return q.values.Dims()
}

// At returns the value of action a in state s
func (q *QTable) At(s, a int) float64 {
	return q.values.At(s, a)
}

// Set sets the value of action a in state s
func (q *QTable) Set(s, a int, v float64) {
	q.values.Set(s, a, v)
}

// Values returns the action values of state s. The returned vector
// shares storage with the table.
func (q *QTable) Values(s int) mat.Vector {
	return q.values.RowView(s)
}

// Greedy returns the action with the highest value in state s,
// breaking ties in favour of the lowest action
func (q *QTable) Greedy(s int) int {
	return matutils.MaxVec(q.Values(s))
}

// Max returns the highest action value in state s
func (q *QTable) Max(s int) float64 {
	return mat.Max(q.Values(s))
}

// Matrix returns the underlying states × actions matrix
func (q *QTable) Matrix() *mat.Dense {
	return q.values
}

func (q *QTable) String() string {
	return matutils.Format(q.values)
}

// StateIndex returns the state index of a one-hot observation
func StateIndex(obs mat.Vector) int {
	return matutils.MaxVec(obs)
}

// ActionVec returns the 1-dimensional action vector of action a
func ActionVec(a int) *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(a)})
}

// GobEncode implements gob.GobEncoder
func (q *QTable) GobEncode() ([]byte, error) {
	return q.values.MarshalBinary()
}

// GobDecode implements gob.GobDecoder
func (q *QTable) GobDecode(b []byte) error {
	values := &mat.Dense{}
	if err := values.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}
	q.values = values
	return nil
}
