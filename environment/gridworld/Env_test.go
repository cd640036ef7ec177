package gridworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/gridlearn/environment"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

var _ env.Environment = &Env{}

func action(a Action) *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(a)})
}

func TestEnvReset(t *testing.T) {
	g := newTestGridWorld(t, WithSeed(1))
	e := NewEnv(g, 0.9, 0)

	step, err := e.Reset()
	require.NoError(t, err)

	assert.True(t, step.First())
	assert.Equal(t, 0, step.Number)
	assert.Equal(t, 0.9, step.Discount)
	assert.Equal(t, 100, step.Observation.Len())
	assert.Equal(t, 1.0, mat.Sum(step.Observation))
	assert.Equal(t, 1.0, step.Observation.AtVec(e.StateIndex(g.Position())))
}

func TestEnvReachesGoal(t *testing.T) {
	g := newTestGridWorld(t, WithSeed(1))
	e := NewEnv(g, 1.0, 0)
	_, err := e.Reset()
	require.NoError(t, err)
	require.NoError(t, g.Place(Position{8, 9}))

	step, last, err := e.Step(action(Down))
	require.NoError(t, err)

	assert.True(t, last)
	assert.True(t, step.Last())
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
	assert.Equal(t, 20.0, step.Reward)
	assert.Equal(t, 1, step.Number)
	assert.Equal(t, 1.0, step.Observation.AtVec(99))
	assert.Equal(t, step, e.CurrentTimeStep())
}

func TestEnvCutoff(t *testing.T) {
	g := newTestGridWorld(t, WithSeed(1))
	e := NewEnv(g, 1.0, 3)
	_, err := e.Reset()
	require.NoError(t, err)
	require.NoError(t, g.Place(Position{0, 0}))

	for i := 1; i <= 3; i++ {
		step, last, err := e.Step(action(Up))
		require.NoError(t, err)
		assert.Equal(t, i, step.Number)
		assert.Equal(t, -1.0, step.Reward)

		if i < 3 {
			assert.False(t, last)
			assert.Equal(t, ts.Unset, step.EndType())
		} else {
			assert.True(t, last)
			assert.Equal(t, ts.Timeout, step.EndType())
		}
	}
}

func TestEnvRejectsMultiDimensionalActions(t *testing.T) {
	g := newTestGridWorld(t, WithSeed(1))
	e := NewEnv(g, 1.0, 0)
	_, err := e.Reset()
	require.NoError(t, err)

	_, _, err = e.Step(mat.NewVecDense(2, nil))
	assert.Error(t, err)
}

func TestEnvSpecs(t *testing.T) {
	g := newTestGridWorld(t, WithSeed(1))
	e := NewEnv(g, 0.5, 0)

	actionSpec := e.ActionSpec()
	assert.Equal(t, env.Discrete, actionSpec.Cardinality)
	assert.Equal(t, 0.0, actionSpec.LowerBound.AtVec(0))
	assert.Equal(t, 3.0, actionSpec.UpperBound.AtVec(0))

	assert.Equal(t, 100, e.ObservationSpec().Shape.Len())
	assert.Equal(t, 0.5, e.DiscountSpec().LowerBound.AtVec(0))
}
