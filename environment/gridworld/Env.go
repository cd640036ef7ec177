package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/gridlearn/environment"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	"github.com/samuelfneumann/gridlearn/utils/matutils"
)

// Env wraps a GridWorld so that it can be used as an
// environment.Environment by agents and experiments.
//
// Observations are one-hot vectors of length rows * cols, where the
// index of the 1.0 is row * cols + col. Actions are 1-dimensional
// vectors holding the action code. Episodes end with EndType
// timestep.TerminalStateReached when the goal is reached, or with
// timestep.Timeout when the optional step cutoff is reached.
type Env struct {
	*GridWorld
	stepLimit   env.StepLimit
	discount    float64
	currentStep ts.TimeStep
}

// NewEnv returns a new Env wrapping g. Episodes are cut off after
// cutoff steps; a cutoff of 0 never cuts episodes off.
func NewEnv(g *GridWorld, discount float64, cutoff int) *Env {
	return &Env{
		GridWorld: g,
		stepLimit: env.NewStepLimit(cutoff),
		discount:  discount,
	}
}

// Reset resets the wrapped GridWorld and returns the first TimeStep of
// the new episode
func (e *Env) Reset() (ts.TimeStep, error) {
	start, err := e.GridWorld.Reset()
	if err != nil {
		return ts.TimeStep{}, err
	}

	step := ts.New(ts.First, 0, e.discount, e.observation(start), 0)
	e.currentStep = step
	return step, nil
}

// Step takes one environmental step given action a
func (e *Env) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a.Len() != 1 {
		return ts.TimeStep{}, true, fmt.Errorf("step: actions must be "+
			"1-dimensional, got %d", a.Len())
	}

	result, err := e.GridWorld.Step(Action(int(a.AtVec(0))))
	if err != nil {
		return ts.TimeStep{}, true, err
	}

	step := ts.New(ts.Mid, float64(result.Reward), e.discount,
		e.observation(result.Position), e.currentStep.Number+1)

	if result.Done {
		step.StepType = ts.Last
		step.SetEnd(ts.TerminalStateReached)
	} else {
		e.stepLimit.End(&step)
	}
	e.currentStep = step

	return step, step.Last(), nil
}

// CurrentTimeStep returns the current time step in the environment
func (e *Env) CurrentTimeStep() ts.TimeStep {
	return e.currentStep
}

// StateIndex returns the index of p in a one-hot observation
func (e *Env) StateIndex(p Position) int {
	_, c := e.Dims()
	return p.Row*c + p.Col
}

// observation returns the one-hot encoding of p
func (e *Env) observation(p Position) *mat.VecDense {
	r, c := e.Dims()
	return matutils.OneHot(r*c, e.StateIndex(p))
}

// ObservationSpec returns the observation specification of the
// environment
func (e *Env) ObservationSpec() env.Spec {
	r, c := e.Dims()
	shape := mat.NewVecDense(r*c, nil)
	lowerBound := mat.NewVecDense(r*c, nil)
	upperBound := mat.NewVecDense(r*c, nil)
	for i := 0; i < r*c; i++ {
		upperBound.SetVec(i, 1.0)
	}

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// ActionSpec returns the action specification of the environment
func (e *Env) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{float64(Up)})
	upperBound := mat.NewVecDense(1, []float64{float64(Right)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// DiscountSpec returns the discount specification of the environment
func (e *Env) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{e.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Discrete)
}

func (e *Env) String() string {
	return fmt.Sprintf("Env: %v", e.GridWorld)
}
