// Package environment outlines the interfaces and structs needed to
// implement concrete environments and to wrap them for experiments
package environment

import (
	"gonum.org/v1/gonum/mat"

	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Ender determines when an episode should end. If the episode should
// end, End() modifies the argument TimeStep so that its StepType is
// timestep.Last and sets its EndType.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Environment implements a simulated environment which can be used
// by an experiment to train an agent.
//
// Observations and actions are vectors so that agents do not need to
// know the concrete environment they are learning in.
type Environment interface {
	// Reset resets the environment between episodes and returns the
	// first TimeStep of the new episode
	Reset() (ts.TimeStep, error)

	// Step takes one environmental step given some action, returning
	// the next TimeStep and whether that TimeStep is the last in the
	// episode
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)

	// CurrentTimeStep returns the most recent TimeStep
	CurrentTimeStep() ts.TimeStep

	ObservationSpec() Spec
	ActionSpec() Spec
	DiscountSpec() Spec
}
