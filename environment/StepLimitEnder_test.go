package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ts "github.com/samuelfneumann/gridlearn/timestep"
)

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)

	step := ts.New(ts.Mid, -1, 0.99, nil, 2)
	assert.False(t, limit.End(&step))
	assert.False(t, step.Last())

	step = ts.New(ts.Mid, -1, 0.99, nil, 3)
	assert.True(t, limit.End(&step))
	assert.True(t, step.Last())
	assert.Equal(t, ts.Timeout, step.EndType())
}

func TestStepLimitNever(t *testing.T) {
	for _, limit := range []StepLimit{NewStepLimit(0), NewStepLimit(-1)} {
		step := ts.New(ts.Mid, -1, 0.99, nil, 1_000_000)
		assert.False(t, limit.End(&step))
		assert.False(t, step.Last())
	}
}
