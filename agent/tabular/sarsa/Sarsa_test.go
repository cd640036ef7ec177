package sarsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	"github.com/samuelfneumann/gridlearn/utils/matutils"
)

var _ agent.Agent = &Sarsa{}

func newEnv(t *testing.T, seed uint64, cutoff int) (*gridworld.GridWorld, *gridworld.Env) {
	t.Helper()
	g, err := gridworld.New(gridworld.WithSeed(seed))
	require.NoError(t, err)
	return g, gridworld.NewEnv(g, 0.9, cutoff)
}

// sequenceAdvisor always gives advice, cycling through actions
type sequenceAdvisor struct {
	actions []int
	i       int
}

func (s *sequenceAdvisor) Advise(int) (int, bool) {
	a := s.actions[s.i%len(s.actions)]
	s.i++
	return a, true
}

func TestRegistered(t *testing.T) {
	c, err := agent.NewConfig(agent.SARSA, 0.1, 0.2)
	require.NoError(t, err)
	assert.Equal(t, Config{Epsilon: 0.1, LearningRate: 0.2}, c)
	assert.Equal(t, agent.SARSA, c.Algorithm())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Epsilon: 0, LearningRate: 1}.Validate())
	assert.Error(t, Config{Epsilon: -1, LearningRate: 1}.Validate())
	assert.Error(t, Config{Epsilon: 0.1, LearningRate: -1}.Validate())
}

func TestUpdateUsesNextAction(t *testing.T) {
	_, env := newEnv(t, 1, 0)
	advisor := &sequenceAdvisor{actions: []int{2, 0}}
	s, err := New(env, Config{Epsilon: 0, LearningRate: 0.5}, 1, advisor)
	require.NoError(t, err)

	for a, v := range []float64{1, 3, 2, 0} {
		s.Table().Set(5, a, v)
	}

	first := ts.New(ts.First, 0, 0.9, matutils.OneHot(100, 4), 0)
	require.NoError(t, s.ObserveFirst(first))
	assert.Error(t, s.Step())

	next := ts.New(ts.Mid, -1, 0.9, matutils.OneHot(100, 5), 1)
	require.NoError(t, s.Observe(tabular.ActionVec(3), next))
	require.NoError(t, s.Step())

	// The advised action 2 is used in the target, not the greedy action 1
	assert.InDelta(t, 0.5*(-1+0.9*2), s.Table().At(4, 3), 1e-12)

	// The next action is the one used in the update
	assert.Equal(t, 2.0, s.SelectAction(next).AtVec(0))
	assert.Equal(t, 0.0, s.SelectAction(next).AtVec(0))
}

func TestTerminalDoesNotBootstrap(t *testing.T) {
	_, env := newEnv(t, 1, 0)
	s, err := New(env, Config{Epsilon: 0, LearningRate: 1}, 1, nil)
	require.NoError(t, err)
	for a := 0; a < 4; a++ {
		s.Table().Set(99, a, 100)
	}

	first := ts.New(ts.First, 0, 0.9, matutils.OneHot(100, 89), 0)
	require.NoError(t, s.ObserveFirst(first))

	last := ts.New(ts.Last, 20, 0.9, matutils.OneHot(100, 99), 1)
	last.SetEnd(ts.TerminalStateReached)
	require.NoError(t, s.Observe(tabular.ActionVec(1), last))
	require.NoError(t, s.Step())

	assert.Equal(t, 20.0, s.Table().At(89, 1))
	assert.Nil(t, s.nextAction)
}

func TestObserveFirstClearsCachedAction(t *testing.T) {
	_, env := newEnv(t, 1, 0)
	advisor := &sequenceAdvisor{actions: []int{3, 1}}
	s, err := New(env, Config{Epsilon: 0, LearningRate: 1}, 1, advisor)
	require.NoError(t, err)

	first := ts.New(ts.First, 0, 0.9, matutils.OneHot(100, 0), 0)
	require.NoError(t, s.ObserveFirst(first))
	last := ts.New(ts.Last, -1, 0.9, matutils.OneHot(100, 1), 1)
	last.SetEnd(ts.Timeout)
	require.NoError(t, s.Observe(tabular.ActionVec(0), last))
	require.NoError(t, s.Step())
	require.NotNil(t, s.nextAction)

	s.EndEpisode()
	require.NoError(t, s.ObserveFirst(first))
	assert.Nil(t, s.nextAction)
	assert.Equal(t, 1.0, s.SelectAction(first).AtVec(0))
}

func TestEvalIgnoresAdvice(t *testing.T) {
	_, env := newEnv(t, 1, 0)
	advisor := &sequenceAdvisor{actions: []int{3}}
	s, err := New(env, Config{Epsilon: 0.5, LearningRate: 1}, 1, advisor)
	require.NoError(t, err)
	s.Table().Set(0, 1, 1)

	s.Eval()
	assert.True(t, s.IsEval())
	step := ts.New(ts.First, 0, 0.9, matutils.OneHot(100, 0), 0)
	for i := 0; i < 20; i++ {
		assert.Equal(t, 1.0, s.SelectAction(step).AtVec(0))
	}

	s.Train()
	assert.False(t, s.IsEval())
	assert.Equal(t, 3.0, s.SelectAction(step).AtVec(0))
}

func TestLearnsToReachGoal(t *testing.T) {
	g, env := newEnv(t, 5, 200)
	s, err := New(env, Config{Epsilon: 0.1, LearningRate: 0.5}, 5, nil)
	require.NoError(t, err)

	for episode := 0; episode < 1500; episode++ {
		step, err := env.Reset()
		require.NoError(t, err)
		require.NoError(t, s.ObserveFirst(step))

		for !step.Last() {
			action := s.SelectAction(step)
			step, _, err = env.Step(action)
			require.NoError(t, err)
			require.NoError(t, s.Observe(action, step))
			require.NoError(t, s.Step())
		}
		s.EndEpisode()
	}

	s.Eval()
	_, err = env.Reset()
	require.NoError(t, err)
	require.NoError(t, g.Place(gridworld.Position{Row: 0, Col: 0}))
	step := ts.New(ts.First, 0, 0.9, matutils.OneHot(100, 0), 0)

	steps := 0
	for steps < 50 {
		action := s.SelectAction(step)
		step, _, err = env.Step(action)
		require.NoError(t, err)
		steps++
		if step.Last() {
			break
		}
	}
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
	assert.LessOrEqual(t, steps, 30)
}
