package experiment

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular/qlearning"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/experiment/checkpointer"
	"github.com/samuelfneumann/gridlearn/experiment/trackers"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// countingViewer counts the timesteps it is shown
type countingViewer struct {
	views    int
	episodes map[int]bool
	err      error
}

func (c *countingViewer) View(episode int, t ts.TimeStep) error {
	c.views++
	c.episodes[episode] = true
	return c.err
}

func newOnline(t *testing.T, episodes, cutoff int) (*Online,
	*qlearning.QLearning) {
	t.Helper()
	g, err := gridworld.New(gridworld.WithSeed(3))
	require.NoError(t, err)
	e := gridworld.NewEnv(g, 0.99, cutoff)

	q, err := qlearning.New(e, qlearning.Config{Epsilon: 0.1,
		LearningRate: 0.5}, 3, nil)
	require.NoError(t, err)
	return NewOnline(e, q, episodes, nil, nil), q
}

func TestOnlineRun(t *testing.T) {
	o, _ := newOnline(t, 5, 50)
	dir := t.TempDir()

	returns := trackers.NewReturn(filepath.Join(dir, "returns.bin"))
	lengths := trackers.NewEpisodeLength(filepath.Join(dir, "lengths.bin"))
	successes := trackers.NewSuccess(filepath.Join(dir, "successes.bin"))
	o.Register(returns)
	o.Register(lengths)
	o.Register(successes)

	viewer := &countingViewer{episodes: make(map[int]bool)}
	o.SetViewer(viewer)

	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, 5, o.Episodes())
	require.Len(t, returns.Data(), 5)
	require.Len(t, lengths.Data(), 5)
	require.Len(t, successes.Data(), 5)

	steps := 0
	for i, length := range lengths.Data() {
		assert.True(t, length > 0 && length <= 50)
		if !successes.Data()[i] {
			assert.Equal(t, 50, length)
		}
		steps += length
	}

	// The viewer sees each reset and each step
	assert.Equal(t, steps+5, viewer.views)
	assert.Len(t, viewer.episodes, 5)

	require.NoError(t, o.Save())
	saved, err := trackers.LoadLengths(filepath.Join(dir, "lengths.bin"))
	require.NoError(t, err)
	assert.Equal(t, lengths.Data(), saved)

	// Running again does nothing once all episodes are finished
	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, 5, o.Episodes())
}

func TestOnlineCheckpoint(t *testing.T) {
	o, q := newOnline(t, 4, 30)
	dir := t.TempDir()
	o.checkpointers = []checkpointer.Checkpointer{
		checkpointer.NewNEpisode(2, q.Table(),
			checkpointer.FilenameEnumerator(0, filepath.Join(dir, "table"),
				".bin")),
	}

	require.NoError(t, o.Run(context.Background()))
	matches, err := filepath.Glob(filepath.Join(dir, "table*"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestOnlineCancel(t *testing.T) {
	o, _ := newOnline(t, 10, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := o.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, o.Episodes())
}

func TestOnlineViewerError(t *testing.T) {
	o, _ := newOnline(t, 1, 10)
	viewErr := errors.New("closed")
	o.SetViewer(&countingViewer{episodes: make(map[int]bool), err: viewErr})

	_, err := o.RunEpisode(context.Background())
	assert.True(t, errors.Is(err, viewErr))
}

var _ agent.Agent = &qlearning.QLearning{}
