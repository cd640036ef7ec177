package progressbar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 4, 2)

	assert.Equal(t, "|    | [0.00%]", p.String())
	assert.False(t, p.Done())

	p.Increment()
	assert.Equal(t, 0.5, p.Progress())
	assert.Equal(t, "|██  | [50.00%]", p.String())

	p.Increment()
	p.Increment()
	assert.True(t, p.Done())
	assert.Equal(t, 1.0, p.Progress())
	assert.Equal(t, "|████| [100.00%]", p.String())
}

func TestDisplay(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 2, 1)
	p.Increment()

	require.NoError(t, p.Display())
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\n\033[1A\033[K|██| [100.00% | elapsed: "))
	assert.True(t, strings.HasSuffix(out, "]"))

	require.NoError(t, p.Close())
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestNewPanics(t *testing.T) {
	assert.Panics(t, func() { New(&bytes.Buffer{}, 0, 1) })
	assert.Panics(t, func() { New(&bytes.Buffer{}, 1, 0) })
}
