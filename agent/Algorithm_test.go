package agent

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
		ok   bool
	}{
		{"Q-learning", QLearning, true},
		{"SARSA", SARSA, true},
		{"q-learning", 0, false},
		{"sarsa", 0, false},
		{"DQN", 0, false},
		{"", 0, false},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			alg, err := ParseAlgorithm(test.in)
			if !test.ok {
				assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, alg)
			assert.Equal(t, test.in, alg.String())
		})
	}
}

func TestAlgorithmValidate(t *testing.T) {
	assert.NoError(t, QLearning.Validate())
	assert.NoError(t, SARSA.Validate())
	assert.True(t, errors.Is(Algorithm(2).Validate(), ErrUnknownAlgorithm))
	assert.True(t, errors.Is(Algorithm(-1).Validate(), ErrUnknownAlgorithm))
}

func TestAlgorithmJSON(t *testing.T) {
	type wrapper struct {
		Algorithm Algorithm
	}

	b, err := json.Marshal(wrapper{SARSA})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Algorithm": "SARSA"}`, string(b))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"Algorithm": "Q-learning"}`), &w))
	assert.Equal(t, QLearning, w.Algorithm)

	err = json.Unmarshal([]byte(`{"Algorithm": "TD"}`), &w)
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))

	_, err = json.Marshal(wrapper{Algorithm(7)})
	assert.Error(t, err)
}

func TestNewConfigUnknown(t *testing.T) {
	_, err := NewConfig(Algorithm(5), 0.1, 0.1)
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}
