package agent

import (
	"errors"
	"fmt"
)

// ErrUnknownAlgorithm is returned when an algorithm is neither
// Q-learning nor SARSA
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm is a tabular learning algorithm
type Algorithm int

const (
	QLearning Algorithm = iota
	SARSA
)

// ParseAlgorithm returns the Algorithm named s. Only the names
// "Q-learning" and "SARSA" are accepted.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case QLearning.String():
		return QLearning, nil
	case SARSA.String():
		return SARSA, nil
	}
	return -1, fmt.Errorf("parseAlgorithm: %w %q", ErrUnknownAlgorithm, s)
}

func (a Algorithm) String() string {
	switch a {
	case QLearning:
		return "Q-learning"
	case SARSA:
		return "SARSA"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Validate returns an error if a is not a known Algorithm
func (a Algorithm) Validate() error {
	if a != QLearning && a != SARSA {
		return fmt.Errorf("validate: %w %d", ErrUnknownAlgorithm, int(a))
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (a Algorithm) MarshalText() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}
