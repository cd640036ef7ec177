package policy

import "github.com/samuelfneumann/gridlearn/agent/tabular"

// NewGreedy creates a new Greedy policy
func NewGreedy(seed uint64, table *tabular.QTable) *EGreedy {
	return NewEGreedy(0.0, seed, table)
}
