// Package results implements the aggregated results of advice
// experiments: one Row per (availability, accuracy) pair, and a
// Baseline for learning without advice.
package results

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Tolerance is the absolute tolerance used to match availabilities and
// accuracies
const Tolerance = 1e-9

// ErrEmpty is returned when summarizing no episodes or runs
var ErrEmpty = errors.New("no data to summarize")

// Summary holds the performance measures of a set of episodes
type Summary struct {
	// AvgReward is the average episodic return
	AvgReward float64 `json:"Avg Reward"`

	// SuccessRate is the percentage of episodes which reached the goal
	SuccessRate float64 `json:"Success Rate (%)"`

	// AvgLearningSpeed is the average number of steps per episode
	AvgLearningSpeed float64 `json:"Avg Learning Speed"`
}

// Baseline is the Summary of learning without advice
type Baseline = Summary

// Row is the Summary of learning with advice of a given availability
// and accuracy
type Row struct {
	Availability float64
	Accuracy     float64
	Summary
}

// Table is a list of Rows
type Table []Row

// Summarize returns the Summary of episodes with the given returns,
// lengths, and successes. All three must have the same length.
func Summarize(returns []float64, lengths []int, successes []bool) (Summary, error) {
	n := len(returns)
	if n == 0 {
		return Summary{}, fmt.Errorf("summarize: %w", ErrEmpty)
	}
	if len(lengths) != n || len(successes) != n {
		return Summary{}, fmt.Errorf("summarize: mismatched lengths "+
			"(returns %d, lengths %d, successes %d)", n, len(lengths),
			len(successes))
	}

	steps := make([]float64, n)
	succeeded := make([]float64, n)
	for i := range lengths {
		steps[i] = float64(lengths[i])
		if successes[i] {
			succeeded[i] = 100
		}
	}

	return Summary{
		AvgReward:        stat.Mean(returns, nil),
		SuccessRate:      stat.Mean(succeeded, nil),
		AvgLearningSpeed: stat.Mean(steps, nil),
	}, nil
}

// Mean returns the element-wise mean of summaries
func Mean(summaries []Summary) (Summary, error) {
	if len(summaries) == 0 {
		return Summary{}, fmt.Errorf("mean: %w", ErrEmpty)
	}

	rewards := make([]float64, len(summaries))
	rates := make([]float64, len(summaries))
	speeds := make([]float64, len(summaries))
	for i, s := range summaries {
		rewards[i] = s.AvgReward
		rates[i] = s.SuccessRate
		speeds[i] = s.AvgLearningSpeed
	}

	return Summary{
		AvgReward:        stat.Mean(rewards, nil),
		SuccessRate:      stat.Mean(rates, nil),
		AvgLearningSpeed: stat.Mean(speeds, nil),
	}, nil
}

// Select returns the Rows with the given availability whose accuracy
// is one of accuracies, sorted by accuracy. If accuracies is nil, all
// accuracies are selected.
func (t Table) Select(availability float64, accuracies []float64) Table {
	var selected Table
	for _, row := range t {
		if !scalar.EqualWithinAbs(row.Availability, availability, Tolerance) {
			continue
		}
		if accuracies != nil && !contains(accuracies, row.Accuracy) {
			continue
		}
		selected = append(selected, row)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Accuracy < selected[j].Accuracy
	})
	return selected
}

// Accuracies returns the distinct accuracies in the Table in the order
// they first appear
func (t Table) Accuracies() []float64 {
	var accuracies []float64
	for _, row := range t {
		if !contains(accuracies, row.Accuracy) {
			accuracies = append(accuracies, row.Accuracy)
		}
	}
	return accuracies
}

// Availabilities returns the distinct availabilities in the Table in
// the order they first appear
func (t Table) Availabilities() []float64 {
	var availabilities []float64
	for _, row := range t {
		if !contains(availabilities, row.Availability) {
			availabilities = append(availabilities, row.Availability)
		}
	}
	return availabilities
}

func contains(values []float64, v float64) bool {
	for _, value := range values {
		if scalar.EqualWithinAbs(value, v, Tolerance) {
			return true
		}
	}
	return false
}
