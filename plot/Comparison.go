// Package plot draws charts comparing learning with advice against a
// no-advice baseline
package plot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/results"
)

// ErrNoData is returned when no rows match the requested availability
// and accuracies
var ErrNoData = errors.New("no matching results")

// Chart dimensions and plot area margins in pixels
const (
	Width  = 1000
	Height = 600

	marginLeft   = 90
	marginRight  = 170
	marginTop    = 60
	marginBottom = 120

	// Offset of the third y-axis to the right of the plot area
	axisOffset = 60
)

// Colours of the three series
const (
	blue   = "#1f77b4"
	green  = "#2ca02c"
	orange = "#ff7f0e"
)

type marker int

const (
	circle marker = iota
	square
	triangle
)

type lineStyle int

const (
	solid lineStyle = iota
	dashed
	dotted
	dashDot
)

// series is one measure plotted against accuracy on its own y-axis
type series struct {
	label         string
	axisLabel     string
	baselineLabel string
	colour        string
	marker        marker
	baselineStyle lineStyle
	values        []float64
	baseline      float64
}

// Chart is a drawn comparison chart
type Chart struct {
	title    string
	selected results.Table
	img      image.Image
}

// ComparisonWithBaseline draws the average reward, success rate, and
// average learning speed of the rows of table with the given
// availability against accuracy, each on its own y-axis, together
// with the matching baseline values as horizontal lines. If accuracies
// is nil, all accuracies in the table are used.
func ComparisonWithBaseline(availability float64, table results.Table,
	baseline results.Baseline, accuracies []float64,
	algorithm agent.Algorithm) (*Chart, error) {
	if err := algorithm.Validate(); err != nil {
		return nil, fmt.Errorf("comparisonWithBaseline: %w", err)
	}

	if accuracies == nil {
		accuracies = table.Accuracies()
	}
	selected := table.Select(availability, accuracies)
	if len(selected) == 0 {
		return nil, fmt.Errorf("comparisonWithBaseline: %w for availability "+
			"%v", ErrNoData, availability)
	}

	x := make([]float64, len(selected))
	rewards := make([]float64, len(selected))
	rates := make([]float64, len(selected))
	speeds := make([]float64, len(selected))
	for i, row := range selected {
		x[i] = row.Accuracy
		rewards[i] = row.AvgReward
		rates[i] = row.SuccessRate
		speeds[i] = row.AvgLearningSpeed
	}

	all := []series{
		{
			label:         "Avg Reward",
			axisLabel:     "Avg Reward",
			baselineLabel: "Baseline Avg Reward",
			colour:        blue,
			marker:        circle,
			baselineStyle: dashed,
			values:        rewards,
			baseline:      baseline.AvgReward,
		},
		{
			label:         "Success Rate",
			axisLabel:     "Success Rate (%)",
			baselineLabel: "Baseline Success Rate",
			colour:        green,
			marker:        square,
			baselineStyle: dotted,
			values:        rates,
			baseline:      baseline.SuccessRate,
		},
		{
			label:         "Learning Speed",
			axisLabel:     "Avg Learning Speed",
			baselineLabel: "Baseline Learning Speed",
			colour:        orange,
			marker:        triangle,
			baselineStyle: dashDot,
			values:        speeds,
			baseline:      baseline.AvgLearningSpeed,
		},
	}

	title := Title(availability, algorithm)
	return &Chart{
		title:    title,
		selected: selected,
		img:      draw(title, x, all),
	}, nil
}

// Title returns the title of a comparison chart
func Title(availability float64, algorithm agent.Algorithm) string {
	percent := math.Round(availability*100*1e6) / 1e6
	return fmt.Sprintf("Comparison with Baseline for %s%% Availability (%v)",
		strconv.FormatFloat(percent, 'f', -1, 64), algorithm)
}

// Title returns the chart's title
func (c *Chart) Title() string {
	return c.title
}

// Selected returns the rows plotted, sorted by accuracy
func (c *Chart) Selected() results.Table {
	return c.selected
}

// Image returns the drawn chart
func (c *Chart) Image() image.Image {
	return c.img
}

// SavePNG saves the chart as a PNG file
func (c *Chart) SavePNG(path string) error {
	if err := gg.SavePNG(path, c.img); err != nil {
		return fmt.Errorf("savePNG: %w", err)
	}
	return nil
}

// EncodePNG writes the chart to w in PNG format
func (c *Chart) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encodePNG: %w", err)
	}
	return nil
}
