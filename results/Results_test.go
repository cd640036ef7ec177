package results

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(availability, accuracy, reward, rate, speed float64) Row {
	return Row{availability, accuracy, Summary{reward, rate, speed}}
}

var table = Table{
	row(0.2, 0.5, -10, 50, 80),
	row(0.2, 0.2, -20, 40, 90),
	row(0.5, 0.2, -5, 70, 60),
	row(0.2, 1.0, 5, 90, 30),
	row(0.5, 1.0, 8, 95, 25),
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(
		[]float64{18, -7, 10, 3},
		[]int{3, 200, 11, 18},
		[]bool{true, false, true, true},
	)
	require.NoError(t, err)

	assert.InDelta(t, 6.0, s.AvgReward, 1e-12)
	assert.InDelta(t, 75.0, s.SuccessRate, 1e-12)
	assert.InDelta(t, 58.0, s.AvgLearningSpeed, 1e-12)
}

func TestSummarizeErrors(t *testing.T) {
	_, err := Summarize(nil, nil, nil)
	assert.True(t, errors.Is(err, ErrEmpty))

	_, err = Summarize([]float64{1}, []int{1, 2}, []bool{true})
	assert.Error(t, err)
}

func TestMean(t *testing.T) {
	m, err := Mean([]Summary{{-10, 50, 80}, {0, 100, 20}})
	require.NoError(t, err)
	assert.Equal(t, Summary{-5, 75, 50}, m)

	_, err = Mean(nil)
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestSelect(t *testing.T) {
	selected := table.Select(0.2, nil)
	require.Len(t, selected, 3)
	assert.Equal(t, []float64{0.2, 0.5, 1.0}, selected.Accuracies())

	selected = table.Select(0.2, []float64{1.0, 0.2})
	require.Len(t, selected, 2)
	assert.Equal(t, -20.0, selected[0].AvgReward)
	assert.Equal(t, 5.0, selected[1].AvgReward)

	// Matching tolerates floating point error
	selected = table.Select(0.1+0.1, []float64{0.1 * 5})
	require.Len(t, selected, 1)
	assert.Equal(t, -10.0, selected[0].AvgReward)

	assert.Empty(t, table.Select(0.8, nil))
	assert.Empty(t, table.Select(0.2, []float64{}))
}

func TestSelectTolerance(t *testing.T) {
	rows := Table{row(0.3, 0.7, 1, 100, 10), row(0.3, 0.2, 2, 50, 20)}

	// 0.1 + 0.2 and 0.1 * 7 are not exactly 0.3 and 0.7
	selected := rows.Select(0.1+0.2, []float64{0.1 * 7})
	require.Len(t, selected, 1)
	assert.Equal(t, 1.0, selected[0].AvgReward)

	assert.Empty(t, rows.Select(0.3+1e-6, nil))
	assert.Equal(t, []float64{0.7, 0.2},
		append(rows, row(0.3+1e-12, 0.7+1e-12, 3, 0, 0)).Accuracies())
}

func TestAccuraciesAndAvailabilities(t *testing.T) {
	assert.Equal(t, []float64{0.5, 0.2, 1.0}, table.Accuracies())
	assert.Equal(t, []float64{0.2, 0.5}, table.Availabilities())
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "Availability,Accuracy,Avg Reward,Success Rate (%),"+
		"Avg Learning Speed", lines[0])
	assert.Equal(t, "0.2,0.5,-10,50,80", lines[1])

	read, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, table, read)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong header", "A,B,C,D,E\n"},
		{"short row", strings.Join(Header, ",") + "\n0.2,0.5,1\n"},
		{"not a number", strings.Join(Header, ",") + "\n0.2,x,1,2,3\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(test.input))
			assert.Error(t, err)
		})
	}

	_, err := ReadCSV(strings.NewReader("A,B,C,D,E\n"))
	assert.True(t, errors.Is(err, ErrInvalidHeader))
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()

	tableFile := filepath.Join(dir, "results.csv")
	require.NoError(t, SaveCSV(tableFile, table))
	loaded, err := LoadCSV(tableFile)
	require.NoError(t, err)
	assert.Equal(t, table, loaded)

	baselineFile := filepath.Join(dir, "baseline.json")
	baseline := Baseline{AvgReward: -12.5, SuccessRate: 64, AvgLearningSpeed: 77.25}
	require.NoError(t, SaveBaseline(baselineFile, baseline))
	b, err := LoadBaseline(baselineFile)
	require.NoError(t, err)
	assert.Equal(t, baseline, b)

	_, err = LoadCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
	_, err = LoadBaseline(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
