package results

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrInvalidHeader is returned when a CSV table does not have the
// expected columns
var ErrInvalidHeader = errors.New("invalid header")

// Header holds the column names of a CSV table
var Header = []string{
	"Availability",
	"Accuracy",
	"Avg Reward",
	"Success Rate (%)",
	"Avg Learning Speed",
}

// WriteCSV writes t to w as CSV, preceded by Header
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writeCSV: %w", err)
	}

	for _, row := range t {
		record := []string{
			formatFloat(row.Availability),
			formatFloat(row.Accuracy),
			formatFloat(row.AvgReward),
			formatFloat(row.SuccessRate),
			formatFloat(row.AvgLearningSpeed),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writeCSV: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writeCSV: %w", err)
	}
	return nil
}

// ReadCSV reads a Table written by WriteCSV
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("readCSV: %w: empty input", ErrInvalidHeader)
	} else if err != nil {
		return nil, fmt.Errorf("readCSV: %w", err)
	}
	for i := range Header {
		if header[i] != Header[i] {
			return nil, fmt.Errorf("readCSV: %w: column %d is %q, want %q",
				ErrInvalidHeader, i, header[i], Header[i])
		}
	}

	var t Table
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("readCSV: %w", err)
		}

		values := make([]float64, len(record))
		for i, field := range record {
			values[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("readCSV: line %d column %q: %w",
					line, Header[i], err)
			}
		}

		t = append(t, Row{
			Availability: values[0],
			Accuracy:     values[1],
			Summary: Summary{
				AvgReward:        values[2],
				SuccessRate:      values[3],
				AvgLearningSpeed: values[4],
			},
		})
	}
	return t, nil
}

// SaveCSV writes t to the CSV file filename
func SaveCSV(filename string, t Table) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveCSV: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, t); err != nil {
		return err
	}
	return file.Close()
}

// LoadCSV reads a Table from the CSV file filename
func LoadCSV(filename string) (Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadCSV: %w", err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// SaveBaseline writes b to the JSON file filename
func SaveBaseline(filename string, b Baseline) error {
	data, err := json.MarshalIndent(b, "", "\t")
	if err != nil {
		return fmt.Errorf("saveBaseline: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("saveBaseline: %w", err)
	}
	return nil
}

// LoadBaseline reads a Baseline from the JSON file filename
func LoadBaseline(filename string) (Baseline, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Baseline{}, fmt.Errorf("loadBaseline: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return Baseline{}, fmt.Errorf("loadBaseline: %w", err)
	}
	return b, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
