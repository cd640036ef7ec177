package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/plot"
	"github.com/samuelfneumann/gridlearn/results"
)

func (a *app) plotCommand() *cobra.Command {
	var (
		algorithm      string
		availabilities []float64
		accuracies     []float64
		dir            string
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot sweep results against the baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			alg := a.config.Algorithm
			if algorithm != "" {
				var err error
				if alg, err = agent.ParseAlgorithm(algorithm); err != nil {
					return err
				}
			}

			in := a.config.OutputDir
			table, err := results.LoadCSV(filepath.Join(in, tableFile))
			if err != nil {
				return err
			}
			baseline, err := results.LoadBaseline(filepath.Join(in,
				baselineFile))
			if err != nil {
				return err
			}

			if len(availabilities) == 0 {
				availabilities = table.Availabilities()
			}
			if len(accuracies) == 0 {
				accuracies = nil
			}
			if dir == "" {
				dir = in
			}

			for _, availability := range availabilities {
				chart, err := plot.ComparisonWithBaseline(availability, table,
					baseline, accuracies, alg)
				if err != nil {
					return err
				}

				name := fmt.Sprintf("comparison-%s.png",
					strconv.FormatFloat(availability, 'f', -1, 64))
				path := filepath.Join(dir, name)
				if err := chart.SavePNG(path); err != nil {
					return err
				}
				a.log.WithField("path", path).Info(chart.Title())
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&algorithm, "algorithm", "",
		"algorithm named in the title: Q-learning or SARSA")
	flags.Float64SliceVar(&availabilities, "availability", nil,
		"availabilities to plot; all in the results by default")
	flags.Float64SliceVar(&accuracies, "accuracies", nil,
		"accuracies to plot; all in the results by default")
	flags.StringVar(&dir, "out", "", "directory of the charts")
	return cmd
}
