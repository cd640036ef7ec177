package main

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gridlearn/experiment"
	"github.com/samuelfneumann/gridlearn/results"
)

// Files written by the sweep command and read by the plot command
const (
	tableFile    = "results.csv"
	baselineFile = "baseline.json"
)

func (a *app) sweepCommand() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep advice availability and accuracy against a baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			progress := cmd.ErrOrStderr()
			if quiet {
				progress = nil
			}

			log := a.log.WithField("sweep", "sweep-"+uuid.New().String())
			s, err := experiment.NewSweep(a.config.SweepConfig(), log,
				progress)
			if err != nil {
				return err
			}
			table, baseline, err := s.Run(cmd.Context())
			if err != nil {
				return err
			}

			dir := a.config.OutputDir
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			if err := results.SaveCSV(filepath.Join(dir, tableFile),
				table); err != nil {
				return err
			}
			if err := results.SaveBaseline(filepath.Join(dir, baselineFile),
				baseline); err != nil {
				return err
			}

			log.WithField("output", dir).Info("saved sweep results")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}
