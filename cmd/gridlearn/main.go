// Command gridlearn trains tabular agents in a GridWorld, optionally
// guided by an advisor, sweeps advice availability and accuracy, and
// plots the results of sweeps against a no-advice baseline.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gridlearn/config"
)

// app holds the state shared by all subcommands
type app struct {
	configPath string
	logLevel   string

	config config.Config
	log    *logrus.Logger
}

func main() {
	a := &app{log: logrus.New()}
	a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	root := &cobra.Command{
		Use:   "gridlearn",
		Short: "Tabular reinforcement learning with advice in a GridWorld",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"JSON configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"logging level, overriding the configuration")

	root.AddCommand(a.runCommand(), a.sweepCommand(), a.plotCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		a.log.Error(err)
		stop()
		os.Exit(1)
	}
}

// load loads the configuration and configures logging
func (a *app) load() error {
	c, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		c.LogLevel = a.logLevel
		if err := c.Validate(); err != nil {
			return err
		}
	}

	a.config = c
	a.log.SetLevel(c.Level())
	a.log.WithField("config", a.configPath).Debug("loaded configuration")
	return nil
}
