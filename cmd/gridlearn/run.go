package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/agent/tabular/advice"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/experiment"
	"github.com/samuelfneumann/gridlearn/experiment/checkpointer"
	"github.com/samuelfneumann/gridlearn/experiment/trackers"
	"github.com/samuelfneumann/gridlearn/render"
	"github.com/samuelfneumann/gridlearn/results"
)

// Rendering modes of the run command
const (
	renderNone     = "none"
	renderTerminal = "terminal"
	renderPNG      = "png"
)

type runFlags struct {
	render       string
	frames       string
	availability float64
	accuracy     float64
	checkpoint   int
	colors       bool
}

func (a *app) runCommand() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Train a single agent and save its episode data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.render, "render", renderNone,
		"render mode: none, terminal, or png")
	flags.StringVar(&f.frames, "frames", "frames",
		"directory of rendered frames in png mode")
	flags.Float64Var(&f.availability, "availability", -1,
		"probability that advice is given; negative disables advice")
	flags.Float64Var(&f.accuracy, "accuracy", 1,
		"probability that given advice is optimal")
	flags.IntVar(&f.checkpoint, "checkpoint", 0,
		"save the action values every n episodes; 0 disables checkpoints")
	flags.BoolVar(&f.colors, "colors", true, "colour terminal rendering")
	return cmd
}

func (a *app) run(ctx context.Context, f *runFlags) error {
	c := a.config
	log := a.log.WithFields(logrus.Fields{
		"run":       "run-" + uuid.New().String(),
		"algorithm": c.Algorithm,
		"seed":      c.Seed,
	})

	g, err := gridworld.New(gridworld.WithSeed(c.Seed))
	if err != nil {
		return err
	}
	e := gridworld.NewEnv(g, c.Discount, c.Cutoff)

	var advisor agent.Advisor
	var opts render.Options
	if f.availability >= 0 {
		adv, err := advice.New(g.Layout(), f.availability, f.accuracy, c.Seed)
		if err != nil {
			return err
		}
		advisor = adv
		opts.Availability = &f.availability
		opts.Accuracy = &f.accuracy
		log = log.WithField("advisor", adv)
	}

	agentConfig, err := agent.NewConfig(c.Algorithm, c.Epsilon, c.LearningRate)
	if err != nil {
		return err
	}
	learner, err := agentConfig.CreateAgent(e, c.Seed, advisor)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
		return err
	}
	returns := trackers.NewReturn(filepath.Join(c.OutputDir, "returns.bin"))
	lengths := trackers.NewEpisodeLength(filepath.Join(c.OutputDir,
		"lengths.bin"))
	successes := trackers.NewSuccess(filepath.Join(c.OutputDir,
		"successes.bin"))

	var checkpointers []checkpointer.Checkpointer
	if f.checkpoint > 0 {
		tabled, ok := learner.(interface{ Table() *tabular.QTable })
		if !ok {
			return fmt.Errorf("run: cannot checkpoint %v agents", c.Algorithm)
		}
		checkpointers = append(checkpointers, checkpointer.NewNEpisode(
			f.checkpoint, tabled.Table(), checkpointer.FilenameEnumerator(0,
				filepath.Join(c.OutputDir, "qtable"), ".bin")))
	}

	exp := experiment.NewOnline(e, learner, c.Episodes,
		[]trackers.Tracker{returns, lengths, successes}, checkpointers)

	renderer, err := a.renderer(ctx, f)
	if err != nil {
		return err
	}
	if renderer != nil {
		opts.Delay = c.Delay()
		opts.LearningType = c.Algorithm.String()
		exp.SetViewer(render.NewViewer(renderer, g, opts))
		defer renderer.Close()
	}

	log.WithField("episodes", c.Episodes).Info("starting run")
	err = exp.Run(ctx)
	switch {
	case errors.Is(err, render.ErrClosed), errors.Is(err, context.Canceled):
		log.WithField("episodes", exp.Episodes()).Warn("run stopped early")
	case err != nil:
		return err
	}

	if err := exp.Save(); err != nil {
		return err
	}
	if exp.Episodes() == 0 {
		return nil
	}

	summary, err := results.Summarize(returns.Data(), lengths.Data(),
		successes.Data())
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"episodes": exp.Episodes(),
		"reward":   summary.AvgReward,
		"success":  summary.SuccessRate,
		"speed":    summary.AvgLearningSpeed,
		"output":   c.OutputDir,
	}).Info("finished run")
	return nil
}

// renderer returns the Renderer of the render mode, or nil if
// rendering is disabled. Cancelling ctx closes the Renderer.
func (a *app) renderer(ctx context.Context, f *runFlags) (*render.Renderer,
	error) {
	var sink render.Sink
	switch f.render {
	case renderNone:
		return nil, nil
	case renderTerminal:
		sink = render.NewTerminalSink(os.Stdout, f.colors)
	case renderPNG:
		sink = render.NewPNGSink(f.frames, "frame-")
	default:
		return nil, fmt.Errorf("renderer: unknown render mode %q", f.render)
	}

	return render.New(sink, render.WithAssetDir(a.config.AssetDir),
		render.WithCloseSignal(ctx.Done())), nil
}
