package experiment

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/tabular/advice"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/experiment/trackers"
	"github.com/samuelfneumann/gridlearn/results"
	"github.com/samuelfneumann/gridlearn/utils/progressbar"

	// Register the agent configurations used by sweeps
	_ "github.com/samuelfneumann/gridlearn/agent/tabular/qlearning"
	_ "github.com/samuelfneumann/gridlearn/agent/tabular/sarsa"
)

// SweepConfig describes a sweep over advice availabilities and
// accuracies
type SweepConfig struct {
	Algorithm    agent.Algorithm
	Epsilon      float64
	LearningRate float64

	// Layout of the GridWorld. A zero Layout uses the default layout.
	Layout   gridworld.Layout
	Episodes int
	Cutoff   int
	Discount float64

	// Runs is the number of independent runs averaged per setting. Run
	// i of every setting is seeded with Seed + i.
	Runs int
	Seed uint64

	Availabilities []float64
	Accuracies     []float64
}

// Validate returns an error if the SweepConfig cannot be run
func (c SweepConfig) Validate() error {
	if err := c.Algorithm.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("validate: episodes must be positive, got %d",
			c.Episodes)
	}
	if c.Runs <= 0 {
		return fmt.Errorf("validate: runs must be positive, got %d", c.Runs)
	}
	if c.Cutoff < 0 {
		return fmt.Errorf("validate: cutoff must be non-negative, got %d",
			c.Cutoff)
	}
	if err := c.layout().Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	for _, p := range append(append([]float64{}, c.Availabilities...),
		c.Accuracies...) {
		if p < 0 || p > 1 {
			return fmt.Errorf("validate: %w: %v", advice.ErrInvalidProbability, p)
		}
	}

	config, err := agent.NewConfig(c.Algorithm, c.Epsilon, c.LearningRate)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

func (c SweepConfig) layout() gridworld.Layout {
	if c.Layout.Rows == 0 && c.Layout.Cols == 0 {
		return gridworld.DefaultLayout()
	}
	return c.Layout
}

// Sweep runs an agent with advice of every combination of availability
// and accuracy, and without advice, averaging the performance of each
// setting over a number of runs
type Sweep struct {
	config   SweepConfig
	log      logrus.FieldLogger
	progress io.Writer
}

// NewSweep returns a new Sweep. If progress is non-nil, a progress bar
// is written to it.
func NewSweep(c SweepConfig, log logrus.FieldLogger,
	progress io.Writer) (*Sweep, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newSweep: %w", err)
	}
	return &Sweep{config: c, log: log, progress: progress}, nil
}

// Settings returns the number of settings in the sweep, including the
// baseline
func (s *Sweep) Settings() int {
	return len(s.config.Availabilities)*len(s.config.Accuracies) + 1
}

// Run runs the sweep. Rows are ordered by availability, then accuracy,
// in the order they are configured.
func (s *Sweep) Run(ctx context.Context) (results.Table, results.Baseline,
	error) {
	var bar *progressbar.ProgressBar
	if s.progress != nil {
		bar = progressbar.New(s.progress, 40, s.Settings()*s.config.Runs)
		defer bar.Close()
	}
	increment := func() {
		if bar != nil {
			bar.Increment()
			bar.Display()
		}
	}

	log := s.log.WithField("algorithm", s.config.Algorithm)
	log.WithFields(logrus.Fields{
		"settings": s.Settings(),
		"runs":     s.config.Runs,
		"episodes": s.config.Episodes,
	}).Info("starting sweep")

	var table results.Table
	for _, availability := range s.config.Availabilities {
		for _, accuracy := range s.config.Accuracies {
			summary, err := s.setting(ctx, availability, accuracy, increment)
			if err != nil {
				return nil, results.Baseline{}, fmt.Errorf("run: %w", err)
			}

			table = append(table, results.Row{
				Availability: availability,
				Accuracy:     accuracy,
				Summary:      summary,
			})
			log.WithFields(logrus.Fields{
				"availability": availability,
				"accuracy":     accuracy,
				"reward":       summary.AvgReward,
				"success":      summary.SuccessRate,
				"speed":        summary.AvgLearningSpeed,
			}).Info("finished setting")
		}
	}

	baseline, err := s.baseline(ctx, increment)
	if err != nil {
		return nil, results.Baseline{}, fmt.Errorf("run: %w", err)
	}
	log.WithFields(logrus.Fields{
		"reward":  baseline.AvgReward,
		"success": baseline.SuccessRate,
		"speed":   baseline.AvgLearningSpeed,
	}).Info("finished baseline")

	return table, baseline, nil
}

// setting averages the runs of a single availability and accuracy
func (s *Sweep) setting(ctx context.Context, availability,
	accuracy float64, increment func()) (results.Summary, error) {
	summaries := make([]results.Summary, 0, s.config.Runs)
	for run := 0; run < s.config.Runs; run++ {
		seed := s.config.Seed + uint64(run)
		advisor, err := advice.New(s.config.layout(), availability, accuracy,
			seed)
		if err != nil {
			return results.Summary{}, err
		}

		summary, err := s.RunOnce(ctx, advisor, seed)
		if err != nil {
			return results.Summary{}, err
		}
		summaries = append(summaries, summary)
		increment()
	}
	return results.Mean(summaries)
}

// baseline averages the runs without advice
func (s *Sweep) baseline(ctx context.Context,
	increment func()) (results.Baseline, error) {
	summaries := make([]results.Summary, 0, s.config.Runs)
	for run := 0; run < s.config.Runs; run++ {
		summary, err := s.RunOnce(ctx, nil, s.config.Seed+uint64(run))
		if err != nil {
			return results.Baseline{}, err
		}
		summaries = append(summaries, summary)
		increment()
	}
	return results.Mean(summaries)
}

// RunOnce trains a new agent, advised by advisor if it is non-nil,
// for the configured number of episodes and summarizes its episodes
func (s *Sweep) RunOnce(ctx context.Context, advisor agent.Advisor,
	seed uint64) (results.Summary, error) {
	g, err := gridworld.New(gridworld.WithLayout(s.config.layout()),
		gridworld.WithSeed(seed))
	if err != nil {
		return results.Summary{}, fmt.Errorf("runOnce: %w", err)
	}
	e := gridworld.NewEnv(g, s.config.Discount, s.config.Cutoff)

	config, err := agent.NewConfig(s.config.Algorithm, s.config.Epsilon,
		s.config.LearningRate)
	if err != nil {
		return results.Summary{}, fmt.Errorf("runOnce: %w", err)
	}
	a, err := config.CreateAgent(e, seed, advisor)
	if err != nil {
		return results.Summary{}, fmt.Errorf("runOnce: %w", err)
	}

	returns := trackers.NewReturn("")
	lengths := trackers.NewEpisodeLength("")
	successes := trackers.NewSuccess("")
	exp := NewOnline(e, a, s.config.Episodes,
		[]trackers.Tracker{returns, lengths, successes}, nil)
	if err := exp.Run(ctx); err != nil {
		return results.Summary{}, fmt.Errorf("runOnce: %w", err)
	}

	return results.Summarize(returns.Data(), lengths.Data(), successes.Data())
}
