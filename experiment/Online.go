// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"fmt"

	"github.com/samuelfneumann/gridlearn/agent"
	env "github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/experiment/checkpointer"
	"github.com/samuelfneumann/gridlearn/experiment/trackers"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Viewer is shown every timestep of an experiment, for example to
// render the environment. Episodes are numbered from 0.
type Viewer interface {
	View(episode int, t ts.TimeStep) error
}

// Online is an experiment that runs an agent online for a fixed number
// of episodes. No offline evaluation is performed.
//
// Data generated during the experiment is cached by Trackers, each of
// which is sent every TimeStep. Checkpointers are also sent every
// TimeStep and may periodically save the agent's state.
type Online struct {
	env.Environment
	agent.Agent
	episodes      int
	episode       int
	trackers      []trackers.Tracker
	checkpointers []checkpointer.Checkpointer
	viewer        Viewer
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent which runs for episodes episodes
func NewOnline(e env.Environment, a agent.Agent, episodes int,
	t []trackers.Tracker, c []checkpointer.Checkpointer) *Online {
	return &Online{
		Environment:   e,
		Agent:         a,
		episodes:      episodes,
		trackers:      t,
		checkpointers: c,
	}
}

// Register registers a Tracker with the experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// SetViewer sets the Viewer shown after each reset and step
func (o *Online) SetViewer(v Viewer) {
	o.viewer = v
}

// RunEpisode runs a single episode of the experiment and returns its
// last TimeStep
func (o *Online) RunEpisode(ctx context.Context) (ts.TimeStep, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return step, fmt.Errorf("runEpisode: %w", err)
	}
	if err := o.Agent.ObserveFirst(step); err != nil {
		return step, fmt.Errorf("runEpisode: %w", err)
	}
	if err := o.track(step); err != nil {
		return step, err
	}

	for !step.Last() {
		if err := ctx.Err(); err != nil {
			return step, err
		}

		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return step, fmt.Errorf("runEpisode: %w", err)
		}

		if err := o.track(step); err != nil {
			return step, err
		}

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return step, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.Agent.Step(); err != nil {
			return step, fmt.Errorf("runEpisode: %w", err)
		}
	}
	o.Agent.EndEpisode()
	o.episode++

	return step, nil
}

// Run runs the experiment until all episodes have finished or ctx is
// cancelled
func (o *Online) Run(ctx context.Context) error {
	for o.episode < o.episodes {
		if _, err := o.RunEpisode(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Episodes returns the number of finished episodes
func (o *Online) Episodes() int {
	return o.episode
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, tracker := range o.trackers {
		if err := tracker.Save(); err != nil {
			return err
		}
	}
	return nil
}

// track sends the current timestep to each Tracker, Checkpointer, and
// the Viewer
func (o *Online) track(t ts.TimeStep) error {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return fmt.Errorf("track: %w", err)
		}
	}
	if o.viewer != nil {
		if err := o.viewer.View(o.episode, t); err != nil {
			return fmt.Errorf("track: %w", err)
		}
	}
	return nil
}
