package qlearning_test

import (
	"context"
	"fmt"

	"github.com/samuelfneumann/gridlearn/agent/tabular/advice"
	"github.com/samuelfneumann/gridlearn/agent/tabular/qlearning"
	"github.com/samuelfneumann/gridlearn/environment/gridworld"
	"github.com/samuelfneumann/gridlearn/experiment"
	"github.com/samuelfneumann/gridlearn/experiment/trackers"
)

// Trains an advised Q-learning agent on the default GridWorld
func Example() {
	var seed uint64 = 1923812

	// Create the gridworld, ending episodes after 200 steps
	g, err := gridworld.New(gridworld.WithSeed(seed))
	if err != nil {
		panic(err)
	}
	env := gridworld.NewEnv(g, 0.99, 200)

	// The advisor suggests the optimal action half of the time, and is
	// correct 80% of the time when it does
	advisor, err := advice.New(g.Layout(), 0.5, 0.8, seed)
	if err != nil {
		panic(err)
	}

	// Create the learning algorithm
	args := qlearning.Config{Epsilon: 0.1, LearningRate: 0.1}
	q, err := qlearning.New(env, args, seed, advisor)
	if err != nil {
		panic(err)
	}

	// Experiment
	tracker := trackers.NewReturn("./data.bin")
	e := experiment.NewOnline(env, q, 500, []trackers.Tracker{tracker}, nil)
	if err := e.Run(context.Background()); err != nil {
		panic(err)
	}

	fmt.Println(len(tracker.Data()))
	// Output: 500
}
