// Package advice implements a simulated expert which offers action
// advice to a learning agent in a gridworld.
//
// The expert is characterised by two probabilities. Availability is
// the probability that advice is offered on a given step, and Accuracy
// is the probability that offered advice is an optimal action. When
// advice is inaccurate, one of the other actions is suggested uniformly
// at random.
package advice

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gridlearn/environment/gridworld"
)

// ErrInvalidProbability is returned when availability or accuracy is
// outside [0, 1]
var ErrInvalidProbability = errors.New("probability outside [0, 1]")

// unreachable marks cells with no path to the goal
const unreachable = -1

// Advisor offers advice using optimal actions computed from shortest
// paths to the goal. State indices are row * cols + col, matching
// gridworld.Env observations.
type Advisor struct {
	availability float64
	accuracy     float64
	cols         int
	distance     []int
	optimal      []gridworld.Action
	rng          *rand.Rand
}

// New returns an Advisor for a gridworld with the given layout
func New(layout gridworld.Layout, availability, accuracy float64,
	seed uint64) (*Advisor, error) {
	if availability < 0 || availability > 1 {
		return nil, fmt.Errorf("new: availability %v: %w", availability,
			ErrInvalidProbability)
	}
	if accuracy < 0 || accuracy > 1 {
		return nil, fmt.Errorf("new: accuracy %v: %w", accuracy,
			ErrInvalidProbability)
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	distance := distances(layout)
	optimal := make([]gridworld.Action, len(distance))
	for s := range optimal {
		optimal[s] = -1
		p := gridworld.Position{Row: s / layout.Cols, Col: s % layout.Cols}
		if distance[s] <= 0 {
			continue
		}

		// Take the first action which moves one step closer to the goal
		for a := gridworld.Up; a <= gridworld.Right; a++ {
			next, ok := neighbour(layout, p, a)
			if !ok {
				continue
			}
			d := distance[index(layout, next)]
			if d != unreachable && d == distance[s]-1 {
				optimal[s] = a
				break
			}
		}
	}

	return &Advisor{
		availability: availability,
		accuracy:     accuracy,
		cols:         layout.Cols,
		distance:     distance,
		optimal:      optimal,
		rng:          rand.New(rand.NewSource(seed)),
	}, nil
}

// Advise returns advice for the state with index s. No advice is given
// with probability 1 - Availability, or when the goal cannot be reached
// from s.
func (a *Advisor) Advise(s int) (int, bool) {
	optimal, ok := a.Optimal(s)
	if !ok {
		return 0, false
	}
	if a.rng.Float64() >= a.availability {
		return 0, false
	}
	if a.rng.Float64() < a.accuracy {
		return int(optimal), true
	}

	// Pick uniformly among the other actions
	wrong := gridworld.Action(a.rng.Intn(gridworld.NumActions - 1))
	if wrong >= optimal {
		wrong++
	}
	return int(wrong), true
}

// Optimal returns an action on a shortest path from state s to the
// goal. It returns false for the goal, obstacles, unreachable cells,
// and out-of-range states.
func (a *Advisor) Optimal(s int) (gridworld.Action, bool) {
	if s < 0 || s >= len(a.optimal) || a.optimal[s] < 0 {
		return 0, false
	}
	return a.optimal[s], true
}

// Distance returns the number of steps on a shortest path from p to the
// goal, or -1 if the goal cannot be reached from p
func (a *Advisor) Distance(p gridworld.Position) int {
	s := p.Row*a.cols + p.Col
	if p.Col < 0 || p.Col >= a.cols || s < 0 || s >= len(a.distance) {
		return unreachable
	}
	return a.distance[s]
}

// Availability returns the probability of advice being offered
func (a *Advisor) Availability() float64 {
	return a.availability
}

// Accuracy returns the probability of offered advice being optimal
func (a *Advisor) Accuracy() float64 {
	return a.accuracy
}

func (a *Advisor) String() string {
	return fmt.Sprintf("Advisor | Availability: %.2f  |  Accuracy: %.2f",
		a.availability, a.accuracy)
}

// distances runs a breadth first search outward from the goal over free
// cells and returns the distance of every cell to the goal
func distances(l gridworld.Layout) []int {
	blocked := make(map[gridworld.Position]bool, len(l.Obstacles))
	for _, o := range l.Obstacles {
		blocked[o] = true
	}

	distance := make([]int, l.Rows*l.Cols)
	for i := range distance {
		distance[i] = unreachable
	}
	distance[index(l, l.Goal)] = 0

	// Moves between free neighbouring cells are reversible, so the
	// search can follow moves away from the goal
	queue := []gridworld.Position{l.Goal}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for a := gridworld.Up; a <= gridworld.Right; a++ {
			next, ok := neighbour(l, p, a)
			if !ok || blocked[next] || distance[index(l, next)] != unreachable {
				continue
			}
			distance[index(l, next)] = distance[index(l, p)] + 1
			queue = append(queue, next)
		}
	}

	for o := range blocked {
		distance[index(l, o)] = unreachable
	}
	return distance
}

// neighbour returns the in-bounds cell reached from p by action a
func neighbour(l gridworld.Layout, p gridworld.Position,
	a gridworld.Action) (gridworld.Position, bool) {
	switch a {
	case gridworld.Up:
		p.Row--
	case gridworld.Down:
		p.Row++
	case gridworld.Left:
		p.Col--
	case gridworld.Right:
		p.Col++
	}
	return p, l.Contains(p)
}

func index(l gridworld.Layout, p gridworld.Position) int {
	return p.Row*l.Cols + p.Col
}
