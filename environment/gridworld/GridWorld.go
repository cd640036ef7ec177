// Package gridworld implements a deterministic, static 2D gridworld.
//
// An agent moves one cell at a time in a grid containing obstacle cells
// and a single goal cell. Transitions are deterministic: the only
// randomness is in the choice of starting cell when an episode is reset.
//
// Actions are discrete in (0, 1, 2, 3):
//
//	Action	Meaning
//	  0		Up    (row - 1)
//	  1		Down  (row + 1)
//	  2		Left  (col - 1)
//	  3		Right (col + 1)
//
// Rewards are -1 on each step, -5 for a step whose target cell is an
// obstacle (the agent stays put), and +20 for the step which reaches
// the goal, which ends the episode. Moves off the edge of the grid
// leave the agent in place with the usual -1.
//
// A GridWorld holds no locks and must not be used concurrently.
package gridworld

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// Action is a movement direction in the GridWorld
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions is the size of the action space
const NumActions int = 4

func (a Action) String() string {
	switch a {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Valid returns whether a is one of the four movement actions
func (a Action) Valid() bool {
	return a >= Up && a <= Right
}

// Rewards
const (
	StepReward     int = -1
	ObstacleReward int = -5
	GoalReward     int = 20
)

// MaxResetAttempts bounds the number of cells sampled by Reset before
// giving up
const MaxResetAttempts int = 10_000

var (
	// ErrNotReset is returned when Step is called before Reset
	ErrNotReset = errors.New("gridworld not reset")

	// ErrResetExhausted is returned when Reset cannot find a free cell
	// within MaxResetAttempts samples
	ErrResetExhausted = errors.New("reset attempts exhausted")

	// ErrInvalidAction is returned by strict GridWorlds when an action
	// is not one of Up, Down, Left, or Right
	ErrInvalidAction = errors.New("invalid action")

	// ErrEpisodeOver is returned by strict GridWorlds when Step is
	// called after the goal has been reached
	ErrEpisodeOver = errors.New("episode over")

	// ErrInvalidPosition is returned by Place for out-of-bounds or
	// obstacle cells
	ErrInvalidPosition = errors.New("invalid position")
)

// Info holds extra diagnostic information about a step. It is always
// empty.
type Info map[string]interface{}

// Result is the outcome of a single Step
type Result struct {
	Position Position
	Reward   int
	Done     bool
	Info     Info
}

// Option configures a GridWorld
type Option func(*GridWorld)

// WithSeed seeds the source used to sample starting positions so that
// GridWorlds constructed with the same seed reset to the same sequence
// of positions
func WithSeed(seed uint64) Option {
	return func(g *GridWorld) {
		g.seed = seed
	}
}

// WithLayout sets the dimensions, obstacles, and goal of the GridWorld
func WithLayout(l Layout) Option {
	return func(g *GridWorld) {
		g.layout = l.clone()
	}
}

// WithStrictActions makes Step reject actions outside (0, 1, 2, 3) and
// steps taken after the goal is reached, instead of silently accepting
// them
func WithStrictActions() Option {
	return func(g *GridWorld) {
		g.strict = true
	}
}

// GridWorld is a static gridworld with fixed obstacles and a fixed goal
type GridWorld struct {
	layout    Layout
	obstacles map[Position]struct{}
	seed      uint64
	rng       *rand.Rand
	strict    bool

	position Position
	started  bool
	done     bool
}

// New creates a new GridWorld. Unless configured otherwise, the
// GridWorld uses DefaultLayout() and a seed taken from the clock.
func New(opts ...Option) (*GridWorld, error) {
	g := &GridWorld{
		layout: DefaultLayout(),
		seed:   uint64(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.layout.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	g.obstacles = make(map[Position]struct{}, len(g.layout.Obstacles))
	for _, o := range g.layout.Obstacles {
		g.obstacles[o] = struct{}{}
	}
	g.rng = rand.New(rand.NewSource(g.seed))

	return g, nil
}

// Reset samples a new starting position uniformly over the grid,
// rejecting obstacle and goal cells, and returns it
func (g *GridWorld) Reset() (Position, error) {
	// A failed Reset must not continue the previous episode
	g.started = false
	for i := 0; i < MaxResetAttempts; i++ {
		start := Position{
			Row: g.rng.Intn(g.layout.Rows),
			Col: g.rng.Intn(g.layout.Cols),
		}

		if !g.IsObstacle(start) && start != g.layout.Goal {
			g.position = start
			g.started = true
			g.done = false
			return start, nil
		}
	}

	return Position{}, fmt.Errorf("reset: %w after %d samples",
		ErrResetExhausted, MaxResetAttempts)
}

// Step moves the agent one cell in the direction of action a and
// returns the resulting position, the reward, and whether the goal was
// reached
func (g *GridWorld) Step(a Action) (Result, error) {
	if !g.started {
		return Result{}, fmt.Errorf("step: %w", ErrNotReset)
	}
	if g.strict {
		if !a.Valid() {
			return Result{}, fmt.Errorf("step: %w %d", ErrInvalidAction, a)
		}
		if g.done {
			return Result{}, fmt.Errorf("step: %w", ErrEpisodeOver)
		}
	}

	next := g.move(g.position, a)

	reward := StepReward
	if g.IsObstacle(next) {
		next = g.position
		reward = ObstacleReward
	}
	g.position = next

	if g.position == g.layout.Goal {
		g.done = true
		return Result{g.position, GoalReward, true, Info{}}, nil
	}
	return Result{g.position, reward, false, Info{}}, nil
}

// move returns the cell reached by taking action a from p, ignoring
// obstacles. Moves off the grid and unknown actions leave p unchanged.
func (g *GridWorld) move(p Position, a Action) Position {
	switch a {
	case Up:
		if p.Row > 0 {
			p.Row--
		}
	case Down:
		if p.Row < g.layout.Rows-1 {
			p.Row++
		}
	case Left:
		if p.Col > 0 {
			p.Col--
		}
	case Right:
		if p.Col < g.layout.Cols-1 {
			p.Col++
		}
	}
	return p
}

// Place puts the agent at p, starting an episode there. Out-of-bounds
// and obstacle cells are rejected.
func (g *GridWorld) Place(p Position) error {
	if !g.layout.Contains(p) || g.IsObstacle(p) {
		return fmt.Errorf("place: %w %v", ErrInvalidPosition, p)
	}
	g.position = p
	g.started = true
	g.done = p == g.layout.Goal
	return nil
}

// IsObstacle returns whether p is an obstacle cell
func (g *GridWorld) IsObstacle(p Position) bool {
	_, ok := g.obstacles[p]
	return ok
}

// Position returns the current position of the agent
func (g *GridWorld) Position() Position {
	return g.position
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.layout.Rows, g.layout.Cols
}

// Goal returns the goal cell
func (g *GridWorld) Goal() Position {
	return g.layout.Goal
}

// Obstacles returns a copy of the obstacle cells
func (g *GridWorld) Obstacles() []Position {
	return g.layout.clone().Obstacles
}

// Layout returns a copy of the GridWorld's layout
func (g *GridWorld) Layout() Layout {
	return g.layout.clone()
}

// ActionSpace returns the number of actions
func (g *GridWorld) ActionSpace() int {
	return NumActions
}

// ObservationSpace returns the bounds of observed positions as
// (rows, cols)
func (g *GridWorld) ObservationSpace() (int, int) {
	return g.Dims()
}

// Seed returns the seed of the GridWorld's random source
func (g *GridWorld) Seed() uint64 {
	return g.seed
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: %v  |  Goal: %v  |  Bounds: (%d, %d)"
	return fmt.Sprintf(str, g.position, g.layout.Goal, g.layout.Rows,
		g.layout.Cols)
}
