package gridworld

import (
	"errors"
	"fmt"
)

const (
	// DefaultSize is the number of rows and columns of the default grid
	DefaultSize int = 10
)

// ErrInvalidLayout is returned when a Layout cannot be used to
// construct a GridWorld
var ErrInvalidLayout = errors.New("invalid layout")

// Position is a (row, col) coordinate in a grid. Row 0 is the top row
// and column 0 is the leftmost column.
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Layout describes the fixed geometry of a GridWorld: its dimensions,
// obstacle cells, and goal cell. A Layout is immutable for the lifetime
// of the GridWorld constructed from it.
type Layout struct {
	Rows, Cols int
	Obstacles  []Position
	Goal       Position
}

// DefaultLayout returns the 10x10 layout with obstacles along the
// diagonal from (1, 1) to (5, 5) and the goal in the bottom-right cell
func DefaultLayout() Layout {
	return Layout{
		Rows: DefaultSize,
		Cols: DefaultSize,
		Obstacles: []Position{
			{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5},
		},
		Goal: Position{DefaultSize - 1, DefaultSize - 1},
	}
}

// Contains returns whether p lies within the bounds of the grid
func (l Layout) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < l.Rows && p.Col >= 0 && p.Col < l.Cols
}

// Validate ensures that the Layout is usable. Obstacles and goal must
// lie in the grid, the goal must not be an obstacle, and at least one
// cell must be free for the agent to start in.
func (l Layout) Validate() error {
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("validate: %w: dimensions (%d, %d) must be "+
			"positive", ErrInvalidLayout, l.Rows, l.Cols)
	}
	if !l.Contains(l.Goal) {
		return fmt.Errorf("validate: %w: goal %v out of bounds",
			ErrInvalidLayout, l.Goal)
	}

	blocked := make(map[Position]struct{}, len(l.Obstacles)+1)
	for _, o := range l.Obstacles {
		if !l.Contains(o) {
			return fmt.Errorf("validate: %w: obstacle %v out of bounds",
				ErrInvalidLayout, o)
		}
		if o == l.Goal {
			return fmt.Errorf("validate: %w: goal %v is an obstacle",
				ErrInvalidLayout, o)
		}
		blocked[o] = struct{}{}
	}
	blocked[l.Goal] = struct{}{}

	if len(blocked) >= l.Rows*l.Cols {
		return fmt.Errorf("validate: %w: no free start cell",
			ErrInvalidLayout)
	}
	return nil
}

// clone returns a deep copy of the Layout so that callers cannot
// mutate a GridWorld's obstacles through a shared slice
func (l Layout) clone() Layout {
	obstacles := make([]Position, len(l.Obstacles))
	copy(obstacles, l.Obstacles)
	l.Obstacles = obstacles
	return l
}
