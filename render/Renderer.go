// Package render draws frames of a gridworld and delivers them to a
// Sink, which acts as the display surface.
//
// A Renderer has two states. It starts Uninitialized; the first call to
// Render loads the sprites and opens the Sink, making it Active. Close
// releases the Sink and returns the Renderer to Uninitialized, after
// which Render may be called again. Rendering is optional: nothing in
// the gridworld depends on it.
package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/samuelfneumann/gridlearn/environment/gridworld"
)

// ErrClosed is returned by Render after the close signal fires
var ErrClosed = errors.New("renderer closed")

// Scene is the read-only view of a gridworld needed to draw it
type Scene interface {
	Dims() (r, c int)
	Obstacles() []gridworld.Position
	Goal() gridworld.Position
	Position() gridworld.Position
}

// Options describe the overlay and pacing of a single frame
type Options struct {
	// Delay is slept after each frame
	Delay time.Duration

	// Episode is the 0-based episode number, displayed 1-based
	Episode int

	// LearningType labels the learning algorithm, e.g. "Q-learning"
	LearningType string

	// Availability and Accuracy of the advisor, displayed only when
	// both are non-nil
	Availability *float64
	Accuracy     *float64
}

// State is the lifecycle state of a Renderer
type State int

const (
	Uninitialized State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "Active"
	}
	return "Uninitialized"
}

// Option configures a Renderer
type Option func(*Renderer)

// WithAssetDir sets the directory holding agent.png, goal.png, and
// obstacle.png
func WithAssetDir(dir string) Option {
	return func(r *Renderer) {
		r.assetDir = dir
	}
}

// WithCloseSignal sets a channel which models the user closing the
// display. Once it is closed or receives a value, the next call to
// Render closes the Renderer and returns ErrClosed.
func WithCloseSignal(c <-chan struct{}) Option {
	return func(r *Renderer) {
		r.closeSignal = c
	}
}

// Renderer draws gridworld frames and shows them on a Sink
type Renderer struct {
	sink        Sink
	assetDir    string
	closeSignal <-chan struct{}

	state   State
	sprites Sprites
	frames  int
}

// New returns a new, Uninitialized Renderer which shows frames on sink
func New(sink Sink, opts ...Option) *Renderer {
	r := &Renderer{
		sink:     sink,
		assetDir: DefaultAssetDir,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the scene with overlay o and shows it on the Sink,
// initializing the Renderer first if needed
func (r *Renderer) Render(s Scene, o Options) error {
	select {
	case <-r.closeSignal:
		if err := r.Close(); err != nil {
			return fmt.Errorf("render: %v: %w", err, ErrClosed)
		}
		return fmt.Errorf("render: %w", ErrClosed)
	default:
	}

	if r.state == Uninitialized {
		if err := r.init(s); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	frame := Frame{
		Image: DrawFrame(s, o, r.sprites),
		Scene: s,
		Title: Title(o),
	}
	if err := r.sink.Show(frame); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	r.frames++

	if o.Delay > 0 {
		time.Sleep(o.Delay)
	}
	return nil
}

// init loads the sprites and opens the Sink
func (r *Renderer) init(s Scene) error {
	sprites, err := LoadSprites(r.assetDir)
	if err != nil {
		return err
	}

	rows, cols := s.Dims()
	if err := r.sink.Open(cols*CellSize, rows*CellSize+TitleBarHeight); err != nil {
		return err
	}

	r.sprites = sprites
	r.state = Active
	return nil
}

// Close releases the Sink. Closing an Uninitialized Renderer does
// nothing.
func (r *Renderer) Close() error {
	if r.state == Uninitialized {
		return nil
	}
	r.state = Uninitialized
	r.sprites = Sprites{}
	return r.sink.Close()
}

// State returns the lifecycle state of the Renderer
func (r *Renderer) State() State {
	return r.state
}

// Frames returns the number of frames shown
func (r *Renderer) Frames() int {
	return r.frames
}
