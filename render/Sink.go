package render

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"

	"github.com/samuelfneumann/gridlearn/environment/gridworld"
)

// Frame is a single drawn frame together with the scene it shows
type Frame struct {
	Image image.Image
	Scene Scene
	Title string
}

// Sink is a display surface for frames
type Sink interface {
	// Open acquires the surface for frames of the given size
	Open(width, height int) error

	// Show displays a frame
	Show(Frame) error

	// Close releases the surface
	Close() error
}

// PNGSink saves each frame as a numbered PNG file in a directory
type PNGSink struct {
	dir    string
	prefix string
	frames int
}

// NewPNGSink returns a PNGSink which writes files named
// <prefix><number>.png to dir
func NewPNGSink(dir, prefix string) *PNGSink {
	return &PNGSink{dir: dir, prefix: prefix}
}

// Open creates the output directory
func (p *PNGSink) Open(width, height int) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("open: %w", err)
	}
	return nil
}

// Show saves the frame to the next numbered file
func (p *PNGSink) Show(f Frame) error {
	filename := filepath.Join(p.dir, fmt.Sprintf("%s%05d.png", p.prefix,
		p.frames))
	if err := gg.SavePNG(filename, f.Image); err != nil {
		return fmt.Errorf("show: %w", err)
	}
	p.frames++
	return nil
}

// Close does nothing. Numbering continues if the sink is reopened.
func (p *PNGSink) Close() error {
	return nil
}

// Frames returns the number of frames saved
func (p *PNGSink) Frames() int {
	return p.frames
}

// TerminalSink prints each frame as a text grid, with the agent as A,
// the goal as G, and obstacles as #
type TerminalSink struct {
	w  io.Writer
	au aurora.Aurora
}

// NewTerminalSink returns a TerminalSink writing to w. ANSI colours are
// used if colors is true.
func NewTerminalSink(w io.Writer, colors bool) *TerminalSink {
	return &TerminalSink{w: w, au: aurora.NewAurora(colors)}
}

// Open does nothing
func (t *TerminalSink) Open(width, height int) error {
	return nil
}

// Show prints the frame's title followed by its grid
func (t *TerminalSink) Show(f Frame) error {
	var b strings.Builder
	fmt.Fprintln(&b, t.au.Bold(f.Title))

	rows, cols := f.Scene.Dims()
	obstacles := make(map[gridworld.Position]bool)
	for _, o := range f.Scene.Obstacles() {
		obstacles[o] = true
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := gridworld.Position{Row: r, Col: c}
			switch {
			case p == f.Scene.Position():
				fmt.Fprint(&b, t.au.Green("A"))
			case p == f.Scene.Goal():
				fmt.Fprint(&b, t.au.Yellow("G"))
			case obstacles[p]:
				fmt.Fprint(&b, t.au.Red("#"))
			default:
				fmt.Fprint(&b, t.au.Gray(12, "."))
			}
			if c < cols-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(t.w, b.String()); err != nil {
		return fmt.Errorf("show: %w", err)
	}
	return nil
}

// Close does nothing
func (t *TerminalSink) Close() error {
	return nil
}
