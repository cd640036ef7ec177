// Package progressbar implements functionality of printing a progress
// bar to a terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressBar implements progress bar functionality that must be
// manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed.
//
// ProgressBar does not use concurrency.
type ProgressBar struct {
	out             io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	startTime       time.Time
}

// New returns a new ProgressBar that is width characters wide, writes
// to out, and reaches 100% after max calls to Increment
func New(out io.Writer, width, max int) *ProgressBar {
	if width <= 0 || max <= 0 {
		panic(fmt.Sprintf("new: width and max must be positive, "+
			"got %d and %d", width, max))
	}
	return &ProgressBar{
		out:         out,
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Progress returns the fraction of iterations completed
func (p *ProgressBar) Progress() float64 {
	return p.currentProgress / p.maxProgress
}

// Done returns whether the progress bar has reached 100%
func (p *ProgressBar) Done() bool {
	return p.currentProgress >= p.maxProgress
}

// String returns the bar and its percentage without the elapsed time
func (p *ProgressBar) String() string {
	var bar strings.Builder
	bar.WriteString("|")

	currentProg := p.Progress() * p.width
	for i := 0.0; i < currentProg; i++ {
		bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		bar.WriteString(" ")
	}
	bar.WriteString(fmt.Sprintf("| [%.2f%%]", p.Progress()*100))
	return bar.String()
}

// Display overwrites the current terminal line with the progress bar
// and the time elapsed since it was created
func (p *ProgressBar) Display() error {
	elapsed := time.Since(p.startTime).Truncate(time.Second)
	line := strings.TrimSuffix(p.String(), "]") +
		fmt.Sprintf(" | elapsed: %v]", elapsed)

	_, err := fmt.Fprintf(p.out, "\n\033[1A\033[K%v", line)
	return err
}

// Close moves the output to the next line
func (p *ProgressBar) Close() error {
	_, err := fmt.Fprintln(p.out)
	return err
}
