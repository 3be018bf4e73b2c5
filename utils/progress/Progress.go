// Package progress implements functionality of printing a progress
// bar to the terminal window
package progress

import (
	"fmt"
	"io"
	"strings"
)

// Bar implements a progress bar written to an io.Writer. Each call to
// Increment advances the bar until maxProgress increments have been
// recorded, at which point the bar reports 100%.
//
// The bar writes synchronously on each increment. Writing to anything
// other than a terminal still works: each update is a carriage-return
// terminated line.
type Bar struct {
	// width determines the number of characters wide that the
	// progress bar should be
	width int

	// maxProgress determines the number of times Increment() should
	// be called before the progress bar reaches 100%
	maxProgress int

	currentProgress int
	out             io.Writer
}

// NewBar returns a new progress bar that is width characters wide and
// reaches 100% capacity after max Increment() calls
func NewBar(width, max int, out io.Writer) *Bar {
	return &Bar{width: width, maxProgress: max, out: out}
}

// Increment increments the internal progress counter and redraws the
// bar. Each time an iteration is performed, Increment should be
// called.
func (b *Bar) Increment() {
	if b.currentProgress < b.maxProgress {
		b.currentProgress++
	}
	b.display()
}

// Close finishes the bar's line of output
func (b *Bar) Close() {
	fmt.Fprintln(b.out)
}

// display redraws the progress bar on the current line
func (b *Bar) display() {
	fraction := float64(b.currentProgress) / float64(b.maxProgress)
	filled := int(fraction * float64(b.width))

	bar := strings.Repeat("=", filled)
	if filled < b.width {
		bar += ">" + strings.Repeat(" ", b.width-filled-1)
	}

	fmt.Fprintf(b.out, "\r[%s] %3.0f%%", bar, fraction*100)
}
