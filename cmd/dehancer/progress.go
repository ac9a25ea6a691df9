package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

// progressPrinter renders a single-line progress bar that redraws in place.
// The bubbles model is used statically via ViewAs; no interactive program is
// needed for a batch that just counts up.
func progressPrinter(w io.Writer) func(done, total int) {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	return func(done, total int) {
		if total <= 0 {
			return
		}

		fmt.Fprintf(w, "\r%s %d/%d", bar.ViewAs(float64(done)/float64(total)), done, total)

		if done >= total {
			fmt.Fprintln(w)
		}
	}
}
