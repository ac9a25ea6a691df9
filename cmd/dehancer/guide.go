package main

import (
	_ "embed"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

//go:embed guide.md
var guideMarkdown string

func runGuide(args []string) error {
	fs := flag.NewFlagSet("guide", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s guide\n\nShow the user guide.\n", appName)
	}
	logs := logsFlag(fs)
	_ = fs.Parse(args)

	setupLogging(*logs)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		// No styled renderer, fall back to the raw markdown.
		fmt.Println(guideMarkdown)
		return nil
	}

	out, err := r.Render(guideMarkdown)
	if err != nil {
		fmt.Println(guideMarkdown)
		return nil
	}

	fmt.Print(out)

	return nil
}
