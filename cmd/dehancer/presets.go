package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/halide-labs/dehancer-cli/pkg/preset"
)

func runPresets(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("presets", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s presets [flags]\n\nList available film presets.\n\nFlags:\n", appName)
		fs.PrintDefaults()
	}
	refresh := fs.Bool("refresh", false, "refetch presets even when the cached list is still fresh")
	logs := logsFlag(fs)
	_ = fs.Parse(args)

	setupLogging(*logs)

	a, err := newApp()
	if err != nil {
		return err
	}

	presets, err := a.client.AvailablePresets(ctx, *refresh)
	if err != nil {
		return err
	}

	fmt.Println("The next presets are available:")
	fmt.Print(presetTable(presets))

	return nil
}

// presetTable renders the numbered preset list. Captions are padded by
// display width so creator names line up even with wide characters.
func presetTable(presets []preset.Preset) string {
	captionWidth := 0
	for _, p := range presets {
		if w := runewidth.StringWidth(p.Caption); w > captionWidth {
			captionWidth = w
		}
	}

	var sb strings.Builder
	for i, p := range presets {
		idx := indexStyle.Render(fmt.Sprintf("[%3d]", i+1))
		caption := captionStyle.Render(runewidth.FillRight(p.Caption, captionWidth))

		sb.WriteString(idx)
		sb.WriteString("  ")
		sb.WriteString(caption)
		if p.Creator != "" {
			sb.WriteString("  ")
			sb.WriteString(creatorStyle.Render(p.Creator))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
