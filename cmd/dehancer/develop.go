package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/halide-labs/dehancer-cli/pkg/dehancer"
	"github.com/halide-labs/dehancer-cli/pkg/quality"
	"github.com/halide-labs/dehancer-cli/pkg/settings"
)

// settingFlags maps the develop command's parameter flags to catalog names.
// Each entry registers a long flag and, when non-empty, a short alias. The
// flags are strings so effects can be set to "Off" on the command line.
var settingFlags = []struct {
	long  string
	short string
	name  string
}{
	{"set_exposure", "e", settings.NameExposure},
	{"set_contrast", "c", settings.NameContrast},
	{"set_temperature", "t", settings.NameTemperature},
	{"set_tint", "i", settings.NameTint},
	{"set_color_boost", "cb", settings.NameColorBoost},
	{"set_grain", "g", settings.NameGrain},
	{"set_bloom", "b", settings.NameBloom},
	{"set_halation", "", settings.NameHalation},
	{"set_vignette_exposure", "v_e", settings.NameVignetteExposure},
	{"set_vignette_size", "v_s", settings.NameVignetteSize},
	{"set_vignette_feather", "v_f", settings.NameVignetteFeather},
}

func runDevelop(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("develop", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s develop [flags] <image-or-directory>\n\nDevelop images with a film preset and settings, downloading the results.\n\nFlags:\n", appName)
		fs.PrintDefaults()
	}

	presetNumber := fs.Int("preset", 0, "preset number as shown by the presets command (required)")
	fs.IntVar(presetNumber, "p", 0, "shorthand for --preset")
	qualityLabel := fs.String("quality", "low", "image quality level: low, medium, high")
	fs.StringVar(qualityLabel, "q", "low", "shorthand for --quality")
	settingsPath := fs.String("settings_file", "", "YAML settings file")
	fs.StringVar(settingsPath, "settings", "", "shorthand for --settings_file")
	logs := logsFlag(fs)

	flagValues := make([]*string, len(settingFlags))
	for i, sf := range settingFlags {
		flagValues[i] = fs.String(sf.long, "", sf.name+" setting")
		if sf.short != "" {
			fs.StringVar(flagValues[i], sf.short, "", "shorthand for --"+sf.long)
		}
	}

	_ = fs.Parse(args)

	setupLogging(*logs)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("develop: expected exactly one image or directory path")
	}
	path := fs.Arg(0)

	if *presetNumber < 1 {
		return fmt.Errorf("develop: --preset is required and must be positive")
	}

	level, err := quality.ParseLevel(*qualityLabel)
	if err != nil {
		var uerr *quality.UnknownLevelError
		if !errors.As(err, &uerr) {
			return err
		}
		fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf("Unknown quality level '%s'. Default '%s' is used instead.", *qualityLabel, quality.Low)))
		level = quality.Low
	}

	var file *settings.File
	if *settingsPath != "" {
		file, err = settings.LoadFile(*settingsPath)
		if err != nil {
			return err
		}
	}

	overrides, err := parseOverrides(flagValues)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	presets, err := a.client.AvailablePresets(ctx, false)
	if err != nil {
		return err
	}
	if *presetNumber > len(presets) {
		return fmt.Errorf("develop: preset number %d is out of range (1-%d)", *presetNumber, len(presets))
	}
	chosen := presets[*presetNumber-1]

	resolved, err := settings.Resolve(chosen.EffectsDefaults(), file, overrides)
	if err != nil {
		return err
	}

	printDevelopHeader(a, path, chosen.Caption, level, resolved)

	results, err := a.client.DevelopBatch(ctx, path, dehancer.DevelopOptions{
		Preset:   chosen,
		Settings: resolved,
		Quality:  level,
		Progress: progressPrinter(os.Stderr),
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("'%s' : %s\n", r.Path, errorStyle.Render(r.Err.Error()))
			continue
		}
		fmt.Printf("'%s' -> %s\n", r.Path, successStyle.Render(r.Output))
	}

	if failed > 0 {
		return fmt.Errorf("develop: %d of %d images failed", failed, len(results))
	}

	return nil
}

// parseOverrides converts the raw flag strings into resolver overrides.
// Unset flags (empty strings) contribute nothing.
func parseOverrides(flagValues []*string) (settings.Overrides, error) {
	overrides := settings.Overrides{}

	for i, sf := range settingFlags {
		raw := *flagValues[i]
		if raw == "" {
			continue
		}

		v, err := settings.ParseFor(sf.name, raw)
		if err != nil {
			return nil, fmt.Errorf("develop: --%s: %w", sf.long, err)
		}

		overrides[sf.name] = v
	}

	return overrides, nil
}

// printDevelopHeader echoes what is about to happen: source, preset, quality
// (only meaningful when an export will run), and the resolved settings.
func printDevelopHeader(a *app, path, caption string, level quality.Level, resolved settings.Settings) {
	fmt.Printf("Develop '%s'\n", path)
	fmt.Printf("  - Preset: '%s'\n", caption)
	if a.client.IsAuthorized() {
		fmt.Printf("  - Quality: '%s'\n", level)
	} else {
		fmt.Println(warnStyle.Render("  - Not logged in: watermarked JPEG render, quality level ignored."))
	}
	fmt.Printf("  - Settings (adjustments): %s\n", dimStyle.Render(resolved.AdjustmentsString()))
	fmt.Printf("  - Settings (effects): %s\n", dimStyle.Render(resolved.EffectsString()))
}
