// Command dehancer is an unofficial CLI for the Dehancer Online service. It
// lists film presets, creates contact sheets, and develops images with a
// chosen preset and settings, downloading the results locally.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/halide-labs/dehancer-cli/pkg/settings"
)

const appName = "dehancer"

// version is stamped at release time via -ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd, args := os.Args[1], os.Args[2:]

	var err error

	switch cmd {
	case "presets":
		err = runPresets(ctx, args)
	case "contacts":
		err = runContacts(ctx, args)
	case "develop":
		err = runDevelop(ctx, args)
	case "auth":
		err = runAuth(ctx, args)
	case "clear-cache":
		err = runClearCache(args)
	case "web-ext":
		err = runWebExt(args)
	case "guide":
		err = runGuide(args)
	case "version", "--version":
		fmt.Printf("%s %s\n", appName, version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		var verr *settings.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "error: %v\n", verr)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [flags]

Unofficial CLI for the Dehancer Online film emulation service.

Commands:
  presets      List available film presets
  contacts     Create a contact sheet for an image with every preset
  develop      Develop an image (or a directory of images) with a preset
  auth         Log in to remove the watermark from developed images
  clear-cache  Delete all cached data (presets, auth session)
  web-ext      Copy the browser-console settings script to the clipboard
  guide        Show the user guide
  version      Print the version

Run "%s <command> --help" for command flags.
`, appName, appName)
}
