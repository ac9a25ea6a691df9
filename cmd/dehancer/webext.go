package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/atotto/clipboard"

	"github.com/halide-labs/dehancer-cli/pkg/webext"
)

// fallbackScriptFile receives the script when no clipboard mechanism is
// available on the system.
const fallbackScriptFile = "web-extension-script.txt"

func runWebExt(args []string) error {
	fs := flag.NewFlagSet("web-ext", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s web-ext [flags]\n\nCopy the browser-console script that extracts settings from the Dehancer web editor.\n\nFlags:\n", appName)
		fs.PrintDefaults()
	}
	logs := logsFlag(fs)
	_ = fs.Parse(args)

	setupLogging(*logs)

	content, err := webext.Content()
	if err != nil {
		return err
	}

	if cerr := clipboard.WriteAll(content); cerr != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render("Web extension script wasn't copied due to an error with the copy/paste mechanism for your system.\n"+
			"On Linux, `sudo apt-get install xclip` or `sudo apt-get install xsel` installs one."))

		if werr := os.WriteFile(fallbackScriptFile, []byte(content), 0o644); werr != nil { //nolint:gosec // script content, not secret
			return fmt.Errorf("web-ext: write fallback file: %w", werr)
		}

		fmt.Printf("Web extension script, as a workaround, written to file '%s'.\n", fallbackScriptFile)
		return nil
	}

	fmt.Println(successStyle.Render("Web extension script copied into clipboard!"))

	return nil
}
