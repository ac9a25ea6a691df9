package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/halide-labs/dehancer-cli/pkg/dehancer"
)

func runContacts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("contacts", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s contacts [flags] <image>\n\nRender the image with every available preset at contact size and download the results.\n\nFlags:\n", appName)
		fs.PrintDefaults()
	}
	logs := logsFlag(fs)
	_ = fs.Parse(args)

	setupLogging(*logs)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("contacts: expected exactly one image path")
	}
	path := fs.Arg(0)

	a, err := newApp()
	if err != nil {
		return err
	}

	fmt.Printf("Create contacts for the image '%s':\n", path)
	if !a.client.IsAuthorized() {
		fmt.Println(warnStyle.Render("Not logged in; contacts will carry a watermark. Run `" + appName + " auth <email>` to remove it."))
	}

	outDir := dehancer.OutputDir

	results, err := a.client.CreateContacts(ctx, path, dehancer.ContactsOptions{
		OutputDir: outDir,
		Progress:  progressPrinter(os.Stderr),
	})
	if err != nil {
		return err
	}

	failed := 0
	for i, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("%d. '%s' : %s\n", i+1, r.Caption, errorStyle.Render(r.Err.Error()))
			continue
		}
		fmt.Printf("%d. '%s' : %s\n", i+1, r.Caption, urlStyle.Render(r.URL))
	}

	fmt.Println(successStyle.Render(contactsSummary(len(results)-failed, len(results), outDir)))

	return nil
}

// contactsSummary reports how much of the sheet made it to disk, naming the
// directory the run actually wrote to.
func contactsSummary(downloaded, total int, outDir string) string {
	return fmt.Sprintf("Downloaded %d of %d contacts to %s/", downloaded, total, outDir)
}
