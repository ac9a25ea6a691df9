package main

import (
	"flag"
	"fmt"
	"os"
)

func runClearCache(args []string) error {
	fs := flag.NewFlagSet("clear-cache", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s clear-cache [flags]\n\nDelete all cached data: the preset list and the auth session.\n\nFlags:\n", appName)
		fs.PrintDefaults()
	}
	logs := logsFlag(fs)
	_ = fs.Parse(args)

	setupLogging(*logs)

	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.cache.Clear(); err != nil {
		return err
	}

	fmt.Println("Cache cleared.")

	return nil
}
