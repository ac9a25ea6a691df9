package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

func runAuth(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("auth", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s auth [flags] <email>\n\nLog in to Dehancer Online. A successful login removes the watermark from developed images.\n\nFlags:\n", appName)
		fs.PrintDefaults()
	}
	logs := logsFlag(fs)
	_ = fs.Parse(args)

	setupLogging(*logs)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("auth: expected exactly one email address")
	}
	email := fs.Arg(0)

	var password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Password").
			Description("Password for "+email).
			EchoMode(huh.EchoModePassword).
			Value(&password),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	ok, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("auth: login failed, check the email and password")
	}

	fmt.Println(successStyle.Render("Logged in. Developed images will no longer carry a watermark."))

	return nil
}
