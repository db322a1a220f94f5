package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/ping13/star-collector/app/cfg"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context, args []string) error {
	var opts cfg.Options

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.SubcommandsOptional = true
	parser.LongDescription = "Collects Mastodon favourites and bookmarks, merges them with external feeds " +
		"and writes a single RSS document."

	if _, err := parser.AddCommand("generate", "Generate the feed (default)",
		"Collect every source once and write the RSS document.",
		&generateCommand{opts: &opts, ctx: ctx}); err != nil {
		return err
	}
	if _, err := parser.AddCommand("validate", "Validate an RSS document",
		"Parse a feed file and report whether it is well-formed.",
		&validateCommand{opts: &opts}); err != nil {
		return err
	}
	if _, err := parser.AddCommand("serve", "Serve the generated feed over HTTP",
		"Collect every source once and serve the resulting document until interrupted.",
		&serveCommand{opts: &opts, ctx: ctx}); err != nil {
		return err
	}

	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	if parser.Active == nil {
		return (&generateCommand{opts: &opts, ctx: ctx}).Execute(nil)
	}

	return nil
}

func exitCode(err error) int {
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		fmt.Fprintln(os.Stdout, flagsErr.Message)
		return 0
	}

	if !errors.Is(err, errInvalidFeed) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return 1
}
