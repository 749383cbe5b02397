package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/fzmatch/internal/config"
	"github.com/standardbeagle/fzmatch/internal/debug"
	"github.com/standardbeagle/fzmatch/internal/display"
	"github.com/standardbeagle/fzmatch/internal/pipeline"
	"github.com/standardbeagle/fzmatch/internal/source"
)

// runMatch ranks candidates and writes them to the app's writer
func runMatch(ctx context.Context, c *cli.Context, cfg *config.Config, query string, candidates []string) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	start := time.Now()
	presented, err := pipeline.FuzzyMatch(ctx, query, candidates, opts)
	if err != nil {
		return err
	}
	debug.Log("CLI", "%q: %d/%d matched in %v\n", query, presented.Len(), len(candidates), time.Since(start))

	format := display.FormatText
	if c.Bool("json") {
		format = display.FormatJSON
	}
	color := format == display.FormatText && display.ShouldColor(c.App.Writer)
	formatter := display.NewResultFormatter(display.FormatterOptions{
		Format:     format,
		Color:      color,
		ShowScores: c.Bool("scores"),
		// icon glyphs only help a terminal; piped text output gets plain lines
		StripIcons: opts.EnableIcon && !color,
	})
	return formatter.Write(c.App.Writer, presented.Head(cfg.Match.Limit))
}

func filterCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	query := queryArg(c)
	input := c.String("input")

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func() error {
		var (
			candidates []string
			err        error
		)
		if input != "" {
			candidates, err = source.ReadFile(input, cfg.Match.Dedup)
		} else {
			candidates, err = source.ReadLines(c.App.Reader, cfg.Match.Dedup)
		}
		if err != nil {
			return err
		}
		return runMatch(ctx, c, cfg, query, candidates)
	}

	if !c.Bool("watch") {
		return run()
	}
	if input == "" {
		return errors.New("--watch requires --input")
	}

	if err := run(); err != nil {
		return err
	}
	debounce := time.Duration(cfg.Performance.WatchDebounceMs) * time.Millisecond
	return source.Watch(ctx, input, debounce, func() {
		if err := run(); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "Error: %v\n", err)
		}
	})
}

func filesCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cfg.Files.Root
	candidates, err := source.WalkFiles(ctx, root, source.WalkOptions{
		Include:   cfg.Files.Include,
		Exclude:   cfg.FileExclusions(root),
		Gitignore: cfg.Files.RespectGitignore,
		Icons:     cfg.Match.EnableIcon,
	})
	if err != nil {
		return err
	}
	debug.Log("CLI", "%d files under %s\n", len(candidates), root)

	return runMatch(ctx, c, cfg, queryArg(c), candidates)
}
