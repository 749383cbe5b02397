package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/fzmatch/internal/config"
	"github.com/standardbeagle/fzmatch/internal/debug"
	"github.com/standardbeagle/fzmatch/internal/version"
)

// matchFlags are shared by every command that ranks candidates
func matchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "width",
			Aliases: []string{"w"},
			Usage:   "Display width in columns; 0 disables truncation (overrides config)",
		},
		&cli.BoolFlag{
			Name:  "icon",
			Usage: "Candidates carry a file-type icon prefix",
		},
		&cli.StringFlag{
			Name:    "line-splitter",
			Aliases: []string{"s"},
			Usage:   "Part of each line fuzzy queries see: Full, TagNameOnly, FileNameOnly, GrepExcludeFilePath",
		},
		&cli.StringFlag{
			Name:    "algo",
			Aliases: []string{"a"},
			Usage:   "Fuzzy algorithm for space-free queries: fzf, sahilm, jaro-winkler",
		},
		&cli.BoolFlag{
			Name:  "dedup",
			Usage: "Drop repeated candidates before ranking",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Show at most this many rows; 0 shows all",
		},
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Output indices, lines and truncated_map as JSON",
		},
		&cli.BoolFlag{
			Name:  "scores",
			Usage: "Prefix each row with its score",
		},
	}
}

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	rootFlag := c.String("root")

	cfg, err := config.LoadWithRoot(configPath, rootFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if c.IsSet("width") {
		cfg.Match.Width = c.Int("width")
	}
	if c.IsSet("icon") {
		cfg.Match.EnableIcon = c.Bool("icon")
	}
	if c.IsSet("line-splitter") {
		cfg.Match.LineSplitter = c.String("line-splitter")
	}
	if c.IsSet("algo") {
		cfg.Match.Algo = c.String("algo")
	}
	if c.IsSet("dedup") {
		cfg.Match.Dedup = c.Bool("dedup")
	}
	if c.IsSet("limit") {
		cfg.Match.Limit = c.Int("limit")
	}
	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Files.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Files.Exclude = config.DeduplicatePatterns(append(cfg.Files.Exclude, excludeFlags...))
	}
	if c.IsSet("no-gitignore") {
		cfg.Files.RespectGitignore = !c.Bool("no-gitignore")
	}
	if rootFlag != "" {
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", rootFlag, err)
		}
		cfg.Files.Root = absRoot
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// queryArg joins the positional arguments so an unquoted multi-term query
// still reaches the substring matcher.
func queryArg(c *cli.Context) string {
	return strings.Join(c.Args().Slice(), " ")
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "fzmatch",
		Usage:                  "Rank candidate lines against a query and shorten them for display",
		Version:                version.Info(),
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.kdl or .toml)",
				Value:   config.KDLFileName,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Write debug output to stderr",
			},
			&cli.BoolFlag{
				Name:   "debug-log",
				Usage:  "Write debug output to a file in the temp directory",
				Hidden: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "filter",
				Aliases:   []string{"f"},
				Usage:     "Rank lines read from --input or stdin",
				ArgsUsage: "QUERY",
				Flags: append(matchFlags(),
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Read candidates from this file instead of stdin",
					},
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Re-run whenever --input changes",
					},
				),
				Action: filterCommand,
			},
			{
				Name:      "files",
				Usage:     "Rank the file paths under a directory",
				ArgsUsage: "QUERY",
				Flags: append(matchFlags(),
					&cli.StringFlag{
						Name:    "root",
						Aliases: []string{"r"},
						Usage:   "Directory to walk (overrides config)",
					},
					&cli.StringSliceFlag{
						Name:  "include",
						Usage: "Only offer files matching these glob patterns (e.g., --include '**/*.go')",
					},
					&cli.StringSliceFlag{
						Name:  "exclude",
						Usage: "Skip files matching these glob patterns (e.g., --exclude '**/vendor/**')",
					},
					&cli.BoolFlag{
						Name:  "no-gitignore",
						Usage: "Offer files listed in .gitignore",
					},
				),
				Action: filesCommand,
			},
			{
				Name:  "version",
				Usage: "Print version and build information",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, version.FullInfo())
					fmt.Fprintf(c.App.Writer, "build id: %s\n", version.BuildID())
					return nil
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the fuzzy_match tool over stdio (Model Context Protocol)",
				Action: mcpCommand,
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug-log") {
				path, err := debug.InitDebugLogFile()
				if err != nil {
					return err
				}
				debug.EnableDebug = "true"
				fmt.Fprintf(c.App.ErrWriter, "Debug log: %s\n", path)
			} else if c.Bool("verbose") {
				debug.SetDebugOutput(c.App.ErrWriter)
				debug.EnableDebug = "true"
			}
			return nil
		},
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
