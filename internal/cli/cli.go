// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package cli implements the legacy, urfave/cli/v2-based command-line
// surface for stepsel. It is kept scriptable and stable for automation
// while internal/cobra carries the modern entry point; both wrap the same
// internal/engine façade.
package cli

import (
	"fmt"
	"os"

	cli "github.com/urfave/cli/v2"

	"github.com/bitjungle/stepsel/internal/version"
)

// AppName is the legacy binary's program name.
const AppName = "stepsel-legacy"

// NewApp creates and configures the CLI application.
func NewApp() *cli.App {
	app := &cli.App{
		Name:    AppName,
		Usage:   "Enhanced stepwise feature selection via beam search and MCPT",
		Version: version.Get().Short(),
		Authors: []*cli.Author{
			{
				Name:  "stepsel maintainers",
				Email: "support@stepsel.example.com",
			},
		},
		Description: `stepsel runs beam-search stepwise feature selection with K-fold
cross-validation and Monte Carlo Permutation Testing (MCPT) significance.

QUICK START:
  Run a selection:        stepsel-legacy run -x x1,x2,x3 -y y data.txt
  Inspect a data file:     stepsel-legacy info data.txt
  Validate before a run:   stepsel-legacy validate -x x1,x2,x3 -y y data.txt

For detailed help on any command, use: stepsel-legacy <command> --help`,
		Commands: []*cli.Command{
			runCommand(),
			validateCommand(),
			infoCommand(),
			versionCommand(),
		},
		Before: func(c *cli.Context) error {
			if c.NArg() == 0 && c.Command.Name == "" {
				_ = cli.ShowAppHelp(c)
				os.Exit(0)
			}
			return nil
		},
		CommandNotFound: func(c *cli.Context, command string) {
			_, _ = fmt.Fprintf(c.App.Writer, "Unknown command '%s'. Try '%s help'\n", command, c.App.Name)
		},
	}

	return app
}

// Run executes the CLI application.
func Run(args []string) error {
	app := NewApp()
	return app.Run(args)
}

// RunWithOSExit runs the CLI and exits with an appropriate status code.
func RunWithOSExit() {
	if err := Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// versionCommand returns the version command.
func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Display version information",
		Action: func(c *cli.Context) error {
			fmt.Println(version.Get().String())
			return nil
		},
	}
}
