// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package cobra implements the primary, spf13/cobra-based command-line
// surface for stepsel.
package cobra

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stepsel",
		Short: "Enhanced stepwise feature selection",
		Long: `stepsel runs beam-search stepwise feature selection over a whitespace
-delimited data file, scoring every candidate feature set by K-fold
cross-validation and attaching Monte Carlo Permutation Testing (MCPT)
significance to each step's winner.

Features:
  - Pluggable regression model (linear-quadratic closed form, or
    gradient-boosted trees)
  - Complete or cyclic MCPT permutation schemes
  - Table or JSON reporting`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(
		NewRunCommand(),
		NewValidateCommand(),
		NewInfoCommand(),
		NewVersionCommand(),
		NewCompletionCommand(rootCmd),
	)

	return rootCmd
}

// Execute runs the CLI application.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
