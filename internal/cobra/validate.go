// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cobra

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bitjungle/stepsel/internal/ingest"
)

// NewValidateCommand creates the validate subcommand.
func NewValidateCommand() *cobra.Command {
	var features, featureCols, target string

	cmd := &cobra.Command{
		Use:   "validate <data-file>",
		Short: "Check that a data file carries the requested columns and enough valid cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			featureNames, err := resolveFeatureColumns(args[0], features, featureCols)
			if err != nil {
				return err
			}
			loaded, err := ingest.LoadSpaceSeparatedFile(args[0], featureNames, target, nil)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Printf("OK: %s\n", args[0])
			fmt.Printf("  features: %v\n", featureNames)
			fmt.Printf("  target:   %s\n", target)
			fmt.Printf("  cases loaded: %d / %d\n", loaded.NCasesLoaded, loaded.NCasesTotal)
			if loaded.NCasesLoaded < loaded.NCasesTotal {
				skipped := loaded.NCasesTotal - loaded.NCasesLoaded
				fmt.Printf("  warning: %d row(s) skipped for missing or non-numeric fields\n", skipped)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&features, "features", "x", "", "comma-separated candidate feature column names")
	flags.StringVar(&featureCols, "feature-cols", "", "1-based column ranges into the header, e.g. \"1-3,5\" (alternative to --features)")
	flags.StringVarP(&target, "target", "y", "", "target column name (required)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
