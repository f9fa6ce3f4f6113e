// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cli

import (
	"fmt"

	cli "github.com/urfave/cli/v2"

	"github.com/bitjungle/stepsel/internal/ingest"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check that a data file carries the requested feature and target columns and enough valid cases",
		ArgsUsage: "<data-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "features", Aliases: []string{"x"}, Usage: "comma-separated candidate feature column names"},
			&cli.StringFlag{Name: "feature-cols", Usage: "1-based column ranges into the header, e.g. \"1-3,5\" (alternative to --features)"},
			&cli.StringFlag{Name: "target", Aliases: []string{"y"}, Required: true, Usage: "target column name"},
		},
		Action: validateAction,
	}
}

func validateAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one data file argument", 1)
	}
	path := c.Args().First()
	featureNames, err := resolveFeatureColumns(path, c.String("features"), c.String("feature-cols"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	targetName := c.String("target")

	loaded, err := ingest.LoadSpaceSeparatedFile(path, featureNames, targetName, nil)
	if err != nil {
		return cli.Exit(fmt.Sprintf("validation failed: %v", err), 1)
	}

	fmt.Printf("OK: %s\n", path)
	fmt.Printf("  features: %v\n", featureNames)
	fmt.Printf("  target:   %s\n", targetName)
	fmt.Printf("  cases loaded: %d / %d\n", loaded.NCasesLoaded, loaded.NCasesTotal)
	if loaded.NCasesLoaded < loaded.NCasesTotal {
		skipped := loaded.NCasesTotal - loaded.NCasesLoaded
		fmt.Printf("  warning: %d row(s) skipped for missing or non-numeric fields\n", skipped)
	}
	return nil
}
