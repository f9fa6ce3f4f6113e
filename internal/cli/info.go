// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cli

import (
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v2"

	"github.com/bitjungle/stepsel/internal/ingest"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "List the column names in a data file's header",
		ArgsUsage: "<data-file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one data file argument", 1)
			}
			cols, err := ingest.HeaderColumns(c.Args().First())
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Printf("%d columns: %s\n", len(cols), strings.Join(cols, ", "))
			return nil
		},
	}
}
