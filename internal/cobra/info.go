// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cobra

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bitjungle/stepsel/internal/ingest"
)

// NewInfoCommand creates the info subcommand.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <data-file>",
		Short: "List the column names in a data file's header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, err := ingest.HeaderColumns(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%d columns: %s\n", len(cols), strings.Join(cols, ", "))
			return nil
		},
	}
}
