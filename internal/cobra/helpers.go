// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cobra

import (
	"fmt"
	"strings"

	"github.com/bitjungle/stepsel/internal/ingest"
	"github.com/bitjungle/stepsel/internal/utils"
)

// splitColumns splits a comma-separated flag value into trimmed,
// non-empty column names.
func splitColumns(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// resolveFeatureColumns honors --features if given, else resolves
// --feature-cols against the file's header, else fails: exactly one of the
// two selection modes must be used.
func resolveFeatureColumns(path, features, featureCols string) ([]string, error) {
	if features != "" {
		return splitColumns(features), nil
	}
	if featureCols == "" {
		return nil, fmt.Errorf("one of --features or --feature-cols is required")
	}
	header, err := ingest.HeaderColumns(path)
	if err != nil {
		return nil, err
	}
	return utils.ColumnsFromRanges(header, featureCols)
}
