// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package utils holds small CLI-facing parsing helpers shared by both
// command-line surfaces.
package utils

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseRanges parses a comma-separated string of indices and ranges into a slice of integers.
// Examples:
//   - "1,3,5" returns [1, 3, 5]
//   - "1-3,5" returns [1, 2, 3, 5]
//   - "1,3-5,7" returns [1, 3, 4, 5, 7]
//
// Note: Input indices are 1-based (human-friendly), output indices are 0-based
func ParseRanges(input string) ([]int, error) {
	if input == "" {
		return []int{}, nil
	}

	// Use a map to avoid duplicates
	indexMap := make(map[int]bool)

	// Split by comma
	parts := strings.Split(input, ",")

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// Check if it's a range (contains hyphen)
		if strings.Contains(part, "-") {
			rangeParts := strings.Split(part, "-")
			if len(rangeParts) != 2 {
				return nil, fmt.Errorf("invalid range format: %s", part)
			}

			start, err := strconv.Atoi(strings.TrimSpace(rangeParts[0]))
			if err != nil {
				return nil, fmt.Errorf("invalid start index in range %s: %v", part, err)
			}

			end, err := strconv.Atoi(strings.TrimSpace(rangeParts[1]))
			if err != nil {
				return nil, fmt.Errorf("invalid end index in range %s: %v", part, err)
			}

			if start < 1 || end < 1 {
				return nil, fmt.Errorf("indices must be positive (1-based), got range %d-%d", start, end)
			}

			if start > end {
				return nil, fmt.Errorf("invalid range: start %d is greater than end %d", start, end)
			}

			// Add all indices in the range (convert to 0-based)
			for i := start; i <= end; i++ {
				indexMap[i-1] = true
			}
		} else {
			// Single index
			index, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid index %s: %v", part, err)
			}

			if index < 1 {
				return nil, fmt.Errorf("indices must be positive (1-based), got %d", index)
			}

			// Convert to 0-based
			indexMap[index-1] = true
		}
	}

	// Convert map to sorted slice
	result := make([]int, 0, len(indexMap))
	for index := range indexMap {
		result = append(result, index)
	}
	sort.Ints(result)

	return result, nil
}

// ColumnsFromRanges resolves a 1-based range expression (as accepted by
// ParseRanges) against header, the ordered column names of a data file,
// returning the selected column names in header order. Used by the CLI's
// --feature-cols flag as an alternative to naming feature columns
// individually.
func ColumnsFromRanges(header []string, ranges string) ([]string, error) {
	indices, err := ParseRanges(ranges)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(header) {
			return nil, fmt.Errorf("column index %d out of bounds (1-%d)", idx+1, len(header))
		}
		out = append(out, header[idx])
	}
	return out, nil
}
