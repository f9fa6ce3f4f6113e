// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumericValue attempts to parse a string as a float64.
// It handles different decimal separators and special float values.
//
// Parameters:
//   - value: The string value to parse
//   - decimalSeparator: The decimal separator character ('.' or ',')
//
// Returns the parsed float64 and an error if parsing fails.
// Special cases handled:
//   - "inf", "+inf", "infinity" -> +Inf
//   - "-inf", "-infinity" -> -Inf
//   - Empty string returns an error
func ParseNumericValue(value string, decimalSeparator rune) (float64, error) {
	trimmedValue := strings.TrimSpace(value)

	if trimmedValue == "" {
		return 0, fmt.Errorf("cannot parse empty string as number")
	}

	// Handle decimal separator conversion
	parseValue := trimmedValue
	if decimalSeparator == ',' {
		// Replace comma with dot for standard parsing
		parseValue = strings.ReplaceAll(trimmedValue, ",", ".")
	}

	// Try standard float parsing first
	if val, err := strconv.ParseFloat(parseValue, 64); err == nil {
		return val, nil
	}

	// Check for special float values (case-insensitive)
	lowerValue := strings.ToLower(trimmedValue)
	switch lowerValue {
	case "inf", "+inf", "infinity", "+infinity":
		return math.Inf(1), nil
	case "-inf", "-infinity":
		return math.Inf(-1), nil
	case "nan":
		return math.NaN(), nil
	}

	return 0, fmt.Errorf("cannot parse '%s' as number", trimmedValue)
}

// IsNumericString checks if a string can be parsed as a number.
func IsNumericString(value string, decimalSeparator rune) bool {
	_, err := ParseNumericValue(value, decimalSeparator)
	return err == nil
}

// DefaultMissingValues returns the tokens treated as missing data when no
// caller-supplied list is given, matching internal/config's ingestion
// defaults.
func DefaultMissingValues() []string {
	return []string{"", "NA", "N/A", "null", "NULL", "NaN", "nan"}
}

// ParseNumericValueWithMissing is ParseNumericValue extended with a
// missing-value vocabulary: if the trimmed value exactly matches one of
// missingValues, it returns (NaN, true, nil) rather than attempting a
// numeric parse. A bare "nan" token is only treated as missing if it is
// itself listed in missingValues; otherwise it parses as a numeric NaN via
// ParseNumericValue, consistent with that function's own special-value
// handling.
func ParseNumericValueWithMissing(value string, decimalSeparator rune, missingValues []string) (float64, bool, error) {
	trimmed := strings.TrimSpace(value)
	for _, m := range missingValues {
		if trimmed == m {
			return math.NaN(), true, nil
		}
	}

	v, err := ParseNumericValue(value, decimalSeparator)
	if err != nil {
		return 0, false, err
	}
	return v, false, nil
}

// ParseFloatSlice parses every element of values, substituting NaN for any
// token listed in missingValues. Returns an error naming the offending
// index on the first non-numeric, non-missing value.
func ParseFloatSlice(values []string, decimalSeparator rune, missingValues []string) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		val, isMissing, err := ParseNumericValueWithMissing(v, decimalSeparator, missingValues)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		if isMissing {
			out[i] = math.NaN()
			continue
		}
		out[i] = val
	}
	return out, nil
}
