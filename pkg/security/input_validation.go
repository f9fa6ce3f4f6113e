// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package security

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits for various input types to prevent resource exhaustion.
const (
	MaxFileSize     = 500 * 1024 * 1024 // 500MB max file size
	MaxDataRows     = 1000000           // 1M rows max
	MaxDataColumns  = 10000             // 10K columns max
	MaxFieldLength  = 100000            // 100K chars per field
	MaxStringLength = 10000             // 10K chars for general strings
	MaxPathLength   = 4096              // Standard PATH_MAX
	MaxMemoryUsageMB = 2048             // 2GB max memory for operations

	// MaxNFolds and MaxMCPTReplications bound the selection config the CLI
	// will accept, guarding against accidental typos (e.g. "--folds 100000")
	// rather than any algorithmic limit of the selector itself.
	MaxNFolds            = 1000
	MaxMCPTReplications  = 1000000
	MaxBeamWidth         = 10000
)

// ValidateNumericInput validates and sanitizes numeric input within bounds.
func ValidateNumericInput(input string, min, max float64, paramName string) (float64, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return 0, fmt.Errorf("%s: empty input", paramName)
	}

	for _, r := range input {
		if !unicode.IsDigit(r) && r != '.' && r != '-' && r != '+' && r != 'e' && r != 'E' {
			return 0, fmt.Errorf("%s: invalid character '%c' in numeric input", paramName, r)
		}
	}

	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid numeric value: %w", paramName, err)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s: invalid numeric value (NaN or Inf)", paramName)
	}

	if value < min || value > max {
		return 0, fmt.Errorf("%s: value %.6f out of range [%.6f, %.6f]", paramName, value, min, max)
	}

	return value, nil
}

// ValidateIntegerInput validates integer input within bounds.
func ValidateIntegerInput(input string, min, max int, paramName string) (int, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return 0, fmt.Errorf("%s: empty input", paramName)
	}

	for i, r := range input {
		if i == 0 && (r == '-' || r == '+') {
			continue
		}
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("%s: invalid character '%c' in integer input", paramName, r)
		}
	}

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer value: %w", paramName, err)
	}

	if value < min || value > max {
		return 0, fmt.Errorf("%s: value %d out of range [%d, %d]", paramName, value, min, max)
	}

	return value, nil
}

// ValidateStringInput validates and sanitizes string input.
func ValidateStringInput(input string, maxLength int, allowedChars string, paramName string) (string, error) {
	if !utf8.ValidString(input) {
		return "", fmt.Errorf("%s: invalid UTF-8 encoding", paramName)
	}

	if len(input) > maxLength {
		return "", fmt.Errorf("%s: string too long (%d > %d)", paramName, len(input), maxLength)
	}

	cleaned := strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, input)

	if allowedChars != "" {
		for _, r := range cleaned {
			if !strings.ContainsRune(allowedChars, r) {
				return "", fmt.Errorf("%s: contains disallowed character '%c'", paramName, r)
			}
		}
	}

	return cleaned, nil
}

// ValidateSelectionBounds checks the beam-search knobs the CLI exposes
// (n_kept, n_folds, mcpt_replications) against sane upper bounds before they
// reach types.SelectionConfig.
func ValidateSelectionBounds(nKept, nFolds, mcptReplications int) error {
	if nKept < 1 {
		return fmt.Errorf("n_kept must be at least 1")
	}
	if nKept > MaxBeamWidth {
		return fmt.Errorf("n_kept cannot exceed %d", MaxBeamWidth)
	}
	if nFolds < 2 {
		return fmt.Errorf("n_folds must be at least 2")
	}
	if nFolds > MaxNFolds {
		return fmt.Errorf("n_folds cannot exceed %d", MaxNFolds)
	}
	if mcptReplications < 1 {
		return fmt.Errorf("mcpt_replications must be at least 1")
	}
	if mcptReplications > MaxMCPTReplications {
		return fmt.Errorf("mcpt_replications cannot exceed %d", MaxMCPTReplications)
	}
	return nil
}

// ValidateDataDimensions validates data matrix dimensions.
func ValidateDataDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("invalid dimensions: rows=%d, cols=%d", rows, cols)
	}

	if rows > MaxDataRows {
		return fmt.Errorf("too many rows: %d (max %d)", rows, MaxDataRows)
	}

	if cols > MaxDataColumns {
		return fmt.Errorf("too many columns: %d (max %d)", cols, MaxDataColumns)
	}

	estimatedMemoryMB := (rows * cols * 8) / (1024 * 1024)
	if estimatedMemoryMB > MaxMemoryUsageMB {
		return fmt.Errorf("dataset too large: estimated %dMB exceeds limit of %dMB",
			estimatedMemoryMB, MaxMemoryUsageMB)
	}

	return nil
}

// SanitizeFilename removes potentially dangerous characters from filenames.
func SanitizeFilename(filename string) string {
	dangerous := []string{"/", "\\", "..", "~", "|", ">", "<", "&", "$", "`", ";", ":", "*", "?", "\"", "'"}

	result := filename
	for _, char := range dangerous {
		result = strings.ReplaceAll(result, char, "_")
	}

	result = strings.TrimLeft(result, ".")

	if len(result) > 255 {
		result = result[:255]
	}

	if result == "" {
		result = "unnamed"
	}

	return result
}

// ValidateDelimiter validates a single-character field delimiter.
func ValidateDelimiter(delimiter string) (rune, error) {
	if len(delimiter) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character")
	}

	r := rune(delimiter[0])

	validDelimiters := []rune{',', ';', '\t', '|', ' '}
	valid := false
	for _, d := range validDelimiters {
		if r == d {
			valid = true
			break
		}
	}

	if !valid {
		return 0, fmt.Errorf("invalid delimiter: '%c'", r)
	}

	return r, nil
}
