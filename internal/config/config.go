// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package config holds the CLI's default configuration: ingestion
// defaults, output defaults, and the stepwise-selection defaults from
// types.DefaultSelectionConfig.
package config

import "github.com/bitjungle/stepsel/pkg/types"

// CLIConfig holds configuration for the CLI application.
type CLIConfig struct {
	// Ingestion configuration
	Ingest IngestConfig `json:"ingest"`

	// Output configuration
	Output OutputConfig `json:"output"`

	// Selection configuration (the engine defaults the CLI starts from)
	Selection types.SelectionConfig `json:"-"`
}

// IngestConfig holds whitespace-file ingestion defaults.
type IngestConfig struct {
	// NullValues are tokens treated as missing data in addition to a
	// genuinely non-numeric field.
	NullValues []string `json:"null_values"`
}

// OutputConfig holds output rendering defaults.
type OutputConfig struct {
	// Format is the default report format: "table" or "json".
	Format string `json:"format"`

	// FileSuffix is appended to the input file's base name when writing a
	// JSON report alongside the input.
	FileSuffix string `json:"file_suffix"`

	// CreateOutputDir controls whether the output directory is created if
	// missing.
	CreateOutputDir bool `json:"create_output_dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Ingest: IngestConfig{
			NullValues: []string{"", "NA", "N/A", "null", "NULL", "NaN", "nan"},
		},
		Output: OutputConfig{
			Format:          "table",
			FileSuffix:      "_stepsel",
			CreateOutputDir: true,
		},
		Selection: types.DefaultSelectionConfig(),
	}
}
