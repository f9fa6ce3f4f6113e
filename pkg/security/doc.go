// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package security provides input validation and path-safety helpers
// shared by the ingestion and CLI layers.
//
// # Input validation
//
// Numeric, integer and string inputs are bounds- and charset-checked
// before they reach the selection engine.
//
// # Path security
//
// The data-file path the ingestion reader opens is checked for traversal
// components, existence, regularity and size before it is opened.
// ValidateOutputPath checks an output path for traversal components,
// system-directory targets and a missing parent directory.
//
// # Resource limits
//
// The package declares limits on file size, row/column counts, field
// length and memory. ValidateInputPath enforces the file-size limit and
// ValidateDataDimensions the row, column and memory limits; no function
// checks MaxFieldLength.
package security
