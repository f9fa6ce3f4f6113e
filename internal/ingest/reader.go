// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package ingest implements the external data-ingestion contract: a
// whitespace-separated text file, header on the first line, one record per
// subsequent line, sliced by an optional half-open row range. It is the
// one caller the engine façade's "run from file" entry point delegates to
// before falling through to the in-memory path.
package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bitjungle/stepsel/pkg/security"
	"github.com/bitjungle/stepsel/pkg/types"
)

// RowRange is a half-open [Start, End) range over record indices (the
// header line is never counted). End < 0 means "read to the last record".
type RowRange struct {
	Start int
	End   int
}

// LoadResult is everything load_space_separated_file returns in the
// original reader: the assembled predictor matrix, the target vector, and
// bookkeeping on how many records were skipped for invalid data.
type LoadResult struct {
	Features     *types.Matrix
	Target       []float64
	FeatureNames []string
	TargetName   string
	NCasesLoaded int
	NCasesTotal  int
}

// LoadSpaceSeparatedFile reads path, validates the header carries every
// requested feature column and the target column, and returns a matrix
// built from the rows within rowRange whose requested columns are all
// present and numeric. Rows with a missing or non-numeric field in any
// requested column are skipped and counted toward NCasesTotal but not
// NCasesLoaded.
//
// Mirrors the original reader's two-pass structure (validate-and-count,
// then allocate-and-load) without a second disk read: the file is scanned
// once into memory, then walked twice against that in-memory line set.
func LoadSpaceSeparatedFile(path string, featureColumns []string, targetColumn string, rowRange *RowRange) (*LoadResult, error) {
	if err := security.ValidateInputPath(path); err != nil {
		return nil, types.NewIOError("cannot open data file", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewIOError(fmt.Sprintf("could not open file: %s", path), err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, types.NewIOError("could not read header from file", nil)
	}
	header := strings.Fields(scanner.Text())

	columnIndex := make(map[string]int, len(header))
	for i, name := range header {
		columnIndex[name] = i
	}

	if _, ok := columnIndex[targetColumn]; !ok {
		return nil, types.NewValidationError(fmt.Sprintf("target column %q not found in data file", targetColumn), nil)
	}
	featureIdx := make([]int, len(featureColumns))
	for i, name := range featureColumns {
		idx, ok := columnIndex[name]
		if !ok {
			return nil, types.NewValidationError(fmt.Sprintf("feature column %q not found in data file", name), nil)
		}
		featureIdx[i] = idx
	}
	targetIdx := columnIndex[targetColumn]

	var lines [][]string
	for scanner.Scan() {
		lines = append(lines, strings.Fields(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, types.NewIOError("error reading data file", err)
	}

	effectiveStart := 0
	effectiveEnd := -1
	if rowRange != nil {
		if rowRange.Start > 0 {
			effectiveStart = rowRange.Start
		}
		effectiveEnd = rowRange.End
	}

	inRange := func(row int) bool {
		if row < effectiveStart {
			return false
		}
		if effectiveEnd >= 0 && row >= effectiveEnd {
			return false
		}
		return true
	}

	isValidRow := func(fields []string) bool {
		if len(fields) == 0 {
			return false
		}
		for _, idx := range featureIdx {
			if idx >= len(fields) || !isValidNumber(fields[idx]) {
				return false
			}
		}
		return targetIdx < len(fields) && isValidNumber(fields[targetIdx])
	}

	validCases := 0
	nCasesTotal := 0
	for row, fields := range lines {
		if !inRange(row) {
			continue
		}
		nCasesTotal++
		if isValidRow(fields) {
			validCases++
		}
		if effectiveEnd >= 0 && row+1 >= effectiveEnd {
			break
		}
	}

	if validCases == 0 {
		return nil, types.NewValidationError("no valid data cases found in file", nil)
	}

	features := types.NewMatrix(validCases, len(featureColumns))
	features.SetColumnNames(featureColumns)
	target := make([]float64, validCases)

	caseIdx := 0
	for row, fields := range lines {
		if !inRange(row) {
			continue
		}
		if caseIdx >= validCases {
			break
		}
		if isValidRow(fields) {
			for j, idx := range featureIdx {
				v, _ := strconv.ParseFloat(fields[idx], 64)
				features.Set(caseIdx, j, v)
			}
			tv, _ := strconv.ParseFloat(fields[targetIdx], 64)
			target[caseIdx] = tv
			caseIdx++
		}
		if effectiveEnd >= 0 && row+1 >= effectiveEnd {
			break
		}
	}

	return &LoadResult{
		Features:     features,
		Target:       target,
		FeatureNames: append([]string(nil), featureColumns...),
		TargetName:   targetColumn,
		NCasesLoaded: caseIdx,
		NCasesTotal:  nCasesTotal,
	}, nil
}

// HeaderColumns returns the column names on the first line of path,
// without loading any data rows. Used by the CLI's "info" command to let
// callers discover feature/target names before running a selection.
func HeaderColumns(path string) ([]string, error) {
	if err := security.ValidateInputPath(path); err != nil {
		return nil, types.NewIOError("cannot open data file", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewIOError(fmt.Sprintf("could not open file: %s", path), err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, types.NewIOError("could not read header from file", nil)
	}
	return strings.Fields(scanner.Text()), nil
}

func isValidNumber(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
