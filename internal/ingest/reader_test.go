// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadSpaceSeparatedFile_Basic(t *testing.T) {
	contents := "x1 x2 y\n1 2 3\n4 5 9\n7 8 15\n"
	path := writeTempFile(t, contents)

	result, err := LoadSpaceSeparatedFile(path, []string{"x1", "x2"}, "y", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NCasesLoaded != 3 {
		t.Errorf("expected 3 loaded cases, got %d", result.NCasesLoaded)
	}
	if result.NCasesTotal != 3 {
		t.Errorf("expected 3 total cases, got %d", result.NCasesTotal)
	}
	if result.Features.Rows() != 3 || result.Features.Cols() != 2 {
		t.Errorf("unexpected matrix shape: %dx%d", result.Features.Rows(), result.Features.Cols())
	}
	if got := result.Features.At(1, 0); got != 4 {
		t.Errorf("expected features[1][0]=4, got %v", got)
	}
	if result.Target[2] != 15 {
		t.Errorf("expected target[2]=15, got %v", result.Target[2])
	}
}

func TestLoadSpaceSeparatedFile_SkipsInvalidRows(t *testing.T) {
	contents := "x1 x2 y\n1 2 3\nNA 5 9\n7 8 bad\n10 11 12\n"
	path := writeTempFile(t, contents)

	result, err := LoadSpaceSeparatedFile(path, []string{"x1", "x2"}, "y", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NCasesLoaded != 2 {
		t.Errorf("expected 2 loaded cases, got %d", result.NCasesLoaded)
	}
	if result.NCasesTotal != 4 {
		t.Errorf("expected 4 total cases, got %d", result.NCasesTotal)
	}
}

func TestLoadSpaceSeparatedFile_RowRange(t *testing.T) {
	contents := "x y\n1 1\n2 2\n3 3\n4 4\n5 5\n"
	path := writeTempFile(t, contents)

	result, err := LoadSpaceSeparatedFile(path, []string{"x"}, "y", &RowRange{Start: 1, End: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NCasesLoaded != 2 {
		t.Fatalf("expected 2 loaded cases (rows 1,2), got %d", result.NCasesLoaded)
	}
	if result.Target[0] != 2 || result.Target[1] != 3 {
		t.Errorf("unexpected target slice: %v", result.Target)
	}
}

func TestLoadSpaceSeparatedFile_MissingColumn(t *testing.T) {
	contents := "x1 x2 y\n1 2 3\n"
	path := writeTempFile(t, contents)

	if _, err := LoadSpaceSeparatedFile(path, []string{"x1", "x3"}, "y", nil); err == nil {
		t.Fatal("expected error for missing feature column")
	}
	if _, err := LoadSpaceSeparatedFile(path, []string{"x1"}, "z", nil); err == nil {
		t.Fatal("expected error for missing target column")
	}
}

func TestLoadSpaceSeparatedFile_MissingFile(t *testing.T) {
	if _, err := LoadSpaceSeparatedFile("/nonexistent/path/data.txt", []string{"x"}, "y", nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadSpaceSeparatedFile_NoSurvivingRows(t *testing.T) {
	contents := "x y\nNA 1\nNA 2\n"
	path := writeTempFile(t, contents)

	if _, err := LoadSpaceSeparatedFile(path, []string{"x"}, "y", nil); err == nil {
		t.Fatal("expected error when no rows survive validation")
	}
}

func TestHeaderColumns(t *testing.T) {
	path := writeTempFile(t, "a b c\n1 2 3\n")
	cols, err := HeaderColumns(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, cols); diff != "" {
		t.Errorf("HeaderColumns mismatch (-want +got):\n%s", diff)
	}
}
