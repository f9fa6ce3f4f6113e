// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// systemDirectories are prefixes ValidateOutputPath refuses to write under.
var systemDirectories = []string{
	"/etc", "/bin", "/sbin", "/usr/bin", "/usr/sbin",
	"/sys", "/proc", "/dev", "/boot", "/lib", "/lib64",
	"/var/log",
}

// checkPath rejects paths no caller of this module has a legitimate
// reason to pass: empty or oversized strings, embedded null bytes, and
// parent-directory traversal components in the path as given.
func checkPath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	if len(path) > MaxPathLength {
		return fmt.Errorf("path too long: %d characters (max %d)", len(path), MaxPathLength)
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("null byte in path")
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return fmt.Errorf("directory traversal detected")
		}
	}
	return nil
}

// ValidateInputPath guards the whitespace-separated data file before the
// ingestion reader opens it: the path must be traversal-free and name an
// existing regular file no larger than MaxFileSize.
func ValidateInputPath(path string) error {
	if err := checkPath(path); err != nil {
		return fmt.Errorf("input path validation failed: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	if info.Size() > MaxFileSize {
		return fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}
	return nil
}

// ValidateOutputPath guards a path before anything is written to it: the
// path must be traversal-free, outside the system directories, and inside
// an existing directory.
func ValidateOutputPath(path string) error {
	if err := checkPath(path); err != nil {
		return fmt.Errorf("output path validation failed: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve path: %w", err)
	}
	for _, sysDir := range systemDirectories {
		if strings.HasPrefix(absPath, sysDir+string(filepath.Separator)) || absPath == sysDir {
			return fmt.Errorf("cannot write to system directory: %s", sysDir)
		}
	}

	dir := filepath.Dir(absPath)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("parent directory does not exist: %s", dir)
		}
		return fmt.Errorf("cannot access parent directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("parent path is not a directory: %s", dir)
	}
	return nil
}
