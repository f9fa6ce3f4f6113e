// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSplitAndTrim(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"x1,x2,x3", []string{"x1", "x2", "x3"}},
		{" x1 , x2 ,x3 ", []string{"x1", "x2", "x3"}},
		{"x1,,x2", []string{"x1", "x2"}},
		{"", nil},
	}

	for _, tc := range cases {
		got := splitAndTrim(tc.in)
		if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("splitAndTrim(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestNewAppRegistersCommands(t *testing.T) {
	app := NewApp()
	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, want := range []string{"run", "validate", "info", "version"} {
		if !names[want] {
			t.Errorf("expected command %q to be registered", want)
		}
	}
}
