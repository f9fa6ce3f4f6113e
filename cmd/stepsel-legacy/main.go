// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Command stepsel-legacy is the scriptable, urfave/cli/v2-based CLI entry
// point kept stable for automation while cmd/stepsel carries the modern
// surface.
package main

import "github.com/bitjungle/stepsel/internal/cli"

func main() {
	cli.RunWithOSExit()
}
