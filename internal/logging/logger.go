// Copyright 2025 bitjungle - Rune Mathisen. All rights reserved.
// Use of this source code is governed by the MIT license
// that can be found in the LICENSE file.
// The author respectfully requests that it not be used for
// military, warfare, or surveillance applications.

// Package logging provides the process-wide progress sink the selector
// writes step-by-step narration to. Callers (CLI, tests, embedders) supply
// their own Sink; the default just writes to stdout.
package logging

import (
	"fmt"
	"sync"
)

// Sink receives one line of progress narration at a time. Implementations
// must be safe for concurrent use: the selector's worker goroutines may
// call it from multiple replications at once.
type Sink func(message string)

var (
	mu      sync.Mutex
	current Sink = defaultSink
)

func defaultSink(message string) {
	fmt.Println("[stepsel]", message)
}

// SetSink installs cb as the process-wide sink. Passing nil restores the
// default stdout sink.
func SetSink(cb Sink) {
	mu.Lock()
	defer mu.Unlock()
	if cb == nil {
		current = defaultSink
		return
	}
	current = cb
}

// Log writes message to the currently installed sink.
func Log(message string) {
	mu.Lock()
	sink := current
	mu.Unlock()
	sink(message)
}
