// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates the structured logger for command
// handlers. A terminal on stderr gets the text handler; piped or
// redirected stderr (scripts, CI) gets JSON for machine parsing.
//
// Callers scope the logger with command context via With():
//
//	logger := cli.NewCommandLogger().With("command", "browse")
func NewCommandLogger() *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
