// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/helpdesk-foundation/helpdesk/cmd/helpdesk/cli"
	"github.com/helpdesk-foundation/helpdesk/lib/refresh"
	"github.com/helpdesk-foundation/helpdesk/lib/ticketui"
)

func browseCommand() *cli.Command {
	var configPath string
	return &cli.Command{
		Name:    "browse",
		Summary: "Open the interactive ticket browser",
		Description: `Open the full-screen ticket browser.

Three tabs: the filterable ticket list, a new-ticket form with
automatic category/priority suggestion, and aggregate statistics.
Submitting a ticket refreshes the other tabs automatically.`,
		Usage: "helpdesk browse [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("browse", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "",
				"configuration file (defaults to $HELPDESK_CONFIG)")
			return flags
		},
		Run: func([]string) error {
			return runBrowse(configPath)
		},
	}
}

func runBrowse(configPath string) error {
	client, _, err := newClient(configPath)
	if err != nil {
		return err
	}

	// Warnings and errors logged anywhere in the process surface in
	// the TUI status bar instead of corrupting the alternate screen.
	logHandler := ticketui.NewTUILogHandler(slog.LevelWarn)
	slog.SetDefault(slog.New(logHandler))

	broadcaster := refresh.NewBroadcaster()
	model := ticketui.NewModel(client, broadcaster)

	program := tea.NewProgram(model, tea.WithAltScreen())
	logHandler.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ticket browser: %w", err)
	}
	return nil
}
