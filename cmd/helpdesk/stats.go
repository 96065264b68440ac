// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/helpdesk-foundation/helpdesk/cmd/helpdesk/cli"
	"github.com/helpdesk-foundation/helpdesk/lib/ticket"
)

func statsCommand() *cli.Command {
	var configPath string
	return &cli.Command{
		Name:    "stats",
		Summary: "Print ticket statistics",
		Description: `Print aggregate ticket statistics to stdout.

Non-interactive counterpart of the browser's stats tab, for scripts
and cron jobs.`,
		Usage: "helpdesk stats [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("stats", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "",
				"configuration file (defaults to $HELPDESK_CONFIG)")
			return flags
		},
		Run: func([]string) error {
			return runStats(configPath)
		},
	}
}

func runStats(configPath string) error {
	client, cfg, err := newClient(configPath)
	if err != nil {
		return err
	}
	logger := cli.NewCommandLogger().With("command", "stats")

	ctx, cancel := serviceContext(cfg)
	defer cancel()

	stats, err := client.Stats(ctx)
	if err != nil {
		logger.Error("stats query failed", "error", err)
		return &cli.ExitError{Code: 1}
	}

	writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintf(writer, "total\t%d\n", stats.Total)
	fmt.Fprintf(writer, "open\t%d\n", stats.Open)
	fmt.Fprintf(writer, "per day\t%.1f\n", stats.AvgPerDay)
	fmt.Fprintln(writer)
	for _, priority := range ticket.Priorities() {
		fmt.Fprintf(writer, "priority/%s\t%d\n", priority, stats.ByPriority[priority])
	}
	for _, category := range ticket.Categories() {
		fmt.Fprintf(writer, "category/%s\t%d\n", category, stats.ByCategory[category])
	}
	for _, status := range ticket.Statuses() {
		fmt.Fprintf(writer, "status/%s\t%d\n", status, stats.ByStatus[status])
	}
	return writer.Flush()
}
