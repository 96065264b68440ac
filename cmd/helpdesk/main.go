// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

// The helpdesk command is a terminal client for the helpdesk ticket
// service: an interactive ticket browser plus a few non-interactive
// queries for scripts.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/helpdesk-foundation/helpdesk/cmd/helpdesk/cli"
	"github.com/helpdesk-foundation/helpdesk/lib/config"
	"github.com/helpdesk-foundation/helpdesk/lib/ticketclient"
	"github.com/helpdesk-foundation/helpdesk/lib/version"
)

func main() {
	if err := root().Execute(os.Args[1:]); err != nil {
		// Handlers that print their own output return an ExitError
		// with the desired code; no redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func root() *cli.Command {
	return &cli.Command{
		Name: "helpdesk",
		Description: `Helpdesk: terminal client for the support ticket service.

Browse, file, and triage support tickets from the terminal. The
service address comes from a YAML configuration file (--config or
$HELPDESK_CONFIG) and can be overridden with $HELPDESK_SERVICE_URL.`,
		Subcommands: []*cli.Command{
			browseCommand(),
			statsCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func([]string) error {
					fmt.Printf("helpdesk %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Open the interactive ticket browser",
				Command:     "helpdesk browse",
			},
			{
				Description: "Browse against a non-default service",
				Command:     "HELPDESK_SERVICE_URL=https://support.example.com helpdesk browse",
			},
			{
				Description: "Print ticket statistics for scripts",
				Command:     "helpdesk stats",
			},
		},
	}
}

// newClient builds the service client from the resolved configuration.
func newClient(configPath string) (*ticketclient.Client, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	httpClient := &http.Client{Timeout: cfg.Service.Timeout()}
	return ticketclient.New(cfg.Service.BaseURL, httpClient), cfg, nil
}

func serviceContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Service.Timeout())
}
