// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func testTree(ran *string) *Command {
	return &Command{
		Name:    "helpdesk",
		Summary: "Support ticket client",
		Subcommands: []*Command{
			{
				Name:    "browse",
				Summary: "Open the ticket browser",
				Flags: func() *pflag.FlagSet {
					flags := pflag.NewFlagSet("browse", pflag.ContinueOnError)
					flags.String("config", "", "configuration file path")
					return flags
				},
				Run: func(args []string) error {
					*ran = "browse " + strings.Join(args, " ")
					return nil
				},
			},
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					*ran = "version"
					return nil
				},
			},
		},
	}
}

func TestDispatchToSubcommand(t *testing.T) {
	var ran string
	root := testTree(&ran)

	if err := root.Execute([]string{"version"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ran != "version" {
		t.Errorf("ran %q, want version", ran)
	}
}

func TestFlagsParsedBeforeRun(t *testing.T) {
	var ran string
	root := testTree(&ran)

	if err := root.Execute([]string{"browse", "--config", "/tmp/helpdesk.yaml", "extra"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ran != "browse extra" {
		t.Errorf("positional args after flags = %q, want %q", ran, "browse extra")
	}
}

func TestUnknownCommandSuggestsClosest(t *testing.T) {
	var ran string
	root := testTree(&ran)

	err := root.Execute([]string{"brows"})
	if err == nil {
		t.Fatal("unknown command must error")
	}
	if !strings.Contains(err.Error(), `did you mean "browse"`) {
		t.Errorf("error lacks suggestion: %v", err)
	}
	if ran != "" {
		t.Error("nothing should have run")
	}
}

func TestUnknownFlagSuggestsClosest(t *testing.T) {
	var ran string
	root := testTree(&ran)

	err := root.Execute([]string{"browse", "--confg", "x"})
	if err == nil {
		t.Fatal("unknown flag must error")
	}
	if !strings.Contains(err.Error(), "--config") {
		t.Errorf("error lacks flag suggestion: %v", err)
	}
}

func TestNoSubcommandShowsHelpAndErrors(t *testing.T) {
	var ran string
	root := testTree(&ran)

	if err := root.Execute(nil); err == nil {
		t.Fatal("a bare parent command must require a subcommand")
	}
}

func TestHelpFlagIsNotAnError(t *testing.T) {
	var ran string
	root := testTree(&ran)

	if err := root.Execute([]string{"--help"}); err != nil {
		t.Fatalf("--help must not error: %v", err)
	}
	if ran != "" {
		t.Error("help must not run a command")
	}
}

func TestPrintHelpListsSubcommands(t *testing.T) {
	var ran string
	root := testTree(&ran)

	var help strings.Builder
	root.PrintHelp(&help)
	for _, want := range []string{"browse", "version", "Commands:"} {
		if !strings.Contains(help.String(), want) {
			t.Errorf("help missing %q:\n%s", want, help.String())
		}
	}
}

func TestExitErrorCarriesCode(t *testing.T) {
	root := &Command{
		Name: "helpdesk",
		Run: func(args []string) error {
			return &ExitError{Code: 3}
		},
	}

	err := root.Execute(nil)
	var exitError *ExitError
	if !errors.As(err, &exitError) || exitError.ExitCode() != 3 {
		t.Fatalf("got %v, want ExitError code 3", err)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "browse", 6},
		{"browse", "browse", 0},
		{"brows", "browse", 1},
		{"stats", "status", 2},
	}
	for _, testCase := range cases {
		if got := levenshtein(testCase.a, testCase.b); got != testCase.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d",
				testCase.a, testCase.b, got, testCase.want)
		}
	}
}
