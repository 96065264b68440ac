// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the helpdesk
// binary: a Command tree with pflag flag sets, structured help output,
// typo suggestions for unknown commands and flags, and an ExitError
// for handlers that manage their own output. Commands are assembled
// into a tree in cmd/helpdesk/main.go.
package cli
