// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the generic terminal-UI building blocks shared by
// helpdesk's panes: the color [Theme], floating [DropdownOverlay]
// menus, overlay splicing for modals, and fzf-style fuzzy matching.
// Nothing in this package knows about tickets; domain wiring lives in
// ticketui.
package tui
