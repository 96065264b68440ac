// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/helpdesk-foundation/helpdesk/lib/ticket"
)

// Theme defines the color palette for helpdesk's terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Priority colors, low through critical.
	PriorityLow      lipgloss.Color
	PriorityMedium   lipgloss.Color
	PriorityHigh     lipgloss.Color
	PriorityCritical lipgloss.Color

	// Status colors.
	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusResolved   lipgloss.Color
	StatusClosed     lipgloss.Color

	// Category accent, used for the category badge in list rows.
	CategoryForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Transient notices.
	SuccessForeground lipgloss.Color
	ErrorForeground   lipgloss.Color

	// Fuzzy filter match highlighting.
	MatchHighlightBackground lipgloss.Color

	// Overlay surfaces (dropdowns, the detail modal).
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// PriorityColor returns the color for a priority value. Unknown
// values get NormalText.
func (theme Theme) PriorityColor(priority ticket.Priority) lipgloss.Color {
	switch priority {
	case ticket.PriorityLow:
		return theme.PriorityLow
	case ticket.PriorityMedium:
		return theme.PriorityMedium
	case ticket.PriorityHigh:
		return theme.PriorityHigh
	case ticket.PriorityCritical:
		return theme.PriorityCritical
	default:
		return theme.NormalText
	}
}

// StatusColor returns the color for a status value. Unknown values
// get FaintText.
func (theme Theme) StatusColor(status ticket.Status) lipgloss.Color {
	switch status {
	case ticket.StatusOpen:
		return theme.StatusOpen
	case ticket.StatusInProgress:
		return theme.StatusInProgress
	case ticket.StatusResolved:
		return theme.StatusResolved
	case ticket.StatusClosed:
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PriorityLow:      lipgloss.Color("245"), // gray
	PriorityMedium:   lipgloss.Color("75"),  // blue
	PriorityHigh:     lipgloss.Color("208"), // orange
	PriorityCritical: lipgloss.Color("196"), // bright red

	StatusOpen:       lipgloss.Color("114"), // green
	StatusInProgress: lipgloss.Color("220"), // yellow/amber
	StatusResolved:   lipgloss.Color("141"), // light purple
	StatusClosed:     lipgloss.Color("245"), // gray

	CategoryForeground: lipgloss.Color("117"), // light cyan

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	SuccessForeground: lipgloss.Color("114"),
	ErrorForeground:   lipgloss.Color("203"),

	MatchHighlightBackground: lipgloss.Color("58"), // dark amber

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}
