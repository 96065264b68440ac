// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value string // Value reported to the owner on selection.
}

// DropdownOverlay renders a floating menu anchored at a screen
// position. It captures navigation input while active: the owning
// model routes key messages to MoveUp/MoveDown and reads Selected on
// enter. What the selection means (a filter constraint, a staged
// status) is the owner's business; the overlay only tracks position.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int // Screen X coordinate of the dropdown's top-left corner.
	AnchorY int // Screen Y coordinate of the dropdown's top-left corner.
}

// NewDropdownOverlay creates a dropdown with the cursor on the option
// whose value matches current (or the first option when none does).
func NewDropdownOverlay(options []DropdownOption, current string, anchorX, anchorY int) *DropdownOverlay {
	dropdown := &DropdownOverlay{
		Options: options,
		AnchorX: anchorX,
		AnchorY: anchorY,
	}
	for index, option := range options {
		if option.Value == current {
			dropdown.Cursor = index
			break
		}
	}
	return dropdown
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Selected returns the currently highlighted option.
func (dropdown *DropdownOverlay) Selected() DropdownOption {
	return dropdown.Options[dropdown.Cursor]
}

// Render produces the dropdown lines for overlay splicing. Every line
// has the same visible width and a solid background so the menu reads
// as a surface floating above the underlying content.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	maxLabelWidth := 0
	for _, option := range dropdown.Options {
		if width := ansi.StringWidth(option.Label); width > maxLabelWidth {
			maxLabelWidth = width
		}
	}
	// Layout per line: padding, marker, space, label, right fill.
	innerWidth := 2 + maxLabelWidth

	baseStyle := lipgloss.NewStyle().
		Foreground(theme.OverlayForeground).
		Background(theme.OverlayBackground)
	selectedStyle := lipgloss.NewStyle().
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground)

	lines := make([]string, 0, len(dropdown.Options))
	for index, option := range dropdown.Options {
		marker := " "
		style := baseStyle
		if index == dropdown.Cursor {
			marker = ">"
			style = selectedStyle
		}

		content := marker + " " + option.Label
		if fill := innerWidth - ansi.StringWidth(content); fill > 0 {
			content += strings.Repeat(" ", fill)
		}
		lines = append(lines, style.Render(" "+content+" "))
	}
	return lines
}
