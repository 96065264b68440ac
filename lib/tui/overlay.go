// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay content, starting at (anchorX, anchorY) in screen
// coordinates. Truncation is ANSI-aware so escape sequences in the
// underlying view survive on both sides of the overlay; an explicit
// SGR reset brackets the overlay so its styling cannot leak into the
// surrounding content.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}
		underlying := viewLines[row]

		var spliced strings.Builder
		if anchorX > 0 {
			spliced.WriteString(ansi.Truncate(underlying, anchorX, ""))
		}
		spliced.WriteString("\x1b[0m")
		spliced.WriteString(overlayLine)
		spliced.WriteString("\x1b[0m")

		if after := anchorX + overlayWidth; after < ansi.StringWidth(underlying) {
			spliced.WriteString(ansi.TruncateLeft(underlying, after, ""))
		}
		viewLines[row] = spliced.String()
	}

	return strings.Join(viewLines, "\n")
}

// CenterOverlay splices overlayLines into the middle of a view of the
// given dimensions. Overlays taller or wider than the view are
// anchored at the top-left edge rather than clipped asymmetrically.
func CenterOverlay(view string, overlayLines []string, width, height int) string {
	if len(overlayLines) == 0 {
		return view
	}
	anchorX := (width - ansi.StringWidth(overlayLines[0])) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	anchorY := (height - len(overlayLines)) / 2
	if anchorY < 0 {
		anchorY = 0
	}
	return SpliceOverlay(view, overlayLines, anchorX, anchorY)
}
