// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"
)

func TestSpliceOverlayReplacesRegion(t *testing.T) {
	view := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
	}, "\n")

	spliced := SpliceOverlay(view, []string{"XXX", "YYY"}, 2, 1)
	lines := strings.Split(spliced, "\n")

	if lines[0] != "aaaaaaaaaa" {
		t.Errorf("row above the overlay changed: %q", lines[0])
	}
	if !strings.Contains(lines[1], "bbXXX") || !strings.HasSuffix(lines[1], "bbbbb") {
		t.Errorf("overlay row 1 spliced wrong: %q", lines[1])
	}
	if !strings.Contains(lines[2], "ccYYY") {
		t.Errorf("overlay row 2 spliced wrong: %q", lines[2])
	}
}

func TestSpliceOverlaySkipsRowsOutsideView(t *testing.T) {
	view := "only line"
	spliced := SpliceOverlay(view, []string{"A", "B", "C"}, 0, 0)
	if got := len(strings.Split(spliced, "\n")); got != 1 {
		t.Errorf("overlay must not grow the view: got %d lines", got)
	}
}

func TestCenterOverlayAnchorsInsideView(t *testing.T) {
	rows := make([]string, 10)
	for index := range rows {
		rows[index] = strings.Repeat(".", 20)
	}
	spliced := CenterOverlay(strings.Join(rows, "\n"), []string{"MODAL"}, 20, 10)

	lines := strings.Split(spliced, "\n")
	if !strings.Contains(lines[4], "MODAL") {
		t.Errorf("expected overlay on the middle row, got %q", lines[4])
	}
	if strings.Contains(lines[0], "MODAL") {
		t.Error("overlay leaked onto the first row")
	}
}
