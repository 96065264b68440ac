// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/helpdesk-foundation/helpdesk/lib/tui"
)

func renderPlain(t *testing.T, input string, width int) string {
	t.Helper()
	return ansi.Strip(renderTerminalMarkdown(input, tui.DefaultTheme, width))
}

func TestMarkdownEmptyInput(t *testing.T) {
	if got := renderTerminalMarkdown("", tui.DefaultTheme, 80); got != "" {
		t.Errorf("empty input renders %q", got)
	}
}

func TestMarkdownSoftBreakReflow(t *testing.T) {
	input := "The dashboard\ntakes too long\nto load."
	rendered := renderPlain(t, input, 80)

	if !strings.Contains(rendered, "The dashboard takes too long to load.") {
		t.Errorf("soft breaks must reflow into spaces:\n%s", rendered)
	}
}

func TestMarkdownWrapsToWidth(t *testing.T) {
	input := strings.Repeat("word ", 30)
	rendered := renderPlain(t, input, 40)

	for _, line := range strings.Split(rendered, "\n") {
		if len(line) > 40 {
			t.Errorf("line exceeds width 40: %q", line)
		}
	}
}

func TestMarkdownHeadingAndList(t *testing.T) {
	input := "## Steps\n\n1. Open the billing page\n2. Click renew\n\n- item one\n- item two"
	rendered := renderPlain(t, input, 80)

	for _, want := range []string{"Steps", "1. Open the billing page", "2. Click renew", "- item one"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("missing %q:\n%s", want, rendered)
		}
	}
}

func TestMarkdownFencedCodeBlock(t *testing.T) {
	input := "Before\n\n```go\nfunc main() {}\n```\n\nAfter"
	rendered := renderPlain(t, input, 80)

	for _, want := range []string{"Before", "func main() {}", "After"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("missing %q:\n%s", want, rendered)
		}
	}
	if strings.Contains(rendered, "```") {
		t.Error("fence markers must not render")
	}
}

func TestMarkdownBlockquotePrefix(t *testing.T) {
	rendered := renderPlain(t, "> quoted line", 80)
	if !strings.Contains(rendered, "│ quoted line") {
		t.Errorf("blockquotes carry a bar prefix:\n%s", rendered)
	}
}
