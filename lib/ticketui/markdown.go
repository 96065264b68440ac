// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/helpdesk-foundation/helpdesk/lib/tui"
)

// The goldmark parser is configured once and shared: parsing state is
// per-call, so a single instance is safe across renders.
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParser
}

// wrapBreakpoints are the characters ansi.Wrap may break lines at.
const wrapBreakpoints = " ,.;-+|"

// renderTerminalMarkdown renders a ticket description as styled
// terminal text at the given width. Soft line breaks inside
// paragraphs become spaces so hard-wrapped source reflows at any
// width; code blocks, lists, and blockquotes keep their structure.
func renderTerminalMarkdown(input string, theme tui.Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	// Force an ANSI256 profile: this output is always destined for a
	// bubbletea screen, and auto-detection would strip all color in
	// test environments without a TTY.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)

	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownRenderer walks a goldmark AST directly rather than going
// through goldmark's renderer interface: paragraph inline content
// accumulates in a buffer and is word-wrapped as a unit when the
// paragraph closes, which the streaming renderer callbacks don't
// accommodate.
type markdownRenderer struct {
	source []byte
	theme  tui.Theme
	width  int

	output strings.Builder

	// Inline accumulator, flushed with word-wrap when the containing
	// block closes.
	inline strings.Builder

	// Prefix for continuation lines inside nested blocks (blockquote
	// bars, list indents). pendingBullet replaces it for the first
	// line of a list item only.
	linePrefix    string
	pendingBullet string

	// Style counters rather than booleans so nesting balances.
	boldCount          int
	italicCount        int
	strikethroughCount int

	listStack []markdownListState

	lipRenderer *lipgloss.Renderer
}

type markdownListState struct {
	ordered bool
	counter int
	tight   bool
}

func (renderer *markdownRenderer) newStyle() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

func (renderer *markdownRenderer) contentWidth() int {
	width := renderer.width - ansi.StringWidth(renderer.linePrefix)
	if width < 10 {
		width = 10
	}
	return width
}

func (renderer *markdownRenderer) inTightList() bool {
	if len(renderer.listStack) == 0 {
		return false
	}
	return renderer.listStack[len(renderer.listStack)-1].tight
}

// writeBlock emits pre-wrapped content with line prefixes applied:
// the pending bullet (if set) on the first line, the regular prefix
// on the rest.
func (renderer *markdownRenderer) writeBlock(content string) {
	for index, line := range strings.Split(content, "\n") {
		if index == 0 && renderer.pendingBullet != "" {
			renderer.output.WriteString(renderer.pendingBullet)
			renderer.pendingBullet = ""
		} else {
			renderer.output.WriteString(renderer.linePrefix)
		}
		renderer.output.WriteString(line)
		renderer.output.WriteString("\n")
	}
}

func (renderer *markdownRenderer) blankLine() {
	rendered := renderer.output.String()
	if rendered == "" || strings.HasSuffix(rendered, "\n\n") {
		return
	}
	renderer.output.WriteString("\n")
}

// flushInline word-wraps the accumulated inline content and emits it.
func (renderer *markdownRenderer) flushInline() {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return
	}
	renderer.writeBlock(ansi.Wrap(content, renderer.contentWidth(), wrapBreakpoints))
}

func (renderer *markdownRenderer) styledText(content string) string {
	style := renderer.newStyle().Foreground(renderer.theme.NormalText)
	if renderer.boldCount > 0 {
		style = style.Bold(true)
	}
	if renderer.italicCount > 0 {
		style = style.Italic(true)
	}
	if renderer.strikethroughCount > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

func (renderer *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.flushInline()
			if !renderer.inTightList() {
				renderer.blankLine()
			}
		}

	case ast.KindHeading:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			renderer.renderCodeLines(node, string(node.(*ast.FencedCodeBlock).Language(renderer.source)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			renderer.renderCodeLines(node, "")
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			renderer.linePrefix += "│ "
		} else {
			renderer.linePrefix = strings.TrimSuffix(renderer.linePrefix, "│ ")
			renderer.blankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			start := 0
			if list.IsOrdered() {
				start = list.Start
			}
			renderer.listStack = append(renderer.listStack, markdownListState{
				ordered: list.IsOrdered(),
				counter: start,
				tight:   list.IsTight,
			})
		} else {
			renderer.listStack = renderer.listStack[:len(renderer.listStack)-1]
			if !renderer.inTightList() {
				renderer.blankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			renderer.enterListItem()
		} else {
			renderer.leaveListItem()
		}

	case ast.KindThematicBreak:
		if entering {
			rule := renderer.newStyle().Foreground(renderer.theme.BorderColor).
				Render(strings.Repeat("─", renderer.contentWidth()))
			renderer.blankLine()
			renderer.writeBlock(rule)
			renderer.blankLine()
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			renderer.inline.WriteString(renderer.styledText(string(textNode.Segment.Value(renderer.source))))
			if textNode.SoftLineBreak() {
				// Reflow: single newlines in the source are wrap
				// artifacts, not intentional breaks.
				renderer.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				renderer.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			renderer.inline.WriteString(renderer.styledText(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			renderer.boldCount += delta
		} else {
			renderer.italicCount += delta
		}

	case extast.KindStrikethrough:
		if entering {
			renderer.strikethroughCount++
		} else {
			renderer.strikethroughCount--
		}

	case ast.KindCodeSpan:
		if entering {
			renderer.renderCodeSpan(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			link := node.(*ast.Link)
			if url := string(link.Destination); url != "" {
				renderer.inline.WriteString(renderer.newStyle().
					Foreground(renderer.theme.FaintText).Render("(" + url + ") "))
			}
		}

	case ast.KindAutoLink:
		if entering {
			autoLink := node.(*ast.AutoLink)
			renderer.inline.WriteString(renderer.newStyle().
				Foreground(renderer.theme.FaintText).
				Render(string(autoLink.URL(renderer.source))))
		}
	}

	return ast.WalkContinue, nil
}

func (renderer *markdownRenderer) leaveHeading(heading *ast.Heading) {
	// Headings carry their own style; drop whatever styledText put on
	// the accumulated text.
	content := ansi.Strip(renderer.inline.String())
	renderer.inline.Reset()
	if content == "" {
		return
	}

	style := renderer.newStyle().Bold(true).Foreground(renderer.theme.NormalText)
	if heading.Level <= 2 {
		style = style.Foreground(renderer.theme.HeaderForeground)
	}

	renderer.blankLine()
	renderer.writeBlock(ansi.Wrap(style.Render(content), renderer.contentWidth(), wrapBreakpoints))
	renderer.blankLine()
}

// renderCodeLines emits a code block, chroma-highlighted when the
// fence names a language chroma knows.
func (renderer *markdownRenderer) renderCodeLines(node ast.Node, language string) {
	var code strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(renderer.source))
	}

	highlighted := renderer.highlightCode(code.String(), language)
	renderer.blankLine()
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		renderer.writeBlock(line)
	}
	renderer.blankLine()
}

func (renderer *markdownRenderer) highlightCode(code, language string) string {
	if language != "" {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err == nil {
			return buffer.String()
		}
	}
	return renderer.newStyle().Foreground(renderer.theme.FaintText).Render(code)
}

func (renderer *markdownRenderer) renderCodeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			code.Write(child.Segment.Value(renderer.source))
		case *ast.String:
			code.Write(child.Value)
		}
	}
	renderer.inline.WriteString(renderer.newStyle().
		Foreground(renderer.theme.CategoryForeground).Render(code.String()))
}

func (renderer *markdownRenderer) enterListItem() {
	if len(renderer.listStack) == 0 {
		return
	}
	top := &renderer.listStack[len(renderer.listStack)-1]

	bullet := "- "
	if top.ordered {
		bullet = fmt.Sprintf("%d. ", top.counter)
		top.counter++
	}

	// The bullet replaces the whole prefix on the item's first line;
	// continuation lines get a matching indent.
	renderer.pendingBullet = renderer.linePrefix + bullet
	renderer.linePrefix += strings.Repeat(" ", len(bullet))
}

func (renderer *markdownRenderer) leaveListItem() {
	if len(renderer.listStack) == 0 {
		return
	}
	top := renderer.listStack[len(renderer.listStack)-1]
	width := 2
	if top.ordered {
		width = len(fmt.Sprintf("%d. ", top.counter-1))
	}
	renderer.linePrefix = renderer.linePrefix[:len(renderer.linePrefix)-width]
	if !renderer.inTightList() {
		renderer.blankLine()
	}
}
