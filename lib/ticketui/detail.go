// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/helpdesk-foundation/helpdesk/lib/ticket"
	"github.com/helpdesk-foundation/helpdesk/lib/ticketclient"
	"github.com/helpdesk-foundation/helpdesk/lib/tui"
)

// DetailState is the lifecycle of the detail modal.
type DetailState int

const (
	// DetailClosed means no modal is visible.
	DetailClosed DetailState = iota
	// DetailViewing means the modal shows a ticket with a staged
	// status the user may edit.
	DetailViewing
	// DetailCommitting means a status change is in flight; input is
	// ignored until the result arrives.
	DetailCommitting
)

// commitResultMsg delivers the outcome of a staged status commit.
type commitResultMsg struct {
	updated *ticket.Ticket
	err     error
}

// DetailModel is the ticket detail modal: a markdown-rendered
// description above a staged status editor. Opening stages the
// ticket's current status; confirming an unchanged staging closes
// with zero remote calls, a changed one issues a single-field PATCH.
type DetailModel struct {
	service Service
	theme   tui.Theme
	keys    KeyMap

	state  DetailState
	ticket ticket.Ticket

	// staged is the status shown in the editor. It survives a failed
	// commit so the user can retry without re-selecting.
	staged ticket.Status

	dropdown    *tui.DropdownOverlay
	body        viewport.Model
	errorNotice string

	width  int
	height int
}

// NewDetailModel creates a closed detail modal.
func NewDetailModel(service Service, theme tui.Theme) DetailModel {
	return DetailModel{
		service: service,
		theme:   theme,
		keys:    DefaultKeyMap,
		body:    viewport.New(0, 0),
	}
}

// State returns the modal's lifecycle state.
func (detail DetailModel) State() DetailState {
	return detail.state
}

// Staged returns the status currently staged in the editor.
func (detail DetailModel) Staged() ticket.Status {
	return detail.staged
}

// SetSize updates the modal layout for a new terminal size.
func (detail *DetailModel) SetSize(width, height int) {
	detail.width = width
	detail.height = height
	detail.body.Width = detail.bodyWidth()
	detail.body.Height = detail.bodyHeight()
	if detail.state != DetailClosed {
		detail.renderBody()
	}
}

// Open shows the modal for a ticket, staging its current status.
func (detail *DetailModel) Open(item ticket.Ticket) {
	detail.state = DetailViewing
	detail.ticket = item
	detail.staged = item.Status
	detail.errorNotice = ""
	detail.dropdown = nil
	detail.body.Width = detail.bodyWidth()
	detail.body.Height = detail.bodyHeight()
	detail.renderBody()
	detail.body.GotoTop()
}

func (detail *DetailModel) renderBody() {
	detail.body.SetContent(
		renderTerminalMarkdown(detail.ticket.Description, detail.theme, detail.body.Width))
}

func (detail DetailModel) bodyWidth() int {
	width := detail.modalWidth() - 4
	if width < 20 {
		width = 20
	}
	return width
}

func (detail DetailModel) bodyHeight() int {
	// Modal chrome: border, title, metadata, staged row, help line.
	height := detail.height - 12
	if height < 3 {
		height = 3
	}
	return height
}

func (detail DetailModel) modalWidth() int {
	width := detail.width - 8
	if width > 100 {
		width = 100
	}
	if width < 30 {
		width = 30
	}
	return width
}

// Update handles messages while the modal is open.
func (detail DetailModel) Update(message tea.Msg) (DetailModel, tea.Cmd) {
	switch message := message.(type) {
	case commitResultMsg:
		if detail.state != DetailCommitting {
			return detail, nil
		}
		if message.err != nil {
			// Back to viewing with the staged value intact so the
			// user can retry or dismiss.
			detail.state = DetailViewing
			detail.errorNotice = commitErrorNotice(message.err)
			return detail, nil
		}
		detail.state = DetailClosed
		return detail, nil

	case tea.KeyMsg:
		return detail.handleKey(message)
	}

	return detail, nil
}

func (detail DetailModel) handleKey(message tea.KeyMsg) (DetailModel, tea.Cmd) {
	if detail.state == DetailCommitting {
		return detail, nil
	}

	if detail.dropdown != nil {
		switch {
		case key.Matches(message, detail.keys.Up):
			detail.dropdown.MoveUp()
		case key.Matches(message, detail.keys.Down):
			detail.dropdown.MoveDown()
		case key.Matches(message, detail.keys.Dismiss):
			detail.dropdown = nil
		case key.Matches(message, detail.keys.Confirm):
			detail.staged = ticket.Status(detail.dropdown.Selected().Value)
			detail.dropdown = nil
		}
		return detail, nil
	}

	switch {
	case key.Matches(message, detail.keys.Dismiss):
		detail.state = DetailClosed
		return detail, nil

	case key.Matches(message, detail.keys.CycleStatus):
		options := make([]tui.DropdownOption, 0, len(ticket.Statuses()))
		for _, status := range ticket.Statuses() {
			options = append(options, tui.DropdownOption{
				Label: status.Label(),
				Value: string(status),
			})
		}
		detail.dropdown = tui.NewDropdownOverlay(options, string(detail.staged), 2, 4)
		return detail, nil

	case key.Matches(message, detail.keys.Confirm):
		if detail.staged == detail.ticket.Status {
			// Nothing changed: close without touching the service.
			detail.state = DetailClosed
			return detail, nil
		}
		detail.state = DetailCommitting
		detail.errorNotice = ""
		return detail, commitStatusCmd(detail.service, detail.ticket.ID, detail.staged)

	case key.Matches(message, detail.keys.Up):
		detail.body.LineUp(1)
	case key.Matches(message, detail.keys.Down):
		detail.body.LineDown(1)
	case key.Matches(message, detail.keys.PageUp):
		detail.body.HalfViewUp()
	case key.Matches(message, detail.keys.PageDown):
		detail.body.HalfViewDown()
	}

	return detail, nil
}

func commitStatusCmd(service Service, id int64, status ticket.Status) tea.Cmd {
	return func() tea.Msg {
		updated, err := service.UpdateStatus(context.Background(), id, status)
		return commitResultMsg{updated: updated, err: err}
	}
}

func commitErrorNotice(err error) string {
	var serviceError *ticketclient.ServiceError
	if errors.As(err, &serviceError) && serviceError.Detail != "" {
		return serviceError.Detail
	}
	return "Could not update the status, please try again"
}

// Render produces the modal lines for overlay splicing onto the
// underlying tab view.
func (detail DetailModel) Render() []string {
	width := detail.modalWidth()

	headerStyle := lipgloss.NewStyle().Foreground(detail.theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(detail.theme.FaintText)
	priorityStyle := lipgloss.NewStyle().Foreground(detail.theme.PriorityColor(detail.ticket.Priority))
	categoryStyle := lipgloss.NewStyle().Foreground(detail.theme.CategoryForeground)
	statusStyle := lipgloss.NewStyle().Foreground(detail.theme.StatusColor(detail.staged))

	var content strings.Builder

	content.WriteString(headerStyle.Render(
		fmt.Sprintf("#%d %s", detail.ticket.ID, detail.ticket.Title)) + "\n")
	content.WriteString(fmt.Sprintf("%s %s %s\n",
		categoryStyle.Render(string(detail.ticket.Category)),
		priorityStyle.Render(string(detail.ticket.Priority)),
		faintStyle.Render("opened "+detail.ticket.CreatedAt.Format("2006-01-02 15:04")),
	))
	content.WriteString("\n")
	content.WriteString(detail.body.View() + "\n")
	content.WriteString("\n")

	stagedLine := "Status: " + statusStyle.Render(detail.staged.Label())
	if detail.staged != detail.ticket.Status {
		stagedLine += faintStyle.Render(
			fmt.Sprintf("  (was %s)", detail.ticket.Status.Label()))
	}
	content.WriteString(stagedLine + "\n")

	switch {
	case detail.state == DetailCommitting:
		content.WriteString(faintStyle.Render("Saving…") + "\n")
	case detail.errorNotice != "":
		failure := lipgloss.NewStyle().Foreground(detail.theme.ErrorForeground)
		content.WriteString(failure.Render(detail.errorNotice) + "\n")
	default:
		content.WriteString(faintStyle.Render("s change status · Enter confirm · Esc close") + "\n")
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(detail.theme.BorderColor).
		Background(detail.theme.OverlayBackground).
		Padding(0, 1).
		Width(width)

	rendered := frame.Render(strings.TrimRight(content.String(), "\n"))
	lines := strings.Split(rendered, "\n")

	if detail.dropdown != nil {
		spliced := tui.SpliceOverlay(strings.Join(lines, "\n"),
			detail.dropdown.Render(detail.theme),
			detail.dropdown.AnchorX, len(lines)-6)
		lines = strings.Split(spliced, "\n")
	}
	return lines
}
