// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/helpdesk-foundation/helpdesk/lib/refresh"
	"github.com/helpdesk-foundation/helpdesk/lib/tui"
)

// Tab identifies which view is active.
type Tab int

const (
	// TabTickets shows the filterable ticket list.
	TabTickets Tab = iota
	// TabNew shows the new-ticket form.
	TabNew
	// TabStats shows the aggregate statistics.
	TabStats
)

// refreshEventMsg wraps a refresh broadcast event for delivery through
// the bubbletea message loop.
type refreshEventMsg struct {
	event refresh.Event
}

// listenForRefresh returns a tea.Cmd that blocks until a refresh event
// arrives, then delivers it. The Update handler re-arms it after each
// delivery.
func listenForRefresh(events <-chan refresh.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return refreshEventMsg{event: event}
	}
}

// Model is the top-level bubbletea model for the helpdesk TUI: three
// tabs (tickets, new ticket, stats), a detail modal, and a status bar.
// The list and stats tabs both subscribe to the refresh broadcaster
// through a single event channel owned here.
type Model struct {
	theme tui.Theme
	keys  KeyMap

	activeTab Tab
	list      ListModel
	form      FormModel
	detail    DetailModel
	stats     StatsModel

	events <-chan refresh.Event
	// lastSequence is the sequence number of the last refresh event
	// acted on. Compared by inequality, not ordering: a dropped event
	// just means the next one triggers the refetch.
	lastSequence uint64

	logNotice string
	logLevel  slog.Level

	// Commands produced during construction (initial fetches),
	// returned once from Init.
	initialCmds []tea.Cmd

	width  int
	height int
	ready  bool
}

// NewModel creates the root model and issues the initial list and
// stats fetches.
func NewModel(service Service, broadcaster *refresh.Broadcaster) Model {
	theme := tui.DefaultTheme

	model := Model{
		theme:  theme,
		keys:   DefaultKeyMap,
		list:   NewListModel(service, theme),
		form:   NewFormModel(service, broadcaster, theme),
		detail: NewDetailModel(service, theme),
		stats:  NewStatsModel(service, theme),
		events: broadcaster.Subscribe(),
	}
	model.initialCmds = []tea.Cmd{
		model.list.Refresh(),
		model.stats.Refresh(),
	}
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	commands := append([]tea.Cmd{}, model.initialCmds...)
	commands = append(commands, listenForRefresh(model.events))
	return tea.Batch(commands...)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		contentHeight := model.height - 3
		model.list.SetSize(model.width, contentHeight)
		model.form.SetSize(model.width, contentHeight)
		model.stats.SetSize(model.width, contentHeight)
		model.detail.SetSize(model.width, model.height)
		return model, nil

	case refreshEventMsg:
		var commands []tea.Cmd
		if message.event.Sequence != model.lastSequence {
			model.lastSequence = message.event.Sequence
			commands = append(commands, model.list.Refresh(), model.stats.Refresh())
		}
		commands = append(commands, listenForRefresh(model.events))
		return model, tea.Batch(commands...)

	case logRecordMsg:
		model.logNotice = message.summary
		model.logLevel = message.level
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{}
		})

	case logRecordFadeMsg:
		model.logNotice = ""
		return model, nil

	case suggestionMsg, submitResultMsg, successFadeMsg:
		var cmd tea.Cmd
		model.form, cmd = model.form.Update(message)
		return model, cmd

	case ticketsLoadedMsg:
		var cmd tea.Cmd
		model.list, cmd = model.list.Update(message)
		return model, cmd

	case statsLoadedMsg:
		var cmd tea.Cmd
		model.stats, cmd = model.stats.Update(message)
		return model, cmd

	case commitResultMsg:
		var cmd tea.Cmd
		model.detail, cmd = model.detail.Update(message)
		commands := []tea.Cmd{cmd}
		if message.err == nil {
			// A committed status change refetches directly: the
			// mutation is this client's own doing, no need to go
			// through the broadcaster.
			commands = append(commands, model.list.Refresh())
		}
		return model, tea.Batch(commands...)

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An open modal owns all keystrokes.
	if model.detail.State() != DetailClosed {
		var cmd tea.Cmd
		model.detail, cmd = model.detail.Update(message)
		return model, cmd
	}

	// Ctrl+C always quits, even inside text inputs.
	if message.String() == "ctrl+c" {
		return model, tea.Quit
	}

	switch model.activeTab {
	case TabNew:
		// The form is all text inputs; only Esc (back to the list)
		// is handled globally.
		if key.Matches(message, model.keys.Dismiss) && !model.form.classifying {
			model.form.discard()
			model.activeTab = TabTickets
			return model, nil
		}
		var cmd tea.Cmd
		model.form, cmd = model.form.Update(message)
		return model, cmd

	case TabTickets:
		if model.list.CapturingInput() {
			var cmd tea.Cmd
			model.list, cmd = model.list.Update(message)
			return model, cmd
		}

		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.TabNew):
			model.activeTab = TabNew
			return model, nil
		case key.Matches(message, model.keys.TabStats):
			model.activeTab = TabStats
			return model, nil
		case key.Matches(message, model.keys.Open):
			if selected := model.list.Selected(); selected != nil {
				model.detail.Open(*selected)
			}
			return model, nil
		}

		var cmd tea.Cmd
		model.list, cmd = model.list.Update(message)
		return model, cmd

	case TabStats:
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.TabTickets):
			model.activeTab = TabTickets
		case key.Matches(message, model.keys.TabNew):
			model.activeTab = TabNew
		case key.Matches(message, model.keys.Reload):
			return model, model.stats.Refresh()
		}
		return model, nil
	}

	return model, nil
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading…"
	}

	var view strings.Builder
	view.WriteString(model.tabBar() + "\n")

	var content string
	switch model.activeTab {
	case TabTickets:
		content = model.list.View()
	case TabNew:
		content = model.form.View()
	case TabStats:
		content = model.stats.View()
	}
	view.WriteString(content)

	// Pad so the status bar sits on the bottom row.
	rendered := view.String()
	lines := strings.Count(rendered, "\n") + 1
	for ; lines < model.height-1; lines++ {
		rendered += "\n"
	}
	rendered += model.statusBar()

	if model.detail.State() != DetailClosed {
		rendered = tui.CenterOverlay(rendered, model.detail.Render(), model.width, model.height)
	}
	return rendered
}

func (model Model) tabBar() string {
	activeStyle := lipgloss.NewStyle().
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground).
		Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	render := func(tab Tab, label string) string {
		if tab == model.activeTab {
			return activeStyle.Render(" " + label + " ")
		}
		return inactiveStyle.Render(" " + label + " ")
	}

	return render(TabTickets, "1 Tickets") +
		render(TabNew, "2 New Ticket") +
		render(TabStats, "3 Stats")
}

func (model Model) statusBar() string {
	if model.logNotice != "" {
		color := model.theme.ErrorForeground
		if model.logLevel < slog.LevelError {
			color = model.theme.StatusInProgress
		}
		return lipgloss.NewStyle().Foreground(color).Render(" " + model.logNotice)
	}

	help := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	switch model.activeTab {
	case TabNew:
		return help.Render(" Tab next field · C-s submit · Esc back")
	case TabStats:
		return help.Render(" r reload · 1 tickets · q quit")
	default:
		return help.Render(" Enter open · c/p/s filter · / search · f fuzzy · r reload · q quit")
	}
}
