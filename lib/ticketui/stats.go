// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/helpdesk-foundation/helpdesk/lib/ticket"
	"github.com/helpdesk-foundation/helpdesk/lib/tui"
)

// statsLoadedMsg delivers a stats query result, generation-tagged like
// list responses so a refetch burst settles on the newest data.
type statsLoadedMsg struct {
	generation int
	stats      *ticket.Stats
	err        error
}

// StatsModel is the statistics tab: totals and per-enum breakdown
// tables, refetched on every refresh broadcast event.
type StatsModel struct {
	service Service
	theme   tui.Theme

	generation int
	stats      *ticket.Stats
	loading    bool
	loadError  string

	width  int
	height int
}

// NewStatsModel creates the statistics tab. The first fetch is issued
// by the caller via Refresh.
func NewStatsModel(service Service, theme tui.Theme) StatsModel {
	return StatsModel{service: service, theme: theme}
}

// SetSize updates the layout for a new terminal size.
func (stats *StatsModel) SetSize(width, height int) {
	stats.width = width
	stats.height = height
}

// Refresh issues a new stats query, superseding any in-flight one.
func (stats *StatsModel) Refresh() tea.Cmd {
	stats.generation++
	stats.loading = true
	stats.loadError = ""
	return fetchStatsCmd(stats.service, stats.generation)
}

func fetchStatsCmd(service Service, generation int) tea.Cmd {
	return func() tea.Msg {
		result, err := service.Stats(context.Background())
		return statsLoadedMsg{generation: generation, stats: result, err: err}
	}
}

// Update handles messages routed to the statistics tab.
func (stats StatsModel) Update(message tea.Msg) (StatsModel, tea.Cmd) {
	loaded, ok := message.(statsLoadedMsg)
	if !ok {
		return stats, nil
	}
	if loaded.generation != stats.generation {
		return stats, nil
	}
	stats.loading = false
	if loaded.err != nil {
		stats.loadError = loaded.err.Error()
		stats.stats = nil
		return stats, nil
	}
	stats.stats = loaded.stats
	return stats, nil
}

// View renders the statistics tab.
func (stats StatsModel) View() string {
	faint := lipgloss.NewStyle().Foreground(stats.theme.FaintText)

	switch {
	case stats.loading:
		return " " + faint.Render("Loading statistics…") + "\n"
	case stats.loadError != "":
		failure := lipgloss.NewStyle().Foreground(stats.theme.ErrorForeground)
		return " " + failure.Render("Could not load statistics: "+stats.loadError) + "\n"
	case stats.stats == nil:
		return ""
	}

	header := lipgloss.NewStyle().Foreground(stats.theme.HeaderForeground).Bold(true)
	value := lipgloss.NewStyle().Foreground(stats.theme.NormalText)

	var view strings.Builder

	view.WriteString(" " + header.Render("Totals") + "\n")
	view.WriteString(fmt.Sprintf("   %-14s %s\n", "tickets",
		value.Render(fmt.Sprintf("%d", stats.stats.Total))))
	view.WriteString(fmt.Sprintf("   %-14s %s\n", "open",
		value.Render(fmt.Sprintf("%d", stats.stats.Open))))
	view.WriteString(fmt.Sprintf("   %-14s %s\n", "per day",
		value.Render(fmt.Sprintf("%.1f", stats.stats.AvgPerDay))))
	view.WriteString("\n")

	view.WriteString(" " + header.Render("By priority") + "\n")
	for _, priority := range ticket.Priorities() {
		colored := lipgloss.NewStyle().Foreground(stats.theme.PriorityColor(priority))
		view.WriteString(fmt.Sprintf("   %s %d\n",
			colored.Render(fmt.Sprintf("%-14s", priority)),
			stats.stats.ByPriority[priority]))
	}
	view.WriteString("\n")

	view.WriteString(" " + header.Render("By category") + "\n")
	for _, category := range ticket.Categories() {
		view.WriteString(fmt.Sprintf("   %-14s %d\n",
			category, stats.stats.ByCategory[category]))
	}
	view.WriteString("\n")

	view.WriteString(" " + header.Render("By status") + "\n")
	for _, status := range ticket.Statuses() {
		colored := lipgloss.NewStyle().Foreground(stats.theme.StatusColor(status))
		view.WriteString(fmt.Sprintf("   %s %d\n",
			colored.Render(fmt.Sprintf("%-14s", status.Label())),
			stats.stats.ByStatus[status]))
	}

	return view.String()
}
