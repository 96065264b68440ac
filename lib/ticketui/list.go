// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/helpdesk-foundation/helpdesk/lib/ticket"
	"github.com/helpdesk-foundation/helpdesk/lib/tui"
)

// ticketsLoadedMsg delivers a list query result. The generation tag is
// the value of the list's query counter when the request was issued;
// results from superseded requests are dropped on arrival.
type ticketsLoadedMsg struct {
	generation int
	tickets    []ticket.Ticket
	err        error
}

// listInputMode identifies which transient text input owns keystrokes.
type listInputMode int

const (
	inputNone listInputMode = iota
	// inputSearch captures a remote search term; confirmed with enter,
	// it becomes the filter's search field and triggers a refetch.
	inputSearch
	// inputQuickFilter captures a local fuzzy query applied to the
	// already-fetched tickets on every keystroke. Never round-trips.
	inputQuickFilter
)

// dropdownKind identifies which filter field an open dropdown edits.
type dropdownKind int

const (
	dropdownCategory dropdownKind = iota
	dropdownPriority
	dropdownStatus
)

// ListModel is the tickets tab: a remote-filtered, locally-narrowable
// ticket list. Every filter change triggers exactly one refetch; the
// service's newest-first ordering is preserved as-is.
type ListModel struct {
	service Service
	theme   tui.Theme
	keys    KeyMap

	filter     ticket.Filter
	generation int

	// tickets is the last successful response. visible indexes into
	// it after the local quick filter; highlights maps ticket ID to
	// matched title rune positions for render-time emphasis.
	tickets    []ticket.Ticket
	visible    []int
	highlights map[int64][]int

	loading   bool
	loadError string

	cursor       int
	scrollOffset int

	mode        listInputMode
	searchInput textinput.Model
	quickInput  textinput.Model

	dropdown     *tui.DropdownOverlay
	dropdownKind dropdownKind

	slab *util.Slab

	width  int
	height int
}

// NewListModel creates the tickets tab. The first fetch is issued by
// the caller (via Refresh) so construction stays side-effect free.
func NewListModel(service Service, theme tui.Theme) ListModel {
	search := textinput.New()
	search.Placeholder = "Search title and description"
	search.Prompt = "/ "

	quick := textinput.New()
	quick.Placeholder = "Fuzzy filter loaded tickets"
	quick.Prompt = "f "

	return ListModel{
		service:     service,
		theme:       theme,
		keys:        DefaultKeyMap,
		searchInput: search,
		quickInput:  quick,
		slab:        tui.NewFuzzySlab(),
	}
}

// SetSize updates the list layout for a new terminal size.
func (list *ListModel) SetSize(width, height int) {
	list.width = width
	list.height = height
	list.searchInput.Width = width - 4
	list.quickInput.Width = width - 4
	list.clampScroll()
}

// Filter returns the active remote filter.
func (list ListModel) Filter() ticket.Filter {
	return list.filter
}

// Selected returns the ticket under the cursor, or nil when the list
// is empty, loading, or in an error state.
func (list ListModel) Selected() *ticket.Ticket {
	if list.loading || list.loadError != "" {
		return nil
	}
	if list.cursor < 0 || list.cursor >= len(list.visible) {
		return nil
	}
	return &list.tickets[list.visible[list.cursor]]
}

// CapturingInput reports whether the list currently owns all
// keystrokes (a text input or dropdown is active), so global bindings
// like quit and tab switching must not fire.
func (list ListModel) CapturingInput() bool {
	return list.mode != inputNone || list.dropdown != nil
}

// Refresh issues a new list query with the current filter. The
// previous request, if still in flight, is superseded: its response
// will arrive with a stale generation and be dropped.
func (list *ListModel) Refresh() tea.Cmd {
	list.generation++
	list.loading = true
	list.loadError = ""
	return fetchTicketsCmd(list.service, list.filter, list.generation)
}

func fetchTicketsCmd(service Service, filter ticket.Filter, generation int) tea.Cmd {
	return func() tea.Msg {
		tickets, err := service.List(context.Background(), filter)
		return ticketsLoadedMsg{generation: generation, tickets: tickets, err: err}
	}
}

// Update handles messages routed to the tickets tab.
func (list ListModel) Update(message tea.Msg) (ListModel, tea.Cmd) {
	switch message := message.(type) {
	case ticketsLoadedMsg:
		if message.generation != list.generation {
			return list, nil
		}
		list.loading = false
		if message.err != nil {
			list.loadError = message.err.Error()
			list.tickets = nil
			list.visible = nil
			list.highlights = nil
			return list, nil
		}
		list.tickets = message.tickets
		list.applyQuickFilter()
		return list, nil

	case tea.KeyMsg:
		return list.handleKey(message)
	}

	return list, nil
}

func (list ListModel) handleKey(message tea.KeyMsg) (ListModel, tea.Cmd) {
	if list.dropdown != nil {
		return list.handleDropdownKey(message)
	}

	switch list.mode {
	case inputSearch:
		return list.handleSearchKey(message)
	case inputQuickFilter:
		return list.handleQuickFilterKey(message)
	}

	switch {
	case key.Matches(message, list.keys.Up):
		list.moveCursor(-1)
	case key.Matches(message, list.keys.Down):
		list.moveCursor(1)
	case key.Matches(message, list.keys.PageUp):
		list.moveCursor(-list.pageSize())
	case key.Matches(message, list.keys.PageDown):
		list.moveCursor(list.pageSize())
	case key.Matches(message, list.keys.Home):
		list.cursor = 0
		list.clampScroll()
	case key.Matches(message, list.keys.End):
		list.cursor = len(list.visible) - 1
		list.clampScroll()

	case key.Matches(message, list.keys.FilterCategory):
		list.openDropdown(dropdownCategory)
	case key.Matches(message, list.keys.FilterPriority):
		list.openDropdown(dropdownPriority)
	case key.Matches(message, list.keys.FilterStatus):
		list.openDropdown(dropdownStatus)

	case key.Matches(message, list.keys.Search):
		list.mode = inputSearch
		list.searchInput.SetValue(list.filter.Search)
		return list, list.searchInput.Focus()

	case key.Matches(message, list.keys.QuickFilter):
		list.mode = inputQuickFilter
		return list, list.quickInput.Focus()

	case key.Matches(message, list.keys.ClearFilters):
		if list.filter.IsZero() && list.quickInput.Value() == "" {
			return list, nil
		}
		list.filter = ticket.Filter{}
		list.quickInput.SetValue("")
		list.applyQuickFilter()
		return list, list.Refresh()

	case key.Matches(message, list.keys.Reload):
		return list, list.Refresh()
	}

	return list, nil
}

func (list ListModel) handleDropdownKey(message tea.KeyMsg) (ListModel, tea.Cmd) {
	switch {
	case key.Matches(message, list.keys.Up):
		list.dropdown.MoveUp()
	case key.Matches(message, list.keys.Down):
		list.dropdown.MoveDown()
	case key.Matches(message, list.keys.Dismiss):
		list.dropdown = nil
	case key.Matches(message, list.keys.Confirm):
		selected := list.dropdown.Selected().Value
		kind := list.dropdownKind
		list.dropdown = nil
		if list.setFilterField(kind, selected) {
			return list, list.Refresh()
		}
	}
	return list, nil
}

// setFilterField applies a dropdown selection and reports whether the
// filter actually changed. An unchanged filter issues no refetch.
func (list *ListModel) setFilterField(kind dropdownKind, value string) bool {
	previous := list.filter
	switch kind {
	case dropdownCategory:
		list.filter.Category = ticket.Category(value)
	case dropdownPriority:
		list.filter.Priority = ticket.Priority(value)
	case dropdownStatus:
		list.filter.Status = ticket.Status(value)
	}
	return list.filter != previous
}

func (list ListModel) handleSearchKey(message tea.KeyMsg) (ListModel, tea.Cmd) {
	switch {
	case key.Matches(message, list.keys.Dismiss):
		list.mode = inputNone
		list.searchInput.Blur()
		return list, nil
	case key.Matches(message, list.keys.Confirm):
		list.mode = inputNone
		list.searchInput.Blur()
		term := strings.TrimSpace(list.searchInput.Value())
		if term == list.filter.Search {
			return list, nil
		}
		list.filter.Search = term
		return list, list.Refresh()
	}

	var cmd tea.Cmd
	list.searchInput, cmd = list.searchInput.Update(message)
	return list, cmd
}

func (list ListModel) handleQuickFilterKey(message tea.KeyMsg) (ListModel, tea.Cmd) {
	switch {
	case key.Matches(message, list.keys.Dismiss):
		list.mode = inputNone
		list.quickInput.Blur()
		list.quickInput.SetValue("")
		list.applyQuickFilter()
		return list, nil
	case key.Matches(message, list.keys.Confirm):
		// Keep the narrowing, return keystrokes to the list.
		list.mode = inputNone
		list.quickInput.Blur()
		return list, nil
	}

	var cmd tea.Cmd
	list.quickInput, cmd = list.quickInput.Update(message)
	list.applyQuickFilter()
	return list, cmd
}

// openDropdown shows a filter dropdown for the given field, cursor on
// the currently active value. The empty value is "All": no constraint.
func (list *ListModel) openDropdown(kind dropdownKind) {
	options := []tui.DropdownOption{{Label: "All", Value: ""}}
	var current string

	switch kind {
	case dropdownCategory:
		for _, category := range ticket.Categories() {
			options = append(options, tui.DropdownOption{Label: string(category), Value: string(category)})
		}
		current = string(list.filter.Category)
	case dropdownPriority:
		for _, priority := range ticket.Priorities() {
			options = append(options, tui.DropdownOption{Label: string(priority), Value: string(priority)})
		}
		current = string(list.filter.Priority)
	case dropdownStatus:
		for _, status := range ticket.Statuses() {
			options = append(options, tui.DropdownOption{Label: status.Label(), Value: string(status)})
		}
		current = string(list.filter.Status)
	}

	// Anchored under the filter summary line.
	list.dropdown = tui.NewDropdownOverlay(options, current, 2, 2)
	list.dropdownKind = kind
}

// applyQuickFilter recomputes the visible subset from the local fuzzy
// query. Matching runs over "title category status" per ticket; match
// positions that fall inside the title drive highlight rendering.
func (list *ListModel) applyQuickFilter() {
	query := []rune(strings.TrimSpace(list.quickInput.Value()))

	list.visible = list.visible[:0]
	list.highlights = nil

	if len(query) == 0 {
		for index := range list.tickets {
			list.visible = append(list.visible, index)
		}
		list.clampCursor()
		return
	}

	list.highlights = make(map[int64][]int)
	for index, item := range list.tickets {
		target := item.Title + " " + string(item.Category) + " " + string(item.Status)
		result := tui.FuzzyMatch(target, query, list.slab)
		if !result.Matched {
			continue
		}
		list.visible = append(list.visible, index)

		titleLength := len([]rune(item.Title))
		var titlePositions []int
		for _, position := range result.Positions {
			if position < titleLength {
				titlePositions = append(titlePositions, position)
			}
		}
		if len(titlePositions) > 0 {
			list.highlights[item.ID] = titlePositions
		}
	}
	list.clampCursor()
}

func (list *ListModel) moveCursor(delta int) {
	list.cursor += delta
	list.clampCursor()
}

func (list *ListModel) clampCursor() {
	if list.cursor >= len(list.visible) {
		list.cursor = len(list.visible) - 1
	}
	if list.cursor < 0 {
		list.cursor = 0
	}
	list.clampScroll()
}

func (list *ListModel) clampScroll() {
	page := list.pageSize()
	if list.cursor < list.scrollOffset {
		list.scrollOffset = list.cursor
	}
	if list.cursor >= list.scrollOffset+page {
		list.scrollOffset = list.cursor - page + 1
	}
	if list.scrollOffset < 0 {
		list.scrollOffset = 0
	}
}

// pageSize is the number of ticket rows that fit under the chrome
// (filter summary, input line, spacing).
func (list ListModel) pageSize() int {
	rows := list.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View renders the tickets tab, splicing the filter dropdown overlay
// on top when one is open.
func (list ListModel) View() string {
	var view strings.Builder

	view.WriteString(" " + list.filterSummary() + "\n")

	switch list.mode {
	case inputSearch:
		view.WriteString(" " + list.searchInput.View() + "\n")
	case inputQuickFilter:
		view.WriteString(" " + list.quickInput.View() + "\n")
	default:
		view.WriteString("\n")
	}

	switch {
	case list.loading:
		faint := lipgloss.NewStyle().Foreground(list.theme.FaintText)
		view.WriteString(" " + faint.Render("Loading tickets…") + "\n")
	case list.loadError != "":
		failure := lipgloss.NewStyle().Foreground(list.theme.ErrorForeground)
		view.WriteString(" " + failure.Render("Could not load tickets: "+list.loadError) + "\n")
		view.WriteString(" " + lipgloss.NewStyle().Foreground(list.theme.FaintText).
			Render("Press r to retry") + "\n")
	case len(list.visible) == 0:
		faint := lipgloss.NewStyle().Foreground(list.theme.FaintText)
		view.WriteString(" " + faint.Render("No tickets match") + "\n")
	default:
		list.renderRows(&view)
	}

	rendered := view.String()
	if list.dropdown != nil {
		rendered = tui.SpliceOverlay(rendered, list.dropdown.Render(list.theme),
			list.dropdown.AnchorX, list.dropdown.AnchorY)
	}
	return rendered
}

func (list ListModel) renderRows(view *strings.Builder) {
	page := list.pageSize()
	end := list.scrollOffset + page
	if end > len(list.visible) {
		end = len(list.visible)
	}

	for row := list.scrollOffset; row < end; row++ {
		item := list.tickets[list.visible[row]]
		view.WriteString(list.renderRow(item, row == list.cursor) + "\n")
	}
}

func (list ListModel) renderRow(item ticket.Ticket, selected bool) string {
	idStyle := lipgloss.NewStyle().Foreground(list.theme.FaintText)
	priorityStyle := lipgloss.NewStyle().Foreground(list.theme.PriorityColor(item.Priority))
	categoryStyle := lipgloss.NewStyle().Foreground(list.theme.CategoryForeground)
	statusStyle := lipgloss.NewStyle().Foreground(list.theme.StatusColor(item.Status))
	titleStyle := lipgloss.NewStyle().Foreground(list.theme.NormalText)

	marker := "  "
	if selected {
		marker = lipgloss.NewStyle().Foreground(list.theme.SelectedForeground).Render("> ")
		titleStyle = lipgloss.NewStyle().
			Foreground(list.theme.SelectedForeground).
			Background(list.theme.SelectedBackground)
	}

	title := list.renderTitle(item, titleStyle)

	return fmt.Sprintf("%s%s %s %s %s %s",
		marker,
		idStyle.Render(fmt.Sprintf("#%-4d", item.ID)),
		priorityStyle.Render(fmt.Sprintf("%-8s", item.Priority)),
		categoryStyle.Render(fmt.Sprintf("%-9s", item.Category)),
		statusStyle.Render(fmt.Sprintf("%-11s", item.Status.Label())),
		title,
	)
}

// renderTitle emphasizes fuzzy match positions when the quick filter
// is active.
func (list ListModel) renderTitle(item ticket.Ticket, base lipgloss.Style) string {
	positions := list.highlights[item.ID]
	if len(positions) == 0 {
		return base.Render(item.Title)
	}

	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}
	highlight := base.Background(list.theme.MatchHighlightBackground)

	var rendered strings.Builder
	for index, character := range []rune(item.Title) {
		if matched[index] {
			rendered.WriteString(highlight.Render(string(character)))
		} else {
			rendered.WriteString(base.Render(string(character)))
		}
	}
	return rendered.String()
}

// filterSummary is the one-line description of the active constraints.
func (list ListModel) filterSummary() string {
	faint := lipgloss.NewStyle().Foreground(list.theme.FaintText)
	active := lipgloss.NewStyle().Foreground(list.theme.CategoryForeground)

	part := func(label, value string) string {
		if value == "" {
			return faint.Render(label + ":all")
		}
		return active.Render(label + ":" + value)
	}

	parts := []string{
		part("category", string(list.filter.Category)),
		part("priority", string(list.filter.Priority)),
		part("status", string(list.filter.Status)),
	}
	if list.filter.Search != "" {
		parts = append(parts, active.Render("search:"+list.filter.Search))
	}
	if quick := strings.TrimSpace(list.quickInput.Value()); quick != "" {
		parts = append(parts, active.Render("filter:"+quick))
	}
	return strings.Join(parts, "  ")
}
