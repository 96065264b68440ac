// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/helpdesk-foundation/helpdesk/lib/refresh"
	"github.com/helpdesk-foundation/helpdesk/lib/ticket"
	"github.com/helpdesk-foundation/helpdesk/lib/ticketclient"
	"github.com/helpdesk-foundation/helpdesk/lib/tui"
)

const (
	// classifyMinLength is the trimmed description length above which
	// leaving the description field requests a classification.
	classifyMinLength = 10

	// classifyFloor is the minimum time between issuing a
	// classification request and applying its result. Fast responses
	// sleep out the remainder inside the command goroutine so the
	// suggestion never flashes in before the user can notice the
	// indicator.
	classifyFloor = 1500 * time.Millisecond

	// successNoticeDelay is how long the submission success notice
	// stays visible.
	successNoticeDelay = 3 * time.Second
)

// formField identifies which form control has keyboard focus.
type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldCategory
	fieldPriority
	fieldSubmit

	fieldCount
)

// suggestionMsg delivers a classification result. The generation tag
// is the value of the form's classification counter when the request
// was issued; a result tagged with anything but the latest generation
// is stale and gets dropped on arrival.
type suggestionMsg struct {
	generation int
	suggestion *ticket.Suggestion
	err        error
}

// submitResultMsg delivers the outcome of a ticket submission.
type submitResultMsg struct {
	created *ticket.Ticket
	err     error
}

// successFadeMsg clears the submission success notice.
type successFadeMsg struct{}

// FormModel is the new-ticket tab: a title input, a description
// textarea, category/priority selectors, and a submit action. Leaving
// the description field triggers a classification request that
// pre-fills category and priority; submission validates locally,
// creates the ticket, and publishes one refresh event on success.
type FormModel struct {
	service     Service
	broadcaster *refresh.Broadcaster
	theme       tui.Theme
	keys        KeyMap

	title       textinput.Model
	description textarea.Model
	category    ticket.Category
	priority    ticket.Priority
	focus       formField

	// Classification state. classifying is true from issuance until
	// the latest-generation result arrives (applied or failed). floor
	// is how long a result is held before delivery; classifyFloor in
	// production, shortened by tests.
	classifyGeneration int
	classifying        bool
	floor              time.Duration

	submitting    bool
	successNotice bool
	errorNotice   string

	width int
}

// NewFormModel creates the new-ticket form with empty draft defaults.
func NewFormModel(service Service, broadcaster *refresh.Broadcaster, theme tui.Theme) FormModel {
	draft := ticket.NewDraft()

	title := textinput.New()
	title.CharLimit = ticket.TitleMaxLength
	title.Placeholder = "Brief summary of the issue"
	title.Prompt = ""
	title.Focus()

	description := textarea.New()
	description.Placeholder = "Describe the issue in detail"
	description.CharLimit = 0
	description.SetHeight(8)

	return FormModel{
		service:     service,
		broadcaster: broadcaster,
		theme:       theme,
		floor:       classifyFloor,
		keys:        DefaultKeyMap,
		title:       title,
		description: description,
		category:    draft.Category,
		priority:    draft.Priority,
	}
}

// SetSize updates the form layout for a new terminal width.
func (form *FormModel) SetSize(width, height int) {
	form.width = width
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	form.title.Width = inner
	form.description.SetWidth(inner)
}

// Draft assembles the current field values into a draft ticket.
func (form FormModel) Draft() ticket.Draft {
	return ticket.Draft{
		Title:       strings.TrimSpace(form.title.Value()),
		Description: strings.TrimSpace(form.description.Value()),
		Category:    form.category,
		Priority:    form.priority,
	}
}

// Update handles messages routed to the form tab.
func (form FormModel) Update(message tea.Msg) (FormModel, tea.Cmd) {
	switch message := message.(type) {
	case suggestionMsg:
		if message.generation != form.classifyGeneration {
			// A newer request is in flight (or already resolved);
			// this result would overwrite fresher state.
			return form, nil
		}
		form.classifying = false
		if message.err != nil || message.suggestion == nil {
			// Classification is advisory: failures keep whatever
			// the selectors currently hold.
			return form, nil
		}
		if message.suggestion.Category.Valid() {
			form.category = message.suggestion.Category
		}
		if message.suggestion.Priority.Valid() {
			form.priority = message.suggestion.Priority
		}
		return form, nil

	case submitResultMsg:
		form.submitting = false
		if message.err != nil {
			form.errorNotice = submitErrorNotice(message.err)
			return form, nil
		}
		form.resetDraft()
		form.successNotice = true
		form.errorNotice = ""
		form.broadcaster.Publish(message.created.ID)
		return form, tea.Tick(successNoticeDelay, func(time.Time) tea.Msg {
			return successFadeMsg{}
		})

	case successFadeMsg:
		form.successNotice = false
		return form, nil

	case tea.KeyMsg:
		return form.handleKey(message)
	}

	return form, nil
}

func (form FormModel) handleKey(message tea.KeyMsg) (FormModel, tea.Cmd) {
	switch {
	case key.Matches(message, form.keys.Submit):
		return form, form.submit()

	case key.Matches(message, form.keys.NextField):
		return form, form.moveFocus(1)

	case key.Matches(message, form.keys.PrevField):
		return form, form.moveFocus(-1)
	}

	switch form.focus {
	case fieldTitle:
		var cmd tea.Cmd
		form.title, cmd = form.title.Update(message)
		return form, cmd

	case fieldDescription:
		var cmd tea.Cmd
		form.description, cmd = form.description.Update(message)
		return form, cmd

	case fieldCategory:
		switch {
		case key.Matches(message, form.keys.Up):
			form.category = cycleValue(ticket.Categories(), form.category, -1)
		case key.Matches(message, form.keys.Down):
			form.category = cycleValue(ticket.Categories(), form.category, 1)
		}
		return form, nil

	case fieldPriority:
		switch {
		case key.Matches(message, form.keys.Up):
			form.priority = cycleValue(ticket.Priorities(), form.priority, -1)
		case key.Matches(message, form.keys.Down):
			form.priority = cycleValue(ticket.Priorities(), form.priority, 1)
		}
		return form, nil

	case fieldSubmit:
		if key.Matches(message, form.keys.Confirm) {
			return form, form.submit()
		}
	}

	return form, nil
}

// moveFocus shifts focus by delta (wrapping) and returns the
// classification command when focus just left the description field.
func (form *FormModel) moveFocus(delta int) tea.Cmd {
	previous := form.focus
	form.focus = formField((int(form.focus) + delta + int(fieldCount)) % int(fieldCount))

	form.title.Blur()
	form.description.Blur()

	var cmd tea.Cmd
	switch form.focus {
	case fieldTitle:
		cmd = form.title.Focus()
	case fieldDescription:
		cmd = form.description.Focus()
	}

	if previous == fieldDescription {
		return tea.Batch(cmd, form.maybeClassify())
	}
	return cmd
}

// maybeClassify issues a classification request if the description is
// long enough to be worth classifying. Each issuance bumps the
// generation counter so earlier in-flight results become stale.
func (form *FormModel) maybeClassify() tea.Cmd {
	trimmed := strings.TrimSpace(form.description.Value())
	if utf8.RuneCountInString(trimmed) <= classifyMinLength {
		return nil
	}
	form.classifyGeneration++
	form.classifying = true
	return classifyCmd(form.service, trimmed, form.classifyGeneration, form.floor)
}

// classifyCmd calls the classification boundary and holds the result
// until the floor has elapsed since issuance. Slow responses apply on
// arrival; fast ones sleep out the remainder here, in the command
// goroutine, never in Update.
func classifyCmd(service Service, description string, generation int, floor time.Duration) tea.Cmd {
	return func() tea.Msg {
		started := time.Now()
		suggestion, err := service.Classify(context.Background(), description)
		if remaining := floor - time.Since(started); remaining > 0 {
			time.Sleep(remaining)
		}
		return suggestionMsg{generation: generation, suggestion: suggestion, err: err}
	}
}

// submit validates the draft and issues the create call. Refused while
// a classification is in flight: its result would land on a draft the
// user no longer owns.
func (form *FormModel) submit() tea.Cmd {
	if form.submitting {
		return nil
	}
	if form.classifying {
		form.errorNotice = "Suggestion in progress, one moment"
		return nil
	}

	draft := form.Draft()
	if err := draft.Validate(); err != nil {
		form.errorNotice = capitalizeNotice(err.Error())
		return nil
	}

	form.errorNotice = ""
	form.submitting = true
	return submitCmd(form.service, draft)
}

func submitCmd(service Service, draft ticket.Draft) tea.Cmd {
	return func() tea.Msg {
		created, err := service.Create(context.Background(), draft)
		return submitResultMsg{created: created, err: err}
	}
}

// resetDraft restores the empty-draft defaults after a successful
// submission and puts focus back on the title.
func (form *FormModel) resetDraft() {
	draft := ticket.NewDraft()
	form.title.SetValue("")
	form.description.SetValue("")
	form.category = draft.Category
	form.priority = draft.Priority
	form.description.Blur()
	form.focus = fieldTitle
	form.title.Focus()
}

// discard drops the draft when the user navigates away from the form.
// A draft exists only while a ticket is being composed; leaving the
// tab ends the composition.
func (form *FormModel) discard() {
	form.resetDraft()
	form.successNotice = false
	form.errorNotice = ""
}

// submitErrorNotice turns a create failure into the status line text:
// the service's own message when it sent one, a generic fallback when
// the failure never reached the service.
func submitErrorNotice(err error) string {
	var serviceError *ticketclient.ServiceError
	if errors.As(err, &serviceError) && serviceError.Detail != "" {
		return serviceError.Detail
	}
	return "Could not submit the ticket, please try again"
}

// capitalizeNotice upper-cases the first byte of a validation message
// for status line display.
func capitalizeNotice(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

// cycleValue steps through an enum's values from current by delta,
// wrapping at both ends.
func cycleValue[T comparable](values []T, current T, delta int) T {
	index := 0
	for position, value := range values {
		if value == current {
			index = position
			break
		}
	}
	index = (index + delta + len(values)) % len(values)
	return values[index]
}

// View renders the form tab.
func (form FormModel) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(form.theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(form.theme.FaintText)
	focusMark := lipgloss.NewStyle().Foreground(form.theme.CategoryForeground)

	var view strings.Builder

	writeLabel := func(field formField, text string) {
		marker := "  "
		if form.focus == field {
			marker = focusMark.Render("> ")
		}
		view.WriteString(marker + labelStyle.Render(text) + "\n")
	}

	writeLabel(fieldTitle, "Title")
	view.WriteString("  " + form.title.View() + "\n")
	counter := fmt.Sprintf("%d/%d characters",
		utf8.RuneCountInString(form.title.Value()), ticket.TitleMaxLength)
	view.WriteString("  " + faintStyle.Render(counter) + "\n\n")

	writeLabel(fieldDescription, "Description")
	view.WriteString(indentLines(form.description.View(), "  ") + "\n\n")

	writeLabel(fieldCategory, "Category")
	view.WriteString("  " + form.selectorView(string(form.category), form.focus == fieldCategory) + "\n\n")

	writeLabel(fieldPriority, "Priority")
	view.WriteString("  " + form.selectorView(string(form.priority), form.focus == fieldPriority) + "\n\n")

	submitStyle := lipgloss.NewStyle().Foreground(form.theme.NormalText)
	if form.focus == fieldSubmit {
		submitStyle = lipgloss.NewStyle().
			Foreground(form.theme.SelectedForeground).
			Background(form.theme.SelectedBackground)
	}
	view.WriteString("  " + submitStyle.Render(" Submit Ticket ") + "\n\n")

	switch {
	case form.submitting:
		view.WriteString("  " + faintStyle.Render("Submitting…") + "\n")
	case form.classifying:
		view.WriteString("  " + faintStyle.Render("Analyzing description…") + "\n")
	case form.successNotice:
		success := lipgloss.NewStyle().Foreground(form.theme.SuccessForeground)
		view.WriteString("  " + success.Render("Ticket submitted") + "\n")
	case form.errorNotice != "":
		failure := lipgloss.NewStyle().Foreground(form.theme.ErrorForeground)
		view.WriteString("  " + failure.Render(form.errorNotice) + "\n")
	}

	return view.String()
}

// selectorView renders an enum selector row; the arrows advertise the
// up/down cycling available while the row has focus.
func (form FormModel) selectorView(value string, focused bool) string {
	style := lipgloss.NewStyle().Foreground(form.theme.NormalText)
	if focused {
		style = lipgloss.NewStyle().
			Foreground(form.theme.SelectedForeground).
			Background(form.theme.SelectedBackground)
	}
	return style.Render(fmt.Sprintf("↕ %s", value))
}

func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for index, line := range lines {
		lines[index] = prefix + line
	}
	return strings.Join(lines, "\n")
}
