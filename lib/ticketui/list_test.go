// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/helpdesk-foundation/helpdesk/lib/ticket"
	"github.com/helpdesk-foundation/helpdesk/lib/tui"
)

func newTestList(fake *fakeService) ListModel {
	list := NewListModel(fake, tui.DefaultTheme)
	list.SetSize(100, 24)
	return list
}

// loadedTestList returns a list that has fetched the fixture tickets.
func loadedTestList(t *testing.T, fake *fakeService) ListModel {
	t.Helper()
	list := newTestList(fake)
	cmd := list.Refresh()
	list, _ = list.Update(cmd().(ticketsLoadedMsg))
	if list.loading || list.loadError != "" {
		t.Fatalf("fixture load failed: loading=%v error=%q", list.loading, list.loadError)
	}
	return list
}

func TestStaleListResponseDiscarded(t *testing.T) {
	fake := &fakeService{listResult: testTickets()}
	list := newTestList(fake)

	list.Refresh()
	list.Refresh() // Supersedes the first request.

	list, _ = list.Update(ticketsLoadedMsg{generation: 1, tickets: testTickets()})
	if !list.loading {
		t.Error("a stale response must not end the loading state")
	}
	if len(list.tickets) != 0 {
		t.Error("a stale response must not populate the list")
	}

	list, _ = list.Update(ticketsLoadedMsg{generation: 2, tickets: testTickets()})
	if list.loading {
		t.Error("the latest response must end the loading state")
	}
	if len(list.visible) != 3 {
		t.Errorf("got %d visible tickets, want 3", len(list.visible))
	}
}

func TestListErrorReplacesContent(t *testing.T) {
	fake := &fakeService{listResult: testTickets()}
	list := loadedTestList(t, fake)

	list.Refresh()
	list, _ = list.Update(ticketsLoadedMsg{generation: list.generation, err: errors.New("gateway timeout")})

	if list.loadError == "" {
		t.Fatal("a failed query must enter the error state")
	}
	if len(list.tickets) != 0 {
		t.Error("previous data must be discarded on failure")
	}
	view := ansi.Strip(list.View())
	if !strings.Contains(view, "Could not load tickets") {
		t.Error("error state must replace the list content")
	}
	if strings.Contains(view, "Card declined") {
		t.Error("stale rows must not render in the error state")
	}
}

func TestDropdownSelectionRefetchesOnce(t *testing.T) {
	fake := &fakeService{listResult: testTickets()}
	list := loadedTestList(t, fake)
	callsBefore := fake.listCallCount()

	list, _ = list.Update(pressRunes("p"))
	if list.dropdown == nil {
		t.Fatal("p must open the priority dropdown")
	}

	// Move from "All" to the first priority and confirm.
	list, _ = list.Update(pressRunes("j"))
	list, cmd := list.Update(pressKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("a changed filter must refetch")
	}
	cmd()

	if fake.listCallCount() != callsBefore+1 {
		t.Fatalf("got %d new requests, want exactly 1", fake.listCallCount()-callsBefore)
	}
	if list.filter.Priority != ticket.PriorityLow {
		t.Errorf("filter priority = %q, want low", list.filter.Priority)
	}
	if list.dropdown != nil {
		t.Error("confirming must close the dropdown")
	}
}

func TestUnchangedDropdownSelectionDoesNotRefetch(t *testing.T) {
	fake := &fakeService{listResult: testTickets()}
	list := loadedTestList(t, fake)

	list, _ = list.Update(pressRunes("c"))
	// Cursor starts on "All", which is already the active value.
	list, cmd := list.Update(pressKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("re-selecting the active value must not refetch")
	}
	if !list.filter.IsZero() {
		t.Errorf("filter changed unexpectedly: %+v", list.filter)
	}
}

func TestSearchConfirmSetsFilterAndRefetches(t *testing.T) {
	fake := &fakeService{listResult: testTickets()}
	list := loadedTestList(t, fake)

	list, _ = list.Update(pressRunes("/"))
	if !list.CapturingInput() {
		t.Fatal("search mode must capture input")
	}
	list, _ = list.Update(pressRunes("declined"))
	list, cmd := list.Update(pressKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("a new search term must refetch")
	}
	cmd()

	if list.filter.Search != "declined" {
		t.Errorf("filter search = %q, want declined", list.filter.Search)
	}
	last := fake.listCalls[len(fake.listCalls)-1]
	if last.Search != "declined" {
		t.Errorf("request carried search %q", last.Search)
	}
}

func TestQuickFilterNarrowsWithoutRoundTrip(t *testing.T) {
	fake := &fakeService{listResult: testTickets()}
	list := loadedTestList(t, fake)
	callsBefore := fake.listCallCount()

	list, _ = list.Update(pressRunes("f"))
	list, _ = list.Update(pressRunes("dash"))

	if fake.listCallCount() != callsBefore {
		t.Error("the quick filter must never round-trip")
	}
	if len(list.visible) != 1 {
		t.Fatalf("got %d visible tickets, want 1", len(list.visible))
	}
	if list.tickets[list.visible[0]].ID != 1 {
		t.Errorf("visible ticket %d, want 1", list.tickets[list.visible[0]].ID)
	}
	if len(list.highlights[1]) == 0 {
		t.Error("matching title positions must be recorded for highlighting")
	}

	// Esc clears the narrowing.
	list, _ = list.Update(pressKey(tea.KeyEsc))
	if len(list.visible) != 3 {
		t.Errorf("esc must restore the full list, got %d visible", len(list.visible))
	}
}

func TestClearFiltersResetsEverythingAndRefetches(t *testing.T) {
	fake := &fakeService{listResult: testTickets()}
	list := loadedTestList(t, fake)
	list.filter = ticket.Filter{Status: ticket.StatusOpen, Search: "card"}

	list, cmd := list.Update(pressRunes("x"))
	if cmd == nil {
		t.Fatal("clearing active filters must refetch")
	}
	cmd()

	if !list.filter.IsZero() {
		t.Errorf("filter not cleared: %+v", list.filter)
	}
	last := fake.listCalls[len(fake.listCalls)-1]
	if !last.IsZero() {
		t.Errorf("request still carried constraints: %+v", last)
	}
}

func TestSelectedFollowsCursor(t *testing.T) {
	fake := &fakeService{listResult: testTickets()}
	list := loadedTestList(t, fake)

	list, _ = list.Update(pressRunes("j"))
	selected := list.Selected()
	if selected == nil || selected.ID != 2 {
		t.Fatalf("selected = %+v, want ticket 2", selected)
	}
}

func TestSelectedNilWhileLoading(t *testing.T) {
	fake := &fakeService{listResult: testTickets()}
	list := loadedTestList(t, fake)
	list.Refresh()

	if list.Selected() != nil {
		t.Error("no ticket is selectable while loading")
	}
}
