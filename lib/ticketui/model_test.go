// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/helpdesk-foundation/helpdesk/lib/refresh"
	"github.com/helpdesk-foundation/helpdesk/lib/ticket"
)

// fakeService is an in-memory Service with call recording, shared by
// the tests in this package.
type fakeService struct {
	mu sync.Mutex

	listCalls  []ticket.Filter
	listResult []ticket.Ticket
	listErr    error

	createCalls  []ticket.Draft
	createResult *ticket.Ticket
	createErr    error

	updateCalls  []statusUpdate
	updateResult *ticket.Ticket
	updateErr    error

	statsCalls  int
	statsResult *ticket.Stats
	statsErr    error

	classifyCalls  []string
	classifyResult *ticket.Suggestion
	classifyErr    error
	classifyDelay  time.Duration
}

type statusUpdate struct {
	id     int64
	status ticket.Status
}

func (fake *fakeService) List(_ context.Context, filter ticket.Filter) ([]ticket.Ticket, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.listCalls = append(fake.listCalls, filter)
	return fake.listResult, fake.listErr
}

func (fake *fakeService) Create(_ context.Context, draft ticket.Draft) (*ticket.Ticket, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.createCalls = append(fake.createCalls, draft)
	return fake.createResult, fake.createErr
}

func (fake *fakeService) UpdateStatus(_ context.Context, id int64, status ticket.Status) (*ticket.Ticket, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.updateCalls = append(fake.updateCalls, statusUpdate{id: id, status: status})
	return fake.updateResult, fake.updateErr
}

func (fake *fakeService) Stats(_ context.Context) (*ticket.Stats, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.statsCalls++
	return fake.statsResult, fake.statsErr
}

func (fake *fakeService) Classify(_ context.Context, description string) (*ticket.Suggestion, error) {
	if fake.classifyDelay > 0 {
		time.Sleep(fake.classifyDelay)
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.classifyCalls = append(fake.classifyCalls, description)
	return fake.classifyResult, fake.classifyErr
}

func (fake *fakeService) listCallCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.listCalls)
}

// testTickets is the canonical fixture list.
func testTickets() []ticket.Ticket {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return []ticket.Ticket{
		{
			ID:          3,
			Title:       "Card declined on renewal",
			Description: "My card was declined when the subscription renewed.",
			Category:    ticket.CategoryBilling,
			Priority:    ticket.PriorityHigh,
			Status:      ticket.StatusOpen,
			CreatedAt:   created.Add(2 * time.Hour),
			UpdatedAt:   created.Add(2 * time.Hour),
		},
		{
			ID:          2,
			Title:       "Cannot log in to my account",
			Description: "Password reset emails never arrive.",
			Category:    ticket.CategoryAccount,
			Priority:    ticket.PriorityCritical,
			Status:      ticket.StatusInProgress,
			CreatedAt:   created.Add(time.Hour),
			UpdatedAt:   created.Add(90 * time.Minute),
		},
		{
			ID:          1,
			Title:       "Dashboard loads slowly",
			Description: "The dashboard takes over ten seconds to load.",
			Category:    ticket.CategoryTechnical,
			Priority:    ticket.PriorityMedium,
			Status:      ticket.StatusResolved,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
	}
}

func pressRunes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func pressKey(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

// newTestModel builds a root model with loaded fixtures and a realistic
// terminal size.
func newTestModel(t *testing.T, fake *fakeService) (Model, *refresh.Broadcaster) {
	t.Helper()
	broadcaster := refresh.NewBroadcaster()
	model := NewModel(fake, broadcaster)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(Model)

	// Settle the initial fetches issued by NewModel.
	updated, _ = model.Update(ticketsLoadedMsg{
		generation: model.list.generation,
		tickets:    fake.listResult,
	})
	model = updated.(Model)
	updated, _ = model.Update(statsLoadedMsg{
		generation: model.stats.generation,
		stats:      fake.statsResult,
	})
	model = updated.(Model)

	return model, broadcaster
}

func TestRefreshEventTriggersListAndStatsRefetch(t *testing.T) {
	fake := &fakeService{listResult: testTickets(), statsResult: &ticket.Stats{Total: 3}}
	model, _ := newTestModel(t, fake)

	listGeneration := model.list.generation
	statsGeneration := model.stats.generation

	updated, cmd := model.Update(refreshEventMsg{event: refresh.Event{Sequence: 1, TicketID: 9}})
	model = updated.(Model)

	if cmd == nil {
		t.Fatal("refresh event should produce commands")
	}
	if model.list.generation != listGeneration+1 {
		t.Errorf("list generation %d, want %d", model.list.generation, listGeneration+1)
	}
	if model.stats.generation != statsGeneration+1 {
		t.Errorf("stats generation %d, want %d", model.stats.generation, statsGeneration+1)
	}
	if model.lastSequence != 1 {
		t.Errorf("lastSequence = %d, want 1", model.lastSequence)
	}
}

func TestRepeatedRefreshSequenceIgnored(t *testing.T) {
	fake := &fakeService{listResult: testTickets(), statsResult: &ticket.Stats{}}
	model, _ := newTestModel(t, fake)

	updated, _ := model.Update(refreshEventMsg{event: refresh.Event{Sequence: 1}})
	model = updated.(Model)
	listGeneration := model.list.generation

	updated, _ = model.Update(refreshEventMsg{event: refresh.Event{Sequence: 1}})
	model = updated.(Model)

	if model.list.generation != listGeneration {
		t.Errorf("a repeated sequence must not refetch: generation %d, want %d",
			model.list.generation, listGeneration)
	}
}

func TestListenForRefreshDeliversPublishedEvent(t *testing.T) {
	broadcaster := refresh.NewBroadcaster()
	events := broadcaster.Subscribe()
	broadcaster.Publish(42)

	message := listenForRefresh(events)()
	delivered, ok := message.(refreshEventMsg)
	if !ok {
		t.Fatalf("got %T, want refreshEventMsg", message)
	}
	if delivered.event.TicketID != 42 || delivered.event.Sequence != 1 {
		t.Errorf("got event %+v, want sequence 1 ticket 42", delivered.event)
	}
}

func TestTabSwitching(t *testing.T) {
	fake := &fakeService{listResult: testTickets(), statsResult: &ticket.Stats{}}
	model, _ := newTestModel(t, fake)

	updated, _ := model.Update(pressRunes("2"))
	model = updated.(Model)
	if model.activeTab != TabNew {
		t.Fatalf("activeTab = %v, want TabNew", model.activeTab)
	}

	updated, _ = model.Update(pressKey(tea.KeyEsc))
	model = updated.(Model)
	if model.activeTab != TabTickets {
		t.Fatalf("Esc should return to the tickets tab, got %v", model.activeTab)
	}

	updated, _ = model.Update(pressRunes("3"))
	model = updated.(Model)
	if model.activeTab != TabStats {
		t.Fatalf("activeTab = %v, want TabStats", model.activeTab)
	}
}

func TestLeavingNewTabDiscardsDraft(t *testing.T) {
	fake := &fakeService{listResult: testTickets(), statsResult: &ticket.Stats{}}
	model, _ := newTestModel(t, fake)

	updated, _ := model.Update(pressRunes("2"))
	model = updated.(Model)
	updated, _ = model.Update(pressRunes("Printer jammed"))
	model = updated.(Model)
	if model.form.title.Value() != "Printer jammed" {
		t.Fatalf("title = %q, want the typed text", model.form.title.Value())
	}

	// The draft lives only while the ticket is being composed; leaving
	// the tab drops it.
	updated, _ = model.Update(pressKey(tea.KeyEsc))
	model = updated.(Model)
	updated, _ = model.Update(pressRunes("2"))
	model = updated.(Model)

	if model.form.title.Value() != "" {
		t.Errorf("title = %q after leaving the tab, want empty", model.form.title.Value())
	}
	if draft := model.form.Draft(); draft.Category != ticket.CategoryGeneral || draft.Priority != ticket.PriorityMedium {
		t.Errorf("draft = %+v after leaving the tab, want empty defaults", draft)
	}
}

func TestEnterOpensDetailForSelectedTicket(t *testing.T) {
	fake := &fakeService{listResult: testTickets(), statsResult: &ticket.Stats{}}
	model, _ := newTestModel(t, fake)

	updated, _ := model.Update(pressKey(tea.KeyEnter))
	model = updated.(Model)

	if model.detail.State() != DetailViewing {
		t.Fatalf("detail state = %v, want DetailViewing", model.detail.State())
	}
	if model.detail.ticket.ID != 3 {
		t.Errorf("detail shows ticket %d, want the first row (3)", model.detail.ticket.ID)
	}
}

func TestCommitSuccessRefetchesListDirectly(t *testing.T) {
	fake := &fakeService{listResult: testTickets(), statsResult: &ticket.Stats{}}
	model, _ := newTestModel(t, fake)

	updated, _ := model.Update(pressKey(tea.KeyEnter))
	model = updated.(Model)
	model.detail.staged = ticket.StatusResolved
	model.detail.state = DetailCommitting

	listGeneration := model.list.generation
	sequenceBefore := model.lastSequence

	updatedTicket := testTickets()[0]
	updatedTicket.Status = ticket.StatusResolved
	updated, _ = model.Update(commitResultMsg{updated: &updatedTicket})
	model = updated.(Model)

	if model.detail.State() != DetailClosed {
		t.Errorf("detail state = %v, want DetailClosed", model.detail.State())
	}
	if model.list.generation != listGeneration+1 {
		t.Errorf("commit success must refetch the list: generation %d, want %d",
			model.list.generation, listGeneration+1)
	}
	if model.lastSequence != sequenceBefore {
		t.Error("commit refetch must not go through the broadcaster")
	}
}

func TestLogRecordShowsInStatusBar(t *testing.T) {
	fake := &fakeService{listResult: testTickets(), statsResult: &ticket.Stats{}}
	model, _ := newTestModel(t, fake)

	updated, cmd := model.Update(logRecordMsg{summary: "request failed (status=502)"})
	model = updated.(Model)
	if cmd == nil {
		t.Fatal("log record should schedule a fade")
	}
	if model.logNotice != "request failed (status=502)" {
		t.Errorf("logNotice = %q", model.logNotice)
	}

	updated, _ = model.Update(logRecordFadeMsg{})
	model = updated.(Model)
	if model.logNotice != "" {
		t.Error("fade should clear the notice")
	}
}
