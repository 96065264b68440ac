// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"

	"github.com/helpdesk-foundation/helpdesk/lib/ticket"
)

// Service is the ticket backend as seen by the UI. Production code
// passes a [ticketclient.Client]; tests pass fakes. Every method may
// block on the network and is only ever called from inside a tea.Cmd
// goroutine, never from Update.
type Service interface {
	// List fetches tickets matching the filter, in the service's
	// newest-first order. The UI never re-sorts the result.
	List(ctx context.Context, filter ticket.Filter) ([]ticket.Ticket, error)

	// Create submits a new ticket and returns it with its assigned ID.
	Create(ctx context.Context, draft ticket.Draft) (*ticket.Ticket, error)

	// UpdateStatus changes a ticket's status and nothing else.
	UpdateStatus(ctx context.Context, id int64, status ticket.Status) (*ticket.Ticket, error)

	// Stats fetches the aggregate ticket statistics.
	Stats(ctx context.Context) (*ticket.Stats, error)

	// Classify asks the service to suggest a category and priority
	// for a ticket description.
	Classify(ctx context.Context, description string) (*ticket.Suggestion, error)
}
