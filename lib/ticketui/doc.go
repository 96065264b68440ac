// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketui implements the helpdesk terminal user interface.
// Built on bubbletea (Elm architecture), it provides a tabbed view
// with a filterable ticket list, a new-ticket form with automatic
// category/priority suggestion, a statistics pane, and a ticket
// detail modal with status editing.
//
// Generic UI components (theme, overlays, dropdowns, fuzzy matching)
// live in [tui]; ticket-specific logic (the form, list, detail, and
// stats models, key bindings, markdown rendering) stays here.
//
// The [Service] abstraction decouples the UI from the ticket service:
// production code passes a [ticketclient.Client], tests pass fakes.
// All remote calls run as tea.Cmd goroutines and report back through
// messages; model state is only ever touched inside Update, so the
// package needs no locks. Responses that can race a newer request
// (classification, list queries) carry a generation tag and are
// discarded on arrival when a newer request has been issued.
//
// Data flow:
//
//	[ticket service HTTP API]
//	        | (Service interface)
//	    [Model] <- bubbletea event loop
//	        |      <- refresh.Broadcaster events
//	  [terminal output]
package ticketui
