// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket defines the support-ticket data model shared by the
// service client and the terminal UI: the persisted [Ticket] record,
// the client-local [Draft] being composed, the [Filter] set that
// drives list queries, the classification [Suggestion], and the
// aggregate [Stats] consumed by the statistics pane.
//
// The enumerations (category, priority, status) mirror the ticket
// service's wire values exactly. The client never invents values
// outside these sets: a Draft's category and priority are always
// valid members (defaulted via [NewDraft]), so a submission is
// well-formed even when classification never ran.
//
// This package is pure data with no I/O. The HTTP boundary lives in
// ticketclient; the orchestration lives in ticketui.
package ticket
