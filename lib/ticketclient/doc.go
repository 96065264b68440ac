// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketclient is the JSON/HTTP client for the remote ticket
// service. It covers the five boundary operations: filtered listing,
// creation, partial status update, aggregate statistics, and
// description classification.
//
// The service is treated as given: this package translates between
// the [ticket] types and the service's wire format and preserves the
// service's error detail in [ServiceError], but implements no retry,
// caching, or cancellation policy of its own. Callers own those
// decisions — the TUI, for instance, never cancels a superseded
// request; it discards the response on arrival instead.
package ticketclient
