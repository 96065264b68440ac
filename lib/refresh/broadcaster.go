// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package refresh carries the process-wide "a ticket was created"
// signal between otherwise independent views. The submission form is
// the only publisher; any view whose data goes stale on creation (the
// ticket list, the statistics pane) subscribes.
//
// Events carry a strictly increasing sequence number. Consumers
// compare by inequality, never by exact match: a dropped or coalesced
// intermediate event is harmless because any larger sequence means
// "your data is stale, refetch".
package refresh

import "sync"

// subscriberBuffer is the per-subscriber channel capacity. Creation
// events are rare (one per successful submission), so a small buffer
// absorbs any plausible burst.
const subscriberBuffer = 16

// Event announces one successful ticket creation.
type Event struct {
	// Sequence is strictly increasing across the life of the
	// Broadcaster, starting at 1.
	Sequence uint64

	// TicketID identifies the created ticket.
	TicketID int64
}

// Broadcaster fans creation events out to subscribers. Safe for
// concurrent use; Publish never blocks on a slow subscriber.
type Broadcaster struct {
	mutex       sync.Mutex
	sequence    uint64
	subscribers []chan Event
}

// NewBroadcaster creates a Broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe registers a new consumer and returns its event channel.
// Subscriptions live for the life of the Broadcaster.
func (broadcaster *Broadcaster) Subscribe() <-chan Event {
	broadcaster.mutex.Lock()
	defer broadcaster.mutex.Unlock()
	channel := make(chan Event, subscriberBuffer)
	broadcaster.subscribers = append(broadcaster.subscribers, channel)
	return channel
}

// Publish announces a created ticket, incrementing the sequence by
// exactly one, and returns the new sequence number. The subscriber
// list is snapshotted under the lock; dispatch happens after release
// with non-blocking sends. A subscriber whose buffer is full misses
// the event, which is safe: a later event (or the one already queued)
// still carries a sequence past its last-seen value.
func (broadcaster *Broadcaster) Publish(ticketID int64) uint64 {
	broadcaster.mutex.Lock()
	broadcaster.sequence++
	event := Event{Sequence: broadcaster.sequence, TicketID: ticketID}
	// The subscriber list is append-only, so the snapshot stays valid.
	subscribers := broadcaster.subscribers
	broadcaster.mutex.Unlock()

	for _, subscriber := range subscribers {
		select {
		case subscriber <- event:
		default:
		}
	}
	return event.Sequence
}

// Sequence returns the sequence number of the most recent publish,
// or zero if nothing has been published.
func (broadcaster *Broadcaster) Sequence() uint64 {
	broadcaster.mutex.Lock()
	defer broadcaster.mutex.Unlock()
	return broadcaster.sequence
}
