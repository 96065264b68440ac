// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package refresh

import "testing"

func TestPublishIncrementsSequence(t *testing.T) {
	broadcaster := NewBroadcaster()

	if got := broadcaster.Sequence(); got != 0 {
		t.Errorf("initial sequence = %d, want 0", got)
	}

	first := broadcaster.Publish(100)
	second := broadcaster.Publish(101)

	if first != 1 || second != 2 {
		t.Errorf("sequences = %d, %d; want 1, 2", first, second)
	}
	if got := broadcaster.Sequence(); got != 2 {
		t.Errorf("sequence = %d, want 2", got)
	}
}

func TestAllSubscribersReceiveEvents(t *testing.T) {
	broadcaster := NewBroadcaster()
	listView := broadcaster.Subscribe()
	statsView := broadcaster.Subscribe()

	broadcaster.Publish(42)

	for name, channel := range map[string]<-chan Event{"list": listView, "stats": statsView} {
		select {
		case event := <-channel:
			if event.Sequence != 1 || event.TicketID != 42 {
				t.Errorf("%s received %+v, want sequence 1 ticket 42", name, event)
			}
		default:
			t.Errorf("%s subscriber received no event", name)
		}
	}
}

func TestPublishNeverBlocksOnFullSubscriber(t *testing.T) {
	broadcaster := NewBroadcaster()
	stalled := broadcaster.Subscribe()

	// Overfill the subscriber's buffer. Publish must drop rather
	// than block; sequences keep advancing regardless.
	for index := 0; index < subscriberBuffer+5; index++ {
		broadcaster.Publish(int64(index))
	}

	if got := broadcaster.Sequence(); got != uint64(subscriberBuffer+5) {
		t.Errorf("sequence = %d, want %d", got, subscriberBuffer+5)
	}

	// The stalled consumer drains what it has; the gap is fine
	// because consumers compare sequence by inequality.
	var lastSeen uint64
	for {
		select {
		case event := <-stalled:
			if event.Sequence <= lastSeen {
				t.Errorf("sequence went backwards: %d after %d", event.Sequence, lastSeen)
			}
			lastSeen = event.Sequence
			continue
		default:
		}
		break
	}
	if lastSeen == 0 {
		t.Error("stalled subscriber should still have buffered events")
	}
}

func TestSubscribeAfterPublish(t *testing.T) {
	broadcaster := NewBroadcaster()
	broadcaster.Publish(1)

	late := broadcaster.Subscribe()
	select {
	case <-late:
		t.Error("late subscriber should not see events published before Subscribe")
	default:
	}

	broadcaster.Publish(2)
	select {
	case event := <-late:
		if event.Sequence != 2 {
			t.Errorf("sequence = %d, want 2", event.Sequence)
		}
	default:
		t.Error("late subscriber should see events published after Subscribe")
	}
}
