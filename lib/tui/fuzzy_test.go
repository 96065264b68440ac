// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "testing"

func TestFuzzyMatchSubsequence(t *testing.T) {
	slab := NewFuzzySlab()

	result := FuzzyMatch("Cannot log in to my account", []rune("login"), slab)
	if !result.Matched {
		t.Fatal("'login' should fuzzy-match 'Cannot log in to my account'")
	}
	if len(result.Positions) != 5 {
		t.Errorf("got %d matched positions, want 5", len(result.Positions))
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	slab := NewFuzzySlab()

	if !FuzzyMatch("Billing question", []rune("BILL"), slab).Matched {
		t.Error("matching should be case-insensitive")
	}
}

func TestFuzzyMatchMiss(t *testing.T) {
	slab := NewFuzzySlab()

	if FuzzyMatch("Card declined", []rune("zzz"), slab).Matched {
		t.Error("'zzz' should not match 'Card declined'")
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	result := FuzzyMatch("anything", nil, nil)
	if !result.Matched {
		t.Error("empty pattern matches everything")
	}
	if len(result.Positions) != 0 {
		t.Error("empty pattern has no match positions")
	}
}

func TestFuzzyMatchRanksCloserMatchesHigher(t *testing.T) {
	slab := NewFuzzySlab()

	contiguous := FuzzyMatch("reset password", []rune("reset"), slab)
	scattered := FuzzyMatch("remote sunset", []rune("reset"), slab)
	if !contiguous.Matched || !scattered.Matched {
		t.Fatal("both texts should match 'reset'")
	}
	if contiguous.Score <= scattered.Score {
		t.Errorf("contiguous match should outscore scattered: %d vs %d",
			contiguous.Score, scattered.Score)
	}
}
