// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult describes one fuzzy match: whether the pattern matched
// at all, the fzf score (higher is better), and the rune positions in
// the text that matched, for highlight rendering.
type FuzzyResult struct {
	Matched   bool
	Score     int
	Positions []int
}

// NewFuzzySlab allocates the scratch memory fzf's matcher reuses
// across calls. One slab per match loop; not safe for concurrent use.
func NewFuzzySlab() *util.Slab {
	return util.MakeSlab(slabSize16, slabSize32)
}

// Slab sizes from fzf's own defaults: enough for pathological inputs
// without reallocating per call.
const (
	slabSize16 = 100 * 1024
	slabSize32 = 2048
)

// FuzzyMatch runs fzf's V2 matcher (case-insensitive, normalizing,
// forward) for pattern against text. A nil slab is allowed but makes
// every call allocate.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Matched: true}
	}

	// fzf expects an already-lowercased pattern in case-insensitive mode.
	lowered := make([]rune, len(pattern))
	for index, character := range pattern {
		lowered[index] = unicode.ToLower(character)
	}
	pattern = lowered

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, pattern, true, slab)
	if result.Start < 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Matched: true, Score: result.Score}
	if positions != nil {
		matched.Positions = *positions
	}
	return matched
}
