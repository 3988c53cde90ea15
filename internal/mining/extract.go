package mining

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/quailtone/vocabmine/pkg/textalign"
)

// extractPairs walks the anchor list plus an implicit trailing anchor at
// (len(raw), len(enhanced)) and collects the token spans not covered by
// anchors on each side. A gap becomes a [CorrectionPair] only when both
// sides are non-empty; raw-only gaps (deletions) and enhanced-only gaps
// (insertions) are not vocabulary corrections and are dropped.
func extractPairs(raw, enhanced []textalign.Token, anchors []textalign.Anchor) []CorrectionPair {
	var pairs []CorrectionPair
	ri, ei := 0, 0

	emit := func(rEnd, eEnd int) {
		if ri < rEnd && ei < eEnd {
			pairs = append(pairs, CorrectionPair{
				Raw:           slices.Clone(raw[ri:rEnd]),
				Enhanced:      slices.Clone(enhanced[ei:eEnd]),
				EnhancedStart: ei,
			})
		}
	}

	for _, a := range anchors {
		emit(a.Raw, a.Enhanced)
		ri = a.Raw + 1
		ei = a.Enhanced + 1
	}
	emit(len(raw), len(enhanced))

	return pairs
}

// expandCompoundNames grows the enhanced span of pairs that introduced a
// capitalised word, absorbing immediately following enhanced tokens that are
// both LCS-anchored (already "known good" in the raw text) and capitalised.
// Scanning stops at a sentence boundary: when the last absorbed token's
// original form ends in '.', '!', or '?', an upcoming capitalised word opens
// a new sentence rather than continuing a proper noun.
//
// This recovers names like "Claude Code" where the correction produced
// "Claude" and a separately matched "Code" followed in the next gap-free
// position.
func expandCompoundNames(pairs []CorrectionPair, enhanced []textalign.Token, anchors []textalign.Anchor) []CorrectionPair {
	if len(pairs) == 0 {
		return pairs
	}

	anchored := make(map[int]struct{}, len(anchors))
	for _, a := range anchors {
		anchored[a.Enhanced] = struct{}{}
	}

	for i := range pairs {
		p := &pairs[i]
		if !containsCapitalized(p.Enhanced) {
			continue
		}

		last := p.Enhanced[len(p.Enhanced)-1]
		for j := p.EnhancedStart + len(p.Enhanced); j < len(enhanced); j++ {
			if endsSentence(last.Original) {
				break
			}
			if _, ok := anchored[j]; !ok {
				break
			}
			if !startsUpper(enhanced[j].Cleaned) {
				break
			}
			p.Enhanced = append(p.Enhanced, enhanced[j])
			last = enhanced[j]
		}
	}
	return pairs
}

// containsCapitalized reports whether any token's cleaned form begins with
// an uppercase letter.
func containsCapitalized(tokens []textalign.Token) bool {
	for _, t := range tokens {
		if startsUpper(t.Cleaned) {
			return true
		}
	}
	return false
}

// startsUpper reports whether s begins with an uppercase letter.
func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// endsSentence reports whether the original token form carries terminal
// sentence punctuation.
func endsSentence(original string) bool {
	return strings.HasSuffix(original, ".") ||
		strings.HasSuffix(original, "!") ||
		strings.HasSuffix(original, "?")
}
