package mining

import (
	"strings"
	"unicode/utf8"

	"github.com/quailtone/vocabmine/pkg/textalign"
)

// fillerWords are disfluency tokens that never constitute a vocabulary term.
var fillerWords = map[string]struct{}{
	"uh":  {},
	"uhh": {},
	"um":  {},
	"umm": {},
	"hmm": {},
	"hm":  {},
	"mhm": {},
	"mm":  {},
	"er":  {},
	"erm": {},
	"ah":  {},
	"eh":  {},
	"huh": {},
}

// evaluate applies the candidate filter chain to one correction pair.
// It returns the candidate and an empty reject reason on acceptance, or a
// zero candidate and the name of the rule that rejected the pair.
//
// common may be nil or empty; the two common-word rules are then skipped,
// which is the documented degradation when no word list exists for the
// active language.
func (m *Miner) evaluate(p CorrectionPair, common map[string]struct{}) (Candidate, string) {
	rawPhrase := textalign.JoinCleaned(p.Raw)
	correctedPhrase := textalign.JoinCleaned(p.Enhanced)

	if strings.EqualFold(rawPhrase, correctedPhrase) {
		return Candidate{}, "identical"
	}
	if len(p.Raw) > m.maxRawSpan {
		return Candidate{}, "raw span too long"
	}
	if len(p.Enhanced) > m.maxEnhancedSpan {
		return Candidate{}, "enhanced span too long"
	}
	if isSingleShortToken(p.Raw) || isSingleShortToken(p.Enhanced) {
		return Candidate{}, "too short"
	}
	if allFiller(p.Raw) {
		return Candidate{}, "filler only"
	}
	if sameNormalizedTokens(p.Raw, p.Enhanced) {
		return Candidate{}, "punctuation or case change only"
	}
	if len(common) > 0 {
		if allCommon(p.Enhanced, common) {
			return Candidate{}, "enhanced side all common words"
		}
		if allCommon(p.Raw, common) {
			return Candidate{}, "raw side all common words"
		}
	}

	return Candidate{RawPhrase: rawPhrase, CorrectedPhrase: correctedPhrase}, ""
}

// isSingleShortToken reports whether the span is one token of at most one
// character — too little signal to be a vocabulary term.
func isSingleShortToken(tokens []textalign.Token) bool {
	return len(tokens) == 1 && utf8.RuneCountInString(tokens[0].Normalized) <= 1
}

// allFiller reports whether every token is a filler word.
func allFiller(tokens []textalign.Token) bool {
	for _, t := range tokens {
		if _, ok := fillerWords[t.Normalized]; !ok {
			return false
		}
	}
	return true
}

// sameNormalizedTokens reports whether the two spans have equal length and
// are token-wise identical after normalisation — a pure punctuation or case
// change.
func sameNormalizedTokens(a, b []textalign.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Normalized != b[i].Normalized {
			return false
		}
	}
	return true
}

// allCommon reports whether every token's normalised form is in the
// common-word set.
func allCommon(tokens []textalign.Token, common map[string]struct{}) bool {
	for _, t := range tokens {
		if _, ok := common[t.Normalized]; !ok {
			return false
		}
	}
	return true
}
