// Package plausibility decides whether a mined correction is a believable
// phonetic mishearing of an already-known dictionary word.
//
// It is the second, stricter filter chain used only on the batch path that
// mines historical transcripts for phonetic hints. The live discovery filter
// (package mining) asks "is this a new vocabulary term?"; this package asks
// "does the raw phrase sound like the corrected phrase?" — the two chains
// are tuned with different thresholds and must stay separate.
//
// Plausibility is approximated with character-level heuristics and a bigram
// Dice similarity floor; there is no pronunciation model.
package plausibility

import (
	"strings"
	"unicode"
)

// defaultBigramThreshold is the minimum bigram Dice similarity between the
// alphanumeric forms of the raw and corrected phrases. Tuned against the
// up-preferring LCS backtrack in pkg/textalign; do not retune one without
// the other.
const defaultBigramThreshold = 0.30

// englishSuffixes are tried when testing whether one phrase is a
// morphological variant of the other.
var englishSuffixes = []string{"tion", "sion", "ing", "est", "ed", "ly", "er", "es", "s"}

// numberWords are spelled-out numbers and quantity words. A raw phrase
// containing one of these paired with a digit-bearing corrected phrase is a
// number-to-text conversion, not a mishearing.
var numberWords = map[string]struct{}{
	"zero": {}, "one": {}, "two": {}, "three": {}, "four": {}, "five": {},
	"six": {}, "seven": {}, "eight": {}, "nine": {}, "ten": {},
	"eleven": {}, "twelve": {}, "thirteen": {}, "fourteen": {}, "fifteen": {},
	"sixteen": {}, "seventeen": {}, "eighteen": {}, "nineteen": {}, "twenty": {},
	"thirty": {}, "forty": {}, "fifty": {}, "sixty": {}, "seventy": {},
	"eighty": {}, "ninety": {}, "hundred": {}, "thousand": {}, "million": {},
	"billion": {},
	"first": {}, "second": {}, "third": {}, "fourth": {}, "fifth": {},
	"sixth": {}, "seventh": {}, "eighth": {}, "ninth": {}, "tenth": {},
	"couple": {}, "few": {}, "several": {}, "dozen": {}, "half": {}, "quarter": {},
}

// Option is a functional option for configuring a [Classifier].
type Option func(*Classifier)

// WithBigramThreshold overrides the minimum bigram Dice similarity.
// Default: 0.30.
func WithBigramThreshold(threshold float64) Option {
	return func(c *Classifier) {
		c.bigramThreshold = threshold
	}
}

// Classifier applies the phonetic-hint plausibility rules. It is read-only
// after construction and safe for concurrent use.
type Classifier struct {
	bigramThreshold float64
}

// New returns a [Classifier] configured with the supplied options.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		bigramThreshold: defaultBigramThreshold,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Plausible reports whether rawPhrase is a plausible phonetic mishearing of
// correctedPhrase. When it is not, reason names the rejecting rule.
//
// Callers have already established that correctedPhrase matches an existing
// dictionary word; this check only guards hint quality.
func (c *Classifier) Plausible(rawPhrase, correctedPhrase string) (ok bool, reason string) {
	rawAlnum := alnum(rawPhrase)
	corrAlnum := alnum(correctedPhrase)
	if rawAlnum == "" || corrAlnum == "" {
		return false, "empty after stripping"
	}

	if isMorphologicalVariant(rawAlnum, corrAlnum) || isPossessive(rawPhrase, correctedPhrase) {
		return false, "morphological variant"
	}
	if isAbbreviation(rawAlnum, corrAlnum) {
		return false, "abbreviation"
	}
	if isNumberConversion(rawPhrase, correctedPhrase) {
		return false, "number-to-text conversion"
	}
	if hasContextLeakage(rawPhrase, correctedPhrase) {
		return false, "context leakage"
	}
	if isSlashArtifact(rawPhrase, correctedPhrase) {
		return false, "slash artifact"
	}

	rawWords := len(strings.Fields(rawPhrase))
	corrWords := len(strings.Fields(correctedPhrase))
	if rawWords-corrWords > 1 || corrWords-rawWords > 1 {
		return false, "token count mismatch"
	}

	if bigramDice(rawAlnum, corrAlnum) < c.bigramThreshold {
		return false, "below similarity threshold"
	}
	return true, ""
}

// alnum lowercases s and strips every non-alphanumeric rune.
func alnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isMorphologicalVariant reports whether a and b differ only by a common
// English suffix: the longer form minus a suffix must equal the shorter
// form, allowing for consonant doubling ("running" → "run") and a dropped
// silent e ("making" → "make").
func isMorphologicalVariant(a, b string) bool {
	longer, shorter := a, b
	if len(longer) < len(shorter) {
		longer, shorter = shorter, longer
	}
	for _, suffix := range englishSuffixes {
		if !strings.HasSuffix(longer, suffix) {
			continue
		}
		stem := strings.TrimSuffix(longer, suffix)
		if stem == shorter {
			return true
		}
		if n := len(stem); n >= 2 && stem[n-1] == stem[n-2] && stem[:n-1] == shorter {
			return true
		}
		if stem+"e" == shorter {
			return true
		}
	}
	return false
}

// isPossessive reports whether one phrase is just the possessive of the
// other ("John" vs "John's").
func isPossessive(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	return strings.TrimSuffix(la, "'s") == lb || strings.TrimSuffix(lb, "'s") == la
}

// isAbbreviation reports whether raw is an abbreviated form of corrected:
// raw (optionally minus a trailing plural s) is a prefix of corrected and
// corrected is at least twice as long as that prefix. "app" → "application"
// is an expansion the user typed differently, not a mishearing.
func isAbbreviation(raw, corrected string) bool {
	for _, prefix := range []string{raw, strings.TrimSuffix(raw, "s")} {
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(corrected, prefix) && len(corrected) >= 2*len(prefix) {
			return true
		}
	}
	return false
}

// isNumberConversion reports whether the pair is a spelled-out-number to
// digits conversion ("twenty five" → "25").
func isNumberConversion(rawPhrase, correctedPhrase string) bool {
	if !strings.ContainsFunc(correctedPhrase, unicode.IsDigit) {
		return false
	}
	for _, w := range strings.Fields(strings.ToLower(rawPhrase)) {
		if _, ok := numberWords[alnum(w)]; ok {
			return true
		}
	}
	return false
}

// hasContextLeakage reports whether a corrected token already appears inside
// the raw phrase — the "correction" then re-used surrounding context rather
// than respelling a mishearing. Raw tokens are additionally split on
// internal punctuation so that "have.net" exposes "have" and "net".
//
// Verbatim sub-token matches always count. Near-prefix/near-suffix matches
// (length difference ≤ 2) count only when the raw phrase has strictly more
// words than the corrected phrase.
func hasContextLeakage(rawPhrase, correctedPhrase string) bool {
	rawSubs := subTokens(rawPhrase)
	rawWords := len(strings.Fields(rawPhrase))
	corrWords := len(strings.Fields(correctedPhrase))

	for _, corrTok := range strings.Fields(correctedPhrase) {
		ct := alnum(corrTok)
		if len(ct) < 3 {
			continue
		}
		for _, sub := range rawSubs {
			if sub == ct {
				return true
			}
			if rawWords > corrWords && nearAffixMatch(sub, ct) {
				return true
			}
		}
	}
	return false
}

// subTokens splits a phrase on whitespace and then on internal punctuation,
// returning the lowercased alphanumeric fragments.
func subTokens(phrase string) []string {
	fields := strings.FieldsFunc(strings.ToLower(phrase), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	return fields
}

// nearAffixMatch reports whether one string is a prefix or suffix of the
// other with a length difference of at most 2.
func nearAffixMatch(a, b string) bool {
	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	if diff > 2 {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a) ||
		strings.HasSuffix(a, b) || strings.HasSuffix(b, a)
}

// isSlashArtifact reports whether the pair is the dictation artifact where
// the user said "slash" and the enhancement emitted a path ("slash tmp" →
// "/tmp" or a backticked variant).
func isSlashArtifact(rawPhrase, correctedPhrase string) bool {
	fields := strings.Fields(strings.ToLower(rawPhrase))
	if len(fields) == 0 || fields[0] != "slash" {
		return false
	}
	corrected := strings.TrimSpace(correctedPhrase)
	return strings.HasPrefix(corrected, "/") || strings.HasPrefix(corrected, "`/")
}

// bigramDice computes the Dice coefficient over two-character shingles:
// twice the number of shared bigrams divided by the total bigram count of
// both strings. Strings shorter than two characters have no bigrams and
// score 0.
func bigramDice(a, b string) float64 {
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	counts := make(map[string]int, len(a))
	for i := 0; i+2 <= len(a); i++ {
		counts[a[i:i+2]]++
	}

	shared := 0
	for i := 0; i+2 <= len(b); i++ {
		bg := b[i : i+2]
		if counts[bg] > 0 {
			counts[bg]--
			shared++
		}
	}

	total := (len(a) - 1) + (len(b) - 1)
	return 2 * float64(shared) / float64(total)
}
