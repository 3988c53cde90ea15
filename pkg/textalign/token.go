// Package textalign provides the low-level text primitives used by the
// vocabulary mining pipeline: whitespace tokenisation with markdown stripping,
// and longest-common-subsequence alignment of token sequences.
//
// The package is dependency-free and purely functional — every call operates
// on its inputs only, so all functions are safe for concurrent use.
package textalign

import (
	"regexp"
	"strings"
	"unicode"
)

// Token is a single whitespace-delimited unit of text in three forms.
type Token struct {
	// Original is the token exactly as it appeared in the input, including
	// surrounding punctuation.
	Original string

	// Normalized is the lowercased token with leading and trailing
	// punctuation stripped. Used for comparison and alignment.
	Normalized string

	// Cleaned is the original-case token with leading and trailing
	// punctuation stripped. Used when building display phrases.
	Cleaned string
}

var (
	// listMarkerRe matches markdown bullet markers at the start of a line:
	// "*", "-", "•", or an ordinal like "3.".
	listMarkerRe = regexp.MustCompile(`(?m)^[ \t]*(?:[*\-•]|\d+\.)[ \t]+`)

	// emphasisRe matches bold/italic emphasis markers. Single underscores are
	// left alone so identifiers like snake_case survive intact.
	emphasisRe = regexp.MustCompile(`\*{1,2}|_{2}`)
)

// Tokenize splits text into tokens. Markdown list markers and emphasis
// markers are replaced with whitespace before splitting so they cannot leak
// into token content. Tokens that are empty after punctuation stripping
// (e.g., a lone dash) are dropped.
//
// Tokenize never fails; empty or all-markup input yields an empty slice.
func Tokenize(text string) []Token {
	text = listMarkerRe.ReplaceAllString(text, " ")
	text = emphasisRe.ReplaceAllString(text, " ")

	fields := strings.Fields(text)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		cleaned := trimPunct(f)
		normalized := strings.ToLower(cleaned)
		if normalized == "" {
			continue
		}
		tokens = append(tokens, Token{
			Original:   f,
			Normalized: normalized,
			Cleaned:    cleaned,
		})
	}
	return tokens
}

// Normalized returns the normalized forms of tokens, in order.
func Normalized(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Normalized
	}
	return out
}

// JoinCleaned joins the cleaned forms of tokens with single spaces.
func JoinCleaned(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Cleaned)
	}
	return b.String()
}

// trimPunct strips leading and trailing non-alphanumeric runes. Interior
// punctuation (apostrophes, hyphens, dots in "have.net") is preserved.
func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
