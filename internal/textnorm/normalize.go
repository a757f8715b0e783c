// Package textnorm provides the text normalization seam used by the
// categorization engine: normalize -> tokenize -> stem. All functions are
// pure and total; empty or unsupported input yields an empty result, never
// an error.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize lowercases the text, replaces punctuation with spaces, collapses
// whitespace runs to a single space and trims the edges. Hebrew has no case,
// so case folding only affects Latin script.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true // trims leading separators
	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Tokenize splits text into normalized tokens, discarding empties. The input
// does not need to be normalized first.
func Tokenize(text string) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}
	return strings.Split(norm, " ")
}

// isWordRune reports whether r is kept as part of a token. Apostrophes are
// dropped with the rest of the punctuation; geresh-marked Hebrew
// abbreviations survive as their letter part.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsBoundedAt reports whether the substring occurrence at byte offset idx
// with the given byte length sits on word boundaries in s: the adjacent runes
// (or the string edges) must not be word runes. Substring matchers use this
// to distinguish a standalone occurrence from a fragment of a longer token.
func IsBoundedAt(s string, idx, length int) bool {
	if idx < 0 || idx+length > len(s) {
		return false
	}
	if idx > 0 {
		prev, _ := utf8.DecodeLastRuneInString(s[:idx])
		if isWordRune(prev) {
			return false
		}
	}
	if idx+length < len(s) {
		next, _ := utf8.DecodeRuneInString(s[idx+length:])
		if isWordRune(next) {
			return false
		}
	}
	return true
}
