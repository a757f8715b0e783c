package textnorm

import (
	"strings"
	"unicode"
)

// Hebrew inflection affixes handled by the light stemmer. Hebrew has no
// mainstream stemmer, so this is deliberately shallow: single-letter clitic
// prefixes (conjunction, article, prepositions) and the common plural
// suffixes. Anything deeper trades false negatives for false positives.
var (
	hebrewPrefixes = []string{"ו", "ה", "ב", "ל", "מ", "ש", "כ"}
	hebrewSuffixes = []string{"יות", "ימ", "ות", "ה"}
)

// hebrewFinalFold maps word-final letter forms to their regular forms so
// suffix stripping sees one alphabet.
var hebrewFinalFold = strings.NewReplacer(
	"ך", "כ",
	"ם", "מ",
	"ן", "נ",
	"ף", "פ",
	"ץ", "צ",
)

// Latin suffixes stripped by the light stemmer, longest first. "es" is
// deliberately absent: stripping it splits pairs like coffee/coffees that
// the plain "s" rule keeps together.
var latinSuffixes = []string{"ing", "ed", "s"}

// Stem returns a normalized root form of a single token for loose matching
// across inflections. Best effort only: tokens in scripts without stemming
// rules are returned unchanged. Stem is pure and never fails.
func Stem(token string) string {
	token = Normalize(token)
	if token == "" || strings.ContainsRune(token, ' ') {
		return token
	}

	switch {
	case isHebrew(token):
		return stemHebrew(token)
	case isLatin(token):
		return stemLatin(token)
	}
	return token
}

// stemHebrew folds final letter forms, then strips at most one clitic prefix
// and one plural suffix, keeping a root of at least two letters.
func stemHebrew(token string) string {
	runes := []rune(hebrewFinalFold.Replace(token))
	for _, p := range hebrewPrefixes {
		if len(runes) >= 3 && string(runes[0]) == p {
			runes = runes[1:]
			break
		}
	}
	s := string(runes)
	for _, suf := range hebrewSuffixes {
		trimmed := strings.TrimSuffix(s, suf)
		if trimmed != s && len([]rune(trimmed)) >= 2 {
			return trimmed
		}
	}
	return s
}

// stemLatin strips one common English suffix, keeping a root of at least
// three letters. "ies" is folded back to "y" so that plural and singular
// forms share a stem.
func stemLatin(token string) string {
	if strings.HasSuffix(token, "ies") && len(token) > 4 {
		return token[:len(token)-3] + "y"
	}
	for _, suf := range latinSuffixes {
		trimmed := strings.TrimSuffix(token, suf)
		if trimmed != token && len(trimmed) >= 3 {
			// Avoid stripping a double-s plural ("boss" -> "bos").
			if suf == "s" && strings.HasSuffix(trimmed, "s") {
				return token
			}
			return trimmed
		}
	}
	return token
}

func isHebrew(token string) bool {
	for _, r := range token {
		if unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}

func isLatin(token string) bool {
	for _, r := range token {
		if !unicode.Is(unicode.Latin, r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return token != ""
}
