package models

// MatchType identifies which keyword-matching tier produced a hit.
type MatchType string

const (
	MatchExactPhrase MatchType = "exact-phrase"
	MatchWholeWord   MatchType = "whole-word"
	MatchStemmed     MatchType = "stemmed"
	MatchNone        MatchType = "none"
)

// MatchSource identifies which of the two parallel texts produced a hit.
type MatchSource string

const (
	SourceOriginal   MatchSource = "original"
	SourceTranslated MatchSource = "translated"
)

// MatchResult is the outcome of running the keyword matcher over one text
// (and its translation) against one keyword list.
type MatchResult struct {
	HasMatches     bool
	Confidence     float64
	MatchType      MatchType
	MatchedKeyword string
	Source         MatchSource
	// MatchedField names the search-term field the text came from. It is
	// filled in by the caller, which knows the field, not by the matcher.
	MatchedField string
	Reasoning    string
}

// NoMatch is the zero-confidence result returned when no tier fired.
func NoMatch() MatchResult {
	return MatchResult{MatchType: MatchNone}
}
