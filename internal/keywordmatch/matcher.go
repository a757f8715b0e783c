// Package keywordmatch matches transaction text against keyword lists using
// three ordered strategies: exact phrase, whole word, and stemmed word. Each
// tier maps to its own confidence band, so callers can tell a tight match
// from a loose one.
package keywordmatch

import (
	"fmt"
	"strings"

	"shekelio/autocat/internal/ambiguity"
	"shekelio/autocat/internal/models"
	"shekelio/autocat/internal/textnorm"
)

// UsableThreshold is the exclusive confidence floor above which a match
// result is strong enough to categorize on. Stemmed hits sit above it,
// non-matches at zero.
const UsableThreshold = 0.5

// Confidence bands per tier. Exact-phrase confidence scales with how much of
// the text the phrase covers, staying inside [0.9, 1.0].
const (
	exactPhraseBase     = 0.9
	exactPhraseSpan     = 0.1
	wholeWordConfidence = 0.8
	substringConfidence = 0.72 // whitelisted-substring hits, whole-word tier
	stemmedConfidence   = 0.6
)

// Matcher runs the tiered keyword matching. It is stateless apart from the
// ambiguity guard and safe for concurrent use.
type Matcher struct {
	guard *ambiguity.Guard
}

// NewMatcher creates a Matcher filtered through the given guard. A nil guard
// falls back to the built-in false-positive table.
func NewMatcher(guard *ambiguity.Guard) *Matcher {
	if guard == nil {
		guard = ambiguity.DefaultGuard()
	}
	return &Matcher{guard: guard}
}

// Match runs the three tiers against originalText and, only if all of them
// miss, against translatedText. Ties within a tier break by keyword list
// order: the first keyword wins, deterministically. A zero-confidence result
// with HasMatches=false means no tier fired on either text.
func (m *Matcher) Match(originalText, translatedText string, keywords []string) models.MatchResult {
	sources := []struct {
		text   string
		source models.MatchSource
	}{
		{originalText, models.SourceOriginal},
		{translatedText, models.SourceTranslated},
	}

	for _, src := range sources {
		norm := textnorm.Normalize(src.text)
		if norm == "" {
			continue
		}
		if res, ok := m.matchNormalized(norm, keywords, src.source); ok {
			return res
		}
	}

	return models.NoMatch()
}

// matchNormalized runs the tier cascade over one normalized text.
func (m *Matcher) matchNormalized(norm string, keywords []string, source models.MatchSource) (models.MatchResult, bool) {
	tokens := strings.Split(norm, " ")

	if res, ok := m.matchExactPhrase(norm, keywords, source); ok {
		return res, true
	}
	if res, ok := m.matchWholeWord(norm, tokens, keywords, source); ok {
		return res, true
	}
	if res, ok := m.matchStemmed(tokens, keywords, source); ok {
		return res, true
	}
	return models.MatchResult{}, false
}

// matchExactPhrase finds multi-token keywords appearing as a contiguous
// substring of the text. Hits are filtered through the ambiguity guard, so a
// phrase buried inside a longer run of letters does not count.
func (m *Matcher) matchExactPhrase(norm string, keywords []string, source models.MatchSource) (models.MatchResult, bool) {
	for _, keyword := range keywords {
		kw := textnorm.Normalize(keyword)
		if kw == "" || !strings.Contains(kw, " ") {
			continue
		}
		if !strings.Contains(norm, kw) {
			continue
		}
		if m.guard.IsFalsePositive(kw, norm) {
			continue
		}
		confidence := exactPhraseBase + exactPhraseSpan*float64(len(kw))/float64(len(norm))
		if confidence > 1.0 {
			confidence = 1.0
		}
		return result(keyword, models.MatchExactPhrase, confidence, source), true
	}
	return models.MatchResult{}, false
}

// matchWholeWord finds single-token keywords appearing as standalone tokens.
// Keywords whitelisted for substring matching also hit here when embedded,
// at slightly lower confidence.
func (m *Matcher) matchWholeWord(norm string, tokens, keywords []string, source models.MatchSource) (models.MatchResult, bool) {
	for _, keyword := range keywords {
		kw := textnorm.Normalize(keyword)
		if kw == "" || strings.Contains(kw, " ") {
			continue
		}
		if containsToken(tokens, kw) {
			return result(keyword, models.MatchWholeWord, wholeWordConfidence, source), true
		}
		if m.guard.AllowsSubstring(kw) && strings.Contains(norm, kw) {
			return result(keyword, models.MatchWholeWord, substringConfidence, source), true
		}
	}
	return models.MatchResult{}, false
}

// matchStemmed compares stems of text tokens against stems of single-token
// keywords.
func (m *Matcher) matchStemmed(tokens, keywords []string, source models.MatchSource) (models.MatchResult, bool) {
	var tokenStems []string
	for _, keyword := range keywords {
		kw := textnorm.Normalize(keyword)
		if kw == "" || strings.Contains(kw, " ") {
			continue
		}
		if tokenStems == nil {
			tokenStems = make([]string, len(tokens))
			for i, tok := range tokens {
				tokenStems[i] = textnorm.Stem(tok)
			}
		}
		kwStem := textnorm.Stem(kw)
		if containsToken(tokenStems, kwStem) {
			return result(keyword, models.MatchStemmed, stemmedConfidence, source), true
		}
	}
	return models.MatchResult{}, false
}

func containsToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}

func result(keyword string, matchType models.MatchType, confidence float64, source models.MatchSource) models.MatchResult {
	return models.MatchResult{
		HasMatches:     true,
		Confidence:     confidence,
		MatchType:      matchType,
		MatchedKeyword: keyword,
		Source:         source,
		Reasoning: fmt.Sprintf("keyword %q matched as %s in %s text",
			keyword, matchType, source),
	}
}
