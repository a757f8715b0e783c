package keywordmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shekelio/autocat/internal/ambiguity"
	"shekelio/autocat/internal/models"
)

func TestMatcher_ExactPhrase(t *testing.T) {
	m := NewMatcher(nil)

	res := m.Match("Payment COFFEE SHOP Tel Aviv", "", []string{"coffee shop"})

	require.True(t, res.HasMatches)
	assert.Equal(t, models.MatchExactPhrase, res.MatchType)
	assert.Equal(t, "coffee shop", res.MatchedKeyword)
	assert.Equal(t, models.SourceOriginal, res.Source)
	assert.GreaterOrEqual(t, res.Confidence, 0.9)
	assert.LessOrEqual(t, res.Confidence, 1.0)
	assert.Contains(t, res.Reasoning, "coffee shop")
	assert.Contains(t, res.Reasoning, "exact-phrase")
	assert.Contains(t, res.Reasoning, "original")
}

func TestMatcher_WholeWord(t *testing.T) {
	m := NewMatcher(nil)

	tests := []struct {
		name     string
		text     string
		keywords []string
		matched  bool
	}{
		{
			name:     "standalone token matches",
			text:     "Monthly Salary Deposit",
			keywords: []string{"salary"},
			matched:  true,
		},
		{
			name:     "token inside longer word does not match",
			text:     "salaryadvance2026",
			keywords: []string{"salary"},
			matched:  false,
		},
		{
			name:     "hebrew standalone token",
			text:     "תשלום מס הכנסה",
			keywords: []string{"מס"},
			matched:  true,
		},
		{
			name:     "hebrew token inside restaurant word",
			text:     "מסעדות הכרם",
			keywords: []string{"מס"},
			matched:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Match(tt.text, "", tt.keywords)
			assert.Equal(t, tt.matched, res.HasMatches)
			if tt.matched {
				assert.Equal(t, models.MatchWholeWord, res.MatchType)
				assert.Greater(t, res.Confidence, 0.7)
				assert.LessOrEqual(t, res.Confidence, 0.9)
			} else {
				assert.Equal(t, models.MatchNone, res.MatchType)
				assert.Zero(t, res.Confidence)
			}
		})
	}
}

func TestMatcher_WhitelistedSubstring(t *testing.T) {
	m := NewMatcher(nil)

	// "דלק" is whitelisted for substring matching in the default table.
	res := m.Match("מתחםדלק כביש 4", "", []string{"דלק"})

	require.True(t, res.HasMatches)
	assert.Equal(t, models.MatchWholeWord, res.MatchType)
	assert.Greater(t, res.Confidence, 0.7)
}

func TestMatcher_Stemmed(t *testing.T) {
	m := NewMatcher(nil)

	res := m.Match("monthly payments listed", "", []string{"payment"})

	require.True(t, res.HasMatches)
	assert.Equal(t, models.MatchStemmed, res.MatchType)
	assert.Greater(t, res.Confidence, 0.5)
	assert.LessOrEqual(t, res.Confidence, 0.7)
}

func TestMatcher_TranslatedFallback(t *testing.T) {
	m := NewMatcher(nil)

	// Keywords are Hebrew, source text is English; only the translated text
	// hits, and only after all three tiers missed the original.
	res := m.Match("restaurant bill", "חשבון מסעדה", []string{"מסעדה"})

	require.True(t, res.HasMatches)
	assert.Equal(t, models.SourceTranslated, res.Source)
	assert.Equal(t, models.MatchWholeWord, res.MatchType)
	assert.Contains(t, res.Reasoning, "translated")
}

func TestMatcher_OriginalBeatsTranslated(t *testing.T) {
	m := NewMatcher(nil)

	// A stemmed hit on the original outranks a whole-word hit on the
	// translation: all tiers run on the original first.
	res := m.Match("salaries paid", "salary", []string{"salary"})

	require.True(t, res.HasMatches)
	assert.Equal(t, models.SourceOriginal, res.Source)
	assert.Equal(t, models.MatchStemmed, res.MatchType)
}

func TestMatcher_TierPriorityAndMonotonicity(t *testing.T) {
	m := NewMatcher(nil)
	keywords := []string{"coffee shop"}

	exact := m.Match("coffee shop payment", "", keywords)
	word := m.Match("coffee house shop", "", []string{"shop"})
	stemmed := m.Match("shops everywhere", "", []string{"shop"})

	require.True(t, exact.HasMatches)
	require.True(t, word.HasMatches)
	require.True(t, stemmed.HasMatches)

	assert.Equal(t, models.MatchExactPhrase, exact.MatchType)
	assert.Equal(t, models.MatchWholeWord, word.MatchType)
	assert.Equal(t, models.MatchStemmed, stemmed.MatchType)

	assert.Greater(t, exact.Confidence, word.Confidence)
	assert.Greater(t, word.Confidence, stemmed.Confidence)
	assert.Greater(t, stemmed.Confidence, UsableThreshold)
}

func TestMatcher_FirstKeywordWins(t *testing.T) {
	m := NewMatcher(nil)

	// Both keywords are present as whole words; list order decides.
	res := m.Match("pizza and sushi", "", []string{"sushi", "pizza"})
	require.True(t, res.HasMatches)
	assert.Equal(t, "sushi", res.MatchedKeyword)

	res = m.Match("pizza and sushi", "", []string{"pizza", "sushi"})
	require.True(t, res.HasMatches)
	assert.Equal(t, "pizza", res.MatchedKeyword)
}

func TestMatcher_NoMatch(t *testing.T) {
	m := NewMatcher(nil)

	res := m.Match("XYZ Unknown Merchant 42", "", []string{"salary", "coffee shop"})

	assert.False(t, res.HasMatches)
	assert.Equal(t, models.MatchNone, res.MatchType)
	assert.Zero(t, res.Confidence)
	assert.Empty(t, res.Reasoning)
}

func TestMatcher_EmptyInputs(t *testing.T) {
	m := NewMatcher(nil)

	assert.False(t, m.Match("", "", []string{"salary"}).HasMatches)
	assert.False(t, m.Match("some text", "", nil).HasMatches)
	assert.False(t, m.Match("   ", "  ", []string{""}).HasMatches)
}

func TestMatcher_CustomGuardWhitelist(t *testing.T) {
	guard := ambiguity.NewGuard([]ambiguity.Entry{
		{Keyword: "bit", AllowSubstring: true},
	})
	m := NewMatcher(guard)

	res := m.Match("paybit transfer", "", []string{"bit"})
	require.True(t, res.HasMatches)
	assert.Equal(t, models.MatchWholeWord, res.MatchType)
}
