package categorizer

import (
	"context"

	"shekelio/autocat/internal/models"
)

// HistoryStore provides read access to prior manual categorization decisions
// and persists new ones. Implementations must return records ordered by
// usage count descending, then recency descending.
type HistoryStore interface {
	// FindMatches returns records whose normalized description equals
	// description. Records carrying a memo only match when it equals memo.
	FindMatches(userID, description, memo string) ([]models.HistoricalCategorization, error)

	// Save inserts the record, or bumps the usage counter of an existing
	// record with the same normalized keys.
	Save(record models.HistoricalCategorization) error
}

// CategoryStore provides read access to the user's category taxonomy.
type CategoryStore interface {
	// FindByTypeWithKeywords returns categories of the given types that
	// carry a non-empty keyword list.
	FindByTypeWithKeywords(userID string, types []models.TransactionType) ([]models.Category, error)

	// FindSubCategoriesByParentType returns sub-categories whose parent
	// category has one of the given types and that carry a non-empty
	// keyword list.
	FindSubCategoriesByParentType(userID string, types []models.TransactionType) ([]models.SubCategory, error)

	// Taxonomy returns the user's full category and sub-category lists,
	// keywords or not.
	Taxonomy(userID string) ([]models.Category, []models.SubCategory, error)
}

// Suggestion is the answer of the external suggestion provider. A nil
// *Suggestion, or one with an empty CategoryID, means "no suggestion".
type Suggestion struct {
	CategoryID    string
	SubCategoryID string
	Reasoning     string
}

// SuggestionRequest carries everything the provider sees: the provider is
// given the full taxonomy, not just candidate types.
type SuggestionRequest struct {
	UserID          string
	Description     string
	Amount          models.Money
	Categories      []models.Category
	SubCategories   []models.SubCategory
	RawCategoryHint string
	MemoHint        string
}

// Suggester is the external AI suggestion provider, consumed as a black box.
// Implementations may block on network I/O; callers bound them with a
// context deadline. Errors and timeouts are treated as "no suggestion" by
// the cascade, never propagated.
type Suggester interface {
	Suggest(ctx context.Context, req SuggestionRequest) (*Suggestion, error)
}

// Translator produces the parallel translated text used for cross-language
// keyword matching. Best effort: an empty string means no translation is
// available, which the matcher treats as an absent source.
type Translator interface {
	Translate(text string) string
}

// NoopTranslator is the production default when no translation provider is
// wired; keyword matching then runs on the original text only.
type NoopTranslator struct{}

// Translate always reports that no translation is available.
func (NoopTranslator) Translate(string) string { return "" }
