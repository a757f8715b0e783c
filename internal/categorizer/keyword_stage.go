package categorizer

import (
	"context"
	"fmt"

	"shekelio/autocat/internal/keywordmatch"
	"shekelio/autocat/internal/logging"
	"shekelio/autocat/internal/models"
	"shekelio/autocat/internal/textnorm"
)

// searchField is one of the transaction texts the keyword stage tries, in
// priority order.
type searchField struct {
	name string
	text string
}

// keywordStage matches transaction text against the keywords attached to the
// user's categories. Income and Transfer resolve at category level; Expense
// resolves through sub-category keywords so the outcome is complete.
type keywordStage struct {
	catalog    CategoryStore
	matcher    *keywordmatch.Matcher
	translator Translator
	logger     logging.Logger
}

func newKeywordStage(catalog CategoryStore, matcher *keywordmatch.Matcher, translator Translator, logger logging.Logger) *keywordStage {
	if translator == nil {
		translator = NoopTranslator{}
	}
	return &keywordStage{catalog: catalog, matcher: matcher, translator: translator, logger: logger}
}

func (s *keywordStage) Name() string { return "keyword" }

func (s *keywordStage) Attempt(ctx context.Context, tx *models.Transaction, candidates []models.TransactionType) (models.CategorizationOutcome, bool, error) {
	categoryCandidates, subCandidates := splitCandidates(candidates)

	var categories []models.Category
	var subCategories []models.SubCategory
	var err error

	if len(categoryCandidates) > 0 {
		categories, err = s.catalog.FindByTypeWithKeywords(tx.UserID, categoryCandidates)
		if err != nil {
			return models.CategorizationOutcome{}, false, fmt.Errorf("loading categories: %w", err)
		}
	}
	if len(subCandidates) > 0 {
		subCategories, err = s.catalog.FindSubCategoriesByParentType(tx.UserID, subCandidates)
		if err != nil {
			return models.CategorizationOutcome{}, false, fmt.Errorf("loading sub-categories: %w", err)
		}
	}
	if len(categories) == 0 && len(subCategories) == 0 {
		return models.CategorizationOutcome{}, false, nil
	}

	for _, field := range s.searchFields(tx) {
		translated := s.translator.Translate(field.text)

		// Category-level keywords first: a direct Income or Transfer hit is a
		// complete outcome on its own.
		for _, cat := range categories {
			res := s.matcher.Match(field.text, translated, cat.Keywords)
			if !usable(res) {
				continue
			}
			return s.outcome(tx, field, cat.Name, cat.ID, "", res), true, nil
		}

		for _, sub := range subCategories {
			res := s.matcher.Match(field.text, translated, sub.Keywords)
			if !usable(res) {
				continue
			}
			return s.outcome(tx, field, sub.Name, sub.CategoryID, sub.ID, res), true, nil
		}
	}

	return models.CategorizationOutcome{}, false, nil
}

// searchFields lists the transaction texts worth matching, strongest signal
// first. Blank fields are dropped, and the memo falls back to the raw
// provider memo when the cleaned one is empty.
func (s *keywordStage) searchFields(tx *models.Transaction) []searchField {
	memo := tx.Memo
	rawMemo := tx.Raw.Memo
	if textnorm.Normalize(memo) == "" {
		memo, rawMemo = rawMemo, ""
	}

	all := []searchField{
		{"description", tx.Description},
		{"memo", memo},
		{"raw description", tx.Raw.Description},
		{"raw memo", rawMemo},
		{"provider category", tx.Raw.CategoryLabel},
	}

	fields := all[:0]
	for _, f := range all {
		if textnorm.Normalize(f.text) != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func (s *keywordStage) outcome(tx *models.Transaction, field searchField, name, categoryID, subCategoryID string, res models.MatchResult) models.CategorizationOutcome {
	res.MatchedField = field.name
	s.logger.WithFields(
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
		logging.Field{Key: logging.FieldKeyword, Value: res.MatchedKeyword},
		logging.Field{Key: logging.FieldCategory, Value: categoryID},
		logging.Field{Key: logging.FieldSearchField, Value: field.name},
		logging.Field{Key: logging.FieldConfidence, Value: res.Confidence},
	).Debug("keyword match found")

	return models.CategorizationOutcome{
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Method:        models.MethodPreviousData,
		Confidence:    res.Confidence,
		Reasoning: fmt.Sprintf("%s matched %q with confidence %.2f: %s",
			field.name, name, res.Confidence, res.Reasoning),
	}
}

// usable reports whether a match clears the confidence floor. The floor is
// exclusive: a result sitting exactly on it is rejected.
func usable(res models.MatchResult) bool {
	return res.HasMatches && res.Confidence > keywordmatch.UsableThreshold
}

// splitCandidates divides candidate types between category-level matching
// (Income, Transfer) and sub-category matching (Expense).
func splitCandidates(candidates []models.TransactionType) (categoryLevel, subLevel []models.TransactionType) {
	for _, t := range candidates {
		if t == models.TypeExpense {
			subLevel = append(subLevel, t)
		} else {
			categoryLevel = append(categoryLevel, t)
		}
	}
	return categoryLevel, subLevel
}
