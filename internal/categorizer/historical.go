package categorizer

import (
	"context"
	"fmt"
	"sort"

	"shekelio/autocat/internal/logging"
	"shekelio/autocat/internal/models"
	"shekelio/autocat/internal/textnorm"
)

// historicalStage replays prior manual decisions: when the user already
// categorized a transaction with the same normalized description (and memo,
// when the record carries one), reuse that decision.
type historicalStage struct {
	history HistoryStore
	catalog CategoryStore
	logger  logging.Logger
}

func newHistoricalStage(history HistoryStore, catalog CategoryStore, logger logging.Logger) *historicalStage {
	return &historicalStage{history: history, catalog: catalog, logger: logger}
}

func (s *historicalStage) Name() string { return "historical" }

func (s *historicalStage) Attempt(ctx context.Context, tx *models.Transaction, candidates []models.TransactionType) (models.CategorizationOutcome, bool, error) {
	description := textnorm.Normalize(tx.Description)
	memo := textnorm.Normalize(tx.Memo)

	records, err := s.history.FindMatches(tx.UserID, description, memo)
	if err != nil {
		return models.CategorizationOutcome{}, false, fmt.Errorf("querying history: %w", err)
	}
	if len(records) == 0 {
		return models.CategorizationOutcome{}, false, nil
	}

	typeByCategory, err := s.categoryTypes(tx.UserID)
	if err != nil {
		return models.CategorizationOutcome{}, false, err
	}

	allowed := make(map[models.TransactionType]bool, len(candidates))
	for _, t := range candidates {
		allowed[t] = true
	}

	// Most-used first, most recent breaking ties.
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].UseCount != records[j].UseCount {
			return records[i].UseCount > records[j].UseCount
		}
		return records[i].LastUsed.After(records[j].LastUsed)
	})

	for _, rec := range records {
		catType, known := typeByCategory[rec.CategoryID]
		if !known || !allowed[catType] {
			continue
		}

		reasoning := fmt.Sprintf("previously categorized transaction with description %q", rec.Description)
		if rec.Memo != "" {
			reasoning = fmt.Sprintf("previously categorized transaction with description %q and memo %q", rec.Description, rec.Memo)
		}

		s.logger.WithFields(
			logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
			logging.Field{Key: logging.FieldCategory, Value: rec.CategoryID},
			logging.Field{Key: logging.FieldCount, Value: rec.UseCount},
		).Debug("historical match found")

		return models.CategorizationOutcome{
			CategoryID:    rec.CategoryID,
			SubCategoryID: rec.SubCategoryID,
			Method:        models.MethodPreviousData,
			Confidence:    rec.EffectiveConfidence(),
			Reasoning:     reasoning,
		}, true, nil
	}

	return models.CategorizationOutcome{}, false, nil
}

func (s *historicalStage) categoryTypes(userID string) (map[string]models.TransactionType, error) {
	categories, _, err := s.catalog.Taxonomy(userID)
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy: %w", err)
	}
	types := make(map[string]models.TransactionType, len(categories))
	for _, cat := range categories {
		types[cat.ID] = cat.Type
	}
	return types, nil
}
