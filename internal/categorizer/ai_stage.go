package categorizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shekelio/autocat/internal/logging"
	"shekelio/autocat/internal/models"
)

// aiConfidence is the fixed confidence assigned to provider suggestions. The
// provider gives no calibrated score, so suggestions land at the usability
// floor rather than above keyword matches.
const aiConfidence = 0.5

// aiStage asks the external suggestion provider as a last resort. Provider
// failures and timeouts are soft misses: the cascade prefers an uncategorized
// transaction over aborting a batch on a flaky upstream.
type aiStage struct {
	suggester Suggester
	catalog   CategoryStore
	timeout   time.Duration
	logger    logging.Logger
}

func newAIStage(suggester Suggester, catalog CategoryStore, timeout time.Duration, logger logging.Logger) *aiStage {
	return &aiStage{suggester: suggester, catalog: catalog, timeout: timeout, logger: logger}
}

func (s *aiStage) Name() string { return "ai" }

func (s *aiStage) Attempt(ctx context.Context, tx *models.Transaction, candidates []models.TransactionType) (models.CategorizationOutcome, bool, error) {
	categories, subCategories, err := s.catalog.Taxonomy(tx.UserID)
	if err != nil {
		return models.CategorizationOutcome{}, false, fmt.Errorf("loading taxonomy: %w", err)
	}
	if len(categories) == 0 {
		return models.CategorizationOutcome{}, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := SuggestionRequest{
		UserID:          tx.UserID,
		Description:     tx.Description,
		Amount:          tx.Amount,
		Categories:      categories,
		SubCategories:   subCategories,
		RawCategoryHint: tx.Raw.CategoryLabel,
		MemoHint:        tx.Memo,
	}

	suggestion, err := s.suggester.Suggest(ctx, req)
	if err != nil {
		s.logger.WithError(err).WithField(logging.FieldTransactionID, tx.ID).
			Warn("ai suggestion failed, leaving transaction for manual review")
		return models.CategorizationOutcome{}, false, nil
	}
	if suggestion == nil || suggestion.CategoryID == "" {
		return models.CategorizationOutcome{}, false, nil
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
		logging.Field{Key: logging.FieldCategory, Value: suggestion.CategoryID},
		logging.Field{Key: logging.FieldSubCategory, Value: suggestion.SubCategoryID},
	).Debug("ai suggestion accepted")

	return models.CategorizationOutcome{
		CategoryID:    suggestion.CategoryID,
		SubCategoryID: suggestion.SubCategoryID,
		Method:        models.MethodAI,
		Confidence:    aiConfidence,
		Reasoning:     s.reasoning(req, suggestion),
	}, true, nil
}

func (s *aiStage) reasoning(req SuggestionRequest, suggestion *Suggestion) string {
	fields := []string{"description"}
	if req.MemoHint != "" {
		fields = append(fields, "memo")
	}
	if req.RawCategoryHint != "" {
		fields = append(fields, "provider category")
	}

	reason := fmt.Sprintf("ai suggestion based on %s", strings.Join(fields, ", "))
	if suggestion.Reasoning != "" {
		reason += ": " + suggestion.Reasoning
	}
	return reason
}
