// Package categorizer assigns categories to imported transactions using a
// cascade of progressively weaker signal sources: replay of prior manual
// decisions, keyword matching against the user's category taxonomy, and an
// external AI suggestion provider as the last resort.
package categorizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shekelio/autocat/internal/ambiguity"
	"shekelio/autocat/internal/keywordmatch"
	"shekelio/autocat/internal/logging"
	"shekelio/autocat/internal/models"
	"shekelio/autocat/internal/textnorm"
)

// ErrMissingDescription rejects a transaction before it enters the cascade.
// A transaction without a description cannot be matched against anything.
var ErrMissingDescription = errors.New("transaction has no description")

// Categorizer drives the cascade. It holds no cross-transaction mutable
// state; running many transactions concurrently is safe as long as the
// stores provide consistent read snapshots.
type Categorizer struct {
	history HistoryStore
	catalog CategoryStore
	stages  []Stage
	logger  logging.Logger
}

// Option configures optional collaborators of a Categorizer.
type Option func(*options)

type options struct {
	suggester  Suggester
	translator Translator
	guard      *ambiguity.Guard
	aiTimeout  time.Duration
}

// WithSuggester wires the external AI suggestion provider. Without it the
// cascade ends after the keyword stage.
func WithSuggester(s Suggester, timeout time.Duration) Option {
	return func(o *options) {
		o.suggester = s
		if timeout > 0 {
			o.aiTimeout = timeout
		}
	}
}

// WithTranslator wires the translation provider used for cross-language
// keyword matching.
func WithTranslator(t Translator) Option {
	return func(o *options) { o.translator = t }
}

// WithAmbiguityGuard replaces the built-in false-positive table.
func WithAmbiguityGuard(g *ambiguity.Guard) Option {
	return func(o *options) { o.guard = g }
}

// New creates a Categorizer with its stage list in cascade order.
func New(history HistoryStore, catalog CategoryStore, logger logging.Logger, opts ...Option) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}

	o := options{
		translator: NoopTranslator{},
		guard:      ambiguity.DefaultGuard(),
		aiTimeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	matcher := keywordmatch.NewMatcher(o.guard)

	stages := []Stage{
		newHistoricalStage(history, catalog, logger),
		newKeywordStage(catalog, matcher, o.translator, logger),
	}
	if o.suggester != nil {
		stages = append(stages, newAIStage(o.suggester, catalog, o.aiTimeout, logger))
	}

	return &Categorizer{
		history: history,
		catalog: catalog,
		stages:  stages,
		logger:  logger,
	}
}

// Categorize runs the cascade for one transaction and applies the outcome to
// it. Idempotent: a fully categorized transaction short-circuits and is
// returned unchanged. The only other side effect is backfilling the
// transaction's type from the resolved category when it was unset.
//
// Soft misses (no history, no keyword hit, provider failure) never surface
// as errors; the cascade always completes its decision, even if that
// decision is "uncategorized". Store failures do surface: they are
// infrastructure problems, not categorization ambiguity.
func (c *Categorizer) Categorize(ctx context.Context, tx *models.Transaction) (models.CategorizationOutcome, error) {
	if tx == nil {
		return models.CategorizationOutcome{}, errors.New("transaction cannot be nil")
	}
	if textnorm.Normalize(tx.Description) == "" {
		return models.CategorizationOutcome{}, ErrMissingDescription
	}

	// Stage 1: already complete. Method stays whatever produced it.
	if tx.IsFullyCategorized() {
		method := tx.Method
		if method == "" {
			method = models.MethodManual
		}
		confidence := tx.Confidence
		if confidence == 0 {
			confidence = 1.0
		}
		return models.CategorizationOutcome{
			CategoryID:    tx.CategoryID,
			SubCategoryID: tx.SubCategoryID,
			Method:        method,
			Confidence:    confidence,
			Reasoning:     tx.Reasoning,
		}, nil
	}

	candidates := candidateTypes(tx)

	for _, stage := range c.stages {
		outcome, found, err := stage.Attempt(ctx, tx, candidates)
		if err != nil {
			return models.CategorizationOutcome{}, fmt.Errorf("%s stage: %w", stage.Name(), err)
		}
		if !found {
			continue
		}

		if err := c.apply(tx, outcome); err != nil {
			return models.CategorizationOutcome{}, err
		}

		c.logger.WithFields(
			logging.Field{Key: logging.FieldStrategy, Value: stage.Name()},
			logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
			logging.Field{Key: logging.FieldCategory, Value: outcome.CategoryID},
			logging.Field{Key: logging.FieldConfidence, Value: outcome.Confidence},
		).Debug("transaction categorized")
		return outcome, nil
	}

	// Terminal uncategorized: infer a type so the transaction is at least
	// directional, but never default to Transfer.
	if tx.Type == models.TypeUnknown {
		if tx.Amount.IsNegative() {
			tx.Type = models.TypeExpense
		} else {
			tx.Type = models.TypeIncome
		}
	}

	c.logger.WithFields(
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
		logging.Field{Key: "type", Value: string(tx.Type)},
	).Debug("transaction left uncategorized")

	return models.CategorizationOutcome{Method: models.MethodNone}, nil
}

// Learn records a manual categorization decision: it applies the category to
// the transaction and saves a historical record so future automatic runs can
// replay it. This is the manual call site, not part of the automatic cascade.
func (c *Categorizer) Learn(tx *models.Transaction, categoryID, subCategoryID string) error {
	if tx == nil {
		return errors.New("transaction cannot be nil")
	}
	description := textnorm.Normalize(tx.Description)
	if description == "" {
		return ErrMissingDescription
	}

	catType, err := c.categoryType(tx.UserID, categoryID)
	if err != nil {
		return err
	}
	if catType == models.TypeExpense && subCategoryID == "" {
		return fmt.Errorf("expense category %q requires a sub-category", categoryID)
	}

	record := models.HistoricalCategorization{
		UserID:        tx.UserID,
		Description:   description,
		Memo:          textnorm.Normalize(tx.Memo),
		RawCategory:   textnorm.Normalize(tx.Raw.CategoryLabel),
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Confidence:    1.0,
		UseCount:      1,
		LastUsed:      time.Now(),
	}
	if err := c.history.Save(record); err != nil {
		return fmt.Errorf("saving historical categorization: %w", err)
	}

	tx.CategoryID = categoryID
	tx.SubCategoryID = subCategoryID
	tx.Type = catType
	tx.Method = models.MethodManual
	tx.Confidence = 1.0
	tx.Reasoning = ""

	c.logger.WithFields(
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
		logging.Field{Key: logging.FieldCategory, Value: categoryID},
		logging.Field{Key: logging.FieldSubCategory, Value: subCategoryID},
	).Debug("manual categorization recorded")
	return nil
}

// apply writes the outcome onto the transaction and backfills its type from
// the resolved category when the type was unset.
func (c *Categorizer) apply(tx *models.Transaction, outcome models.CategorizationOutcome) error {
	tx.CategoryID = outcome.CategoryID
	tx.SubCategoryID = outcome.SubCategoryID
	tx.Method = outcome.Method
	tx.Confidence = outcome.Confidence
	tx.Reasoning = outcome.Reasoning

	if tx.Type == models.TypeUnknown {
		catType, err := c.categoryType(tx.UserID, outcome.CategoryID)
		if err != nil {
			return err
		}
		tx.Type = catType
	}
	return nil
}

// categoryType resolves a category's type from the taxonomy.
func (c *Categorizer) categoryType(userID, categoryID string) (models.TransactionType, error) {
	categories, _, err := c.catalog.Taxonomy(userID)
	if err != nil {
		return models.TypeUnknown, fmt.Errorf("loading taxonomy: %w", err)
	}
	for _, cat := range categories {
		if cat.ID == categoryID {
			return cat.Type, nil
		}
	}
	return models.TypeUnknown, fmt.Errorf("unknown category %q", categoryID)
}

// candidateTypes computes the category types a stage may resolve to. A set
// type restricts to itself; an unset type allows Transfer plus the direction
// implied by the amount sign.
func candidateTypes(tx *models.Transaction) []models.TransactionType {
	if tx.Type != models.TypeUnknown {
		return []models.TransactionType{tx.Type}
	}
	if tx.Amount.IsNegative() {
		return []models.TransactionType{models.TypeTransfer, models.TypeExpense}
	}
	return []models.TransactionType{models.TypeTransfer, models.TypeIncome}
}
