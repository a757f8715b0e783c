package categorizer

import (
	"context"

	"shekelio/autocat/internal/models"
)

// Stage is one step of the categorization cascade. Stages are pure with
// respect to the transaction: they read it and return an outcome, and the
// driver applies side effects.
type Stage interface {
	// Attempt tries to categorize the transaction. candidates restricts the
	// category types the stage may resolve to. The boolean reports whether
	// the stage produced a usable outcome; a false return with a nil error
	// is a soft miss and the driver moves on to the next stage. A non-nil
	// error aborts the cascade (collaborator failure).
	Attempt(ctx context.Context, tx *models.Transaction, candidates []models.TransactionType) (models.CategorizationOutcome, bool, error)

	// Name returns the stage name for logging and debugging.
	Name() string
}
