// Package importer runs batch categorization over provider CSV exports: read
// the transactions, push each one through the cascade, and write the
// categorized set back out with run statistics.
package importer

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"shekelio/autocat/internal/logging"
	"shekelio/autocat/internal/models"
)

// sequentialLimit is the batch size below which the worker pool is not worth
// its overhead.
const sequentialLimit = 100

// TransactionCategorizer is the part of the cascade the importer needs.
type TransactionCategorizer interface {
	Categorize(ctx context.Context, tx *models.Transaction) (models.CategorizationOutcome, error)
}

// Importer drives batch categorization runs.
type Importer struct {
	categorizer TransactionCategorizer
	logger      logging.Logger
	workerCount int
}

// New creates an Importer sized to the machine's CPU count.
func New(categorizer TransactionCategorizer, logger logging.Logger) *Importer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Importer{
		categorizer: categorizer,
		logger:      logger,
		workerCount: runtime.NumCPU(),
	}
}

// Run reads transactions from inputPath, categorizes them, and writes the
// result to outputPath. Per-transaction failures are counted, logged, and do
// not abort the batch.
func (im *Importer) Run(ctx context.Context, inputPath, outputPath, userID string) (models.CategorizationStats, error) {
	transactions, err := ReadTransactionsCSV(inputPath, userID, im.logger)
	if err != nil {
		return models.CategorizationStats{}, err
	}

	stats := im.Categorize(ctx, transactions)

	if err := WriteTransactionsCSV(transactions, outputPath, im.logger); err != nil {
		return stats, fmt.Errorf("writing categorized transactions: %w", err)
	}

	stats.LogSummary(im.logger)
	return stats, nil
}

// Categorize runs the cascade over the batch in place and returns the run
// statistics. Small batches run sequentially; larger ones fan out over a
// worker pool.
func (im *Importer) Categorize(ctx context.Context, transactions []models.Transaction) models.CategorizationStats {
	if len(transactions) < sequentialLimit {
		return im.categorizeSequential(ctx, transactions)
	}
	return im.categorizeConcurrent(ctx, transactions)
}

func (im *Importer) categorizeSequential(ctx context.Context, transactions []models.Transaction) models.CategorizationStats {
	var stats models.CategorizationStats
	for i := range transactions {
		im.categorizeOne(ctx, &transactions[i], &stats)
	}
	return stats
}

func (im *Importer) categorizeConcurrent(ctx context.Context, transactions []models.Transaction) models.CategorizationStats {
	indexes := make(chan int, im.workerCount)
	results := make(chan models.CategorizationStats, im.workerCount)

	var wg sync.WaitGroup
	for w := 0; w < im.workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var stats models.CategorizationStats
			for i := range indexes {
				im.categorizeOne(ctx, &transactions[i], &stats)
			}
			results <- stats
		}()
	}

	go func() {
		defer close(indexes)
		for i := range transactions {
			select {
			case indexes <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var total models.CategorizationStats
	for stats := range results {
		total.Total += stats.Total
		total.PreviousData += stats.PreviousData
		total.AI += stats.AI
		total.Uncategorized += stats.Uncategorized
		total.Failed += stats.Failed
	}

	im.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: "workers", Value: im.workerCount},
	).Debug("concurrent categorization completed")
	return total
}

func (im *Importer) categorizeOne(ctx context.Context, tx *models.Transaction, stats *models.CategorizationStats) {
	outcome, err := im.categorizer.Categorize(ctx, tx)
	if err != nil {
		stats.RecordFailure()
		im.logger.WithError(err).WithField(logging.FieldTransactionID, tx.ID).
			Warn("transaction failed categorization")
		return
	}
	stats.Record(outcome)
}
