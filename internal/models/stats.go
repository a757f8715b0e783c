package models

import (
	"shekelio/autocat/internal/logging"
)

// CategorizationStats tracks the result mix of a batch categorization run.
type CategorizationStats struct {
	Total         int // transactions processed
	PreviousData  int // resolved from the user's own data (history or keywords)
	AI            int // resolved by the suggestion provider
	Uncategorized int // exhausted the cascade
	Failed        int // rejected or aborted by a collaborator error
}

// Record updates the counters from one cascade outcome.
func (cs *CategorizationStats) Record(outcome CategorizationOutcome) {
	cs.Total++
	switch outcome.Method {
	case MethodAI:
		cs.AI++
	case MethodPreviousData, MethodManual:
		cs.PreviousData++
	default:
		cs.Uncategorized++
	}
}

// RecordFailure counts a transaction that could not be run through the
// cascade at all.
func (cs *CategorizationStats) RecordFailure() {
	cs.Total++
	cs.Failed++
}

// Categorized returns the number of transactions that received a category.
func (cs CategorizationStats) Categorized() int {
	return cs.PreviousData + cs.AI
}

// SuccessRate returns the share of processed transactions that were
// categorized, as a percentage.
func (cs CategorizationStats) SuccessRate() float64 {
	if cs.Total == 0 {
		return 0.0
	}
	return float64(cs.Categorized()) / float64(cs.Total) * 100.0
}

// LogSummary logs the run totals at info level.
func (cs CategorizationStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}
	logger.Info("categorization summary",
		logging.Field{Key: "total", Value: cs.Total},
		logging.Field{Key: "previous_data", Value: cs.PreviousData},
		logging.Field{Key: "ai", Value: cs.AI},
		logging.Field{Key: "uncategorized", Value: cs.Uncategorized},
		logging.Field{Key: "failed", Value: cs.Failed},
		logging.Field{Key: "success_rate", Value: cs.SuccessRate()},
	)
}
