package models

import "time"

// HistoricalCategorization is a record of a prior manual categorization
// decision, stored with normalized text so that textually identical
// transactions can replay it automatically.
type HistoricalCategorization struct {
	UserID        string    `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Description   string    `json:"description" yaml:"description"`
	Memo          string    `json:"memo,omitempty" yaml:"memo,omitempty"`
	RawCategory   string    `json:"raw_category,omitempty" yaml:"raw_category,omitempty"`
	CategoryID    string    `json:"category_id" yaml:"category_id"`
	SubCategoryID string    `json:"sub_category_id,omitempty" yaml:"sub_category_id,omitempty"`
	Confidence    float64   `json:"confidence" yaml:"confidence"`
	UseCount      int       `json:"use_count" yaml:"use_count"`
	LastUsed      time.Time `json:"last_used" yaml:"last_used"`
}

// EffectiveConfidence returns the stored confidence, defaulting to 1.0 for
// records saved before confidences were tracked.
func (h HistoricalCategorization) EffectiveConfidence() float64 {
	if h.Confidence <= 0 {
		return 1.0
	}
	return h.Confidence
}
