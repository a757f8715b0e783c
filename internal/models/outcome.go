package models

// CategorizationMethod records how a transaction received its category.
type CategorizationMethod string

const (
	// MethodManual marks a categorization entered by the user; the cascade
	// never overrides it.
	MethodManual CategorizationMethod = "manual"
	// MethodPreviousData marks an automatic categorization derived from the
	// user's own data: a historical replay or a keyword-table hit.
	MethodPreviousData CategorizationMethod = "previous-data"
	// MethodAI marks a categorization accepted from the external suggestion
	// provider.
	MethodAI CategorizationMethod = "ai"
	// MethodNone marks a transaction that exhausted the cascade.
	MethodNone CategorizationMethod = "none"
)

// CategorizationOutcome is the terminal result of one cascade run.
//
// Invariant: Method of previous-data or ai implies Reasoning is non-empty and
// references the matched field or category name.
type CategorizationOutcome struct {
	CategoryID    string               `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	SubCategoryID string               `json:"sub_category_id,omitempty" yaml:"sub_category_id,omitempty"`
	Method        CategorizationMethod `json:"method" yaml:"method"`
	Confidence    float64              `json:"confidence" yaml:"confidence"`
	Reasoning     string               `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// Categorized reports whether the outcome carries a category.
func (o CategorizationOutcome) Categorized() bool {
	return o.CategoryID != "" && o.Method != MethodNone
}
