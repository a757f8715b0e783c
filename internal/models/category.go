package models

// Category is a user-defined transaction category.
//
// Keywords are only used directly for Income and Transfer categories;
// Expense categories delegate keyword matching to their sub-categories.
type Category struct {
	ID       string          `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Type     TransactionType `json:"type" yaml:"type"`
	Keywords []string        `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// HasKeywords reports whether the category carries a usable keyword list.
func (c Category) HasKeywords() bool {
	return len(c.Keywords) > 0
}

// SubCategory refines an Expense category. An Expense transaction is fully
// categorized only when both category and sub-category are set.
type SubCategory struct {
	ID         string   `json:"id" yaml:"id"`
	CategoryID string   `json:"category_id" yaml:"category_id"`
	Name       string   `json:"name" yaml:"name"`
	Keywords   []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// HasKeywords reports whether the sub-category carries a usable keyword list.
func (s SubCategory) HasKeywords() bool {
	return len(s.Keywords) > 0
}
