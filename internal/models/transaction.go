// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"
)

// TransactionType classifies a transaction or a category.
type TransactionType string

const (
	TypeExpense  TransactionType = "expense"
	TypeIncome   TransactionType = "income"
	TypeTransfer TransactionType = "transfer"
	// TypeUnknown marks a freshly imported transaction whose direction has not
	// been resolved yet.
	TypeUnknown TransactionType = ""
)

// ParseTransactionType parses a type label from config or CSV input.
// Unknown labels map to TypeUnknown rather than failing.
func ParseTransactionType(s string) TransactionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense":
		return TypeExpense
	case "income":
		return TypeIncome
	case "transfer":
		return TypeTransfer
	}
	return TypeUnknown
}

// RawProviderText carries the vendor-specific free text attached to an
// imported transaction by the account provider. All fields are optional.
type RawProviderText struct {
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	Memo          string `json:"memo,omitempty" yaml:"memo,omitempty"`
	CategoryLabel string `json:"category_label,omitempty" yaml:"category_label,omitempty"`
}

// IsEmpty reports whether no raw provider text is present.
func (r RawProviderText) IsEmpty() bool {
	return strings.TrimSpace(r.Description) == "" &&
		strings.TrimSpace(r.Memo) == "" &&
		strings.TrimSpace(r.CategoryLabel) == ""
}

// Transaction is a single imported bank or credit-card transaction.
//
// Invariant: once categorized, Type equals the resolved category's type.
type Transaction struct {
	ID          string          `json:"id" yaml:"id"`
	UserID      string          `json:"user_id" yaml:"user_id"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Memo        string          `json:"memo,omitempty" yaml:"memo,omitempty"`
	Raw         RawProviderText `json:"raw,omitempty" yaml:"raw,omitempty"`
	Amount      Money           `json:"amount" yaml:"amount"`
	Type        TransactionType `json:"type,omitempty" yaml:"type,omitempty"`

	// Categorization result, empty until the cascade or a manual decision
	// assigns one.
	CategoryID    string               `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	SubCategoryID string               `json:"sub_category_id,omitempty" yaml:"sub_category_id,omitempty"`
	Method        CategorizationMethod `json:"method,omitempty" yaml:"method,omitempty"`
	Confidence    float64              `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Reasoning     string               `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// IsFullyCategorized reports whether the transaction needs no further
// categorization. Expense transactions require both a category and a
// sub-category; Income and Transfer require only a category.
func (t Transaction) IsFullyCategorized() bool {
	if t.CategoryID == "" {
		return false
	}
	if t.Type == TypeExpense && t.SubCategoryID == "" {
		return false
	}
	return true
}
