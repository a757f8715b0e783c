package store

import (
	"sort"
	"sync"

	"shekelio/autocat/internal/models"
)

// MemoryStore is an in-memory implementation of the category and history
// stores, for tests and for running without data files.
type MemoryStore struct {
	mu            sync.RWMutex
	Categories    []models.Category
	SubCategories []models.SubCategory
	History       []models.HistoricalCategorization
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// FindByTypeWithKeywords returns categories of the given types carrying
// keywords.
func (s *MemoryStore) FindByTypeWithKeywords(userID string, types []models.TransactionType) ([]models.Category, error) {
	allowed := typeSet(types)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Category
	for _, cat := range s.Categories {
		if allowed[cat.Type] && cat.HasKeywords() {
			out = append(out, cat)
		}
	}
	return out, nil
}

// FindSubCategoriesByParentType returns keyword-carrying sub-categories whose
// parent has one of the given types.
func (s *MemoryStore) FindSubCategoriesByParentType(userID string, types []models.TransactionType) ([]models.SubCategory, error) {
	allowed := typeSet(types)

	s.mu.RLock()
	defer s.mu.RUnlock()

	parents := make(map[string]bool)
	for _, cat := range s.Categories {
		if allowed[cat.Type] {
			parents[cat.ID] = true
		}
	}

	var out []models.SubCategory
	for _, sub := range s.SubCategories {
		if parents[sub.CategoryID] && sub.HasKeywords() {
			out = append(out, sub)
		}
	}
	return out, nil
}

// Taxonomy returns the full category and sub-category lists.
func (s *MemoryStore) Taxonomy(userID string) ([]models.Category, []models.SubCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.Categories...),
		append([]models.SubCategory(nil), s.SubCategories...), nil
}

// FindMatches returns history records matching the normalized description
// and, for records carrying one, the memo.
func (s *MemoryStore) FindMatches(userID, description, memo string) ([]models.HistoricalCategorization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.HistoricalCategorization
	for _, rec := range s.History {
		if rec.UserID != "" && rec.UserID != userID {
			continue
		}
		if rec.Description != description {
			continue
		}
		if rec.Memo != "" && rec.Memo != memo {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UseCount != out[j].UseCount {
			return out[i].UseCount > out[j].UseCount
		}
		return out[i].LastUsed.After(out[j].LastUsed)
	})
	return out, nil
}

// Save inserts the record or bumps the use counter of an identical one.
func (s *MemoryStore) Save(record models.HistoricalCategorization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.History {
		rec := &s.History[i]
		if rec.UserID == record.UserID &&
			rec.Description == record.Description &&
			rec.Memo == record.Memo &&
			rec.CategoryID == record.CategoryID &&
			rec.SubCategoryID == record.SubCategoryID {
			rec.UseCount++
			rec.LastUsed = record.LastUsed
			rec.Confidence = record.Confidence
			return nil
		}
	}
	s.History = append(s.History, record)
	return nil
}
