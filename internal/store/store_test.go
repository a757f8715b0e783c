package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shekelio/autocat/internal/logging"
	"shekelio/autocat/internal/models"
)

const categoriesYAML = `categories:
  - id: cat-food
    name: Food
    type: expense
    subcategories:
      - id: sub-restaurants
        name: Restaurants
        keywords: ["restaurant", "מסעדה"]
      - id: sub-groceries
        name: Groceries
        keywords: ["supermarket"]
  - id: cat-salary
    name: Salary
    type: income
    keywords: ["salary", "משכורת"]
  - id: cat-transfer
    name: Transfers
    type: transfer
    keywords: ["wire transfer"]
`

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, CategoriesFile), []byte(categoriesYAML), 0o600)
	require.NoError(t, err)

	s, err := NewFileStore(dir, logging.NewMockLogger())
	require.NoError(t, err)
	return s, dir
}

func TestFileStore_LoadCategories(t *testing.T) {
	s, _ := newTestStore(t)

	categories, subCategories, err := s.Taxonomy("user-1")
	require.NoError(t, err)
	require.Len(t, categories, 3)
	require.Len(t, subCategories, 2)

	assert.Equal(t, models.TypeExpense, categories[0].Type)
	assert.Equal(t, "cat-food", subCategories[0].CategoryID)
}

func TestFileStore_FindByTypeWithKeywords(t *testing.T) {
	s, _ := newTestStore(t)

	cats, err := s.FindByTypeWithKeywords("user-1", []models.TransactionType{models.TypeIncome, models.TypeTransfer})
	require.NoError(t, err)
	require.Len(t, cats, 2)

	// Food has no category-level keywords so an expense query yields nothing
	// at this level.
	cats, err = s.FindByTypeWithKeywords("user-1", []models.TransactionType{models.TypeExpense})
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestFileStore_FindSubCategoriesByParentType(t *testing.T) {
	s, _ := newTestStore(t)

	subs, err := s.FindSubCategoriesByParentType("user-1", []models.TransactionType{models.TypeExpense})
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	subs, err = s.FindSubCategoriesByParentType("user-1", []models.TransactionType{models.TypeIncome})
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestFileStore_InvalidCategoryType(t *testing.T) {
	dir := t.TempDir()
	bad := "categories:\n  - id: c1\n    name: Broken\n    type: sideways\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, CategoriesFile), []byte(bad), 0o600))

	_, err := NewFileStore(dir, logging.NewMockLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

func TestFileStore_MissingFilesStartEmpty(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), logging.NewMockLogger())
	require.NoError(t, err)

	categories, subCategories, err := s.Taxonomy("user-1")
	require.NoError(t, err)
	assert.Empty(t, categories)
	assert.Empty(t, subCategories)
}

func TestFileStore_SaveAndFindHistory(t *testing.T) {
	s, dir := newTestStore(t)

	rec := models.HistoricalCategorization{
		UserID:        "user-1",
		Description:   "coffee shop tel aviv",
		CategoryID:    "cat-food",
		SubCategoryID: "sub-restaurants",
		Confidence:    1.0,
		UseCount:      1,
		LastUsed:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Save(rec))

	matches, err := s.FindMatches("user-1", "coffee shop tel aviv", "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "sub-restaurants", matches[0].SubCategoryID)

	// History belongs to the user; the file must not be group-readable.
	info, err := os.Stat(filepath.Join(dir, HistoryFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SaveBumpsUseCount(t *testing.T) {
	s, _ := newTestStore(t)

	rec := models.HistoricalCategorization{
		UserID:      "user-1",
		Description: "coffee shop",
		CategoryID:  "cat-food", SubCategoryID: "sub-restaurants",
		Confidence: 1.0, UseCount: 1,
		LastUsed: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Save(rec))
	rec.LastUsed = rec.LastUsed.Add(24 * time.Hour)
	require.NoError(t, s.Save(rec))

	matches, err := s.FindMatches("user-1", "coffee shop", "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].UseCount)
	assert.Equal(t, rec.LastUsed, matches[0].LastUsed)
}

func TestFileStore_HistorySurvivesReload(t *testing.T) {
	s, dir := newTestStore(t)

	require.NoError(t, s.Save(models.HistoricalCategorization{
		UserID:      "user-1",
		Description: "coffee shop",
		CategoryID:  "cat-food", SubCategoryID: "sub-restaurants",
		Confidence: 1.0, UseCount: 1, LastUsed: time.Now().UTC(),
	}))

	reloaded, err := NewFileStore(dir, logging.NewMockLogger())
	require.NoError(t, err)

	matches, err := reloaded.FindMatches("user-1", "coffee shop", "")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestFileStore_MemoScopedMatching(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Save(models.HistoricalCategorization{
		UserID:      "user-1",
		Description: "pos 4412",
		Memo:        "supermarket victory",
		CategoryID:  "cat-food", SubCategoryID: "sub-groceries",
		Confidence: 1.0, UseCount: 1, LastUsed: time.Now().UTC(),
	}))

	// A record carrying a memo only matches the same memo.
	matches, err := s.FindMatches("user-1", "pos 4412", "")
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = s.FindMatches("user-1", "pos 4412", "supermarket victory")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestFileStore_FindMatchesOrdering(t *testing.T) {
	s, _ := newTestStore(t)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	seed := []models.HistoricalCategorization{
		{UserID: "user-1", Description: "coffee shop", CategoryID: "cat-food", SubCategoryID: "sub-groceries", UseCount: 1, LastUsed: base.Add(48 * time.Hour), Confidence: 1},
		{UserID: "user-1", Description: "coffee shop", CategoryID: "cat-food", SubCategoryID: "sub-restaurants", UseCount: 5, LastUsed: base, Confidence: 1},
	}
	for _, rec := range seed {
		require.NoError(t, s.Save(rec))
	}

	matches, err := s.FindMatches("user-1", "coffee shop", "")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "sub-restaurants", matches[0].SubCategoryID)
}

func TestFileStore_LoadAmbiguityGuard(t *testing.T) {
	s, dir := newTestStore(t)

	// Without a file the built-in table applies.
	guard, err := s.LoadAmbiguityGuard()
	require.NoError(t, err)
	assert.True(t, guard.Listed("מס"))

	table := "false_positives:\n  - keyword: bit\n    allow_substring: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, AmbiguityFile), []byte(table), 0o600))

	guard, err = s.LoadAmbiguityGuard()
	require.NoError(t, err)
	assert.True(t, guard.AllowsSubstring("bit"))
	assert.False(t, guard.Listed("מס"))
}
