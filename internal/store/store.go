// Package store persists the categorization data files: the category
// taxonomy, the historical categorization database, and the ambiguity table.
// Everything is YAML on disk, loaded once and served from memory; only the
// history file is written back.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"shekelio/autocat/internal/ambiguity"
	"shekelio/autocat/internal/logging"
	"shekelio/autocat/internal/models"
)

// Default data file names. FindDataFile resolves them against the standard
// locations.
const (
	CategoriesFile = "categories.yaml"
	HistoryFile    = "history.yaml"
	AmbiguityFile  = "ambiguity.yaml"
)

// categoriesDoc is the on-disk shape of the taxonomy file. Sub-categories
// nest under their parent so the file reads naturally.
type categoriesDoc struct {
	Categories []categoryDoc `yaml:"categories"`
}

type categoryDoc struct {
	ID            string           `yaml:"id"`
	Name          string           `yaml:"name"`
	Type          string           `yaml:"type"`
	Keywords      []string         `yaml:"keywords,omitempty"`
	SubCategories []subCategoryDoc `yaml:"subcategories,omitempty"`
}

type subCategoryDoc struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords,omitempty"`
}

// historyDoc is the on-disk shape of the historical database.
type historyDoc struct {
	History []models.HistoricalCategorization `yaml:"history"`
}

// FileStore serves the taxonomy and history from YAML files. The CLI is a
// single-user tool, so the userID arguments of the store interfaces are
// recorded on saved history records but not used to partition files.
type FileStore struct {
	dir    string
	logger logging.Logger

	mu            sync.RWMutex
	categories    []models.Category
	subCategories []models.SubCategory
	history       []models.HistoricalCategorization
	historyPath   string
}

// NewFileStore loads the data files under dir. Missing files are not errors:
// the taxonomy starts empty and the history file is created on first save.
func NewFileStore(dir string, logger logging.Logger) (*FileStore, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	s := &FileStore{dir: dir, logger: logger}

	if err := s.loadCategories(); err != nil {
		return nil, err
	}
	if err := s.loadHistory(); err != nil {
		return nil, err
	}
	return s, nil
}

// FindDataFile resolves a data file name against the standard locations: the
// store directory, the working directory, ./config, ./database, and finally
// ~/.config/autocat. Absolute paths are used as-is.
func (s *FileStore) FindDataFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filepath.Join(s.dir, filename),
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "autocat", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

func (s *FileStore) loadCategories() error {
	path, err := s.FindDataFile(CategoriesFile)
	if err != nil {
		s.logger.WithField("file", CategoriesFile).Warn("categories file not found, starting with an empty taxonomy")
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading categories file: %w", err)
	}

	var doc categoriesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing categories file: %w", err)
	}

	var categories []models.Category
	var subCategories []models.SubCategory
	for _, cd := range doc.Categories {
		catType := models.ParseTransactionType(cd.Type)
		if catType == models.TypeUnknown {
			return fmt.Errorf("category %q: unknown type %q", cd.ID, cd.Type)
		}
		categories = append(categories, models.Category{
			ID:       cd.ID,
			Name:     cd.Name,
			Type:     catType,
			Keywords: cd.Keywords,
		})
		for _, sd := range cd.SubCategories {
			subCategories = append(subCategories, models.SubCategory{
				ID:         sd.ID,
				CategoryID: cd.ID,
				Name:       sd.Name,
				Keywords:   sd.Keywords,
			})
		}
	}

	s.mu.Lock()
	s.categories = categories
	s.subCategories = subCategories
	s.mu.Unlock()

	s.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(categories)},
		logging.Field{Key: "file", Value: path},
	).Debug("categories loaded")
	return nil
}

func (s *FileStore) loadHistory() error {
	path, err := s.FindDataFile(HistoryFile)
	if err != nil {
		s.historyPath = filepath.Join(s.dir, HistoryFile)
		return nil
	}
	s.historyPath = path

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading history file: %w", err)
	}

	var doc historyDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing history file: %w", err)
	}

	s.mu.Lock()
	s.history = doc.History
	s.mu.Unlock()

	s.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(doc.History)},
		logging.Field{Key: "file", Value: path},
	).Debug("history loaded")
	return nil
}

// FindByTypeWithKeywords returns categories of the given types carrying a
// non-empty keyword list.
func (s *FileStore) FindByTypeWithKeywords(userID string, types []models.TransactionType) ([]models.Category, error) {
	allowed := typeSet(types)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Category
	for _, cat := range s.categories {
		if allowed[cat.Type] && cat.HasKeywords() {
			out = append(out, cat)
		}
	}
	return out, nil
}

// FindSubCategoriesByParentType returns sub-categories whose parent category
// has one of the given types and that carry a non-empty keyword list.
func (s *FileStore) FindSubCategoriesByParentType(userID string, types []models.TransactionType) ([]models.SubCategory, error) {
	allowed := typeSet(types)

	s.mu.RLock()
	defer s.mu.RUnlock()

	parents := make(map[string]bool)
	for _, cat := range s.categories {
		if allowed[cat.Type] {
			parents[cat.ID] = true
		}
	}

	var out []models.SubCategory
	for _, sub := range s.subCategories {
		if parents[sub.CategoryID] && sub.HasKeywords() {
			out = append(out, sub)
		}
	}
	return out, nil
}

// Taxonomy returns the full category and sub-category lists.
func (s *FileStore) Taxonomy(userID string) ([]models.Category, []models.SubCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, len(s.categories))
	copy(categories, s.categories)
	subCategories := make([]models.SubCategory, len(s.subCategories))
	copy(subCategories, s.subCategories)
	return categories, subCategories, nil
}

// FindMatches returns history records whose description equals description.
// Records carrying a memo only match when it equals memo. Results come back
// most-used first, most recent breaking ties.
func (s *FileStore) FindMatches(userID, description, memo string) ([]models.HistoricalCategorization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.HistoricalCategorization
	for _, rec := range s.history {
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

// Save inserts the record, or bumps the usage counter of an existing record
// with the same user, description, memo, and category. The history file is
// rewritten atomically via a temp file.
func (s *FileStore) Save(record models.HistoricalCategorization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.history {
		rec := &s.history[i]
		if rec.UserID == record.UserID &&
			rec.Description == record.Description &&
			rec.Memo == record.Memo &&
			rec.CategoryID == record.CategoryID &&
			rec.SubCategoryID == record.SubCategoryID {
			rec.UseCount++
			rec.LastUsed = record.LastUsed
			rec.Confidence = record.Confidence
			merged = true
			break
		}
	}
	if !merged {
		s.history = append(s.history, record)
	}

	return s.writeHistoryLocked()
}

// writeHistoryLocked persists the history slice. Caller holds mu. History
// contains user financial data, so the file is written owner-only.
func (s *FileStore) writeHistoryLocked() error {
	data, err := yaml.Marshal(historyDoc{History: s.history})
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	dir := filepath.Dir(s.historyPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp history file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing history file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting history file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.historyPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing history file: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(s.history)},
		logging.Field{Key: "file", Value: s.historyPath},
	).Debug("history saved")
	return nil
}

// LoadAmbiguityGuard builds the keyword ambiguity guard from the ambiguity
// file, falling back to the built-in table when no file exists.
func (s *FileStore) LoadAmbiguityGuard() (*ambiguity.Guard, error) {
	path, err := s.FindDataFile(AmbiguityFile)
	if err != nil {
		return ambiguity.DefaultGuard(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ambiguity file: %w", err)
	}

	var table ambiguity.Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing ambiguity file: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(table.FalsePositives)},
		logging.Field{Key: "file", Value: path},
	).Debug("ambiguity table loaded")
	return ambiguity.NewGuard(table.FalsePositives), nil
}

func typeSet(types []models.TransactionType) map[models.TransactionType]bool {
	set := make(map[models.TransactionType]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return set
}
