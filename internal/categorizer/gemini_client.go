package categorizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"shekelio/autocat/internal/logging"
	"shekelio/autocat/internal/models"
)

// defaultGeminiModel is used when no model name is configured.
const defaultGeminiModel = "gemini-1.5-flash"

// GeminiSuggester implements Suggester against the Google Gemini API.
type GeminiSuggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiSuggester creates a Gemini-backed suggestion provider. modelName
// may be empty to use the default model.
func NewGeminiSuggester(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not set")
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiSuggester{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (g *GeminiSuggester) Close() error {
	return g.client.Close()
}

// Suggest asks the model to pick a category (and sub-category for expenses)
// from the user's taxonomy. The model answers in a line-oriented format that
// parseResponse decodes; answers naming categories outside the taxonomy are
// treated as no suggestion.
func (g *GeminiSuggester) Suggest(ctx context.Context, req SuggestionRequest) (*Suggestion, error) {
	prompt := g.buildPrompt(req)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini api: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini api")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	suggestion := g.parseResponse(responseText, req)

	if suggestion == nil {
		g.logger.WithField("response", responseText).
			Debug("gemini response did not name a known category")
	}
	return suggestion, nil
}

func (g *GeminiSuggester) buildPrompt(req SuggestionRequest) string {
	var b strings.Builder

	b.WriteString("Categorize the following financial transaction:\n")
	fmt.Fprintf(&b, "Description: %s\n", req.Description)
	fmt.Fprintf(&b, "Amount: %s\n", req.Amount.String())
	if req.MemoHint != "" {
		fmt.Fprintf(&b, "Memo: %s\n", req.MemoHint)
	}
	if req.RawCategoryHint != "" {
		fmt.Fprintf(&b, "Bank's own category label: %s\n", req.RawCategoryHint)
	}

	b.WriteString("\nPick exactly one category from this list:\n")
	for _, cat := range req.Categories {
		fmt.Fprintf(&b, "- %s (%s)\n", cat.Name, cat.Type)
	}

	if len(req.SubCategories) > 0 {
		b.WriteString("\nFor expense categories, also pick one matching sub-category:\n")
		for _, sub := range req.SubCategories {
			parent := categoryName(req.Categories, sub.CategoryID)
			fmt.Fprintf(&b, "- %s (under %s)\n", sub.Name, parent)
		}
	}

	b.WriteString(`
Respond in exactly this format:
Category: [category name from the list]
SubCategory: [sub-category name from the list, or "none"]
Reason: [one short sentence]`)

	return b.String()
}

// parseResponse extracts the category and sub-category names from the
// model's answer and resolves them against the taxonomy, case-insensitively.
func (g *GeminiSuggester) parseResponse(response string, req SuggestionRequest) *Suggestion {
	var categoryName, subCategoryName, reason string

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Category:"):
			categoryName = strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
		case strings.HasPrefix(line, "SubCategory:"):
			subCategoryName = strings.TrimSpace(strings.TrimPrefix(line, "SubCategory:"))
		case strings.HasPrefix(line, "Reason:"):
			reason = strings.TrimSpace(strings.TrimPrefix(line, "Reason:"))
		}
	}

	category, ok := findCategory(req.Categories, categoryName)
	if !ok {
		return nil
	}

	suggestion := &Suggestion{CategoryID: category.ID, Reasoning: reason}

	if category.Type == models.TypeExpense {
		sub, ok := findSubCategory(req.SubCategories, category.ID, subCategoryName)
		if !ok {
			// An expense suggestion without a resolvable sub-category leaves
			// the transaction incomplete; better to say nothing.
			return nil
		}
		suggestion.SubCategoryID = sub.ID
	}

	return suggestion
}

func findCategory(categories []models.Category, name string) (models.Category, bool) {
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return models.Category{}, false
}

func findSubCategory(subs []models.SubCategory, categoryID, name string) (models.SubCategory, bool) {
	if name == "" || strings.EqualFold(name, "none") {
		return models.SubCategory{}, false
	}
	for _, sub := range subs {
		if sub.CategoryID == categoryID && strings.EqualFold(sub.Name, name) {
			return sub, true
		}
	}
	return models.SubCategory{}, false
}

func categoryName(categories []models.Category, id string) string {
	for _, cat := range categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return id
}
