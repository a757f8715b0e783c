// Package categorize implements the single-transaction categorize command.
package categorize

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shekelio/autocat/cmd/root"
	"shekelio/autocat/internal/models"
)

var (
	description string
	memo        string
	amount      string
	date        string
	txType      string
	rawCategory string
)

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction",
	Long: `Run one transaction through the categorization cascade and print the
resolved category, method, and confidence.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description (required)")
	Cmd.Flags().StringVarP(&memo, "memo", "m", "", "Transaction memo")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "0", "Transaction amount, negative for expenses")
	Cmd.Flags().StringVarP(&date, "date", "t", "", "Transaction date (YYYY-MM-DD, default today)")
	Cmd.Flags().StringVar(&txType, "type", "", "Transaction type: expense, income, or transfer")
	Cmd.Flags().StringVar(&rawCategory, "provider-category", "", "Category label assigned by the provider")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	app := root.App()
	cfg := app.Config()

	txDate := time.Now()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", date, err)
		}
		txDate = parsed
	}

	money, err := models.NewMoneyFromString(amount, cfg.Categorization.DefaultCurrency)
	if err != nil {
		return err
	}

	tx := models.Transaction{
		UserID:      cfg.Categorization.UserID,
		Date:        txDate,
		Description: description,
		Memo:        memo,
		Amount:      money,
		Type:        models.ParseTransactionType(txType),
		Raw:         models.RawProviderText{CategoryLabel: rawCategory},
	}

	outcome, err := app.Categorizer().Categorize(cmd.Context(), &tx)
	if err != nil {
		return err
	}

	if !outcome.Categorized() {
		fmt.Fprintf(cmd.OutOrStdout(), "No category found; transaction type defaulted to %s\n", tx.Type)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Category:    %s\n", outcome.CategoryID)
	if outcome.SubCategoryID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "SubCategory: %s\n", outcome.SubCategoryID)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Type:        %s\n", tx.Type)
	fmt.Fprintf(cmd.OutOrStdout(), "Method:      %s\n", outcome.Method)
	fmt.Fprintf(cmd.OutOrStdout(), "Confidence:  %.2f\n", outcome.Confidence)
	if outcome.Reasoning != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Reasoning:   %s\n", outcome.Reasoning)
	}
	return nil
}
