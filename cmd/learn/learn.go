// Package learn implements the manual categorization command.
package learn

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shekelio/autocat/cmd/root"
	"shekelio/autocat/internal/models"
)

var (
	description   string
	memo          string
	amount        string
	categoryID    string
	subCategoryID string
)

// Cmd represents the learn command.
var Cmd = &cobra.Command{
	Use:   "learn",
	Short: "Record a manual categorization",
	Long: `Record a manual category decision for a transaction description. Future
imports of textually identical transactions will replay it automatically.`,
	RunE: learnFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description (required)")
	Cmd.Flags().StringVarP(&memo, "memo", "m", "", "Transaction memo")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "0", "Transaction amount")
	Cmd.Flags().StringVarP(&categoryID, "category", "c", "", "Category ID (required)")
	Cmd.Flags().StringVarP(&subCategoryID, "subcategory", "s", "", "Sub-category ID, required for expense categories")
	_ = Cmd.MarkFlagRequired("description")
	_ = Cmd.MarkFlagRequired("category")
}

func learnFunc(cmd *cobra.Command, args []string) error {
	app := root.App()
	cfg := app.Config()

	money, err := models.NewMoneyFromString(amount, cfg.Categorization.DefaultCurrency)
	if err != nil {
		return err
	}

	tx := models.Transaction{
		UserID:      cfg.Categorization.UserID,
		Date:        time.Now(),
		Description: description,
		Memo:        memo,
		Amount:      money,
	}

	if err := app.Categorizer().Learn(&tx, categoryID, subCategoryID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %q as %s", description, categoryID)
	if subCategoryID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), " / %s", subCategoryID)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
