// Package batch implements the batch import command.
package batch

import (
	"fmt"

	"github.com/spf13/cobra"

	"shekelio/autocat/cmd/root"
)

var (
	inputFile  string
	outputFile string
)

// Cmd represents the import command.
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Categorize a CSV of transactions",
	Long: `Read a provider CSV export, run every transaction through the
categorization cascade, and write the categorized set to the output file.`,
	RunE: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file (required)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (required)")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("output")
}

func importFunc(cmd *cobra.Command, args []string) error {
	app := root.App()
	userID := app.Config().Categorization.UserID

	stats, err := app.Importer().Run(cmd.Context(), inputFile, outputFile, userID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed:     %d\n", stats.Total)
	fmt.Fprintf(out, "From own data: %d\n", stats.PreviousData)
	fmt.Fprintf(out, "From AI:       %d\n", stats.AI)
	fmt.Fprintf(out, "Uncategorized: %d\n", stats.Uncategorized)
	if stats.Failed > 0 {
		fmt.Fprintf(out, "Failed:        %d\n", stats.Failed)
	}
	fmt.Fprintf(out, "Success rate:  %.1f%%\n", stats.SuccessRate())
	return nil
}
