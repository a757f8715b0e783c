// Package categories implements the taxonomy listing command.
package categories

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shekelio/autocat/cmd/root"
)

// Cmd represents the categories command.
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category taxonomy",
	Long:  `Print the configured categories, their types, sub-categories, and keywords.`,
	RunE:  listFunc,
}

func listFunc(cmd *cobra.Command, args []string) error {
	app := root.App()
	userID := app.Config().Categorization.UserID

	categories, subCategories, err := app.Store().Taxonomy(userID)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No categories configured.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, cat := range categories {
		fmt.Fprintf(out, "%s  %s (%s)\n", cat.ID, cat.Name, cat.Type)
		if cat.HasKeywords() {
			fmt.Fprintf(out, "    keywords: %s\n", strings.Join(cat.Keywords, ", "))
		}
		for _, sub := range subCategories {
			if sub.CategoryID != cat.ID {
				continue
			}
			fmt.Fprintf(out, "    %s  %s\n", sub.ID, sub.Name)
			if sub.HasKeywords() {
				fmt.Fprintf(out, "        keywords: %s\n", strings.Join(sub.Keywords, ", "))
			}
		}
	}
	return nil
}
