package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amitksingh0880/spend-wise-sub000/internal/cli"
	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
	"github.com/amitksingh0880/spend-wise-sub000/internal/smsparse"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the spending categories and their trigger keywords",
		Long: `Show the fixed category table the SMS parser uses. Categories are
matched in the order listed; the first one with a keyword present in the
vendor or message body wins.`,
		RunE: runCategories,
	}
}

func runCategories(_ *cobra.Command, _ []string) error {
	fmt.Println(cli.TitleStyle.Render("Spending categories"))
	for _, entry := range smsparse.Categories() {
		fmt.Printf("%-16s %s\n",
			entry.Name,
			cli.SubtleStyle.Render(strings.Join(entry.Keywords, ", ")))
	}
	fmt.Printf("%-16s %s\n",
		model.CategoryOther,
		cli.SubtleStyle.Render("fallback when nothing matches"))
	return nil
}
