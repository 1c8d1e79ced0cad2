package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amitksingh0880/spend-wise-sub000/internal/cli"
	"github.com/amitksingh0880/spend-wise-sub000/internal/common"
	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
	"github.com/amitksingh0880/spend-wise-sub000/internal/service"
	"github.com/amitksingh0880/spend-wise-sub000/internal/storage"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txns", "ls"},
		Short:   "List imported transactions",
		RunE:    runTransactions,
	}

	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().String("type", "all", "filter by type (all, expense, income)")
	cmd.Flags().String("category", "", "filter by category")
	cmd.Flags().Int("limit", 50, "maximum rows to show")

	return cmd
}

func runTransactions(cmd *cobra.Command, _ []string) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	dbPath, err := databasePath()
	if err != nil {
		return err
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return common.NewUserError("failed to open ledger database", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return common.NewUserError("failed to migrate ledger database", err)
	}

	transactions, err := store.GetTransactions(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	if len(transactions) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions found"))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Transactions (%d)", len(transactions))))
	for _, txn := range transactions {
		fmt.Printf("%s  %s  %-20s %-14s %s\n",
			cli.SubtleStyle.Render(txn.Date.Format("2006-01-02")),
			cli.FormatAmount(txn.Amount, txn.Type == model.TypeIncome),
			txn.Vendor,
			txn.Category,
			cli.SubtleStyle.Render(strings.Join(txn.Tags, " ")))
	}
	return nil
}

func filterFromFlags(cmd *cobra.Command) (service.TransactionFilter, error) {
	var filter service.TransactionFilter

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		filter.StartDate = &t
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		end := t.AddDate(0, 0, 1).Add(-time.Millisecond)
		filter.EndDate = &end
	}

	switch typeFilter, _ := cmd.Flags().GetString("type"); typeFilter {
	case "all", "":
	case "expense":
		filter.Type = model.TypeExpense
	case "income":
		filter.Type = model.TypeIncome
	default:
		return filter, fmt.Errorf("invalid --type %q: must be all, expense or income", typeFilter)
	}

	filter.Category, _ = cmd.Flags().GetString("category")
	filter.Limit, _ = cmd.Flags().GetInt("limit")
	return filter, nil
}
