package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amitksingh0880/spend-wise-sub000/internal/cli"
	"github.com/amitksingh0880/spend-wise-sub000/internal/common"
	"github.com/amitksingh0880/spend-wise-sub000/internal/importer"
	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
	"github.com/amitksingh0880/spend-wise-sub000/internal/source"
	"github.com/amitksingh0880/spend-wise-sub000/internal/storage"
)

const sampleSize = 5

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [backup-file]",
		Short: "Import expenses from an SMS backup export",
		Long: `Scan an SMS Backup & Restore XML export for bank and payment
messages and import high-confidence expense candidates into the ledger.

Examples:
  # Import today's messages
  spendwise import ~/backup/sms.xml --today

  # Import the last 30 days, income and expenses
  spendwise import ~/backup/sms.xml --days 30

  # Preview without saving
  spendwise import ~/backup/sms.xml --days 7 --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("today", false, "only scan today's messages")
	cmd.Flags().Int("days", 0, "scan the last N days")
	cmd.Flags().String("from", "", "window start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "window end date (YYYY-MM-DD)")
	cmd.Flags().Int("max", importer.DefaultMaxCount, "maximum messages to scan")
	cmd.Flags().String("type", "all", "keep only this transaction type (all, expense, income)")
	cmd.Flags().BoolP("dry-run", "d", false, "preview import without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	backupPath := viper.GetString("import.backup_file")
	if len(args) > 0 {
		backupPath = args[0]
	}
	if backupPath == "" {
		return fmt.Errorf("no backup file given: pass a path or set import.backup_file in the config")
	}

	opts, err := optionsFromFlags(cmd)
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

	src := source.NewBackupSource(backupPath)
	imp := importer.New(src, src, store)

	var bar *progressbar.ProgressBar
	opts.OnMessage = func(processed, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Scanning messages"),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(processed)
	}

	result := imp.Import(cmd.Context(), opts)
	printImportResult(result, opts.AutoSave)

	if !result.Success {
		return common.NewUserError("import failed: "+firstError(result), nil)
	}
	return nil
}

func optionsFromFlags(cmd *cobra.Command) (importer.Options, error) {
	opts := importer.DefaultOptions()

	opts.OnlyToday, _ = cmd.Flags().GetBool("today")
	opts.DaysBack, _ = cmd.Flags().GetInt("days")
	opts.MaxCount, _ = cmd.Flags().GetInt("max")

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	opts.AutoSave = !dryRun

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return opts, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		opts.MinDate = &t
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return opts, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		end := t.AddDate(0, 0, 1).Add(-time.Millisecond)
		opts.MaxDate = &end
	}

	typeFilter, _ := cmd.Flags().GetString("type")
	switch typeFilter {
	case "all", "":
	case "expense":
		opts.Filter = func(e model.ExtractedExpense) bool { return e.Type == model.TypeExpense }
	case "income":
		opts.Filter = func(e model.ExtractedExpense) bool { return e.Type == model.TypeIncome }
	default:
		return opts, fmt.Errorf("invalid --type %q: must be all, expense or income", typeFilter)
	}

	return opts, nil
}

func printImportResult(result *importer.Result, saved bool) {
	fmt.Println()
	switch {
	case !result.Success:
		fmt.Println(cli.ErrorStyle.Render("Import failed: " + firstError(result)))
	case len(result.Expenses) == 0:
		fmt.Println(cli.WarningStyle.Render("No expenses found"))
	default:
		verb := "Imported"
		if !saved {
			verb = "Found"
		}
		fmt.Println(cli.SuccessStyle.Render(
			fmt.Sprintf("%s %d expenses from %d messages", verb, len(result.Expenses), result.TotalProcessed)))

		fmt.Println()
		for i, e := range result.Expenses {
			if i >= sampleSize {
				fmt.Println(cli.SubtleStyle.Render(
					fmt.Sprintf("  ... and %d more", len(result.Expenses)-sampleSize)))
				break
			}
			fmt.Printf("  %s  %-20s %-14s %s\n",
				cli.FormatAmount(e.Amount, e.Type == model.TypeIncome),
				e.Vendor,
				e.Category,
				cli.FormatConfidence(e.Confidence))
		}
	}

	if len(result.Errors) > 0 {
		fmt.Println()
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("%d errors:", len(result.Errors))))
		for _, msg := range result.Errors {
			fmt.Println(cli.SubtleStyle.Render("  " + msg))
		}
	}
}

func firstError(result *importer.Result) string {
	if len(result.Errors) == 0 {
		return "unknown error"
	}
	return result.Errors[0]
}
