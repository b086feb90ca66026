package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/card-statement-extractor/internal/batch"
	"github.com/insightdelivered/card-statement-extractor/internal/config"
	"github.com/insightdelivered/card-statement-extractor/internal/extractor"
	"github.com/insightdelivered/card-statement-extractor/internal/models"
	"github.com/insightdelivered/card-statement-extractor/internal/store"
	"github.com/insightdelivered/card-statement-extractor/internal/writer"
)

func newExtractCommand(o *rootOptions) *cobra.Command {
	var bank string
	var format string
	var outputDir string
	var dbPath string
	var header bool

	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Extract movements from statement PDFs",
		Long: `Extract movements from one or more statement PDFs.

Each file is written next to its source (or into --output-dir) with the
extension of the chosen format. A file that fails is reported and the
remaining files are still processed. Without files, --bank reads every
matching statement in the bank's configured folder.`,
		Example: `  # Auto-detect the bank and convert
  card-statement-extractor extract resumenTarjetaCredito.20\ ene.\ 2025.pdf

  # Every Patagonia statement in its folder, to Excel
  card-statement-extractor extract --bank patagonia --format xlsx --output-dir out

  # Record statements in a ledger and skip files already processed
  card-statement-extractor extract --db statements.db input/*.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := o.settings
			if !cmd.Flags().Changed("format") {
				format = s.Format
			}
			if !cmd.Flags().Changed("output-dir") {
				outputDir = s.OutputDir
			}
			if !cmd.Flags().Changed("db") {
				dbPath = s.DBPath
			}

			formatter, err := writer.New(writer.Format(format), header)
			if err != nil {
				return err
			}

			bankID := models.BankID(bank)
			files := args
			if len(files) == 0 {
				if bankID == "" {
					return fmt.Errorf("no input files; pass PDFs or --bank to read the bank's folder")
				}
				b, err := o.registry.Get(bankID)
				if err != nil {
					return err
				}
				if files, err = statementFiles(b); err != nil {
					return err
				}
				if len(files) == 0 {
					return fmt.Errorf("no %s statements found in %s", b.DisplayName, b.Folder)
				}
			} else if bankID != "" {
				if _, err := o.registry.Get(bankID); err != nil {
					return err
				}
			}

			opts := []batch.Option{
				batch.WithLogger(o.log),
				batch.WithWriter(&writer.FileWriter{Dir: outputDir, Formatter: formatter}),
			}
			if dbPath != "" {
				db, err := store.InitDB(dbPath)
				if err != nil {
					return err
				}
				defer db.Close()
				opts = append(opts, batch.WithStore(store.NewStatementRepo(db)))
			}

			svc := batch.NewService(o.registry, extractor.NewReader(o.log), opts...)
			results := svc.ProcessFiles(cmd.Context(), files, bankID)
			printResults(cmd.OutOrStdout(), results)

			if n := batch.Failed(results); n > 0 {
				return fmt.Errorf("%d of %d file(s) failed", n, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "bank id (auto-detected per file if omitted)")
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv, xlsx, json")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for output files (default: next to each input)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite ledger; statements already recorded are skipped")
	cmd.Flags().BoolVar(&header, "header", true, "include statement metadata rows in CSV output")

	return cmd
}

// statementFiles lists the files in the bank's folder whose names match its
// file pattern.
func statementFiles(b *config.Bank) ([]string, error) {
	if b.Folder == "" {
		return nil, fmt.Errorf("bank %s has no folder configured", b.ID)
	}
	entries, err := os.ReadDir(b.Folder)
	if err != nil {
		return nil, fmt.Errorf("reading statement folder: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !b.MatchesFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(b.Folder, e.Name()))
	}
	return files, nil
}

func printResults(out io.Writer, results []batch.Result) {
	for _, r := range results {
		fmt.Fprintf(out, "Processing: %s\n", r.File)
		switch {
		case r.Err != nil:
			fmt.Fprintf(out, "  Error: %v\n", r.Err)
		case r.Skipped:
			fmt.Fprintln(out, "  Already processed, skipped.")
		default:
			info := r.Info
			fmt.Fprintf(out, "  Bank: %s\n", info.BankName)
			if info.StatementDate != nil {
				fmt.Fprintf(out, "  Statement date: %s\n", info.StatementDate.Format("2006-01-02"))
			}
			fmt.Fprintf(out, "  Found %d transaction(s)\n", len(info.Transactions))
			printReconciliation(out, info.Reconciliation)
			if r.Output != "" {
				fmt.Fprintf(out, "  Output: %s\n", r.Output)
			}
			if r.StatementID != "" {
				fmt.Fprintf(out, "  Recorded as: %s\n", r.StatementID)
			}
		}
	}
}

func printReconciliation(out io.Writer, rec *models.Reconciliation) {
	if rec == nil {
		return
	}
	if !rec.StatedBalance.Valid {
		fmt.Fprintf(out, "  Computed balance: %s (no stated balance to check)\n", rec.ComputedBalance.StringFixed(2))
		return
	}
	status := "OK"
	if !rec.Passed {
		status = "MISMATCH"
	}
	fmt.Fprintf(out, "  Balance: computed %s, stated %s, difference %s [%s]\n",
		rec.ComputedBalance.StringFixed(2), rec.StatedBalance.Decimal.StringFixed(2),
		rec.Difference.StringFixed(2), status)
}
