package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/card-statement-extractor/internal/models"
	"github.com/insightdelivered/card-statement-extractor/internal/store"
	"github.com/insightdelivered/card-statement-extractor/internal/writer"
)

func newHistoryCommand(o *rootOptions) *cobra.Command {
	var dbPath string
	var bank string
	var from string
	var to string
	var limit int

	cmd := &cobra.Command{
		Use:   "history [statement-id]",
		Short: "List statements recorded in the ledger",
		Long: `List statements recorded by "extract --db", newest first.

With a statement id, print that statement's movements as CSV instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("db") {
				dbPath = o.settings.DBPath
			}
			if dbPath == "" {
				return fmt.Errorf("no ledger; pass --db or set db_path")
			}

			db, err := store.InitDB(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			repo := store.NewStatementRepo(db)
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				txns, err := repo.Transactions(ctx, args[0])
				if err != nil {
					return err
				}
				w := &writer.CSVWriter{}
				return w.Write(out, &models.StatementInfo{Transactions: txns})
			}

			filter := store.StatementFilter{Bank: models.BankID(bank), Limit: limit}
			if filter.From, err = parseDayFlag("from", from); err != nil {
				return err
			}
			if filter.To, err = parseDayFlag("to", to); err != nil {
				return err
			}
			stmts, err := repo.List(ctx, filter)
			if err != nil {
				return err
			}
			if len(stmts) == 0 {
				fmt.Fprintln(out, "No statements recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tBANK\tDATE\tFILE\tMOVEMENTS\tBALANCE\tRECONCILED")
			for _, s := range stmts {
				date := "-"
				if s.StatementDate != nil {
					date = s.StatementDate.Format("2006-01-02")
				}
				reconciled := "no"
				if s.Reconciliation.Passed {
					reconciled = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n", s.ID, s.BankName, date, s.FileName,
					s.TransactionCount, s.Reconciliation.ComputedBalance.StringFixed(2), reconciled)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite ledger written by extract --db")
	cmd.Flags().StringVar(&bank, "bank", "", "only statements of this bank")
	cmd.Flags().StringVar(&from, "from", "", "only statements dated on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "only statements dated on or before YYYY-MM-DD")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of statements (0 = all)")

	return cmd
}

func parseDayFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: %w", name, value, err)
	}
	return &t, nil
}
