package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

const (
	transactionsSheet   = "Transactions"
	reconciliationSheet = "Reconciliation"
)

// XLSXWriter writes a workbook with a Transactions sheet and, when the
// statement was reconciled, a Reconciliation sheet. Amounts are numeric cells.
type XLSXWriter struct{}

func (w *XLSXWriter) Extension() string { return ".xlsx" }

// WriteToFile writes the workbook to path.
func (w *XLSXWriter) WriteToFile(path string, info *models.StatementInfo) error {
	return writeFile(path, func(out io.Writer) error { return w.Write(out, info) })
}

func (w *XLSXWriter) Write(out io.Writer, info *models.StatementInfo) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("amount style: %w", err)
	}

	if err := writeRow(f, transactionsSheet, 1, stringsToCells(columns)); err != nil {
		return err
	}
	if err := f.SetRowStyle(transactionsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	for i, txn := range info.Transactions {
		cells := stringsToCells(transactionRow(txn))
		cells[len(cells)-1] = txn.Amount.InexactFloat64()
		if err := writeRow(f, transactionsSheet, i+2, cells); err != nil {
			return err
		}
	}
	if n := len(info.Transactions); n > 0 {
		first, _ := excelize.CoordinatesToCellName(len(columns), 2)
		last, _ := excelize.CoordinatesToCellName(len(columns), n+1)
		if err := f.SetCellStyle(transactionsSheet, first, last, money); err != nil {
			return fmt.Errorf("style amounts: %w", err)
		}
	}
	if err := f.SetColWidth(transactionsSheet, "C", "C", 40); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if info.Reconciliation != nil {
		if _, err := f.NewSheet(reconciliationSheet); err != nil {
			return fmt.Errorf("new sheet: %w", err)
		}
		for i, kv := range metadataRows(info) {
			if err := writeRow(f, reconciliationSheet, i+1, []any{kv[0], kv[1]}); err != nil {
				return err
			}
		}
		if err := f.SetColStyle(reconciliationSheet, "A", bold); err != nil {
			return fmt.Errorf("style labels: %w", err)
		}
		if err := f.SetColWidth(reconciliationSheet, "A", "A", 22); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func stringsToCells(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
