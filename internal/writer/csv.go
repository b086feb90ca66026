package writer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

// CSVWriter writes transactions to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, info *models.StatementInfo) error {
	return writeFile(path, func(out io.Writer) error { return w.Write(out, info) })
}

func (w *CSVWriter) Extension() string { return ".csv" }

// Write writes transactions in CSV format to the given writer. With
// IncludeHeader set, statement metadata and the reconciliation come first as
// "# key,value" rows.
func (w *CSVWriter) Write(out io.Writer, info *models.StatementInfo) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		for _, kv := range metadataRows(info) {
			if err := writer.Write([]string{"# " + kv[0], kv[1]}); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, txn := range info.Transactions {
		if err := writer.Write(transactionRow(txn)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
