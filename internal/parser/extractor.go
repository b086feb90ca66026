package parser

import (
	"log/slog"
	"strings"

	"github.com/insightdelivered/card-statement-extractor/internal/config"
	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

// Document is the page text of one statement file. Page text must keep the
// original spacing because fields are located by column.
type Document struct {
	Filename string
	Pages    []string
}

// Text joins the pages. A newline separates pages so the last line of one page
// never runs into the first line of the next.
func (d Document) Text() string {
	return strings.Join(d.Pages, "\n")
}

// BankExtractor turns page text into raw records using a bank's fixed-column
// layout. The result still holds cardholder markers and balance lines; the
// bank's post-processor consumes them.
type BankExtractor struct {
	bank    *config.Bank
	scanner *Scanner
	lines   *lineParser
	log     *slog.Logger
}

// NewBankExtractor creates an extractor for bank.
func NewBankExtractor(bank *config.Bank, log *slog.Logger) *BankExtractor {
	if log == nil {
		log = slog.Default()
	}
	return &BankExtractor{
		bank:    bank,
		scanner: NewScanner(bank, log),
		lines:   newLineParser(bank),
		log:     log,
	}
}

// Extract returns the records of doc in document order, each stamped with the
// source file and bank name.
func (e *BankExtractor) Extract(doc Document) []models.Transaction {
	if len(doc.Pages) == 0 {
		e.log.Debug("statement has no pages", "file", doc.Filename)
		return nil
	}

	var records []models.Transaction
	candidates, parsed := 0, 0
	for _, sl := range e.scanner.Scan(doc.Text()) {
		switch sl.Kind {
		case CardholderLine:
			records = append(records, models.Transaction{Cardholder: sl.Cardholder})
		case CandidateLine:
			candidates++
			if txn, ok := e.lines.Parse(sl.Text); ok {
				records = append(records, txn)
				parsed++
			} else {
				e.log.Debug("discarded candidate line", "file", doc.Filename, "line", sl.LineNo)
			}
		}
	}

	for i := range records {
		records[i].SourceFile = doc.Filename
		records[i].Bank = e.bank.DisplayName
	}

	e.log.Debug("extracted statement records", "file", doc.Filename, "pages", len(doc.Pages),
		"candidates", candidates, "parsed", parsed, "records", len(records))
	return records
}
