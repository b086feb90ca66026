package parser

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/card-statement-extractor/internal/config"
	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

func TestAutoDetect(t *testing.T) {
	reg := config.DefaultRegistry()

	tests := []struct {
		name     string
		doc      Document
		expected models.BankID
		wantErr  bool
	}{
		{
			name:     "detects Patagonia by file name",
			doc:      Document{Filename: "input/resumenTarjetaCredito.15 ene. 2025.pdf"},
			expected: models.BankPatagonia,
		},
		{
			name:     "detects Galicia by file name",
			doc:      Document{Filename: "RESUMEN_VISA29_5_2025pdf.pdf"},
			expected: models.BankGalicia,
		},
		{
			name:     "detects Patagonia by content",
			doc:      Document{Filename: "statement.pdf", Pages: []string{"Banco Patagonia S.A.\nResumen"}},
			expected: models.BankPatagonia,
		},
		{
			name:     "merchant named after another bank",
			doc:      Document{Filename: "pages.txt", Pages: []string{strings.Replace(samplePage(), "FARMACIA CENTRAL", "LIBRERIA GALICIA", 1)}},
			expected: models.BankPatagonia,
		},
		{
			name:     "tie goes to the bank with an extractor",
			doc:      Document{Filename: "pages.txt", Pages: []string{"Banco Galicia\nPAGO A Banco Patagonia"}},
			expected: models.BankPatagonia,
		},
		{
			name:     "detects Galicia by content",
			doc:      Document{Filename: "statement.pdf", Pages: []string{"Banco Galicia\nResumen de cuenta"}},
			expected: models.BankGalicia,
		},
		{
			name:    "unknown bank returns error",
			doc:     Document{Filename: "statement.pdf", Pages: []string{"Some Unknown Bank\nStatement"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AutoDetect(reg, tt.doc)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUndetected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNew(t *testing.T) {
	reg := config.DefaultRegistry()

	p, err := New(patagoniaBank(t), nil)
	require.NoError(t, err)
	assert.Equal(t, "Patagonia", p.BankName())
	assert.Equal(t, models.BankPatagonia, p.BankID())

	galicia, err := reg.Get(models.BankGalicia)
	require.NoError(t, err)
	_, err = New(galicia, nil)
	assert.ErrorIs(t, err, ErrNoExtractor)

	table := *patagoniaBank(t)
	table.Strategy = config.StrategyTable
	_, err = New(&table, nil)
	assert.ErrorIs(t, err, ErrNoExtractor)
}

func TestStatementParser_EndToEnd(t *testing.T) {
	p, err := New(patagoniaBank(t), slog.Default())
	require.NoError(t, err)

	_, ok := p.Summary()
	assert.False(t, ok, "no summary before the first extraction")

	doc := Document{Filename: "resumenTarjetaCredito.15 ene. 2025.pdf", Pages: []string{samplePage()}}
	txns := p.Extract(doc)

	require.Len(t, txns, 3)
	want := []struct {
		date, receipt, desc, installment, amount string
	}{
		{"15/01/2025", "000123*", "SUPERMERCADO DIA", "", "500.00"},
		{"18/01/2025", "000124", "BONIFICACION", "", "-50.00"},
		{"20/01/2025", "000125K", "FARMACIA CENTRAL", "03/12", "120.50"},
	}
	for i, w := range want {
		txn := txns[i]
		require.NotNil(t, txn.Date, "txn %d", i)
		assert.Equal(t, w.date, txn.Date.Format("02/01/2006"))
		assert.Equal(t, w.receipt, txn.Receipt)
		assert.Equal(t, w.desc, txn.Description)
		assert.Equal(t, w.installment, txn.Installment)
		assert.True(t, decimal.RequireFromString(w.amount).Equal(txn.Amount), "txn %d amount %s", i, txn.Amount)
		assert.Equal(t, "ARS", txn.Currency)
		assert.Equal(t, "ANA PEREZ", txn.Cardholder)
		assert.Equal(t, doc.Filename, txn.SourceFile)
		assert.Equal(t, "Patagonia", txn.Bank)
	}

	rec, ok := p.Summary()
	require.True(t, ok)
	assert.True(t, rec.Passed)
	assert.True(t, dec("1000").Equal(rec.PriorBalance))
	assert.True(t, dec("620.50").Equal(rec.TotalCharges))
	assert.True(t, dec("-50").Equal(rec.TotalAdjustments))
	assert.True(t, dec("25").Equal(rec.TotalBankCharges))
	assert.True(t, dec("1595.50").Equal(rec.ComputedBalance))
	assert.True(t, dec("80").Equal(rec.MinimumPayment.Decimal))
}

func TestStatementParser_SummaryIsPerCall(t *testing.T) {
	p, err := New(patagoniaBank(t), nil)
	require.NoError(t, err)

	p.Extract(Document{Filename: "a.pdf", Pages: []string{samplePage()}})
	first, _ := p.Summary()
	require.True(t, first.Passed)

	p.Extract(Document{Filename: "b.pdf"})
	second, ok := p.Summary()
	require.True(t, ok)
	assert.False(t, second.Passed)
	assert.True(t, second.ComputedBalance.IsZero())
}

func TestStatementParser_ZeroPages(t *testing.T) {
	p, err := New(patagoniaBank(t), nil)
	require.NoError(t, err)

	assert.Empty(t, p.Extract(Document{Filename: "empty.pdf"}))
	assert.Empty(t, p.Extract(Document{Filename: "blank.pdf", Pages: []string{"", ""}}))
}

func TestStatementParser_Parse(t *testing.T) {
	p, err := New(patagoniaBank(t), nil)
	require.NoError(t, err)

	info := p.Parse(Document{
		Filename: "/data/VISA_Patagonia/resumenTarjetaCredito.15 ene. 2025.pdf",
		Pages:    []string{samplePage()},
	})

	assert.Equal(t, models.BankPatagonia, info.Bank)
	assert.Equal(t, "Patagonia", info.BankName)
	assert.Len(t, info.Transactions, 3)
	require.NotNil(t, info.StatementDate)
	assert.Equal(t, "2025-01-15", info.StatementDate.Format("2006-01-02"))
	require.NotNil(t, info.Reconciliation)
	assert.True(t, info.Reconciliation.Passed)
}

func TestDocumentText(t *testing.T) {
	doc := Document{Pages: []string{"page one  ", "  page two"}}
	assert.Equal(t, "page one  \n  page two", doc.Text())
}
