package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	b, err := r.Get(models.BankPatagonia)
	require.NoError(t, err)
	assert.Equal(t, "Patagonia", b.DisplayName)
	assert.Equal(t, "ARS", b.Currency)
	assert.Equal(t, 31, b.Columns.DescriptionStart)
	assert.Equal(t, CardholderTrailing, b.CardholderPosition)
	assert.Equal(t, "1", b.ReconcileTolerance().String())

	_, err = r.Get("GALICIA")
	require.NoError(t, err)

	_, err = r.Get("santander")
	assert.ErrorIs(t, err, ErrUnknownBank)

	require.Len(t, r.Banks(), 2)
	assert.Equal(t, models.BankGalicia, r.Banks()[0].ID)
}

func TestBankPatterns(t *testing.T) {
	b, err := DefaultRegistry().Get(models.BankPatagonia)
	require.NoError(t, err)

	tests := []struct {
		desc    string
		balance bool
		charge  bool
	}{
		{"SALDO ANTERIOR", true, false},
		{"saldo  anterior", true, false},
		{"SU PAGO EN PESOS", true, false},
		{"COMIS. PROD. PATAGONIA", false, true},
		{"IVA $ 21", false, true},
		{"INTERESES FINANCIACION", false, true},
		{"IMP DE SELLOS", false, true},
		{"MERPAGO*SUPERMERCADO", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.balance, b.IsBalance(tt.desc))
			assert.Equal(t, tt.charge, b.IsBankCharge(tt.desc))
		})
	}
}

func TestCardholderName(t *testing.T) {
	b, err := DefaultRegistry().Get(models.BankPatagonia)
	require.NoError(t, err)

	name, ok := b.CardholderName("   Tarjeta 4321 Total Consumos de ANA PEREZ            12.345,67")
	require.True(t, ok)
	assert.Equal(t, "ANA PEREZ", name)

	_, ok = b.CardholderName("Total Consumos de ANA PEREZ 12,00")
	assert.False(t, ok, "line without Tarjeta is not a cardholder line")
}

func TestStatementDate(t *testing.T) {
	r := DefaultRegistry()
	pat, err := r.Get(models.BankPatagonia)
	require.NoError(t, err)
	gal, err := r.Get(models.BankGalicia)
	require.NoError(t, err)

	got, ok := pat.StatementDate("resumenTarjetaCredito.15 ene. 2025.pdf")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), got)

	got, ok = gal.StatementDate("RESUMEN_VISA29_5_2025pdf.pdf")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 29, 0, 0, 0, 0, time.UTC), got)

	_, ok = pat.StatementDate("resumenTarjetaCredito.15 xyz. 2025.pdf")
	assert.False(t, ok)
	_, ok = pat.StatementDate("other.pdf")
	assert.False(t, ok)
	_, ok = gal.StatementDate("RESUMEN_VISA31_2_2025pdf.pdf")
	assert.False(t, ok, "31 February is not a date")
}

func TestMatchesFile(t *testing.T) {
	r := DefaultRegistry()
	pat, _ := r.Get(models.BankPatagonia)
	gal, _ := r.Get(models.BankGalicia)

	assert.True(t, pat.MatchesFile("resumenTarjetaCredito.15 ene. 2025.pdf"))
	assert.False(t, pat.MatchesFile("RESUMEN_VISA29_5_2025pdf.pdf"))
	assert.True(t, gal.MatchesFile("RESUMEN_VISA29_5_2025pdf.pdf"))
}

func TestCompileRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		edit func(b *Bank)
	}{
		{"missing id", func(b *Bank) { b.ID = "" }},
		{"bad regexp", func(b *Bank) { b.ChargePatterns = []string{"("} }},
		{"cardholder without name group", func(b *Bank) { b.CardholderPattern = `Total (.+)` }},
		{"columns out of order", func(b *Bank) { b.Columns.DescriptionStart = 5 }},
		{"line range inverted", func(b *Bank) { b.Columns.MinLineLength = 200 }},
		{"bad position", func(b *Bank) { b.CardholderPosition = "middle" }},
		{"bad tolerance", func(b *Bank) { b.Tolerance = "one" }},
		{"filename date without year", func(b *Bank) { b.FilenameDate.Pattern = `(?P<day>\d+)_(?P<month>\d+)` }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := patagonia()
			tt.edit(&b)
			err := b.Compile()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidBank)
		})
	}
}

func TestBanksFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.yaml")
	require.NoError(t, SaveBanks(path, DefaultRegistry()))

	r, err := LoadBanks(path)
	require.NoError(t, err)
	b, err := r.Get(models.BankPatagonia)
	require.NoError(t, err)
	assert.Equal(t, []string{"FECHA", "COMPROBANTE", "DETALLE"}, b.Section.HeaderTokens)
	assert.Equal(t, 124, b.Columns.MaxLineLength)
	assert.Equal(t, 1, b.FilenameDate.Months["ene"])
}

func TestLoadBanksOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.yaml")
	content := `banks:
  - id: patagonia
    display_name: Patagonia Test
    currency: USD
    cardholder_position: leading
    columns:
      date_start: 0
      date_end: 8
      receipt_start: 10
      description_start: 20
      min_amount_column: 60
      min_line_length: 70
      max_line_length: 90
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := LoadBanks(path)
	require.NoError(t, err)
	b, err := r.Get(models.BankPatagonia)
	require.NoError(t, err)
	assert.Equal(t, "Patagonia Test", b.DisplayName)
	assert.Equal(t, "USD", b.Currency)
	assert.Equal(t, CardholderLeading, b.CardholderPosition)
	assert.Equal(t, "Cuota", b.InstallmentLabel)

	_, err = r.Get(models.BankGalicia)
	assert.NoError(t, err, "built-ins not in the file are kept")
}

func TestLoadBanksUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("banks:\n  - id: x\n    colour: red\n"), 0o644))

	_, err := LoadBanks(path)
	require.Error(t, err)
}

func TestLoadBanksNotFound(t *testing.T) {
	_, err := LoadBanks(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("CARDSTMT_LISTEN", ":9999")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", s.Listen)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "csv", s.Format)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: ledger.db\nformat: xlsx\n"), 0o644))
	s, err = LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "ledger.db", s.DBPath)
	assert.Equal(t, "xlsx", s.Format)

	reg, err := s.Banks()
	require.NoError(t, err)
	assert.Len(t, reg.Banks(), 2)
}
