package parser

import (
	"strings"
	"testing"

	"github.com/insightdelivered/card-statement-extractor/internal/config"
)

const testLineWidth = 110

// movementLine lays out a Patagonia movement line: date at column 7, receipt
// at 20, description at 31, installment at 66 and the amount right-aligned.
func movementLine(date, receipt, desc, installment, amount string) string {
	buf := []rune(strings.Repeat(" ", testLineWidth))
	place := func(col int, s string) { copy(buf[col:], []rune(s)) }
	place(7, date)
	place(20, receipt)
	place(31, desc)
	if installment != "" {
		place(66, "Cuota "+installment)
	}
	place(testLineWidth-len([]rune(amount)), amount)
	return string(buf)
}

func patagoniaBank(t *testing.T) *config.Bank {
	t.Helper()
	b, err := config.DefaultRegistry().Get("patagonia")
	if err != nil {
		t.Fatalf("patagonia bank: %v", err)
	}
	return b
}

const (
	headerLine = "       FECHA        COMPROBANTE DETALLE DE TRANSACCION                              PESOS         DOLARES"
	closeLine  = "DEBITAREMOS DE SU CUENTA EL IMPORTE DEL PAGO MINIMO"
)

// samplePage is a statement page with one balance line, three purchases
// closed by their cardholder's total line, one bank charge and the stated
// balance.
func samplePage() string {
	return strings.Join([]string{
		"Banco Patagonia S.A.",
		"RESUMEN DE CUENTA VISA",
		"",
		headerLine,
		movementLine("", "", "SALDO ANTERIOR", "", "1.000,00"),
		movementLine("15.01.25", "000123*", "SUPERMERCADO DIA", "", "500,00"),
		"",
		movementLine("18.01.25", "000124", "BONIFICACION", "", "50,00-"),
		movementLine("20.01.25", "000125K", "FARMACIA CENTRAL", "03/12", "120,50"),
		"Tarjeta 1234 Total Consumos de ANA PEREZ        570,50",
		movementLine("", "", "INTERESES FINANCIACION", "", "25,00"),
		movementLine("", "", "SALDO ACTUAL", "", "1.595,50"),
		movementLine("", "", "PAGO MINIMO", "", "80,00"),
		closeLine,
		"Plan V: consulte condiciones",
	}, "\n")
}
