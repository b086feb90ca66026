package config

import "github.com/insightdelivered/card-statement-extractor/internal/models"

// spanishMonths maps Spanish month abbreviations used in statement file names.
var spanishMonths = map[string]int{
	"ene": 1, "feb": 2, "mar": 3, "abr": 4, "may": 5, "jun": 6,
	"jul": 7, "ago": 8, "sep": 9, "set": 9, "oct": 10, "nov": 11, "dic": 12,
}

// Defaults returns the built-in bank definitions.
func Defaults() []Bank {
	return []Bank{patagonia(), galicia()}
}

func patagonia() Bank {
	return Bank{
		ID:            models.BankPatagonia,
		DisplayName:   "Patagonia",
		Folder:        "input/VISA_Patagonia",
		FilePattern:   `resumenTarjetaCredito\.(\d+\s+\w+\.\s+\d+)\.pdf`,
		DateLayout:    "2 Jan. 2006",
		Currency:      "ARS",
		Strategy:      StrategyText,
		DetectMarkers: []string{"Banco Patagonia"},
		Section: Section{
			HeaderTokens: []string{"FECHA", "COMPROBANTE", "DETALLE"},
			EndMarkers: []string{
				"DEBITAREMOS DE SU",
				"Plan V:",
				"CFTEA",
				"Condiciones vigentes",
				"Estimado Cliente",
			},
		},
		CardholderPattern:  `Tarjeta.*Total\s+Consumos\s+de\s+(?P<name>.+?)\s+[\d.,]+`,
		CardholderPosition: CardholderTrailing,
		InstallmentLabel:   "Cuota",
		BalancePatterns: []string{
			`SALDO\s+ANTERIOR`,
			`SU\s+PAGO\s+EN\s+PESOS`,
		},
		ChargePatterns: []string{
			`COMIS\.\s+PROD\.\s+PAT`,
			`IVA\s+\$\s+21`,
			`INTERESES\s+FINANCIACION`,
			`IMP\s+DE\s+SELLOS`,
		},
		CurrentBalanceMarker: "SALDO ACTUAL",
		MinimumPaymentMarker: "PAGO MINIMO",
		Tolerance:            "1.0",
		Columns: Columns{
			DateStart:        7,
			DateEnd:          15,
			ReceiptStart:     20,
			DescriptionStart: 31,
			MinAmountColumn:  80,
			MinLineLength:    103,
			MaxLineLength:    124,
		},
		FilenameDate: FilenameDate{
			Pattern: `resumenTarjetaCredito\.(?P<day>\d+)\s+(?P<month>\w+)\.\s+(?P<year>\d+)\.pdf`,
			Months:  spanishMonths,
		},
	}
}

// galicia is declared so its files are recognised; no post-processing strategy
// exists for it yet and parser.New rejects it.
func galicia() Bank {
	return Bank{
		ID:            models.BankGalicia,
		DisplayName:   "Galicia",
		Folder:        "input/VISA_Galicia",
		FilePattern:   `RESUMEN_VISA.*\.pdf`,
		DateLayout:    "02/01/2006",
		Currency:      "ARS",
		Strategy:      StrategyText,
		DetectMarkers: []string{"Banco Galicia"},
		Section: Section{
			HeaderTokens: []string{"MOVIMIENTOS"},
			EndMarkers:   []string{"RESUMEN"},
		},
		BalancePatterns: []string{`SALDO\s+ANTERIOR`},
		ChargePatterns:  []string{`CARGO\s+BANCARIO`},
		Columns: Columns{
			DateStart: 0,
			DateEnd:   10,
		},
		FilenameDate: FilenameDate{
			Pattern: `RESUMEN_VISA(?P<day>\d+)_(?P<month>\d+)_(?P<year>\d+)pdf\.pdf`,
		},
	}
}
