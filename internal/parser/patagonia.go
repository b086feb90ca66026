package parser

import (
	"github.com/insightdelivered/card-statement-extractor/internal/config"
	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

// patagoniaProcessor handles Banco Patagonia VISA statements.
//
// Patagonia prints the previous balance and the payment received as movements
// ("SALDO ANTERIOR", "SU PAGO EN PESOS"), lists fees and taxes among the
// purchases, and closes with "SALDO ACTUAL" and "PAGO MINIMO" lines. Each
// card's movements are followed by its "Tarjeta NNNN Total Consumos de NAME"
// line.
type patagoniaProcessor struct {
	bank *config.Bank
}

func (p *patagoniaProcessor) Process(records []models.Transaction) ([]models.Transaction, models.Reconciliation) {
	prior, records := takeMatching(records, func(r models.Transaction) bool {
		return r.Description != "" && p.bank.IsBalance(r.Description)
	})
	fees, records := takeMatching(records, func(r models.Transaction) bool {
		return r.Description != "" && p.bank.IsBankCharge(r.Description)
	})
	stated, records := takeStatedValues(records, p.bank.CurrentBalanceMarker, p.bank.MinimumPaymentMarker)
	records = attributeCardholders(records, p.bank.CardholderPosition)

	return records, reconcile(prior, fees, records, stated, p.bank.ReconcileTolerance())
}
