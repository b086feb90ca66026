package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

// postProcessor is the bank-specific pass over extracted records: it removes
// balance and fee lines, attributes cardholders and reconciles the totals.
type postProcessor interface {
	Process(records []models.Transaction) ([]models.Transaction, models.Reconciliation)
}

// takeMatching sums the amounts of records accepted by match and returns the
// remaining records.
func takeMatching(records []models.Transaction, match func(models.Transaction) bool) (decimal.Decimal, []models.Transaction) {
	total := decimal.Zero
	rest := make([]models.Transaction, 0, len(records))
	for _, r := range records {
		if match(r) {
			total = total.Add(r.Amount)
			continue
		}
		rest = append(rest, r)
	}
	return total, rest
}

// statedValues are the scalar lines a statement prints about itself.
type statedValues struct {
	currentBalance decimal.NullDecimal
	minimumPayment decimal.NullDecimal
}

// takeStatedValues captures the current-balance and minimum-payment lines by
// literal marker and removes them. A later line overrides an earlier one.
func takeStatedValues(records []models.Transaction, balanceMarker, minimumMarker string) (statedValues, []models.Transaction) {
	var v statedValues
	rest := make([]models.Transaction, 0, len(records))
	for _, r := range records {
		switch {
		case balanceMarker != "" && strings.Contains(r.Description, balanceMarker):
			v.currentBalance = decimal.NewNullDecimal(r.Amount)
		case minimumMarker != "" && strings.Contains(r.Description, minimumMarker):
			v.minimumPayment = decimal.NewNullDecimal(r.Amount)
		default:
			rest = append(rest, r)
		}
	}
	return v, rest
}

// reconcile compares prior balance plus movements and fees to the stated balance.
func reconcile(prior, bankCharges decimal.Decimal, records []models.Transaction, stated statedValues, tolerance decimal.Decimal) models.Reconciliation {
	charges, adjustments := decimal.Zero, decimal.Zero
	for _, r := range records {
		switch {
		case r.Amount.IsPositive():
			charges = charges.Add(r.Amount)
		case r.Amount.IsNegative():
			adjustments = adjustments.Add(r.Amount)
		}
	}

	rec := models.Reconciliation{
		PriorBalance:     prior,
		TotalCharges:     charges,
		TotalAdjustments: adjustments,
		TotalBankCharges: bankCharges,
		ComputedBalance:  prior.Add(charges).Add(adjustments).Add(bankCharges),
		StatedBalance:    stated.currentBalance,
		MinimumPayment:   stated.minimumPayment,
		Difference:       decimal.Zero,
		Tolerance:        tolerance,
	}
	if stated.currentBalance.Valid {
		rec.Difference = rec.ComputedBalance.Sub(stated.currentBalance.Decimal).Abs()
		rec.Passed = rec.Difference.LessThanOrEqual(tolerance)
	}
	return rec
}
