package writer

import (
	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

const dateLayout = "02/01/2006"

var columns = []string{"Date", "Receipt", "Description", "Installment", "Cardholder", "Currency", "Amount"}

func transactionRow(txn models.Transaction) []string {
	var date string
	if txn.Date != nil {
		date = txn.Date.Format(dateLayout)
	}
	return []string{
		date,
		txn.Receipt,
		txn.Description,
		txn.Installment,
		txn.Cardholder,
		txn.Currency,
		txn.Amount.StringFixed(2),
	}
}

// metadataRows lists the statement metadata and reconciliation as key/value
// pairs. Empty values are left out.
func metadataRows(info *models.StatementInfo) [][2]string {
	var rows [][2]string
	add := func(k, v string) {
		if v != "" {
			rows = append(rows, [2]string{k, v})
		}
	}

	add("Bank", info.BankName)
	add("Source File", info.SourceFile)
	if info.StatementDate != nil {
		add("Statement Date", info.StatementDate.Format(dateLayout))
	}

	rec := info.Reconciliation
	if rec == nil {
		return rows
	}
	add("Prior Balance", rec.PriorBalance.StringFixed(2))
	add("Total Charges", rec.TotalCharges.StringFixed(2))
	add("Total Adjustments", rec.TotalAdjustments.StringFixed(2))
	add("Bank Charges", rec.TotalBankCharges.StringFixed(2))
	add("Computed Balance", rec.ComputedBalance.StringFixed(2))
	if rec.StatedBalance.Valid {
		add("Stated Balance", rec.StatedBalance.Decimal.StringFixed(2))
		add("Difference", rec.Difference.StringFixed(2))
	}
	if rec.MinimumPayment.Valid {
		add("Minimum Payment", rec.MinimumPayment.Decimal.StringFixed(2))
	}
	add("Reconciled", yesNo(rec.Passed))
	return rows
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
