package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single credit-card statement movement.
type Transaction struct {
	Date        *time.Time      `json:"date,omitempty"`
	Receipt     string          `json:"receipt"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // positive = charge, negative = credit/bonus
	Installment string          `json:"installment,omitempty"`
	Currency    string          `json:"currency"`
	Cardholder  string          `json:"cardholder"`
	SourceFile  string          `json:"sourceFile,omitempty"`
	Bank        string          `json:"bank,omitempty"`
}

// IsCardholderMarker reports whether t is a cardholder pseudo-record produced by
// the section scanner rather than a real movement. Real movements always carry a
// description.
func (t Transaction) IsCardholderMarker() bool {
	return t.Description == "" && t.Cardholder != ""
}

// BankID identifies a supported issuing bank.
type BankID string

const (
	BankPatagonia BankID = "patagonia"
	BankGalicia   BankID = "galicia"
)

// Reconciliation is the per-statement balance check.
type Reconciliation struct {
	PriorBalance     decimal.Decimal     `json:"priorBalance"`
	TotalCharges     decimal.Decimal     `json:"totalCharges"`
	TotalAdjustments decimal.Decimal     `json:"totalAdjustments"`
	TotalBankCharges decimal.Decimal     `json:"totalBankCharges"`
	ComputedBalance  decimal.Decimal     `json:"computedBalance"`
	StatedBalance    decimal.NullDecimal `json:"statedBalance"`
	MinimumPayment   decimal.NullDecimal `json:"minimumPayment"`
	Difference       decimal.Decimal     `json:"difference"`
	Tolerance        decimal.Decimal     `json:"tolerance"`
	Passed           bool                `json:"passed"`
}

// StatementInfo holds everything extracted from one statement document.
type StatementInfo struct {
	Bank           BankID          `json:"bank"`
	BankName       string          `json:"bankName"`
	SourceFile     string          `json:"sourceFile"`
	StatementDate  *time.Time      `json:"statementDate,omitempty"`
	Transactions   []Transaction   `json:"transactions"`
	Reconciliation *Reconciliation `json:"reconciliation,omitempty"`
}
