package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/card-statement-extractor/internal/config"
	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

var (
	// ErrNoExtractor is returned for banks that have a definition but no
	// extraction strategy yet.
	ErrNoExtractor = errors.New("no extractor for bank")
	// ErrUndetected is returned when AutoDetect cannot tell the bank.
	ErrUndetected = errors.New("could not detect bank")
)

// Parser defines the interface for credit-card statement parsers. A Parser
// keeps the summary of the last document it extracted, so one instance must
// not be shared between goroutines.
type Parser interface {
	// Extract returns the final movements of doc: balance, fee and summary
	// lines removed, cardholders attributed.
	Extract(doc Document) []models.Transaction
	// Summary returns the reconciliation of the last Extract call.
	Summary() (models.Reconciliation, bool)
	// Parse extracts doc and bundles the movements with its metadata.
	Parse(doc Document) *models.StatementInfo
	// BankName returns the human-readable bank name.
	BankName() string
	// BankID returns the bank identifier.
	BankID() models.BankID
}

// StatementParser extracts fixed-width text statements for one bank.
type StatementParser struct {
	bank      *config.Bank
	extractor *BankExtractor
	post      postProcessor
	log       *slog.Logger
	last      *models.Reconciliation
}

// New returns the parser for bank. Banks without an implemented strategy
// return ErrNoExtractor.
func New(bank *config.Bank, log *slog.Logger) (Parser, error) {
	if log == nil {
		log = slog.Default()
	}
	if bank.Strategy == config.StrategyTable {
		return nil, fmt.Errorf("%w: %s uses table extraction", ErrNoExtractor, bank.ID)
	}

	var post postProcessor
	switch bank.ID {
	case models.BankPatagonia:
		post = &patagoniaProcessor{bank: bank}
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoExtractor, bank.ID)
	}

	log = log.With("bank", string(bank.ID))
	return &StatementParser{
		bank:      bank,
		extractor: NewBankExtractor(bank, log),
		post:      post,
		log:       log,
	}, nil
}

func (p *StatementParser) BankName() string     { return p.bank.DisplayName }
func (p *StatementParser) BankID() models.BankID { return p.bank.ID }

func (p *StatementParser) Extract(doc Document) []models.Transaction {
	records := p.extractor.Extract(doc)
	final, summary := p.post.Process(records)
	p.last = &summary

	attrs := []any{
		"file", doc.Filename,
		"movements", len(final),
		"prior_balance", summary.PriorBalance.StringFixed(2),
		"charges", summary.TotalCharges.StringFixed(2),
		"adjustments", summary.TotalAdjustments.StringFixed(2),
		"bank_charges", summary.TotalBankCharges.StringFixed(2),
		"computed_balance", summary.ComputedBalance.StringFixed(2),
	}
	switch {
	case !summary.StatedBalance.Valid:
		p.log.Warn("statement has no stated balance", attrs...)
	case summary.Passed:
		p.log.Info("statement reconciled", append(attrs,
			"stated_balance", summary.StatedBalance.Decimal.StringFixed(2))...)
	default:
		p.log.Warn("statement does not reconcile", append(attrs,
			"stated_balance", summary.StatedBalance.Decimal.StringFixed(2),
			"difference", summary.Difference.StringFixed(2))...)
	}
	return final
}

func (p *StatementParser) Summary() (models.Reconciliation, bool) {
	if p.last == nil {
		return models.Reconciliation{}, false
	}
	return *p.last, true
}

func (p *StatementParser) Parse(doc Document) *models.StatementInfo {
	info := &models.StatementInfo{
		Bank:         p.bank.ID,
		BankName:     p.bank.DisplayName,
		SourceFile:   doc.Filename,
		Transactions: p.Extract(doc),
	}
	if d, ok := p.bank.StatementDate(filepath.Base(doc.Filename)); ok {
		info.StatementDate = &d
	}
	if rec, ok := p.Summary(); ok {
		info.Reconciliation = &rec
	}
	return info
}

// AutoDetect identifies the bank of doc, first by file name and then by the
// bank's markers in the page text. When markers of several banks appear, the
// bank with the most marker hits wins and ties go to a bank that has an
// extractor.
func AutoDetect(reg *config.Registry, doc Document) (models.BankID, error) {
	banks := reg.Banks()
	name := filepath.Base(doc.Filename)
	for _, b := range banks {
		if name != "" && b.MatchesFile(name) {
			return b.ID, nil
		}
	}

	text := strings.ToLower(doc.Text())
	var best *config.Bank
	bestHits, bestSupported := 0, false
	for _, b := range banks {
		hits := 0
		for _, marker := range b.DetectMarkers {
			if marker != "" {
				hits += strings.Count(text, strings.ToLower(marker))
			}
		}
		if hits == 0 {
			continue
		}
		_, err := New(b, nil)
		supported := err == nil
		if best == nil || hits > bestHits || (hits == bestHits && supported && !bestSupported) {
			best, bestHits, bestSupported = b, hits, supported
		}
	}
	if best != nil {
		return best.ID, nil
	}
	return "", fmt.Errorf("%w from statement content; please specify --bank", ErrUndetected)
}
