package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

// Strategy selects how statement pages are turned into records.
type Strategy string

const (
	StrategyText  Strategy = "text"
	StrategyTable Strategy = "table"
)

// CardholderPosition tells whether a cardholder line precedes or follows the
// movements it covers.
type CardholderPosition string

const (
	CardholderLeading  CardholderPosition = "leading"
	CardholderTrailing CardholderPosition = "trailing"
)

// ErrInvalidBank is returned when a bank definition cannot be used.
var ErrInvalidBank = errors.New("invalid bank configuration")

// Bank is the declarative description of one issuer's statement layout.
type Bank struct {
	ID                   models.BankID      `yaml:"id"`
	DisplayName          string             `yaml:"display_name"`
	Folder               string             `yaml:"folder,omitempty"`
	FilePattern          string             `yaml:"file_pattern,omitempty"`
	DateLayout           string             `yaml:"date_layout,omitempty"`
	Currency             string             `yaml:"currency"`
	Strategy             Strategy           `yaml:"strategy,omitempty"`
	DetectMarkers        []string           `yaml:"detect_markers,omitempty"`
	Section              Section            `yaml:"section"`
	CardholderPattern    string             `yaml:"cardholder_pattern,omitempty"`
	CardholderPosition   CardholderPosition `yaml:"cardholder_position,omitempty"`
	InstallmentLabel     string             `yaml:"installment_label,omitempty"`
	BalancePatterns      []string           `yaml:"balance_patterns,omitempty"`
	ChargePatterns       []string           `yaml:"charge_patterns,omitempty"`
	CurrentBalanceMarker string             `yaml:"current_balance_marker,omitempty"`
	MinimumPaymentMarker string             `yaml:"minimum_payment_marker,omitempty"`
	Tolerance            string             `yaml:"tolerance,omitempty"`
	Columns              Columns            `yaml:"columns"`
	FilenameDate         FilenameDate       `yaml:"filename_date,omitempty"`

	compiled *compiledBank
}

// Section holds the literals that open and close the movement listing.
type Section struct {
	HeaderTokens []string `yaml:"header_tokens"`
	EndMarkers   []string `yaml:"end_markers"`
}

// Columns are fixed character offsets (counted in characters, not bytes).
type Columns struct {
	DateStart        int `yaml:"date_start"`
	DateEnd          int `yaml:"date_end"`
	ReceiptStart     int `yaml:"receipt_start"`
	DescriptionStart int `yaml:"description_start"`
	MinAmountColumn  int `yaml:"min_amount_column"`
	MinLineLength    int `yaml:"min_line_length"`
	MaxLineLength    int `yaml:"max_line_length"`
}

// FilenameDate describes how to read the statement date out of a file name.
// Pattern must carry the named groups day, month and year.
type FilenameDate struct {
	Pattern string         `yaml:"pattern,omitempty"`
	Months  map[string]int `yaml:"months,omitempty"`
}

type compiledBank struct {
	file       *regexp.Regexp
	cardholder *regexp.Regexp
	balances   []*regexp.Regexp
	charges    []*regexp.Regexp
	fileDate   *regexp.Regexp
	tolerance  decimal.Decimal
}

var defaultTolerance = decimal.NewFromInt(1)

// Compile validates the definition and prepares its patterns. It must be called
// before the bank is handed to a parser; Registry does this on Add.
func (b *Bank) Compile() error {
	if b.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidBank)
	}
	if b.DisplayName == "" {
		return fmt.Errorf("%w: %s: missing display_name", ErrInvalidBank, b.ID)
	}
	if b.Strategy == "" {
		b.Strategy = StrategyText
	}
	if b.CardholderPosition == "" {
		b.CardholderPosition = CardholderLeading
	}
	if b.CardholderPosition != CardholderLeading && b.CardholderPosition != CardholderTrailing {
		return fmt.Errorf("%w: %s: cardholder_position %q", ErrInvalidBank, b.ID, b.CardholderPosition)
	}
	if b.InstallmentLabel == "" {
		b.InstallmentLabel = "Cuota"
	}
	if err := b.Columns.validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidBank, b.ID, err)
	}

	c := &compiledBank{tolerance: defaultTolerance}
	var err error
	if b.Tolerance != "" {
		if c.tolerance, err = decimal.NewFromString(b.Tolerance); err != nil {
			return fmt.Errorf("%w: %s: tolerance %q: %v", ErrInvalidBank, b.ID, b.Tolerance, err)
		}
	}
	if c.file, err = compileOptional(b.FilePattern); err != nil {
		return fmt.Errorf("%w: %s: file_pattern: %v", ErrInvalidBank, b.ID, err)
	}
	if c.cardholder, err = compileOptional(b.CardholderPattern); err != nil {
		return fmt.Errorf("%w: %s: cardholder_pattern: %v", ErrInvalidBank, b.ID, err)
	}
	if c.cardholder != nil && c.cardholder.SubexpIndex("name") < 0 {
		return fmt.Errorf("%w: %s: cardholder_pattern needs a (?P<name>...) group", ErrInvalidBank, b.ID)
	}
	if c.balances, err = compileAll(b.BalancePatterns); err != nil {
		return fmt.Errorf("%w: %s: balance_patterns: %v", ErrInvalidBank, b.ID, err)
	}
	if c.charges, err = compileAll(b.ChargePatterns); err != nil {
		return fmt.Errorf("%w: %s: charge_patterns: %v", ErrInvalidBank, b.ID, err)
	}
	if c.fileDate, err = compileOptional(b.FilenameDate.Pattern); err != nil {
		return fmt.Errorf("%w: %s: filename_date.pattern: %v", ErrInvalidBank, b.ID, err)
	}
	if c.fileDate != nil {
		for _, g := range []string{"day", "month", "year"} {
			if c.fileDate.SubexpIndex(g) < 0 {
				return fmt.Errorf("%w: %s: filename_date.pattern needs a (?P<%s>...) group", ErrInvalidBank, b.ID, g)
			}
		}
	}

	b.compiled = c
	return nil
}

func (c Columns) validate() error {
	if c.DateStart < 0 || c.DateEnd < c.DateStart {
		return fmt.Errorf("date columns %d..%d", c.DateStart, c.DateEnd)
	}
	if c.MinLineLength > c.MaxLineLength {
		return fmt.Errorf("line length range %d..%d", c.MinLineLength, c.MaxLineLength)
	}
	if c.ReceiptStart < 0 || c.DescriptionStart < c.ReceiptStart || c.MinAmountColumn < c.DescriptionStart {
		return fmt.Errorf("columns out of order (receipt %d, description %d, amount %d)",
			c.ReceiptStart, c.DescriptionStart, c.MinAmountColumn)
	}
	return nil
}

func compileOptional(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	return regexp.Compile(expr)
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		re, err := regexp.Compile(e)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", e, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func (b *Bank) mustCompiled() *compiledBank {
	if b.compiled == nil {
		panic("config: bank " + string(b.ID) + " used before Compile")
	}
	return b.compiled
}

// IsBalance reports whether desc is a balance-carryover line.
func (b *Bank) IsBalance(desc string) bool {
	return matchAny(b.mustCompiled().balances, strings.ToUpper(desc))
}

// IsBankCharge reports whether desc is a fee, tax or interest line.
func (b *Bank) IsBankCharge(desc string) bool {
	return matchAny(b.mustCompiled().charges, strings.ToUpper(desc))
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// CardholderName extracts the holder name from a per-cardholder total line.
func (b *Bank) CardholderName(line string) (string, bool) {
	re := b.mustCompiled().cardholder
	if re == nil {
		return "", false
	}
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[re.SubexpIndex("name")])
	return name, name != ""
}

// MatchesFile reports whether a statement file name belongs to this bank.
func (b *Bank) MatchesFile(name string) bool {
	re := b.mustCompiled().file
	return re != nil && re.MatchString(name)
}

// ReconcileTolerance is the largest accepted gap between computed and stated balance.
func (b *Bank) ReconcileTolerance() decimal.Decimal {
	return b.mustCompiled().tolerance
}

// StatementDate reads the statement closing date embedded in a file name.
func (b *Bank) StatementDate(name string) (time.Time, bool) {
	re := b.mustCompiled().fileDate
	if re == nil {
		return time.Time{}, false
	}
	m := re.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[re.SubexpIndex("day")])
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[re.SubexpIndex("year")])
	if err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}
	rawMonth := strings.ToLower(strings.TrimSuffix(m[re.SubexpIndex("month")], "."))
	month, ok := b.FilenameDate.Months[rawMonth]
	if !ok {
		if month, err = strconv.Atoi(rawMonth); err != nil {
			return time.Time{}, false
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
