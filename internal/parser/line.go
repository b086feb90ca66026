package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/insightdelivered/card-statement-extractor/internal/config"
	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

var (
	// Two amounts at the end of the line: the movement amount followed by a
	// running total (or "_" when the bank suppresses it).
	doubleAmountTail = regexp.MustCompile(`([\d.,]+-?)\s+([\d.,_]+-?)\s*_?\s*$`)
	singleAmountTail = regexp.MustCompile(`([.\d,\-]+)\s*$`)
	// Argentine grouping: 1.234.567,89
	argentineAmount = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})*(?:,\d{2})?$`)
	receiptToken    = regexp.MustCompile(`^(\w+\*?[KX]?)`)
	shortDate       = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{2})$`)
)

const minMeaningfulLine = 10

// installmentTail matches an optional "<label> " followed by NN/NN at line end.
func installmentTail(label string) *regexp.Regexp {
	return regexp.MustCompile(`\s+(?:` + regexp.QuoteMeta(label) + `\s+)?(\d{2}/\d{2})\s*$`)
}

// lineParser splits one fixed-width movement line into its fields, right to left:
// amount, installment, description, receipt and date.
type lineParser struct {
	cols        config.Columns
	currency    string
	installment *regexp.Regexp
	descSuffix  *regexp.Regexp
}

func newLineParser(bank *config.Bank) *lineParser {
	return &lineParser{
		cols:        bank.Columns,
		currency:    bank.Currency,
		installment: installmentTail(bank.InstallmentLabel),
		descSuffix:  installmentSuffix(bank.InstallmentLabel),
	}
}

// Parse returns the movement on line, or false when the line does not hold one.
func (p *lineParser) Parse(line string) (models.Transaction, bool) {
	if len(strings.TrimSpace(line)) < minMeaningfulLine {
		return models.Transaction{}, false
	}
	runes := []rune(line)
	if len(runes) <= p.cols.MinAmountColumn {
		return models.Transaction{}, false
	}

	// 1. Amount, searched from the minimum amount column onwards.
	tail := string(runes[p.cols.MinAmountColumn:])
	var rawAmount string
	var amountStart int
	if m := doubleAmountTail.FindStringSubmatchIndex(tail); m != nil {
		rawAmount = tail[m[2]:m[3]]
		amountStart = p.cols.MinAmountColumn + utf8.RuneCountInString(tail[:m[0]])
	} else if m := singleAmountTail.FindStringSubmatchIndex(tail); m != nil {
		rawAmount = tail[m[2]:m[3]]
		amountStart = p.cols.MinAmountColumn + utf8.RuneCountInString(tail[:m[0]])
	} else {
		return models.Transaction{}, false
	}

	// 2. Sign and shape.
	negative := strings.HasSuffix(rawAmount, "-")
	rawAmount = strings.TrimSuffix(rawAmount, "-")
	cleanAmount := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			return r
		}
		return -1
	}, rawAmount)
	if !argentineAmount.MatchString(cleanAmount) {
		return models.Transaction{}, false
	}
	if negative {
		cleanAmount += "-"
	}

	// 3. Drop the amount.
	work := trimRightRunes(runes[:amountStart])

	// 4. Installment tag at the end of what is left.
	var installment string
	if m := p.installment.FindStringSubmatchIndex(string(work)); m != nil {
		s := string(work)
		installment = s[m[2]:m[3]]
		work = trimRightRunes(work[:utf8.RuneCountInString(s[:m[0]])])
	}

	// 5. Description column.
	var description string
	if len(work) > p.cols.DescriptionStart {
		description = strings.TrimSpace(string(work[p.cols.DescriptionStart:]))
		work = trimRightRunes(work[:p.cols.DescriptionStart])
	}

	// 6. Receipt column.
	var receipt string
	if len(work) > p.cols.ReceiptStart {
		if sub := strings.TrimSpace(string(work[p.cols.ReceiptStart:])); sub != "" {
			if m := receiptToken.FindStringSubmatch(sub); m != nil {
				receipt = m[1]
			}
		}
		work = trimRightRunes(work[:p.cols.ReceiptStart])
	}

	// 7. Date column, DD.MM.YY.
	txn := models.Transaction{
		Receipt:     receipt,
		Installment: installment,
		Currency:    p.currency,
	}
	if len(work) >= p.cols.DateEnd {
		slice := strings.TrimSpace(string(work[p.cols.DateStart:p.cols.DateEnd]))
		if m := shortDate.FindStringSubmatch(slice); m != nil {
			if t, ok := ParseDate(m[1]+"/"+m[2]+"/20"+m[3], "02/01/2006"); ok {
				txn.Date = &t
			}
		}
	}

	// 8. Whole line up to the amount when the description column was empty.
	if description == "" {
		description = strings.TrimSpace(string(runes[:amountStart]))
	}

	// 9. Normalize and keep only complete movements.
	txn.Description = cleanDescription(description, p.descSuffix)
	amount, ok := ParseAmount(cleanAmount)
	if txn.Description == "" || !ok {
		return models.Transaction{}, false
	}
	txn.Amount = amount
	return txn, true
}

func trimRightRunes(r []rune) []rune {
	end := len(r)
	for end > 0 && unicode.IsSpace(r[end-1]) {
		end--
	}
	return r[:end]
}
