package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a Latin-American formatted amount such as "1.234,56" or
// "1.234,56-" to a decimal. A trailing (or leading) minus marks a credit.
// It returns false for input that carries no digits.
//
// Separator rules:
//   - both '.' and ',' present: '.' groups thousands, ',' is the decimal mark;
//   - only ',': decimal mark when it appears once with at most two digits after it;
//   - only '.': decimal point when it appears once with at most two digits after
//     and at most three before it, thousands separator otherwise.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasSuffix(s, "-") {
		negative = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "-"))
	} else if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	}

	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, s)
	if !strings.ContainsAny(s, "0123456789") {
		return decimal.Zero, false
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	var intPart, fracPart string
	switch {
	case hasDot && hasComma:
		s = strings.ReplaceAll(s, ".", "")
		intPart, fracPart = splitDecimal(s, ",")
	case hasComma:
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			intPart, fracPart = parts[0], parts[1]
		} else {
			intPart = strings.ReplaceAll(s, ",", "")
		}
	case hasDot:
		parts := strings.Split(s, ".")
		if len(parts) == 2 && len(parts[1]) <= 2 && len(parts[0]) <= 3 {
			intPart, fracPart = parts[0], parts[1]
		} else {
			intPart = strings.ReplaceAll(s, ".", "")
		}
	default:
		intPart = s
	}

	// "1,2,3" style leftovers after the first decimal mark are not a number.
	if strings.ContainsAny(fracPart, ".,") {
		return decimal.Zero, false
	}
	if intPart == "" {
		intPart = "0"
	}
	canonical := intPart
	if fracPart != "" {
		canonical += "." + fracPart
	}

	d, err := decimal.NewFromString(canonical)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// splitDecimal splits s at the first sep.
func splitDecimal(s, sep string) (string, string) {
	i := strings.Index(s, sep)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+len(sep):]
}
