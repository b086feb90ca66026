package parser

import (
	"strings"
	"time"
)

// DefaultDateLayouts are tried in order when no explicit layouts are given.
var DefaultDateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2 Jan 2006",
	"2 Jan. 2006",
	"2 January 2006",
	"2006-01-02",
}

// spanishMonthNames maps Spanish month spellings to English. Full names come
// first so that "enero" is never rewritten through its "ene" prefix.
var spanishMonthNames = []struct{ es, en string }{
	{"septiembre", "september"},
	{"setiembre", "september"},
	{"diciembre", "december"},
	{"noviembre", "november"},
	{"febrero", "february"},
	{"octubre", "october"},
	{"agosto", "august"},
	{"enero", "january"},
	{"marzo", "march"},
	{"abril", "april"},
	{"junio", "june"},
	{"julio", "july"},
	{"mayo", "may"},
	{"ene", "jan"},
	{"abr", "apr"},
	{"ago", "aug"},
	{"set", "sep"},
	{"dic", "dec"},
}

// normalizeSpanishMonth lowercases s and replaces Spanish month names with the
// English spelling the time package understands.
func normalizeSpanishMonth(s string) string {
	s = strings.ToLower(s)
	for _, m := range spanishMonthNames {
		if strings.Contains(s, m.es) {
			s = strings.ReplaceAll(s, m.es, m.en)
		}
	}
	return s
}

// ParseDate parses a free-text date, trying each layout in order. Spanish month
// names are accepted. It returns false when no layout matches.
func ParseDate(s string, layouts ...string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	s = normalizeSpanishMonth(s)

	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
