package parser

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/insightdelivered/card-statement-extractor/internal/config"
)

// sectionState is the scanner position relative to the movement listing.
type sectionState int

const (
	outsideSection sectionState = iota
	insideSection
)

func (s sectionState) String() string {
	if s == insideSection {
		return "inside"
	}
	return "outside"
}

// sectionMachine tracks entry to and exit from the movement listing. A header
// line (all tokens present) opens the section, any end marker closes it. The
// section may open again later in the document.
type sectionMachine struct {
	state        sectionState
	headerTokens []string
	endMarkers   []string
}

func newSectionMachine(s config.Section) *sectionMachine {
	return &sectionMachine{
		state:        outsideSection,
		headerTokens: s.HeaderTokens,
		endMarkers:   s.EndMarkers,
	}
}

func (m *sectionMachine) isHeader(line string) bool {
	if len(m.headerTokens) == 0 {
		return false
	}
	for _, tok := range m.headerTokens {
		if !strings.Contains(line, tok) {
			return false
		}
	}
	return true
}

func (m *sectionMachine) isEnd(line string) bool {
	for _, marker := range m.endMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Step feeds one non-blank line and reports whether the line belongs to the
// section body. Header and end-marker lines are consumed by the transition.
func (m *sectionMachine) Step(line string) bool {
	switch m.state {
	case outsideSection:
		if m.isHeader(line) {
			m.state = insideSection
		}
		return false
	default:
		if m.isEnd(line) {
			m.state = outsideSection
			return false
		}
		return true
	}
}

// LineKind classifies a scanned line.
type LineKind int

const (
	// CandidateLine is a line that looks like a fixed-width movement.
	CandidateLine LineKind = iota
	// CardholderLine is a per-cardholder total line.
	CardholderLine
)

// ScannedLine is one classified line from the movement section.
type ScannedLine struct {
	Kind       LineKind
	LineNo     int
	Text       string
	Cardholder string
}

// One or two amounts at line end, "_" standing in for a suppressed second one.
const amountShape = `\d{1,3}(?:\.\d{3})*(?:,\d{2})?-?`

var trailingAmounts = regexp.MustCompile(`(` + amountShape + `(?:\s+(?:` + amountShape + `|_))?)\s*_?\s*$`)

// Scanner walks statement text and yields the lines inside movement sections.
type Scanner struct {
	bank *config.Bank
	log  *slog.Logger
}

// NewScanner creates a scanner for bank.
func NewScanner(bank *config.Bank, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{bank: bank, log: log}
}

// Scan returns the cardholder lines and movement candidates of text, in order.
func (s *Scanner) Scan(text string) []ScannedLine {
	machine := newSectionMachine(s.bank.Section)
	var out []ScannedLine
	lines := strings.Split(text, "\n")
	inside, skipped := 0, 0

	for i, raw := range lines {
		line := norm.NFC.String(strings.TrimRight(raw, "\r"))
		if strings.TrimSpace(line) == "" {
			continue
		}

		before := machine.state
		inSection := machine.Step(line)
		if machine.state != before {
			s.log.Debug("movement section transition", "line", i+1, "from", before, "to", machine.state)
		}
		if !inSection {
			continue
		}
		inside++

		if name, ok := s.bank.CardholderName(line); ok {
			out = append(out, ScannedLine{Kind: CardholderLine, LineNo: i + 1, Text: line, Cardholder: name})
			continue
		}
		if s.looksLikeMovement(line) {
			out = append(out, ScannedLine{Kind: CandidateLine, LineNo: i + 1, Text: line})
			continue
		}
		skipped++
	}

	s.log.Debug("scanned statement text", "lines", len(lines), "in_section", inside,
		"selected", len(out), "skipped", skipped)
	return out
}

// looksLikeMovement gates candidate lines on length and a trailing amount.
func (s *Scanner) looksLikeMovement(line string) bool {
	n := utf8.RuneCountInString(line)
	if n < s.bank.Columns.MinLineLength || n > s.bank.Columns.MaxLineLength {
		return false
	}
	return trailingAmounts.MatchString(line)
}
