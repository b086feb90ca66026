package parser

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/card-statement-extractor/internal/config"
)

func TestSectionMachine(t *testing.T) {
	m := newSectionMachine(config.Section{
		HeaderTokens: []string{"FECHA", "COMPROBANTE", "DETALLE"},
		EndMarkers:   []string{"DEBITAREMOS DE SU", "CFTEA"},
	})

	steps := []struct {
		line   string
		inBody bool
		state  sectionState
	}{
		{"FECHA DETALLE", false, outsideSection},
		{"FECHA COMPROBANTE DETALLE", false, insideSection},
		{"movement", true, insideSection},
		{"FECHA COMPROBANTE DETALLE", true, insideSection},
		{"CFTEA 120%", false, outsideSection},
		{"movement", false, outsideSection},
		{"DETALLE COMPROBANTE FECHA", false, insideSection},
		{"DEBITAREMOS DE SU CUENTA", false, outsideSection},
	}
	for i, s := range steps {
		assert.Equal(t, s.inBody, m.Step(s.line), "step %d: %q", i, s.line)
		assert.Equal(t, s.state, m.state, "step %d: %q", i, s.line)
	}
}

func TestScanner_NoHeader(t *testing.T) {
	s := NewScanner(patagoniaBank(t), slog.Default())
	text := strings.Join([]string{
		movementLine("15.01.25", "000123*", "SUPERMERCADO DIA", "", "500,00"),
		"Tarjeta 1234 Total Consumos de ANA PEREZ        620,50",
		movementLine("18.01.25", "000124", "BONIFICACION", "", "50,00-"),
	}, "\n")

	assert.Empty(t, s.Scan(text))
}

func TestScanner_Classifies(t *testing.T) {
	s := NewScanner(patagoniaBank(t), nil)
	lines := s.Scan(samplePage())

	require.Len(t, lines, 8)
	for i, l := range lines {
		if i == 4 {
			continue
		}
		assert.Equal(t, CandidateLine, l.Kind, "line %d", l.LineNo)
	}
	assert.Equal(t, CardholderLine, lines[4].Kind)
	assert.Equal(t, "ANA PEREZ", lines[4].Cardholder)
	assert.Equal(t, 10, lines[4].LineNo)
}

func TestScanner_SkipsNonMovementLines(t *testing.T) {
	s := NewScanner(patagoniaBank(t), nil)
	text := strings.Join([]string{
		headerLine,
		"short line 10,00",
		movementLine("15.01.25", "000123", "NO AMOUNT", "", "TOTAL"),
		movementLine("15.01.25", "000123", "TOO LONG", "", strings.Repeat(" ", 20)+"10,00") + strings.Repeat(" ", 20),
		"   \t  ",
		movementLine("15.01.25", "000123", "KEEP", "", "10,00"),
	}, "\n")

	lines := s.Scan(text)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0].Text, "KEEP")
}

func TestScanner_ReentersSection(t *testing.T) {
	s := NewScanner(patagoniaBank(t), nil)
	text := strings.Join([]string{
		headerLine,
		movementLine("15.01.25", "000123", "FIRST", "", "10,00"),
		closeLine,
		movementLine("16.01.25", "000124", "OUTSIDE", "", "20,00"),
		headerLine,
		movementLine("17.01.25", "000125", "SECOND", "", "30,00"),
	}, "\n")

	lines := s.Scan(text)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0].Text, "FIRST")
	assert.Contains(t, lines[1].Text, "SECOND")
}

func TestScanner_CarriageReturns(t *testing.T) {
	s := NewScanner(patagoniaBank(t), nil)
	text := headerLine + "\r\n" + movementLine("15.01.25", "000123", "CRLF", "", "10,00") + "\r\n"

	lines := s.Scan(text)
	require.Len(t, lines, 1)
	assert.False(t, strings.HasSuffix(lines[0].Text, "\r"))
}
