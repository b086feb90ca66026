package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// glyphs lays s out one glyph per character starting at column col.
func glyphs(s string, col int, y float64) []pdf.Text {
	const w = 6.0
	var out []pdf.Text
	for i, r := range []rune(s) {
		if r == ' ' {
			continue
		}
		out = append(out, pdf.Text{X: float64(col+i) * w, Y: y, W: w, S: string(r)})
	}
	return out
}

// statementGlyphs is a page whose title starts at the left text edge, a
// header row and one movement, shifted right by margin points.
func statementGlyphs(margin float64) []pdf.Text {
	var texts []pdf.Text
	texts = append(texts, glyphs("Banco Patagonia", 0, 760)...)
	texts = append(texts, glyphs("1234,56", 90, 700)...)
	texts = append(texts, glyphs("15.01.25", 7, 700)...)
	texts = append(texts, glyphs("SUPERMERCADO DIA", 31, 700)...)
	texts = append(texts, glyphs("FECHA", 7, 712.2)...)
	texts = append(texts, glyphs("DETALLE", 31, 711.8)...)
	for i := range texts {
		texts[i].X += margin
	}
	return texts
}

func TestLayoutLines(t *testing.T) {
	lines := layoutLines(statementGlyphs(0))
	require.Len(t, lines, 3)
	assert.Equal(t, "Banco Patagonia", lines[0])
	assert.Equal(t, strings.Repeat(" ", 7)+"FECHA"+strings.Repeat(" ", 19)+"DETALLE", lines[1])

	want := strings.Repeat(" ", 7) + "15.01.25" + strings.Repeat(" ", 16) + "SUPERMERCADO DIA" +
		strings.Repeat(" ", 90-47) + "1234,56"
	assert.Equal(t, want, lines[2])
	assert.Equal(t, 31, strings.Index(lines[2], "SUPERMERCADO"))
	assert.Equal(t, 90, strings.Index(lines[2], "1234,56"))
}

func TestLayoutLines_PageMargin(t *testing.T) {
	for _, margin := range []float64{36, 72.5} {
		lines := layoutLines(statementGlyphs(margin))
		assert.Equal(t, layoutLines(statementGlyphs(0)), lines, "margin %v", margin)
		require.Len(t, lines, 3)
		assert.Equal(t, 7, strings.Index(lines[2], "15.01.25"))
	}

	// A space glyph further left than any text still sets the edge.
	texts := append([]pdf.Text{{X: 30, Y: 700, W: 6, S: " "}}, glyphs("ABC", 2, 700)...)
	for i := 1; i < len(texts); i++ {
		texts[i].X += 30
	}
	assert.Equal(t, []string{"  ABC"}, layoutLines(texts))
}

func TestLayoutLines_Overlap(t *testing.T) {
	texts := []pdf.Text{
		{X: 0, Y: 10, W: 6, S: "AB"},
		{X: 6, Y: 10, W: 6, S: "C"},
	}
	assert.Equal(t, []string{"ABC"}, layoutLines(texts))
}

func TestLayoutLines_Empty(t *testing.T) {
	assert.Nil(t, layoutLines(nil))
	assert.Empty(t, layoutLines([]pdf.Text{{X: 0, Y: 1, W: 6, S: " "}}))
}

func TestGlyphWidth(t *testing.T) {
	assert.Equal(t, defaultGlyphWidth, glyphWidth(nil))

	texts := []pdf.Text{
		{W: 6, S: "A"}, {W: 6, S: "B"}, {W: 6, S: "C"}, {W: 12, S: "W"}, {W: 30, S: "long"},
	}
	assert.Equal(t, 6.0, glyphWidth(texts))
}

func TestSplitFormFeeds(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"two pages", "  page one\n\fpage two\n\f", []string{"  page one", "page two"}},
		{"no trailing feed", "only page\n", []string{"only page"}},
		{"empty", "\f\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitFormFeeds(tt.in))
		})
	}
}

func TestIsReadableText(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  bool
	}{
		{
			name:  "spanish statement",
			pages: []string{"RESUMEN DE CUENTA\n  FECHA  COMPROBANTE  DETALLE\n  15.01.25 000123 SUPERMERCADO DÍA 500,00"},
			want:  true,
		},
		{
			name:  "too short",
			pages: []string{"SALDO 10,00"},
			want:  false,
		},
		{
			name:  "garbage",
			pages: []string{strings.Repeat("ЖЗИЙКЛМНОП", 10)},
			want:  false,
		},
		{
			name:  "no statement words",
			pages: []string{strings.Repeat("lorem ipsum dolor sit amet ", 5)},
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isReadableText(tt.pages))
		})
	}
}

func TestReader_ReadPages_Errors(t *testing.T) {
	r := NewReader(nil)
	r.Pdftotext = ""

	_, err := r.ReadPages(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, ErrUnreadable)

	notPDF := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(notPDF, []byte("plain text, not a pdf"), 0o644))
	_, err = r.ReadPages(context.Background(), notPDF)
	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestNormalizePages(t *testing.T) {
	pages := normalizePages([]string{"  CAFE\u0301 1,00"})
	assert.Equal(t, "  CAF\u00c9 1,00", pages[0])
}
