package extractor

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const defaultGlyphWidth = 5.0

// glyphWidth estimates the width of one character column on a page as the
// median advance of its visible glyphs. Statement bodies are set in a
// monospaced font, so the median is the font's pitch.
func glyphWidth(texts []pdf.Text) float64 {
	var widths []float64
	for _, t := range texts {
		if t.W > 0 && strings.TrimSpace(t.S) != "" && len([]rune(t.S)) == 1 {
			widths = append(widths, t.W)
		}
	}
	if len(widths) == 0 {
		return defaultGlyphWidth
	}
	sort.Float64s(widths)
	return widths[len(widths)/2]
}

// layoutLines groups glyphs into rows by Y and writes each glyph at column
// round((X - left) / glyphWidth), where left is the smallest X on the page, so
// columns count from the text's left edge rather than the paper's. A glyph
// that would overlap the previous one is placed right after it. Leading
// spaces are kept, trailing ones are not.
func layoutLines(texts []pdf.Text) []string {
	if len(texts) == 0 {
		return nil
	}
	width := glyphWidth(texts)

	type glyph struct {
		x float64
		s string
	}
	left := math.Inf(1)
	for _, t := range texts {
		if t.S != "" && t.X < left {
			left = t.X
		}
	}

	rows := make(map[int][]glyph)
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		y := int(math.Round(t.Y))
		rows[y] = append(rows[y], glyph{x: t.X, s: t.S})
	}

	// PDF Y grows upwards.
	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	lines := make([]string, 0, len(ys))
	for _, y := range ys {
		items := rows[y]
		sort.SliceStable(items, func(a, b int) bool { return items[a].x < items[b].x })

		var line []rune
		for _, g := range items {
			col := int(math.Round((g.x - left) / width))
			for len(line) < col {
				line = append(line, ' ')
			}
			line = append(line, []rune(g.s)...)
		}
		if s := strings.TrimRight(string(line), " "); strings.TrimSpace(s) != "" {
			lines = append(lines, s)
		}
	}
	return lines
}
