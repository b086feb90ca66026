package extractor

import (
	"strings"
	"unicode"
)

// textQuality returns the ratio of readable characters (ASCII letters and
// digits, Spanish letters, common punctuation, whitespace) to all characters.
// unicode.IsLetter is too broad: identity-encoded fonts decode to arbitrary
// letters from other scripts.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if isReadableRune(r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func isReadableRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune(".,-/:;()'\"$€%&@#!?+=*_ºªáéíóúüñÁÉÍÓÚÜÑ¡¿", r)
}

// commonWords appear in virtually every card statement. Text with none of
// them is most likely garbage.
var commonWords = []string{
	"saldo", "resumen", "tarjeta", "fecha", "total", "pago", "cuenta",
	"consumos", "vencimiento", "cuota", "importe", "comprobante",
	"bank", "account", "balance", "date", "payment", "statement",
	"amount", "credit", "transaction", "page",
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// isReadableText requires more than 50 characters, over 60% of them readable,
// and at least one common statement word.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
