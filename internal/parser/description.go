package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// Anything that is not a word character, whitespace or one of - . / * $ %.
	disallowedDescChars = regexp.MustCompile(`[^\p{L}\p{N}_\s\-./*$%]`)
)

// installmentSuffix builds the pattern for a redundant "<label> 03/12" tail.
func installmentSuffix(label string) *regexp.Regexp {
	return regexp.MustCompile(`\s+` + regexp.QuoteMeta(label) + `\s+\d+/\d+\s*$`)
}

var defaultInstallmentSuffix = installmentSuffix("Cuota")

// CleanDescription normalizes a movement description. It is idempotent.
func CleanDescription(text string) string {
	return cleanDescription(text, defaultInstallmentSuffix)
}

func cleanDescription(text string, suffix *regexp.Regexp) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	text = collapseSpaces(text)
	text = stripSuffix(text, suffix)
	text = disallowedDescChars.ReplaceAllString(text, " ")
	text = collapseSpaces(text)
	// The character filter can expose a new installment tail.
	return strings.TrimSpace(stripSuffix(text, suffix))
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

func stripSuffix(s string, suffix *regexp.Regexp) string {
	for {
		loc := suffix.FindStringIndex(s)
		if loc == nil {
			return s
		}
		s = s[:loc[0]]
	}
}
