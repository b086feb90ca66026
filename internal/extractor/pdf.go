package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// ErrUnreadable is returned when no method yields readable page text.
var ErrUnreadable = errors.New("no readable text could be extracted from PDF")

// Reader extracts page text from statement PDFs. Page text keeps the printed
// column layout: each glyph lands at the character column matching its
// horizontal position, so fixed-width parsers can slice lines by offset.
type Reader struct {
	// Pdftotext is the poppler command used when the Go library cannot decode
	// the file. Empty disables the fallback.
	Pdftotext string

	log *slog.Logger
}

// NewReader returns a reader with the pdftotext fallback enabled.
func NewReader(log *slog.Logger) *Reader {
	if log == nil {
		log = slog.Default()
	}
	return &Reader{Pdftotext: "pdftotext", log: log}
}

// ReadPages returns the text of each page of the PDF at path.
func (r *Reader) ReadPages(ctx context.Context, path string) ([]string, error) {
	pages, libErr := extractWithLibrary(path)
	if libErr == nil && isReadableText(pages) {
		r.log.Debug("read pdf with library", "file", path, "pages", len(pages))
		return normalizePages(pages), nil
	}
	if libErr != nil {
		r.log.Debug("pdf library failed", "file", path, "err", libErr)
	}

	if r.Pdftotext != "" {
		popplerPages, err := r.extractWithPdftotext(ctx, path)
		if err == nil && isReadableText(popplerPages) {
			r.log.Debug("read pdf with pdftotext", "file", path, "pages", len(popplerPages))
			return normalizePages(popplerPages), nil
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			r.log.Debug("pdftotext failed", "file", path, "err", err)
		}
	}

	if libErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, libErr)
	}
	return nil, fmt.Errorf("%w: the file may be image-based or use custom font encodings", ErrUnreadable)
}

func normalizePages(pages []string) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = norm.NFC.String(p)
	}
	return out
}

// extractWithLibrary rebuilds each page's layout from the glyph positions
// reported by ledongthuc/pdf.
func extractWithLibrary(path string) (pages []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, strings.Join(layoutLines(page.Content().Text), "\n"))
	}
	return pages, nil
}

// extractWithPdftotext runs `pdftotext -layout` over the whole document.
// Pages come back separated by form feeds.
func (r *Reader) extractWithPdftotext(ctx context.Context, path string) ([]string, error) {
	bin, err := exec.LookPath(r.Pdftotext)
	if err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-layout", "-enc", "UTF-8", path, "-")
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	pages := splitFormFeeds(string(out))
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftotext produced no output")
	}
	return pages, nil
}

// splitFormFeeds splits pdftotext output into pages. The trailing form feed
// after the last page does not start a new one.
func splitFormFeeds(out string) []string {
	out = strings.TrimRight(out, "\f\n")
	if strings.TrimSpace(out) == "" {
		return nil
	}
	pages := strings.Split(out, "\f")
	for i, p := range pages {
		pages[i] = strings.TrimRight(p, "\n")
	}
	return pages
}
