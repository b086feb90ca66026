package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

// Format is an output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// Formatter renders a statement in one format.
type Formatter interface {
	Write(out io.Writer, info *models.StatementInfo) error
	WriteToFile(path string, info *models.StatementInfo) error
	Extension() string
}

// New returns the formatter for format. includeHeader only affects CSV.
func New(format Format, includeHeader bool) (Formatter, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatCSV, "":
		return &CSVWriter{IncludeHeader: includeHeader}, nil
	case FormatXLSX:
		return &XLSXWriter{}, nil
	case FormatJSON:
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (csv, xlsx, json)", format)
	}
}

// FileWriter writes each statement next to its source file, or into Dir when
// set, replacing the source extension with the formatter's.
type FileWriter struct {
	Dir       string
	Formatter Formatter
}

// OutputPath returns where a statement read from source is written.
func (w *FileWriter) OutputPath(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + w.Formatter.Extension()
	if w.Dir != "" {
		return filepath.Join(w.Dir, base)
	}
	return filepath.Join(filepath.Dir(source), base)
}

// Write renders info to its output path and returns the path.
func (w *FileWriter) Write(info *models.StatementInfo) (string, error) {
	path := w.OutputPath(info.SourceFile)
	if w.Dir != "" {
		if err := os.MkdirAll(w.Dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := w.Formatter.WriteToFile(path, info); err != nil {
		return "", err
	}
	return path, nil
}

// writeFile creates path and runs write on it. A close error is returned
// when write succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file %q: %w", path, cerr)
		}
	}()
	return write(f)
}
