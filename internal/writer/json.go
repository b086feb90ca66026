package writer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

// JSONWriter writes the whole statement, reconciliation included, as
// indented JSON.
type JSONWriter struct{}

func (w *JSONWriter) Extension() string { return ".json" }

func (w *JSONWriter) WriteToFile(path string, info *models.StatementInfo) error {
	return writeFile(path, func(out io.Writer) error { return w.Write(out, info) })
}

func (w *JSONWriter) Write(out io.Writer, info *models.StatementInfo) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(info); err != nil {
		return fmt.Errorf("failed to encode statement: %w", err)
	}
	return nil
}
