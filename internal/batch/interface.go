package batch

import (
	"context"

	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

// PageReader returns the page text of a statement file.
//
//go:generate mockgen -destination=mocks/mock_batch.go -source=interface.go
type PageReader interface {
	ReadPages(ctx context.Context, path string) ([]string, error)
}

// StatementStore records processed statements by file content hash.
type StatementStore interface {
	Exists(ctx context.Context, fileHash string) (bool, error)
	Save(ctx context.Context, fileHash string, info *models.StatementInfo) (string, error)
}

// StatementWriter renders one statement and returns where it was written.
type StatementWriter interface {
	Write(info *models.StatementInfo) (string, error)
}
