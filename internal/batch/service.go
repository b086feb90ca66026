package batch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/insightdelivered/card-statement-extractor/internal/config"
	"github.com/insightdelivered/card-statement-extractor/internal/models"
	"github.com/insightdelivered/card-statement-extractor/internal/parser"
)

// Stage names the step at which a file failed.
type Stage string

const (
	StageHash    Stage = "hash"
	StageLookup  Stage = "lookup"
	StageRead    Stage = "read"
	StageDetect  Stage = "detect"
	StageSetup   Stage = "setup"
	StageWrite   Stage = "write"
	StageStore   Stage = "store"
	StageAborted Stage = "aborted"
)

// StageError is a per-file failure.
type StageError struct {
	File  string
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.File, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Result is the outcome for one file. Info is set once extraction succeeded,
// even if a later stage failed.
type Result struct {
	File        string
	Info        *models.StatementInfo
	Output      string
	Skipped     bool
	StatementID string
	Err         error
}

// Service processes statement files one at a time. Each file gets its own
// parser, so the per-document summary never leaks between files.
type Service struct {
	registry *config.Registry
	reader   PageReader
	store    StatementStore
	writer   StatementWriter
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithStore records processed statements and skips files already recorded.
func WithStore(store StatementStore) Option {
	return func(s *Service) { s.store = store }
}

// WithWriter renders every extracted statement.
func WithWriter(w StatementWriter) Option {
	return func(s *Service) { s.writer = w }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a batch service.
func NewService(registry *config.Registry, reader PageReader, opts ...Option) *Service {
	s := &Service{registry: registry, reader: reader, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessFiles processes paths in order. A failing file is logged and
// reported in its Result; the remaining files are still processed. An empty
// bankID auto-detects the bank of each file.
func (s *Service) ProcessFiles(ctx context.Context, paths []string, bankID models.BankID) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{File: path, Err: &StageError{File: path, Stage: StageAborted, Err: err}})
			continue
		}
		res := s.ProcessFile(ctx, path, bankID)
		if res.Err != nil {
			var se *StageError
			var stage Stage
			if errors.As(res.Err, &se) {
				stage = se.Stage
			}
			s.log.Error("statement failed", "file", path, "stage", string(stage), "err", res.Err)
		}
		results = append(results, res)
	}
	return results
}

// ProcessFile runs one file through read, extract, write and store.
func (s *Service) ProcessFile(ctx context.Context, path string, bankID models.BankID) Result {
	res := Result{File: path}
	fail := func(stage Stage, err error) Result {
		res.Err = &StageError{File: path, Stage: stage, Err: err}
		return res
	}

	var hash string
	if s.store != nil {
		var err error
		if hash, err = FileHash(path); err != nil {
			return fail(StageHash, err)
		}
		exists, err := s.store.Exists(ctx, hash)
		if err != nil {
			return fail(StageLookup, err)
		}
		if exists {
			s.log.Info("statement already processed", "file", path, "hash", hash)
			res.Skipped = true
			return res
		}
	}

	pages, err := s.reader.ReadPages(ctx, path)
	if err != nil {
		return fail(StageRead, err)
	}
	doc := parser.Document{Filename: path, Pages: pages}

	id := bankID
	if id == "" {
		if id, err = parser.AutoDetect(s.registry, doc); err != nil {
			return fail(StageDetect, err)
		}
		s.log.Info("detected bank", "file", path, "bank", string(id))
	}
	bank, err := s.registry.Get(id)
	if err != nil {
		return fail(StageSetup, err)
	}
	p, err := parser.New(bank, s.log)
	if err != nil {
		return fail(StageSetup, err)
	}

	info := p.Parse(doc)
	res.Info = info
	s.log.Info("statement extracted", "file", path, "bank", p.BankName(),
		"pages", len(pages), "transactions", len(info.Transactions))
	if len(info.Transactions) == 0 {
		s.log.Warn("no movements found; the layout may not match the bank configuration", "file", path)
	}

	if s.writer != nil {
		out, err := s.writer.Write(info)
		if err != nil {
			return fail(StageWrite, err)
		}
		res.Output = out
	}

	if s.store != nil {
		sid, err := s.store.Save(ctx, hash, info)
		if err != nil {
			return fail(StageStore, err)
		}
		res.StatementID = sid
	}
	return res
}

// FileHash returns the hex SHA-256 of the file content.
func FileHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Failed counts the results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
