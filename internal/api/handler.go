package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/card-statement-extractor/internal/config"
	"github.com/insightdelivered/card-statement-extractor/internal/models"
	"github.com/insightdelivered/card-statement-extractor/internal/parser"
	"github.com/insightdelivered/card-statement-extractor/internal/writer"
)

// PageSeparator splits pre-extracted page text sent in the "pages" field.
const PageSeparator = "\n---PAGE_BREAK---\n"

// PageReader extracts the page text of an uploaded PDF.
type PageReader interface {
	ReadPages(ctx context.Context, path string) ([]string, error)
}

// ExtractResponse is the JSON response from the /api/extract endpoint.
type ExtractResponse struct {
	Success        bool                   `json:"success"`
	Error          string                 `json:"error,omitempty"`
	Bank           models.BankID          `json:"bank,omitempty"`
	BankName       string                 `json:"bankName,omitempty"`
	StatementDate  string                 `json:"statementDate,omitempty"`
	Transactions   []models.Transaction   `json:"transactions"`
	Reconciliation *models.Reconciliation `json:"reconciliation,omitempty"`
	CSV            string                 `json:"csv,omitempty"`
	Count          int                    `json:"count"`
	Version        string                 `json:"version,omitempty"`
}

// BankResponse describes one configured bank.
type BankResponse struct {
	ID        models.BankID `json:"id"`
	Name      string        `json:"name"`
	Currency  string        `json:"currency"`
	Supported bool          `json:"supported"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Registry  *config.Registry
	Reader    PageReader
	Log       *slog.Logger
	Version   string
	StaticDir string
}

// NewApp creates the fiber app with all routes registered.
func (h *Handler) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "card-statement-extractor",
		BodyLimit:    32 << 20,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Get("/api/banks", h.HandleBanks)
	app.Post("/api/extract", h.HandleExtract)

	// Serve the web UI; unknown non-API paths fall back to index.html.
	if h.StaticDir != "" {
		app.Static("/", h.StaticDir)
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return fiber.ErrNotFound
			}
			return c.SendFile(filepath.Join(h.StaticDir, "index.html"))
		})
	}
}

func (h *Handler) logger() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.Version,
	})
}

func (h *Handler) HandleBanks(c *fiber.Ctx) error {
	banks := h.Registry.Banks()
	out := make([]BankResponse, 0, len(banks))
	for _, b := range banks {
		_, err := parser.New(b, h.logger())
		out = append(out, BankResponse{
			ID:        b.ID,
			Name:      b.DisplayName,
			Currency:  b.Currency,
			Supported: err == nil,
		})
	}
	return c.JSON(out)
}

// HandleExtract accepts a multipart form with either a PDF in "file" or page
// text in "pages", plus optional "bank", "filename" and "header" fields.
func (h *Handler) HandleExtract(c *fiber.Ctx) error {
	log := h.logger()
	filename := c.FormValue("filename")
	includeHeader := c.FormValue("header") != "false"

	var pages []string
	if text := c.FormValue("pages"); text != "" {
		for _, page := range strings.Split(text, PageSeparator) {
			if strings.TrimSpace(page) != "" {
				pages = append(pages, page)
			}
		}
		if filename == "" {
			filename = "pages.txt"
		}
	} else {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "No input. Use form field 'file' (PDF) or 'pages' (page text).")
		}
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
			return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
		}
		if filename == "" {
			filename = filepath.Base(fh.Filename)
		}

		tmp, err := os.CreateTemp("", "statement-*.pdf")
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		if err := c.SaveFile(fh, tmp.Name()); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
		}
		if pages, err = h.Reader.ReadPages(c.UserContext(), tmp.Name()); err != nil {
			log.Warn("pdf extraction failed", "file", filename, "err", err)
			return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
		}
	}
	doc := parser.Document{Filename: filename, Pages: pages}

	bankID := models.BankID(strings.ToLower(c.FormValue("bank")))
	if bankID == "" {
		detected, err := parser.AutoDetect(h.Registry, doc)
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		bankID = detected
	}
	bank, err := h.Registry.Get(bankID)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	p, err := parser.New(bank, log)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, parser.ErrNoExtractor) {
			status = fiber.StatusUnprocessableEntity
		}
		return writeError(c, status, err.Error())
	}

	info := p.Parse(doc)

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := csvWriter.Write(&csvBuf, info); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	// nil marshals to JSON null, not []
	txns := info.Transactions
	if txns == nil {
		txns = []models.Transaction{}
	}

	resp := ExtractResponse{
		Success:        true,
		Bank:           info.Bank,
		BankName:       info.BankName,
		Transactions:   txns,
		Reconciliation: info.Reconciliation,
		CSV:            csvBuf.String(),
		Count:          len(txns),
		Version:        h.Version,
	}
	if info.StatementDate != nil {
		resp.StatementDate = info.StatementDate.Format("2006-01-02")
	}
	log.Info("statement extracted", "file", filename, "bank", string(info.Bank),
		"pages", len(pages), "transactions", len(txns))
	return c.JSON(resp)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ExtractResponse{
		Success: false,
		Error:   msg,
	})
}
