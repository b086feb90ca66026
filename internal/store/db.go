package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens (or creates) a SQLite database at the given path and ensures
// all required tables exist. Pass ":memory:" for an in-memory database.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection: SQLite has a single writer, and every connection to
	// ":memory:" would otherwise get its own empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS statements (
			id TEXT PRIMARY KEY,
			file_name TEXT NOT NULL,
			file_hash TEXT UNIQUE NOT NULL,
			bank TEXT NOT NULL,
			bank_name TEXT NOT NULL,
			statement_date TEXT,
			prior_balance TEXT NOT NULL,
			total_charges TEXT NOT NULL,
			total_adjustments TEXT NOT NULL,
			total_bank_charges TEXT NOT NULL,
			computed_balance TEXT NOT NULL,
			stated_balance TEXT,
			minimum_payment TEXT,
			difference TEXT NOT NULL,
			tolerance TEXT NOT NULL DEFAULT '0',
			passed INTEGER NOT NULL,
			transaction_count INTEGER NOT NULL,
			processed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_statements_bank ON statements(bank)`,
		`CREATE INDEX IF NOT EXISTS idx_statements_date ON statements(statement_date)`,

		`CREATE TABLE IF NOT EXISTS statement_transactions (
			id TEXT PRIMARY KEY,
			statement_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			txn_date TEXT,
			receipt TEXT NOT NULL,
			description TEXT NOT NULL,
			installment TEXT NOT NULL,
			cardholder TEXT NOT NULL,
			currency TEXT NOT NULL,
			amount TEXT NOT NULL,
			FOREIGN KEY (statement_id) REFERENCES statements(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_statement_transactions_statement ON statement_transactions(statement_id, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_statement_transactions_cardholder ON statement_transactions(cardholder)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return addColumn(db, "statements", "tolerance", "TEXT NOT NULL DEFAULT '0'")
}

// addColumn adds column to a table created by an older version.
func addColumn(db *sql.DB, table, column, def string) error {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column).Scan(&n)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	if n > 0 {
		return nil
	}
	if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, def)); err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
