package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/card-statement-extractor/internal/models"
)

const dateLayout = "2006-01-02"

// StoredStatement is one row of the statement ledger.
type StoredStatement struct {
	ID               string
	FileName         string
	FileHash         string
	Bank             models.BankID
	BankName         string
	StatementDate    *time.Time
	Reconciliation   models.Reconciliation
	TransactionCount int
	ProcessedAt      time.Time
}

// StatementFilter narrows List.
type StatementFilter struct {
	Bank  models.BankID
	From  *time.Time
	To    *time.Time
	Limit int
}

// StatementRepo persists extracted statements keyed by file content hash.
type StatementRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewStatementRepo(db *sql.DB) *StatementRepo {
	return &StatementRepo{db: db, now: time.Now}
}

// Exists reports whether a statement with the given file hash was already
// stored (idempotency check).
func (r *StatementRepo) Exists(ctx context.Context, fileHash string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM statements WHERE file_hash = ?", fileHash,
	).Scan(&count)
	return count > 0, err
}

// Save stores info and its movements in one transaction and returns the new
// statement id.
func (r *StatementRepo) Save(ctx context.Context, fileHash string, info *models.StatementInfo) (string, error) {
	var rec models.Reconciliation
	if info.Reconciliation != nil {
		rec = *info.Reconciliation
	}
	id := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO statements
		(id, file_name, file_hash, bank, bank_name, statement_date,
		 prior_balance, total_charges, total_adjustments, total_bank_charges,
		 computed_balance, stated_balance, minimum_payment, difference, tolerance, passed,
		 transaction_count, processed_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, info.SourceFile, fileHash, string(info.Bank), info.BankName, nullDate(info.StatementDate),
		rec.PriorBalance, rec.TotalCharges, rec.TotalAdjustments, rec.TotalBankCharges,
		rec.ComputedBalance, rec.StatedBalance, rec.MinimumPayment, rec.Difference, rec.Tolerance, rec.Passed,
		len(info.Transactions), r.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert statement: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO statement_transactions
		(id, statement_id, seq, txn_date, receipt, description, installment, cardholder, currency, amount)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return "", fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i, t := range info.Transactions {
		_, err := stmt.ExecContext(ctx,
			uuid.NewString(), id, i, nullDate(t.Date), t.Receipt, t.Description,
			t.Installment, t.Cardholder, t.Currency, t.Amount,
		)
		if err != nil {
			return "", fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// List returns stored statements, newest statement date first.
func (r *StatementRepo) List(ctx context.Context, f StatementFilter) ([]StoredStatement, error) {
	where, args := buildStatementWhere(f)
	q := `SELECT id, file_name, file_hash, bank, bank_name, statement_date,
		prior_balance, total_charges, total_adjustments, total_bank_charges,
		computed_balance, stated_balance, minimum_payment, difference, tolerance, passed,
		transaction_count, processed_at
		FROM statements` + where + ` ORDER BY statement_date DESC, processed_at DESC`
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredStatement
	for rows.Next() {
		s, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// Transactions returns the movements of a stored statement in original order.
func (r *StatementRepo) Transactions(ctx context.Context, statementID string) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.txn_date, t.receipt, t.description, t.installment, t.cardholder,
			t.currency, t.amount, s.file_name, s.bank_name
		FROM statement_transactions t JOIN statements s ON s.id = t.statement_id
		WHERE t.statement_id = ? ORDER BY t.seq`, statementID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var date sql.NullString
		if err := rows.Scan(&date, &t.Receipt, &t.Description, &t.Installment, &t.Cardholder,
			&t.Currency, &t.Amount, &t.SourceFile, &t.Bank); err != nil {
			return nil, err
		}
		t.Date = parseNullDate(date)
		out = append(out, t)
	}
	return out, rows.Err()
}

func buildStatementWhere(f StatementFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.Bank != "" {
		clauses = append(clauses, "bank = ?")
		args = append(args, string(f.Bank))
	}
	if f.From != nil {
		clauses = append(clauses, "statement_date >= ?")
		args = append(args, f.From.Format(dateLayout))
	}
	if f.To != nil {
		clauses = append(clauses, "statement_date <= ?")
		args = append(args, f.To.Format(dateLayout))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanStatement(rows *sql.Rows) (*StoredStatement, error) {
	var s StoredStatement
	var bank, processedAt string
	var date sql.NullString
	var stated, minimum decimal.NullDecimal

	err := rows.Scan(
		&s.ID, &s.FileName, &s.FileHash, &bank, &s.BankName, &date,
		&s.Reconciliation.PriorBalance, &s.Reconciliation.TotalCharges,
		&s.Reconciliation.TotalAdjustments, &s.Reconciliation.TotalBankCharges,
		&s.Reconciliation.ComputedBalance, &stated, &minimum,
		&s.Reconciliation.Difference, &s.Reconciliation.Tolerance, &s.Reconciliation.Passed,
		&s.TransactionCount, &processedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Bank = models.BankID(bank)
	s.StatementDate = parseNullDate(date)
	s.Reconciliation.StatedBalance = stated
	s.Reconciliation.MinimumPayment = minimum
	s.ProcessedAt, _ = time.Parse(time.RFC3339, processedAt)
	return &s, nil
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func parseNullDate(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}
