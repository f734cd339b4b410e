// Package sqlite is the persistence collaborator for audit reports. Reports
// are append-only; the sensitive revenue figure is encrypted before it
// touches disk.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// AuditReport is the persisted projection of one successful pipeline run.
// Immutable once stored.
type AuditReport struct {
	ID          string    `json:"id"`
	Industry    string    `json:"industry"`
	Revenue     float64   `json:"revenue"`
	HealthScore int       `json:"health_score"`
	LoanProduct string    `json:"loan_product"`
	Narrative   string    `json:"report"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists audit reports in a SQLite database.
type Store struct {
	db  *sql.DB
	box *cipherBox
}

// Open opens (or creates) the database at dsn and ensures the audit_reports
// table exists. Pass ":memory:" for an in-memory database. encryptionKey is
// the passphrase protecting the revenue column.
func Open(dsn, encryptionKey string) (*Store, error) {
	box, err := newCipherBox(encryptionKey)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS audit_reports (
		id TEXT PRIMARY KEY,
		industry TEXT NOT NULL,
		revenue TEXT NOT NULL,
		health_score INTEGER NOT NULL,
		loan_product TEXT NOT NULL,
		report TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &Store{db: db, box: box}, nil
}

// Insert persists one report and returns its id. The write runs in a
// transaction so a failure leaves no partial row behind.
func (s *Store) Insert(ctx context.Context, r *AuditReport) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	sealed, err := s.box.seal(strconv.FormatFloat(r.Revenue, 'f', -1, 64))
	if err != nil {
		return "", fmt.Errorf("encrypt revenue: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO audit_reports
		(id, industry, revenue, health_score, loan_product, report, created_at)
		VALUES (?,?,?,?,?,?,?)`,
		r.ID, r.Industry, sealed, r.HealthScore, r.LoanProduct, r.Narrative,
		r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert report: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return r.ID, nil
}

// ListRecent returns up to limit reports, newest first, with the revenue
// column decrypted.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]AuditReport, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, industry, revenue, health_score, loan_product, report, created_at
		 FROM audit_reports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []AuditReport
	for rows.Next() {
		var (
			r         AuditReport
			sealed    string
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Industry, &sealed, &r.HealthScore,
			&r.LoanProduct, &r.Narrative, &createdAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}

		plain, err := s.box.open(sealed)
		if err != nil {
			return nil, fmt.Errorf("decrypt revenue for %s: %w", r.ID, err)
		}
		r.Revenue, _ = strconv.ParseFloat(plain, 64)

		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			r.CreatedAt = ts
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
