package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gagliardetto/solana-go"
	_ "modernc.org/sqlite"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS transfers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	signature TEXT NOT NULL UNIQUE,
	sender TEXT NOT NULL,
	recipient TEXT NOT NULL,
	lamports INTEGER NOT NULL,
	fee_mode TEXT NOT NULL,
	fee_token TEXT NOT NULL DEFAULT '',
	memo TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	created_unix INTEGER NOT NULL,
	updated_unix INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transfers_status ON transfers(status);
`

// SQLiteHistoryStore records submitted transfers in a local SQLite database.
type SQLiteHistoryStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteHistoryStore opens (creating if needed) the history database at
// path and applies the schema.
func NewSQLiteHistoryStore(path string) (*SQLiteHistoryStore, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("history mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("history open: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history schema: %w", err)
	}
	return &SQLiteHistoryStore{db: db}, nil
}

// Record inserts one submission row and returns its id.
func (s *SQLiteHistoryStore) Record(rec domain.TransferRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`INSERT INTO transfers (signature, sender, recipient, lamports, fee_mode, fee_token, memo, status, created_unix, updated_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Signature.String(), rec.Sender.String(), rec.Recipient.String(),
		int64(rec.Amount), rec.FeeMode.String(), rec.FeeToken, rec.Memo,
		rec.Status.String(), rec.CreatedUnix, rec.UpdatedUnix,
	)
	if err != nil {
		return 0, fmt.Errorf("history insert: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent records, newest first. A non-positive limit
// returns everything.
func (s *SQLiteHistoryStore) List(limit int) ([]domain.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(
		`SELECT id, signature, sender, recipient, lamports, fee_mode, fee_token, memo, status, created_unix, updated_unix
		 FROM transfers ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	return scanRecords(rows)
}

// Pending returns records whose status is not terminal, oldest first.
func (s *SQLiteHistoryStore) Pending() ([]domain.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, signature, sender, recipient, lamports, fee_mode, fee_token, memo, status, created_unix, updated_unix
		 FROM transfers WHERE status NOT IN (?, ?) ORDER BY id ASC`,
		domain.TransferFinalized.String(), domain.TransferFailed.String())
	if err != nil {
		return nil, fmt.Errorf("history pending: %w", err)
	}
	return scanRecords(rows)
}

// MarkStatus updates the status of the record with the given signature.
func (s *SQLiteHistoryStore) MarkStatus(sig solana.Signature, status domain.TransferStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`UPDATE transfers SET status = ?, updated_unix = strftime('%s','now') WHERE signature = ?`,
		status.String(), sig.String())
	if err != nil {
		return fmt.Errorf("history mark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("history mark: unknown signature %s", sig)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteHistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func scanRecords(rows *sql.Rows) ([]domain.TransferRecord, error) {
	defer rows.Close()

	var out []domain.TransferRecord
	for rows.Next() {
		var rec domain.TransferRecord
		var sig, sender, recip, feeMode, feeToken, memo, status string
		var lamports int64
		if err := rows.Scan(&rec.ID, &sig, &sender, &recip, &lamports, &feeMode, &feeToken, &memo, &status, &rec.CreatedUnix, &rec.UpdatedUnix); err != nil {
			return nil, err
		}
		parsedSig, err := solana.SignatureFromBase58(sig)
		if err != nil {
			return nil, fmt.Errorf("history signature %q: %w", sig, err)
		}
		senderKey, err := solana.PublicKeyFromBase58(sender)
		if err != nil {
			return nil, fmt.Errorf("history sender %q: %w", sender, err)
		}
		recipKey, err := solana.PublicKeyFromBase58(recip)
		if err != nil {
			return nil, fmt.Errorf("history recipient %q: %w", recip, err)
		}
		rec.Signature = parsedSig
		rec.Sender = senderKey
		rec.Recipient = recipKey
		rec.Amount = domain.Lamports(lamports)
		rec.FeeMode = domain.FeeMode(feeMode)
		rec.FeeToken = feeToken
		rec.Memo = memo
		rec.Status = domain.TransferStatus(status)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history iteration: %w", err)
	}
	return out, nil
}

// Compile-time assertion that SQLiteHistoryStore implements domain.HistoryStore.
var _ domain.HistoryStore = (*SQLiteHistoryStore)(nil)
