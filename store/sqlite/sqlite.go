/*
Package sqlite provides the SQLite-backed implementation of the ledger
store plus persistence for the static catalog table.

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE statement touches the transactions table. Corrections
  are offsetting entries. (Reset exists for demo scenarios only and wipes
  the whole table; it is not part of the ledger contract.)

KEY TABLES:
  transactions: immutable ledger of stock orders and sales
  catalog:      static reference data, replaced wholesale at load

CONCURRENCY:
  A sync.RWMutex guards the handle so batched appends are atomic with
  respect to readers. SQLite is opened in WAL mode: multiple readers do not
  block, one writer at a time.

SEE ALSO:
  - ledger/store.go: interface definition
  - ledger/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/beaverschoice/paperledger/catalog"
	"github.com/beaverschoice/paperledger/ledger"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Transactions (append-only ledger)
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_name TEXT,
		kind TEXT NOT NULL,
		units INTEGER,
		amount TEXT NOT NULL,
		occurred_at TEXT NOT NULL
	);

	-- As-of scans (hot path for valuation)
	CREATE INDEX IF NOT EXISTS idx_transactions_occurred_at
		ON transactions(occurred_at);
	CREATE INDEX IF NOT EXISTS idx_transactions_item_date
		ON transactions(item_name, occurred_at);
	CREATE INDEX IF NOT EXISTS idx_transactions_kind
		ON transactions(kind);

	-- Catalog (static reference data)
	CREATE TABLE IF NOT EXISTS catalog (
		item_name TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		unit_price TEXT NOT NULL,
		min_stock_level INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TRANSACTION STORE (ledger.Store interface)
// =============================================================================

// Append adds a transaction to the ledger and returns its assigned id.
func (s *Store) Append(ctx context.Context, tx ledger.Transaction) (ledger.TransactionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendTx(ctx, s.db, tx)
}

func (s *Store) appendTx(ctx context.Context, db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}, tx ledger.Transaction) (ledger.TransactionID, error) {
	var itemName sql.NullString
	var units sql.NullInt64
	if !tx.IsCashOnly() {
		itemName = sql.NullString{String: tx.ItemName, Valid: true}
		units = sql.NullInt64{Int64: tx.Units, Valid: true}
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO transactions (item_name, kind, units, amount, occurred_at)
		 VALUES (?, ?, ?, ?, ?)`,
		itemName,
		string(tx.Kind),
		units,
		tx.Amount.String(),
		tx.OccurredAt.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read transaction id: %w", err)
	}
	return ledger.TransactionID(id), nil
}

// AppendBatch adds multiple transactions atomically.
func (s *Store) AppendBatch(ctx context.Context, txs []ledger.Transaction) ([]ledger.TransactionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	ids := make([]ledger.TransactionID, 0, len(txs))
	for _, tx := range txs {
		id, err := s.appendTx(ctx, sqlTx, tx)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := sqlTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}
	return ids, nil
}

// LoadThrough returns all transactions dated on or before asOf.
func (s *Store) LoadThrough(ctx context.Context, asOf ledger.Date) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, item_name, kind, units, amount, occurred_at
		FROM transactions
		WHERE occurred_at <= ?
		ORDER BY occurred_at ASC, id ASC
	`
	return s.queryTransactions(ctx, query, asOf.String())
}

// LoadItemThrough returns one item's transactions dated on or before asOf.
func (s *Store) LoadItemThrough(ctx context.Context, itemName string, asOf ledger.Date) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, item_name, kind, units, amount, occurred_at
		FROM transactions
		WHERE item_name = ? AND occurred_at <= ?
		ORDER BY occurred_at ASC, id ASC
	`
	return s.queryTransactions(ctx, query, itemName, asOf.String())
}

// Count returns the total number of transactions in the ledger.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}

// Recent returns the newest transactions, most recent first (admin view).
func (s *Store) Recent(ctx context.Context, limit int) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, item_name, kind, units, amount, occurred_at
		FROM transactions
		ORDER BY id DESC
		LIMIT ?
	`
	return s.queryTransactions(ctx, query, limit)
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func scanTransaction(rows *sql.Rows) (ledger.Transaction, error) {
	var (
		tx         ledger.Transaction
		itemName   sql.NullString
		kind       string
		units      sql.NullInt64
		amount     string
		occurredAt string
	)

	if err := rows.Scan(&tx.ID, &itemName, &kind, &units, &amount, &occurredAt); err != nil {
		return tx, fmt.Errorf("failed to scan transaction: %w", err)
	}

	tx.ItemName = itemName.String
	tx.Kind = ledger.Kind(kind)
	tx.Units = units.Int64
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return tx, fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}
	tx.Amount = d
	tx.OccurredAt, err = ledger.ParseDate(occurredAt)
	if err != nil {
		return tx, fmt.Errorf("failed to parse occurred_at %q: %w", occurredAt, err)
	}
	return tx, nil
}

// =============================================================================
// CATALOG TABLE
// =============================================================================

// ReplaceCatalog replaces the catalog table wholesale. The catalog is
// seeded once at initialization and immutable afterwards, so the only
// supported write is a full replace.
func (s *Store) ReplaceCatalog(ctx context.Context, items []catalog.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM catalog"); err != nil {
		return err
	}
	for _, it := range items {
		_, err := sqlTx.ExecContext(ctx,
			`INSERT INTO catalog (item_name, category, unit_price, min_stock_level)
			 VALUES (?, ?, ?, ?)`,
			it.Name, it.Category, it.UnitPrice.String(), it.MinStockLevel,
		)
		if err != nil {
			return fmt.Errorf("failed to save catalog item %q: %w", it.Name, err)
		}
	}
	return sqlTx.Commit()
}

// LoadCatalog returns the persisted catalog items in name order.
func (s *Store) LoadCatalog(ctx context.Context) ([]catalog.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT item_name, category, unit_price, min_stock_level FROM catalog ORDER BY item_name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []catalog.Item
	for rows.Next() {
		var it catalog.Item
		var price string
		if err := rows.Scan(&it.Name, &it.Category, &price, &it.MinStockLevel); err != nil {
			return nil, err
		}
		it.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse unit price for %q: %w", it.Name, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for demo scenarios and tests only).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"transactions", "catalog"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	// Restart id numbering so re-seeded scenarios are reproducible.
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'transactions'"); err != nil &&
		!strings.Contains(err.Error(), "no such table") {
		return err
	}
	return nil
}
