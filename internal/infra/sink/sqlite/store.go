// Package sqlite provides a SQLite-backed Sink for local runs and integration
// tests that do not have a Postgres server available.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dukacore/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var _ domain.Sink = (*Store)(nil)

// Store implements domain.Sink over a SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the SQLite database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "dukacore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

var sqliteDDL = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id INTEGER PRIMARY KEY,
		first_name TEXT,
		last_name TEXT,
		email TEXT,
		phone TEXT,
		address_line1 TEXT,
		address_line2 TEXT,
		city TEXT,
		country TEXT,
		created_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY,
		product_name TEXT,
		price NUMERIC,
		stock_quantity INTEGER,
		source_system TEXT,
		created_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id INTEGER PRIMARY KEY,
		customer_id INTEGER REFERENCES customers(customer_id) ON DELETE CASCADE,
		order_date DATE,
		total_amount NUMERIC
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id INTEGER PRIMARY KEY,
		order_id INTEGER REFERENCES orders(order_id) ON DELETE CASCADE,
		product_id INTEGER REFERENCES products(product_id),
		quantity INTEGER,
		unit_price NUMERIC,
		subtotal NUMERIC
	)`,
}

// EnsureSchema creates the four tables if absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, ddl := range sqliteDDL {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}

// BulkInsert writes rows inside a single transaction using INSERT OR IGNORE,
// so re-running a generation against existing data is a no-op per key.
func (s *Store) BulkInsert(ctx context.Context, table domain.Table, columns []string, rows [][]any) (retErr error) {
	if len(rows) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	query := fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		retErr = fmt.Errorf("prepare insert %s: %w", table, err)
		return retErr
	}
	defer func() { _ = stmt.Close() }()
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			retErr = fmt.Errorf("insert %s: %w", table, err)
			return retErr
		}
	}
	if err := tx.Commit(); err != nil {
		retErr = fmt.Errorf("commit %s: %w", table, err)
	}
	return retErr
}

// Reset deletes all rows, children first so foreign keys hold throughout.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []domain.Table{domain.TableOrderItems, domain.TableOrders, domain.TableCustomers, domain.TableProducts} {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
