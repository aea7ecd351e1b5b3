// Package postgres provides the Postgres-backed Sink used for real loads.
// Schema creation mirrors the dashboard's expected layout and inserts use
// ON CONFLICT DO NOTHING so re-runs against a populated database are
// idempotent.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dukacore/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

var _ domain.Sink = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/dukacore?sslmode=disable"
)

// Store implements domain.Sink over a Postgres connection pool.
type Store struct {
	db *sql.DB
}

// NewStore opens a Postgres sink using the provided DSN (falls back to
// defaultDSN) and verifies connectivity.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

var postgresDDL = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id INT PRIMARY KEY,
		first_name VARCHAR(100),
		last_name VARCHAR(100),
		email VARCHAR(200),
		phone VARCHAR(100),
		address_line1 VARCHAR(255),
		address_line2 VARCHAR(255),
		city VARCHAR(100),
		country VARCHAR(100),
		created_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id INT PRIMARY KEY,
		product_name VARCHAR(300),
		price DECIMAL(10,2),
		stock_quantity INT,
		source_system VARCHAR(50),
		created_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id INT PRIMARY KEY,
		customer_id INT,
		order_date DATE,
		total_amount DECIMAL(12,2),
		FOREIGN KEY (customer_id) REFERENCES customers(customer_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id INT PRIMARY KEY,
		order_id INT,
		product_id INT,
		quantity INT,
		unit_price DECIMAL(10,2),
		subtotal DECIMAL(12,2),
		FOREIGN KEY (order_id) REFERENCES orders(order_id) ON DELETE CASCADE,
		FOREIGN KEY (product_id) REFERENCES products(product_id)
	)`,
}

// EnsureSchema creates the four tables if absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, ddl := range postgresDDL {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}

// BulkInsert writes rows inside a single transaction with
// ON CONFLICT DO NOTHING semantics.
func (s *Store) BulkInsert(ctx context.Context, table domain.Table, columns []string, rows [][]any) (retErr error) {
	if len(rows) == 0 {
		return nil
	}
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

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

// Reset truncates all four tables in one statement.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `TRUNCATE TABLE order_items, orders, customers, products RESTART IDENTITY CASCADE`); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// Close closes the underlying pool.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }
