package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"dukacore/pkg/domain"

	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "dukacore_test.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func productRows(n int) [][]any {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := make([][]any, 0, n)
	for id := 1; id <= n; id++ {
		p := domain.Product{
			ID:            id,
			Name:          "Unga Premium",
			Price:         decimal.NewFromFloat(120.50),
			StockQuantity: 40,
			SourceSystem:  domain.SourceCSV,
			CreatedAt:     at,
		}
		rows = append(rows, p.Row())
	}
	return rows
}

func countRows(t *testing.T, store *Store, table domain.Table) int {
	t.Helper()
	var n int
	if err := store.DB().QueryRow("SELECT COUNT(*) FROM " + string(table)).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestStoreEnsureSchemaCreatesTables(t *testing.T) {
	store := newTestStore(t)
	for _, table := range []domain.Table{domain.TableProducts, domain.TableCustomers, domain.TableOrders, domain.TableOrderItems} {
		var name string
		err := store.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", string(table)).Scan(&name)
		if err != nil {
			t.Fatalf("table %s not created: %v", table, err)
		}
	}
	// EnsureSchema is safe to repeat.
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second ensure schema: %v", err)
	}
}

func TestStoreBulkInsertSkipsDuplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	rows := productRows(10)

	if err := store.BulkInsert(ctx, domain.TableProducts, domain.ProductColumns, rows); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := countRows(t, store, domain.TableProducts); got != 10 {
		t.Fatalf("got %d rows, want 10", got)
	}

	// Re-inserting the same keys is a no-op.
	if err := store.BulkInsert(ctx, domain.TableProducts, domain.ProductColumns, rows); err != nil {
		t.Fatalf("reinsert: %v", err)
	}
	if got := countRows(t, store, domain.TableProducts); got != 10 {
		t.Fatalf("got %d rows after reinsert, want 10", got)
	}
}

func TestStoreBulkInsertEmptyBatch(t *testing.T) {
	store := newTestStore(t)
	if err := store.BulkInsert(context.Background(), domain.TableProducts, domain.ProductColumns, nil); err != nil {
		t.Fatalf("empty insert: %v", err)
	}
}

func TestStoreRoundTripsMoney(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.BulkInsert(ctx, domain.TableProducts, domain.ProductColumns, productRows(1)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var price decimal.Decimal
	if err := store.DB().QueryRow("SELECT price FROM products WHERE product_id = 1").Scan(&price); err != nil {
		t.Fatalf("scan price: %v", err)
	}
	if !price.Equal(decimal.NewFromFloat(120.50)) {
		t.Fatalf("price %s, want 120.50", price)
	}
}

func TestStoreReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.BulkInsert(ctx, domain.TableProducts, domain.ProductColumns, productRows(5)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := countRows(t, store, domain.TableProducts); got != 0 {
		t.Fatalf("got %d rows after reset, want 0", got)
	}
	// The schema survives a reset.
	if err := store.BulkInsert(ctx, domain.TableProducts, domain.ProductColumns, productRows(2)); err != nil {
		t.Fatalf("insert after reset: %v", err)
	}
	if got := countRows(t, store, domain.TableProducts); got != 2 {
		t.Fatalf("got %d rows, want 2", got)
	}
}

func TestStoreDefaultPath(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "dir", "data.db"))
	if err != nil {
		t.Fatalf("open with nested path: %v", err)
	}
	defer store.Close()
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
}
