package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"dukacore/pkg/domain"

	"github.com/shopspring/decimal"
)

// newTestStore connects to the server named by DUKACORE_POSTGRES_TEST_DSN and
// skips the test when none is configured.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("DUKACORE_POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skipf("set DUKACORE_POSTGRES_TEST_DSN to run postgres sink tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, err := NewStore(ctx, dsn)
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := store.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	return store
}

func TestStoreBulkInsertSkipsDuplicates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := [][]any{
		domain.Product{ID: 1, Name: "Unga Premium", Price: decimal.NewFromFloat(120.50), StockQuantity: 40, SourceSystem: domain.SourceCSV, CreatedAt: at}.Row(),
		domain.Product{ID: 2, Name: "Chai Economy", Price: decimal.NewFromInt(75), StockQuantity: 10, SourceSystem: domain.SourceAPI, CreatedAt: at}.Row(),
	}

	if err := store.BulkInsert(ctx, domain.TableProducts, domain.ProductColumns, rows); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.BulkInsert(ctx, domain.TableProducts, domain.ProductColumns, rows); err != nil {
		t.Fatalf("reinsert: %v", err)
	}

	var n int
	if err := store.DB().QueryRow("SELECT COUNT(*) FROM products").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("got %d rows, want 2", n)
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
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	row := domain.Product{ID: 1, Name: "Unga Premium", Price: decimal.NewFromInt(100), StockQuantity: 1, SourceSystem: domain.SourceCSV, CreatedAt: at}.Row()
	if err := store.BulkInsert(ctx, domain.TableProducts, domain.ProductColumns, [][]any{row}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	var n int
	if err := store.DB().QueryRow("SELECT COUNT(*) FROM products").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("got %d rows after reset, want 0", n)
	}
}
