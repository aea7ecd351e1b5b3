package core

import (
	"context"
	"io"
	"reflect"
	"testing"
	"time"

	blobmem "dukacore/internal/infra/blob/memory"
	sinkmem "dukacore/internal/infra/sink/memory"
	"dukacore/pkg/domain"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ProductCount = 60
	cfg.CustomerCount = 40
	cfg.OrderCount = 50
	cfg.ItemCount = 120
	cfg.BatchSize = 16
	cfg.StapleCutoff = 10
	return cfg
}

func fixedClock() func() time.Time {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestNewServiceRejectsBadInput(t *testing.T) {
	if _, err := NewService(Config{}, sinkmem.New()); err == nil {
		t.Fatal("expected error for zero config")
	}
	if _, err := NewService(testConfig(), nil); err == nil {
		t.Fatal("expected error for nil sink")
	}
}

func TestServiceGenerateDeterministic(t *testing.T) {
	gen := func() domain.Dataset {
		svc, err := NewService(testConfig(), sinkmem.New(), WithClock(fixedClock()))
		if err != nil {
			t.Fatalf("new service: %v", err)
		}
		ds, err := svc.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		return ds
	}
	if !reflect.DeepEqual(gen(), gen()) {
		t.Fatal("two runs with the same seed diverged")
	}
}

func TestServiceGenerateSeedChangesData(t *testing.T) {
	gen := func(seed int64) domain.Dataset {
		cfg := testConfig()
		cfg.Seed = seed
		svc, err := NewService(cfg, sinkmem.New(), WithClock(fixedClock()))
		if err != nil {
			t.Fatalf("new service: %v", err)
		}
		ds, err := svc.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		return ds
	}
	if reflect.DeepEqual(gen(42), gen(43)) {
		t.Fatal("different seeds produced identical datasets")
	}
}

func TestServiceRunLoadsAllTables(t *testing.T) {
	sink := sinkmem.New()
	blobs := blobmem.New()
	metrics := NewExpvarMetricsRecorder("")
	svc, err := NewService(testConfig(), sink,
		WithBlobStore(blobs),
		WithMetrics(metrics),
		WithClock(fixedClock()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Products != 60 || report.Customers != 40 || report.Orders != 50 || report.OrderItems != 120 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if sink.Count(domain.TableProducts) != 60 ||
		sink.Count(domain.TableCustomers) != 40 ||
		sink.Count(domain.TableOrders) != 50 ||
		sink.Count(domain.TableOrderItems) != 120 {
		t.Fatalf("sink counts products=%d customers=%d orders=%d items=%d",
			sink.Count(domain.TableProducts), sink.Count(domain.TableCustomers),
			sink.Count(domain.TableOrders), sink.Count(domain.TableOrderItems))
	}

	if report.CSVArtifact == nil {
		t.Fatal("no csv artifact reported")
	}
	if report.CSVArtifact.Key != "products.csv" {
		t.Fatalf("artifact key %q", report.CSVArtifact.Key)
	}
	_, rc, err := blobs.Get(context.Background(), "products.csv")
	if err != nil {
		t.Fatalf("get artifact: %v", err)
	}
	payload, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if len(payload) == 0 {
		t.Fatal("empty csv artifact")
	}

	snap := metrics.Snapshot()
	if snap.GeneratedRows[string(domain.TableOrderItems)] != 120 {
		t.Fatalf("generated metric %d, want 120", snap.GeneratedRows[string(domain.TableOrderItems)])
	}
	if snap.InsertedRows[string(domain.TableProducts)] != 60 {
		t.Fatalf("inserted metric %d, want 60", snap.InsertedRows[string(domain.TableProducts)])
	}
}

func TestServiceRunWithoutBlobStoreSkipsExport(t *testing.T) {
	svc, err := NewService(testConfig(), sinkmem.New(), WithClock(fixedClock()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.CSVArtifact != nil {
		t.Fatal("artifact reported without a blob store")
	}
}

// Re-running against a sink that already holds the rows leaves the row counts
// unchanged: duplicate primary keys are skipped, not duplicated.
func TestServiceRunIdempotentReload(t *testing.T) {
	cfg := testConfig()
	cfg.ResetBeforeLoad = false
	sink := sinkmem.New()
	svc, err := NewService(cfg, sink, WithClock(fixedClock()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.Run(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}
	if got := sink.Count(domain.TableOrders); got != 50 {
		t.Fatalf("orders after reload %d, want 50", got)
	}
	if got := sink.Count(domain.TableOrderItems); got != 120 {
		t.Fatalf("items after reload %d, want 120", got)
	}
}
