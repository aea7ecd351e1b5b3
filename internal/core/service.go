package core

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"dukacore/internal/blob"
	"dukacore/internal/export"
	"dukacore/internal/synth"
	"dukacore/pkg/domain"
)

// Service runs the full generation pipeline: synthesize the four batches,
// verify their invariants, export the products CSV, and hand the batches to
// the sink in foreign-key dependency order.
type Service struct {
	cfg     Config
	sink    domain.Sink
	blobs   blob.Store
	names   domain.NameProvider
	metrics MetricsRecorder
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithBlobStore enables the products CSV export into store.
func WithBlobStore(store blob.Store) Option {
	return func(s *Service) { s.blobs = store }
}

// WithNameProvider overrides the default county name provider. Tests use
// deterministic fixtures through this hook.
func WithNameProvider(p domain.NameProvider) Option {
	return func(s *Service) { s.names = p }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock fixes the created_at clock, making runs byte-reproducible.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService validates cfg and constructs the pipeline around sink.
func NewService(cfg Config, sink domain.Sink, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, domain.ConfigError{Field: "sink", Reason: "required"}
	}
	s := &Service{
		cfg:     cfg,
		sink:    sink,
		metrics: NoopMetrics{},
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RunReport summarizes a completed generation run.
type RunReport struct {
	Products    int
	Customers   int
	Orders      int
	OrderItems  int
	CSVArtifact *blob.Info // nil when no blob store is configured
	Elapsed     time.Duration
}

// Generate produces and verifies the four batches without touching the sink.
// The same seed and configuration always yield the same dataset.
func (s *Service) Generate() (domain.Dataset, error) {
	rng := rand.New(rand.NewSource(s.cfg.Seed))

	names := s.names
	if names == nil {
		provider, err := synth.NewCountyNameProvider(synth.DefaultCountyNames, rng)
		if err != nil {
			return domain.Dataset{}, err
		}
		names = provider
	}

	productSynth, err := synth.NewProductSynthesizer(synth.ProductConfig{
		Count:    s.cfg.ProductCount,
		PriceMin: s.cfg.PriceMin,
		PriceMax: s.cfg.PriceMax,
		StockMax: 500,
	}, rng)
	if err != nil {
		return domain.Dataset{}, err
	}
	products, err := productSynth.WithClock(s.now).Generate()
	if err != nil {
		return domain.Dataset{}, err
	}
	s.metrics.RecordGenerated(domain.TableProducts, len(products))

	customerSynth, err := synth.NewCustomerSynthesizer(synth.CustomerConfig{
		Count: s.cfg.CustomerCount,
	}, s.cfg.Counties, names, rng)
	if err != nil {
		return domain.Dataset{}, err
	}
	customers, err := customerSynth.WithClock(s.now).Generate()
	if err != nil {
		return domain.Dataset{}, err
	}
	s.metrics.RecordGenerated(domain.TableCustomers, len(customers))

	customerIDs := make([]int, len(customers))
	for i, c := range customers {
		customerIDs[i] = c.ID
	}
	productIDs := make([]int, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}

	orderSynth, err := synth.NewOrderSynthesizer(synth.OrderConfig{
		OrderCount:   s.cfg.OrderCount,
		ItemCount:    s.cfg.ItemCount,
		DateStart:    s.cfg.DateStart,
		DateEnd:      s.cfg.DateEnd,
		PriceMin:     s.cfg.PriceMin,
		PriceMax:     s.cfg.PriceMax,
		MaxQty:       s.cfg.MaxQty,
		StapleCutoff: s.cfg.StapleCutoff,
		StapleWeight: s.cfg.StapleWeight,
	}, rng)
	if err != nil {
		return domain.Dataset{}, err
	}
	orders, items, err := orderSynth.Generate(customerIDs, productIDs)
	if err != nil {
		return domain.Dataset{}, err
	}
	s.metrics.RecordGenerated(domain.TableOrders, len(orders))
	s.metrics.RecordGenerated(domain.TableOrderItems, len(items))

	ds := domain.Dataset{Products: products, Customers: customers, Orders: orders, OrderItems: items}
	if err := synth.VerifyDataset(ds); err != nil {
		return domain.Dataset{}, err
	}
	return ds, nil
}

// Run executes the whole pipeline. Sink errors propagate without retry; the
// run is idempotent thanks to insert-or-skip sinks and the fixed seed, so a
// failed run is simply re-run from scratch.
func (s *Service) Run(ctx context.Context) (RunReport, error) {
	started := time.Now()

	ds, err := s.Generate()
	if err != nil {
		return RunReport{}, err
	}

	report := RunReport{
		Products:   len(ds.Products),
		Customers:  len(ds.Customers),
		Orders:     len(ds.Orders),
		OrderItems: len(ds.OrderItems),
	}

	if s.blobs != nil {
		info, err := export.WriteProductsCSV(ctx, s.blobs, s.cfg.CSVKey, ds.Products)
		if err != nil {
			return RunReport{}, fmt.Errorf("export products csv: %w", err)
		}
		report.CSVArtifact = &info
	}

	if err := s.sink.EnsureSchema(ctx); err != nil {
		return RunReport{}, fmt.Errorf("ensure schema: %w", err)
	}
	if s.cfg.ResetBeforeLoad {
		if err := s.sink.Reset(ctx); err != nil {
			return RunReport{}, fmt.Errorf("reset sink: %w", err)
		}
	}

	rows := func(n int, at func(int) []any) [][]any {
		out := make([][]any, n)
		for i := 0; i < n; i++ {
			out[i] = at(i)
		}
		return out
	}
	// Parents before children so sink-side foreign keys always resolve.
	loads := []struct {
		table   domain.Table
		columns []string
		rows    [][]any
	}{
		{domain.TableProducts, domain.ProductColumns, rows(len(ds.Products), func(i int) []any { return ds.Products[i].Row() })},
		{domain.TableCustomers, domain.CustomerColumns, rows(len(ds.Customers), func(i int) []any { return ds.Customers[i].Row() })},
		{domain.TableOrders, domain.OrderColumns, rows(len(ds.Orders), func(i int) []any { return ds.Orders[i].Row() })},
		{domain.TableOrderItems, domain.OrderItemColumns, rows(len(ds.OrderItems), func(i int) []any { return ds.OrderItems[i].Row() })},
	}
	for _, load := range loads {
		if err := s.insertBatches(ctx, load.table, load.columns, load.rows); err != nil {
			return RunReport{}, err
		}
	}

	report.Elapsed = time.Since(started)
	return report, nil
}

// insertBatches chunks rows by the configured batch size and writes each
// chunk through the sink.
func (s *Service) insertBatches(ctx context.Context, table domain.Table, columns []string, rows [][]any) error {
	for start := 0; start < len(rows); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(rows))
		batchStart := time.Now()
		if err := s.sink.BulkInsert(ctx, table, columns, rows[start:end]); err != nil {
			return fmt.Errorf("bulk insert %s [%d:%d]: %w", table, start, end, err)
		}
		s.metrics.RecordInserted(table, end-start, time.Since(batchStart))
	}
	return nil
}
