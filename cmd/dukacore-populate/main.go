// Command dukacore-populate generates the synthetic customer/product/order
// dataset and loads it into the configured sink, writing the products CSV
// artifact through the blob store.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"dukacore/internal/blob"
	"dukacore/internal/core"
)

func main() {
	var (
		count       int
		seed        int64
		batchSize   int
		noExport    bool
		metricsAddr string
	)
	flag.IntVar(&count, "count", 0, "records per table (overrides DUKACORE_RECORD_COUNT)")
	flag.Int64Var(&seed, "seed", 0, "random seed (overrides DUKACORE_SEED)")
	flag.IntVar(&batchSize, "batch", 0, "rows per sink write (overrides DUKACORE_BATCH_SIZE)")
	flag.BoolVar(&noExport, "no-export", false, "skip the products CSV export")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")
	flag.Parse()

	if err := run(count, seed, batchSize, noExport, metricsAddr); err != nil {
		log.Fatalf("populate failed: %v", err)
	}
}

func run(count int, seed int64, batchSize int, noExport bool, metricsAddr string) error {
	ctx := context.Background()

	cfg, err := core.ConfigFromEnv()
	if err != nil {
		return err
	}
	if count > 0 {
		cfg.ProductCount, cfg.CustomerCount, cfg.OrderCount, cfg.ItemCount = count, count, count, count
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if batchSize > 0 {
		cfg.BatchSize = batchSize
	}

	sink, err := core.OpenSink(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	metrics := core.NewPrometheusMetrics()
	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	opts := []core.Option{core.WithMetrics(metrics)}
	if !noExport {
		store, err := blob.Open(ctx)
		if err != nil {
			return err
		}
		opts = append(opts, core.WithBlobStore(store))
	}

	svc, err := core.NewService(cfg, sink, opts...)
	if err != nil {
		return err
	}

	log.Printf("generating: %s", cfg)
	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	log.Printf("loaded %d products, %d customers, %d orders, %d order items in %s",
		report.Products, report.Customers, report.Orders, report.OrderItems, report.Elapsed)
	if report.CSVArtifact != nil {
		log.Printf("products csv: %s (%d bytes)", report.CSVArtifact.Key, report.CSVArtifact.Size)
	}
	return nil
}
