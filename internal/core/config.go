// Package core wires the synthesizers, sink, blob store and metrics into the
// generation pipeline.
package core

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"dukacore/internal/synth"
	"dukacore/pkg/domain"
)

// Config is the full configuration surface of a generation run. Zero values
// are filled from DefaultConfig by NewService.
type Config struct {
	ProductCount  int
	CustomerCount int
	OrderCount    int // M
	ItemCount     int // I, target order-item total

	BatchSize int   // rows per sink write
	Seed      int64 // fixing the seed makes the whole run reproducible

	DateStart time.Time // inclusive order-date window
	DateEnd   time.Time
	PriceMin  float64
	PriceMax  float64
	MaxQty    int

	StapleCutoff int // product ids <= cutoff sample with StapleWeight
	StapleWeight int

	Counties []string // region keys customers are drawn from

	CSVKey          string // blob key for the products CSV artifact
	ResetBeforeLoad bool   // truncate tables before inserting
}

// DefaultConfig mirrors the canonical demo run: 2000 records per table,
// batches of 500, seed 42, orders dated 2022-01-01 through 2025-10-30.
func DefaultConfig() Config {
	counties := make([]string, 0, len(synth.DefaultCountyNames))
	for county := range synth.DefaultCountyNames {
		counties = append(counties, county)
	}
	sort.Strings(counties)
	return Config{
		ProductCount:    2000,
		CustomerCount:   2000,
		OrderCount:      2000,
		ItemCount:       2000,
		BatchSize:       500,
		Seed:            42,
		DateStart:       time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:         time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC),
		PriceMin:        50,
		PriceMax:        10000,
		MaxQty:          5,
		StapleCutoff:    400,
		StapleWeight:    3,
		Counties:        counties,
		CSVKey:          "products.csv",
		ResetBeforeLoad: true,
	}
}

// Validate rejects configurations the synthesizers would fail on anyway, so
// a bad run dies before any work happens.
func (c Config) Validate() error {
	if c.ProductCount <= 0 {
		return domain.ConfigError{Field: "product count", Reason: "must be positive"}
	}
	if c.CustomerCount <= 0 {
		return domain.ConfigError{Field: "customer count", Reason: "must be positive"}
	}
	if c.OrderCount <= 0 {
		return domain.ConfigError{Field: "order count", Reason: "must be positive"}
	}
	if c.ItemCount < 0 {
		return domain.ConfigError{Field: "item count", Reason: "must be non-negative"}
	}
	if c.BatchSize <= 0 {
		return domain.ConfigError{Field: "batch size", Reason: "must be positive"}
	}
	if len(c.Counties) == 0 {
		return domain.ConfigError{Field: "counties", Reason: "empty region set"}
	}
	if c.CSVKey == "" {
		return domain.ConfigError{Field: "csv key", Reason: "must be set"}
	}
	return nil
}

// ConfigFromEnv starts from DefaultConfig and applies DUKACORE_* overrides.
//
//	DUKACORE_RECORD_COUNT: sets all four counts at once
//	DUKACORE_BATCH_SIZE, DUKACORE_SEED, DUKACORE_STAPLE_CUTOFF
//	DUKACORE_DATE_START, DUKACORE_DATE_END (YYYY-MM-DD)
//	DUKACORE_CSV_KEY, DUKACORE_RESET (true|false)
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v := os.Getenv("DUKACORE_RECORD_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, domain.ConfigError{Field: "DUKACORE_RECORD_COUNT", Reason: err.Error()}
		}
		cfg.ProductCount, cfg.CustomerCount, cfg.OrderCount, cfg.ItemCount = n, n, n, n
	}
	if v := os.Getenv("DUKACORE_BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, domain.ConfigError{Field: "DUKACORE_BATCH_SIZE", Reason: err.Error()}
		}
		cfg.BatchSize = n
	}
	if v := os.Getenv("DUKACORE_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, domain.ConfigError{Field: "DUKACORE_SEED", Reason: err.Error()}
		}
		cfg.Seed = n
	}
	if v := os.Getenv("DUKACORE_STAPLE_CUTOFF"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, domain.ConfigError{Field: "DUKACORE_STAPLE_CUTOFF", Reason: err.Error()}
		}
		cfg.StapleCutoff = n
	}
	if v := os.Getenv("DUKACORE_DATE_START"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return Config{}, domain.ConfigError{Field: "DUKACORE_DATE_START", Reason: err.Error()}
		}
		cfg.DateStart = t
	}
	if v := os.Getenv("DUKACORE_DATE_END"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return Config{}, domain.ConfigError{Field: "DUKACORE_DATE_END", Reason: err.Error()}
		}
		cfg.DateEnd = t
	}
	if v := os.Getenv("DUKACORE_CSV_KEY"); v != "" {
		cfg.CSVKey = v
	}
	if v := os.Getenv("DUKACORE_RESET"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, domain.ConfigError{Field: "DUKACORE_RESET", Reason: err.Error()}
		}
		cfg.ResetBeforeLoad = b
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// String renders the knobs that shape a run, for startup logging.
func (c Config) String() string {
	return fmt.Sprintf("products=%d customers=%d orders=%d items=%d batch=%d seed=%d cutoff=%d",
		c.ProductCount, c.CustomerCount, c.OrderCount, c.ItemCount, c.BatchSize, c.Seed, c.StapleCutoff)
}
