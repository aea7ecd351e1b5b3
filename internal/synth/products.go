package synth

import (
	"math/rand"
	"time"

	"dukacore/pkg/domain"

	"github.com/shopspring/decimal"
)

// catalogSeed pairs a category with its base product names.
type catalogSeed struct {
	category string
	names    []string
}

var productCatalogSeeds = []catalogSeed{
	{"Electronics", []string{`Smart TV 43"`, "Smartphone Model X", "Bluetooth Speaker", "Laptop Slim"}},
	{"Grocery", []string{"Maize Flour 2kg", "Basmati Rice 5kg", "Sugar 2kg", "Milk 1L"}},
	{"Furniture", []string{"Dining Table", "Office Chair", "Sofa 3-seater", "Coffee Table"}},
	{"Clothing", []string{"Kitenge Dress", "Safari Boot", "School Uniform", "Sports Jersey"}},
	{"Beverages", []string{"Coca-Cola 500ml", "Mineral Water 1L", "Tusker Lager 500ml", "Juice 1L"}},
}

var productDescriptors = []string{"Classic", "Pro", "2024 Edition", "Limited", "Value", "Deluxe", "Mini"}

// ProductConfig bounds product generation.
type ProductConfig struct {
	Count    int
	PriceMin float64
	PriceMax float64
	StockMax int
}

// ProductSynthesizer emits a fixed-size product batch with dense ids 1..N.
type ProductSynthesizer struct {
	cfg ProductConfig
	rng *rand.Rand
	now func() time.Time
}

// NewProductSynthesizer validates cfg and returns a synthesizer drawing from rng.
func NewProductSynthesizer(cfg ProductConfig, rng *rand.Rand) (*ProductSynthesizer, error) {
	if cfg.Count <= 0 {
		return nil, domain.ConfigError{Field: "product count", Reason: "must be positive"}
	}
	if cfg.PriceMin <= 0 || cfg.PriceMax < cfg.PriceMin {
		return nil, domain.ConfigError{Field: "price range", Reason: "must satisfy 0 < min <= max"}
	}
	if cfg.StockMax < 0 {
		return nil, domain.ConfigError{Field: "stock max", Reason: "must be non-negative"}
	}
	return &ProductSynthesizer{cfg: cfg, rng: rng, now: func() time.Time { return time.Now().UTC() }}, nil
}

// WithClock overrides the created_at clock. Tests use a fixed clock to make
// runs byte-reproducible.
func (s *ProductSynthesizer) WithClock(now func() time.Time) *ProductSynthesizer {
	s.now = now
	return s
}

// Generate produces the configured number of products. Names are free text
// composed from a random (category, base name) pair and a descriptor suffix;
// uniqueness is never derived from them.
func (s *ProductSynthesizer) Generate() ([]domain.Product, error) {
	products := make([]domain.Product, 0, s.cfg.Count)
	for id := 1; id <= s.cfg.Count; id++ {
		seed := productCatalogSeeds[s.rng.Intn(len(productCatalogSeeds))]
		base := seed.names[s.rng.Intn(len(seed.names))]
		descriptor := productDescriptors[s.rng.Intn(len(productDescriptors))]

		products = append(products, domain.Product{
			ID:            id,
			Name:          base + " " + descriptor,
			Price:         randomAmount(s.rng, s.cfg.PriceMin, s.cfg.PriceMax),
			StockQuantity: s.rng.Intn(s.cfg.StockMax + 1),
			SourceSystem:  domain.SourceSystems[s.rng.Intn(len(domain.SourceSystems))],
			CreatedAt:     s.now(),
		})
	}
	return products, nil
}

// randomAmount draws a uniform price in [min, max] rounded to two decimal
// places at the point of computation.
func randomAmount(rng *rand.Rand, min, max float64) decimal.Decimal {
	v := min + rng.Float64()*(max-min)
	return decimal.NewFromFloat(v).Round(2)
}
