package synth

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestProductSynthesizerRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  ProductConfig
	}{
		{"zero count", ProductConfig{Count: 0, PriceMin: 50, PriceMax: 100, StockMax: 10}},
		{"negative count", ProductConfig{Count: -5, PriceMin: 50, PriceMax: 100, StockMax: 10}},
		{"inverted price range", ProductConfig{Count: 1, PriceMin: 100, PriceMax: 50, StockMax: 10}},
		{"zero min price", ProductConfig{Count: 1, PriceMin: 0, PriceMax: 50, StockMax: 10}},
		{"negative stock", ProductConfig{Count: 1, PriceMin: 50, PriceMax: 100, StockMax: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewProductSynthesizer(tc.cfg, rand.New(rand.NewSource(1))); err == nil {
				t.Fatal("expected config error")
			}
		})
	}
}

func TestProductSynthesizerGeneratesDenseIDs(t *testing.T) {
	s, err := NewProductSynthesizer(ProductConfig{Count: 50, PriceMin: 50, PriceMax: 10000, StockMax: 500}, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("new synthesizer: %v", err)
	}
	products, err := s.WithClock(fixedClock()).Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(products) != 50 {
		t.Fatalf("expected 50 products, got %d", len(products))
	}
	for i, p := range products {
		if p.ID != i+1 {
			t.Fatalf("product %d has id %d", i, p.ID)
		}
	}
}

func TestProductSynthesizerBoundsAndNames(t *testing.T) {
	s, err := NewProductSynthesizer(ProductConfig{Count: 200, PriceMin: 50, PriceMax: 10000, StockMax: 500}, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("new synthesizer: %v", err)
	}
	products, err := s.WithClock(fixedClock()).Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	min := decimal.NewFromInt(50)
	max := decimal.NewFromInt(10000)
	for _, p := range products {
		if p.Price.LessThan(min) || p.Price.GreaterThan(max) {
			t.Fatalf("price %s out of range", p.Price)
		}
		if p.Price.Exponent() < -2 {
			t.Fatalf("price %s has more than two decimal places", p.Price)
		}
		if p.StockQuantity < 0 || p.StockQuantity > 500 {
			t.Fatalf("stock %d out of range", p.StockQuantity)
		}
		found := false
		for _, d := range productDescriptors {
			if strings.HasSuffix(p.Name, " "+d) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("name %q has no descriptor suffix", p.Name)
		}
	}
}

func TestProductSynthesizerDeterministic(t *testing.T) {
	gen := func() string {
		s, err := NewProductSynthesizer(ProductConfig{Count: 100, PriceMin: 50, PriceMax: 10000, StockMax: 500}, rand.New(rand.NewSource(42)))
		if err != nil {
			t.Fatalf("new synthesizer: %v", err)
		}
		products, err := s.WithClock(fixedClock()).Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		var b strings.Builder
		for _, p := range products {
			b.WriteString(p.Name)
			b.WriteString(p.Price.String())
		}
		return b.String()
	}
	if gen() != gen() {
		t.Fatal("two seeded runs diverged")
	}
}
