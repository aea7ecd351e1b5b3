package synth

import (
	"math/rand"
	"time"

	"dukacore/pkg/domain"

	"github.com/shopspring/decimal"
)

// OrderConfig bounds order and order-item generation.
type OrderConfig struct {
	OrderCount int // M: number of orders
	ItemCount  int // I: target number of order items, I >= M in the usual case
	DateStart  time.Time
	DateEnd    time.Time
	PriceMin   float64
	PriceMax   float64
	MaxQty     int
	// StapleCutoff marks the staple tier: product ids at or below it sample
	// with StapleWeight, all others with weight 1.
	StapleCutoff int
	StapleWeight int
}

// OrderSynthesizer produces the two related batches, orders and order items,
// whose cross-references and per-order totals hold exactly.
type OrderSynthesizer struct {
	cfg OrderConfig
	rng *rand.Rand
}

// NewOrderSynthesizer validates cfg.
func NewOrderSynthesizer(cfg OrderConfig, rng *rand.Rand) (*OrderSynthesizer, error) {
	if cfg.OrderCount <= 0 {
		return nil, domain.ConfigError{Field: "order count", Reason: "must be positive"}
	}
	if cfg.ItemCount < 0 {
		return nil, domain.ConfigError{Field: "item count", Reason: "must be non-negative"}
	}
	if cfg.DateEnd.Before(cfg.DateStart) {
		return nil, domain.ConfigError{Field: "date range", Reason: "end precedes start"}
	}
	if cfg.PriceMin <= 0 || cfg.PriceMax < cfg.PriceMin {
		return nil, domain.ConfigError{Field: "price range", Reason: "must satisfy 0 < min <= max"}
	}
	if cfg.MaxQty < 1 {
		return nil, domain.ConfigError{Field: "max quantity", Reason: "must be at least 1"}
	}
	if cfg.StapleWeight < 1 {
		cfg.StapleWeight = 3
	}
	return &OrderSynthesizer{cfg: cfg, rng: rng}, nil
}

// Generate builds M orders and their items from the given id sets.
//
// Passes, in order: the order skeleton (random customer and date, total
// unset), one mandatory item per order, fill items up to the target item
// count attached to random orders, then reconciliation writing each order's
// total as the rounded sum of its item subtotals. Every order therefore has
// at least one item and a defined total regardless of how I compares to M.
func (s *OrderSynthesizer) Generate(customerIDs, productIDs []int) ([]domain.Order, []domain.OrderItem, error) {
	if len(customerIDs) == 0 {
		return nil, nil, domain.ConfigError{Field: "customer ids", Reason: "empty list"}
	}
	if len(productIDs) == 0 {
		return nil, nil, domain.ConfigError{Field: "product ids", Reason: "empty list"}
	}

	chooser, err := NewWeightedChooser(TierWeights(productIDs, s.cfg.StapleCutoff, s.cfg.StapleWeight, 1))
	if err != nil {
		return nil, nil, err
	}

	totalDays := int(s.cfg.DateEnd.Sub(s.cfg.DateStart).Hours()/24) + 1

	orders := make([]domain.Order, 0, s.cfg.OrderCount)
	for id := 1; id <= s.cfg.OrderCount; id++ {
		orders = append(orders, domain.Order{
			ID:         id,
			CustomerID: customerIDs[s.rng.Intn(len(customerIDs))],
			OrderDate:  s.cfg.DateStart.AddDate(0, 0, s.rng.Intn(totalDays)),
		})
	}

	items := make([]domain.OrderItem, 0, max(s.cfg.ItemCount, s.cfg.OrderCount))
	itemID := 1
	for _, order := range orders {
		items = append(items, s.randomItem(itemID, order.ID, productIDs, chooser))
		itemID++
	}

	for remaining := s.cfg.ItemCount - len(items); remaining > 0; remaining-- {
		order := orders[s.rng.Intn(len(orders))]
		items = append(items, s.randomItem(itemID, order.ID, productIDs, chooser))
		itemID++
	}

	reconcile(orders, items)
	return orders, items, nil
}

// randomItem draws one order line: weighted product, uniform quantity and a
// unit price independent of the product's catalog price, modeling
// point-of-sale variance.
func (s *OrderSynthesizer) randomItem(id, orderID int, productIDs []int, chooser *WeightedChooser) domain.OrderItem {
	quantity := 1 + s.rng.Intn(s.cfg.MaxQty)
	unitPrice := randomAmount(s.rng, s.cfg.PriceMin, s.cfg.PriceMax)
	return domain.OrderItem{
		ID:        id,
		OrderID:   orderID,
		ProductID: productIDs[chooser.Pick(s.rng)],
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
	}
}

// reconcile writes each order's total as the rounded sum of its items'
// already-rounded subtotals.
func reconcile(orders []domain.Order, items []domain.OrderItem) {
	totals := make(map[int]decimal.Decimal, len(orders))
	for _, item := range items {
		totals[item.OrderID] = totals[item.OrderID].Add(item.Subtotal)
	}
	for i := range orders {
		orders[i].TotalAmount = totals[orders[i].ID].Round(2)
	}
}
