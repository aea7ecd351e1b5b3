// Package domain defines the persistent entities, value types, sink contract,
// and error taxonomy used by dukacore.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table identifies a relational table produced by a generation run.
type Table string

// Tables persisted by the pipeline, listed in foreign-key dependency order.
const (
	// TableProducts holds the synthetic product catalog.
	TableProducts Table = "products"
	// TableCustomers holds the synthetic customer base.
	TableCustomers Table = "customers"
	// TableOrders holds order headers referencing customers.
	TableOrders Table = "orders"
	// TableOrderItems holds order lines referencing orders and products.
	TableOrderItems Table = "order_items"
)

// SourceSystem tags the origin system a product record is attributed to.
type SourceSystem string

// Recognized source system tags.
const (
	SourceCSV SourceSystem = "CSV"
	SourceAPI SourceSystem = "API"
)

// SourceSystems enumerates all source tags for uniform sampling.
var SourceSystems = []SourceSystem{SourceCSV, SourceAPI}

// Product is an immutable synthetic catalog entry.
type Product struct {
	ID            int             `json:"product_id"`
	Name          string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	SourceSystem  SourceSystem    `json:"source_system"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Customer is an immutable synthetic customer record.
type Customer struct {
	ID           int       `json:"customer_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"created_at"`
}

// Order is an order header. TotalAmount is derived from the order's items
// during reconciliation and is never settable independently.
type Order struct {
	ID          int             `json:"order_id"`
	CustomerID  int             `json:"customer_id"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// OrderItem is a single order line. Subtotal is Quantity times UnitPrice rounded
// to two decimal places at computation time.
type OrderItem struct {
	ID        int             `json:"order_item_id"`
	OrderID   int             `json:"order_id"`
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PersonName is a first/last name pair produced by a name provider.
type PersonName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Column layouts per table, in the order sink rows are emitted.
var (
	ProductColumns   = []string{"product_id", "product_name", "price", "stock_quantity", "source_system", "created_at"}
	CustomerColumns  = []string{"customer_id", "first_name", "last_name", "email", "phone", "address_line1", "address_line2", "city", "country", "created_at"}
	OrderColumns     = []string{"order_id", "customer_id", "order_date", "total_amount"}
	OrderItemColumns = []string{"order_item_id", "order_id", "product_id", "quantity", "unit_price", "subtotal"}
)

// Row returns the record as a sink row matching ProductColumns.
func (p Product) Row() []any {
	return []any{p.ID, p.Name, p.Price, p.StockQuantity, string(p.SourceSystem), p.CreatedAt}
}

// Row returns the record as a sink row matching CustomerColumns.
func (c Customer) Row() []any {
	return []any{c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.AddressLine1, c.AddressLine2, c.City, c.Country, c.CreatedAt}
}

// Row returns the record as a sink row matching OrderColumns.
func (o Order) Row() []any {
	return []any{o.ID, o.CustomerID, o.OrderDate, o.TotalAmount}
}

// Row returns the record as a sink row matching OrderItemColumns.
func (i OrderItem) Row() []any {
	return []any{i.ID, i.OrderID, i.ProductID, i.Quantity, i.UnitPrice, i.Subtotal}
}

// Dataset bundles the four related batches produced by one generation run.
type Dataset struct {
	Products   []Product   `json:"products"`
	Customers  []Customer  `json:"customers"`
	Orders     []Order     `json:"orders"`
	OrderItems []OrderItem `json:"order_items"`
}
