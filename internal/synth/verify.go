package synth

import (
	"fmt"

	"dukacore/pkg/domain"
)

// VerifyDataset asserts the cross-batch invariants before a dataset is handed
// to a sink: dense 1..N ids per table, resolvable foreign keys, at least one
// item per order, and per-order totals matching the rounded sum of item
// subtotals. Generation guarantees all of these; verification exists so an
// implementation bug fails the run instead of persisting corrupt batches.
func VerifyDataset(ds domain.Dataset) error {
	if err := verifyDense(domain.TableProducts, len(ds.Products), func(i int) int { return ds.Products[i].ID }); err != nil {
		return err
	}
	if err := verifyDense(domain.TableCustomers, len(ds.Customers), func(i int) int { return ds.Customers[i].ID }); err != nil {
		return err
	}
	if err := verifyDense(domain.TableOrders, len(ds.Orders), func(i int) int { return ds.Orders[i].ID }); err != nil {
		return err
	}
	if err := verifyDense(domain.TableOrderItems, len(ds.OrderItems), func(i int) int { return ds.OrderItems[i].ID }); err != nil {
		return err
	}

	customers := make(map[int]struct{}, len(ds.Customers))
	for _, c := range ds.Customers {
		customers[c.ID] = struct{}{}
	}
	products := make(map[int]struct{}, len(ds.Products))
	for _, p := range ds.Products {
		products[p.ID] = struct{}{}
	}
	orders := make(map[int]struct{}, len(ds.Orders))
	for _, o := range ds.Orders {
		orders[o.ID] = struct{}{}
		if _, ok := customers[o.CustomerID]; !ok {
			return domain.ConsistencyError{Table: domain.TableOrders, Detail: fmt.Sprintf("order %d references missing customer %d", o.ID, o.CustomerID)}
		}
	}

	itemsPerOrder := make(map[int]int, len(ds.Orders))
	for _, item := range ds.OrderItems {
		if _, ok := orders[item.OrderID]; !ok {
			return domain.ConsistencyError{Table: domain.TableOrderItems, Detail: fmt.Sprintf("item %d references missing order %d", item.ID, item.OrderID)}
		}
		if _, ok := products[item.ProductID]; !ok {
			return domain.ConsistencyError{Table: domain.TableOrderItems, Detail: fmt.Sprintf("item %d references missing product %d", item.ID, item.ProductID)}
		}
		if item.Quantity < 1 {
			return domain.ConsistencyError{Table: domain.TableOrderItems, Detail: fmt.Sprintf("item %d has quantity %d", item.ID, item.Quantity)}
		}
		itemsPerOrder[item.OrderID]++
	}

	verifyOrders := append([]domain.Order(nil), ds.Orders...)
	verifyItems := append([]domain.OrderItem(nil), ds.OrderItems...)
	reconcile(verifyOrders, verifyItems)
	for i, o := range ds.Orders {
		if itemsPerOrder[o.ID] == 0 {
			return domain.ConsistencyError{Table: domain.TableOrders, Detail: fmt.Sprintf("order %d has no items", o.ID)}
		}
		if !o.TotalAmount.Equal(verifyOrders[i].TotalAmount) {
			return domain.ConsistencyError{Table: domain.TableOrders, Detail: fmt.Sprintf("order %d total %s does not match item sum %s", o.ID, o.TotalAmount, verifyOrders[i].TotalAmount)}
		}
	}
	return nil
}

func verifyDense(table domain.Table, n int, id func(int) int) error {
	for i := 0; i < n; i++ {
		if got := id(i); got != i+1 {
			return domain.ConsistencyError{Table: table, Detail: fmt.Sprintf("id at position %d is %d, want %d", i, got, i+1)}
		}
	}
	return nil
}
