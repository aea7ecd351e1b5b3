// Package export renders generated batches into flat tabular artifacts and
// stores them through the blob layer.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"dukacore/internal/blob"
	"dukacore/pkg/domain"
)

// ContentTypeCSV is the MIME type attached to CSV artifacts.
const ContentTypeCSV = "text/csv"

// RenderProductsCSV renders the products batch as a CSV file mirroring the
// products table: header row, one row per product, timestamps in RFC 3339 so
// the column sorts lexically.
func RenderProductsCSV(products []domain.Product) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(domain.ProductColumns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, p := range products {
		record := []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Price.StringFixed(2),
			strconv.Itoa(p.StockQuantity),
			string(p.SourceSystem),
			p.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write product %d: %w", p.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteProductsCSV renders the batch and stores it at key, replacing any
// artifact from a previous run.
func WriteProductsCSV(ctx context.Context, store blob.Store, key string, products []domain.Product) (blob.Info, error) {
	payload, err := RenderProductsCSV(products)
	if err != nil {
		return blob.Info{}, err
	}
	info, err := store.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: ContentTypeCSV,
		Metadata:    map[string]string{"rows": strconv.Itoa(len(products))},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("store %s: %w", key, err)
	}
	return info, nil
}
