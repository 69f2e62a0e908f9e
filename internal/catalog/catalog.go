// Package catalog loads product seed files (gzipped CSV of name,price) from
// the local file system or S3 and inserts them into the product store.
package catalog

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"tinyshop/internal/model"

	"github.com/shopspring/decimal"
)

// Loader defines the interface for loading catalogue seed files.
type Loader interface {
	// Load reads a gzipped CSV seed file and returns its products.
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// parse reads gzipped CSV rows of name,price. A first row whose name column
// is "name" is treated as a header. Blank lines are skipped by encoding/csv.
func parse(ctx context.Context, r io.Reader) ([]model.Product, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	reader := csv.NewReader(gz)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var products []model.Product
	for row := 1; ; row++ {
		if row%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		name := strings.TrimSpace(record[0])
		if row == 1 && strings.EqualFold(name, "name") {
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("row %d: name is required", row)
		}

		price, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q: %w", row, record[1], err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("row %d: price must not be negative", row)
		}
		if price.GreaterThan(model.MaxPrice) {
			return nil, fmt.Errorf("row %d: price exceeds %s", row, model.MaxPrice)
		}

		products = append(products, model.Product{Name: name, Price: price})
	}

	return products, nil
}
