// Package pricing turns requested order lines into priced lines using a
// catalogue snapshot. It performs no I/O.
package pricing

import (
	"tinyshop/internal/model"

	"github.com/shopspring/decimal"
)

// Line is a priced order line.
type Line struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Quote is the result of pricing an order request.
type Quote struct {
	Lines      []Line
	GrandTotal decimal.Decimal

	// Dropped holds the product IDs that had no catalogue entry, in request order.
	Dropped []int64
}

// Catalog maps product ID to its current catalogue record.
type Catalog map[int64]model.Product

// NewCatalog indexes a product lookup result by ID.
func NewCatalog(products []model.Product) Catalog {
	c := make(Catalog, len(products))
	for _, p := range products {
		c[p.ID] = p
	}
	return c
}

// Price prices each requested line against the catalogue.
//
// Lines whose product is missing from the catalogue are dropped from both the
// line list and the grand total; they are reported in Quote.Dropped. Duplicate
// product IDs are priced as separate lines. If nothing matches the quote has no
// lines and a zero total.
func Price(requested []model.OrderItemRequest, catalog Catalog) Quote {
	q := Quote{
		Lines:      make([]Line, 0, len(requested)),
		GrandTotal: decimal.Zero,
	}

	for _, r := range requested {
		p, ok := catalog[r.ProductID]
		if !ok {
			q.Dropped = append(q.Dropped, r.ProductID)
			continue
		}

		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(r.Quantity)))
		q.Lines = append(q.Lines, Line{
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			UnitPrice: p.Price,
			LineTotal: lineTotal,
		})
		q.GrandTotal = q.GrandTotal.Add(lineTotal)
	}

	return q
}

// ProductIDs returns the distinct product IDs of the request, in first-seen order.
func ProductIDs(requested []model.OrderItemRequest) []int64 {
	seen := make(map[int64]struct{}, len(requested))
	ids := make([]int64, 0, len(requested))
	for _, r := range requested {
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		ids = append(ids, r.ProductID)
	}
	return ids
}
