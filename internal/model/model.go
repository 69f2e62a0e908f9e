// Package model holds the entities, request and response payloads, and domain
// errors shared across layers.
package model

import "github.com/shopspring/decimal"

func init() {
	// Money is rendered as a JSON number, e.g. {"total":35}.
	decimal.MarshalJSONWithoutQuotes = true
}
