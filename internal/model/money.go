package model

import "github.com/shopspring/decimal"

func init() {
	// Prices and totals are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}
