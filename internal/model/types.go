// Package model defines domain types used by the simulator.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item available for purchase.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Stock int64
}

// CartLine is a single cart entry: a product reference and the
// quantity the user intends to buy.
type CartLine struct {
	ProductID string
	Quantity  int64
}

// SummaryLine is a cart line joined against the catalog for display.
type SummaryLine struct {
	ProductID string
	Name      string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// CartSummary holds the priced lines of a cart and their grand total.
type CartSummary struct {
	Lines []SummaryLine
	Total decimal.Decimal
}

// Order is the receipt produced by a committed checkout.
type Order struct {
	ID       string
	Lines    []SummaryLine
	Total    decimal.Decimal
	PlacedAt time.Time
}
