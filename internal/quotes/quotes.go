// Package quotes looks up current prices and company names for ticker
// symbols from an external quote service.
package quotes

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when the quote service does not know the symbol.
var ErrNotFound = errors.New("symbol not found")

// Quote is a single looked-up quote.
type Quote struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}

// Service looks up the current quote for a ticker symbol.
type Service interface {
	Lookup(ctx context.Context, symbol string) (Quote, error)
}
