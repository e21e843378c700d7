package testutil

import (
	"context"
	"strings"
	"sync"

	"papertrade/internal/quotes"

	"github.com/shopspring/decimal"
)

// StaticQuotes is an in-memory quotes.Service for tests. Symbols not set
// return quotes.ErrNotFound; a forced error fails every lookup, which is
// how quote-service outages are simulated.
type StaticQuotes struct {
	mu     sync.Mutex
	byName map[string]quotes.Quote
	err    error
}

// NewStaticQuotes creates an empty quote stub.
func NewStaticQuotes() *StaticQuotes {
	return &StaticQuotes{byName: make(map[string]quotes.Quote)}
}

// Set registers or reprices a symbol.
func (s *StaticQuotes) Set(symbol, name, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	symbol = strings.ToUpper(symbol)
	s.byName[symbol] = quotes.Quote{
		Symbol: symbol,
		Name:   name,
		Price:  decimal.RequireFromString(price),
	}
}

// Fail makes every subsequent lookup return err.
func (s *StaticQuotes) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Lookup implements quotes.Service.
func (s *StaticQuotes) Lookup(_ context.Context, symbol string) (quotes.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return quotes.Quote{}, s.err
	}
	quote, ok := s.byName[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return quotes.Quote{}, quotes.ErrNotFound
	}
	return quote, nil
}
