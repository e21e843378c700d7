package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/quotes"
)

// Holding is one valued position in a user's portfolio.
type Holding struct {
	Symbol   string
	Name     string
	Quantity int64
	Price    decimal.Decimal
	Value    decimal.Decimal
}

// Portfolio is the full portfolio view: valued holdings, the cash balance,
// and the grand total (cash plus the sum of all position values).
type Portfolio struct {
	Holdings   []Holding
	Cash       decimal.Decimal
	GrandTotal decimal.Decimal
}

// Ledger entry types.
const (
	EntryBuy  = "BUY"
	EntrySell = "SELL"
)

// LedgerEntry is one row of a user's transaction history.
type LedgerEntry struct {
	Type     string
	Symbol   string
	Quantity int64
	Price    decimal.Decimal
	Time     time.Time
}

// portfolioService derives holdings and history by re-aggregating the full
// ledger on every call. Nothing here mutates state.
type portfolioService struct {
	db     *gorm.DB
	quotes quotes.Service
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, quoteService quotes.Service) PortfolioServicer {
	return &portfolioService{db: db, quotes: quoteService}
}

// symbolQuantity is a scan target for per-symbol quantity aggregates.
type symbolQuantity struct {
	Symbol   string
	Quantity int64
}

// netQuantities returns the net shares held per symbol for a user, in
// symbol order. Symbols that were fully sold off (net zero) are omitted.
func netQuantities(db *gorm.DB, userID uint) ([]symbolQuantity, error) {
	var bought []symbolQuantity
	if err := db.Model(&models.Purchase{}).
		Select("symbol, SUM(quantity) AS quantity").
		Where("user_id = ?", userID).
		Group("symbol").
		Order("symbol").
		Scan(&bought).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sold []symbolQuantity
	if err := db.Model(&models.Sell{}).
		Select("symbol, SUM(quantity) AS quantity").
		Where("user_id = ?", userID).
		Group("symbol").
		Scan(&sold).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	soldBySymbol := make(map[string]int64, len(sold))
	for _, row := range sold {
		soldBySymbol[row.Symbol] = row.Quantity
	}

	net := make([]symbolQuantity, 0, len(bought))
	for _, row := range bought {
		quantity := row.Quantity - soldBySymbol[row.Symbol]
		if quantity <= 0 {
			continue
		}
		net = append(net, symbolQuantity{Symbol: row.Symbol, Quantity: quantity})
	}
	return net, nil
}

// GetPortfolio values every held symbol at its current quoted price.
// A failed lookup for any held symbol fails the whole view.
func (s *portfolioService) GetPortfolio(ctx context.Context, userID uint) (*Portfolio, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	positions, err := netQuantities(s.db, userID)
	if err != nil {
		return nil, err
	}

	portfolio := &Portfolio{
		Holdings:   make([]Holding, 0, len(positions)),
		Cash:       user.Cash,
		GrandTotal: user.Cash,
	}

	for _, position := range positions {
		quote, err := s.quotes.Lookup(ctx, position.Symbol)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, err)
		}
		value := quote.Price.Mul(decimal.NewFromInt(position.Quantity))
		portfolio.Holdings = append(portfolio.Holdings, Holding{
			Symbol:   position.Symbol,
			Name:     quote.Name,
			Quantity: position.Quantity,
			Price:    quote.Price,
			Value:    value,
		})
		portfolio.GrandTotal = portfolio.GrandTotal.Add(value)
	}

	return portfolio, nil
}

// HeldSymbols returns the symbols a user currently holds, for the sell form.
func (s *portfolioService) HeldSymbols(userID uint) ([]string, error) {
	positions, err := netQuantities(s.db, userID)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, len(positions))
	for i, position := range positions {
		symbols[i] = position.Symbol
	}
	return symbols, nil
}

// History returns the user's full ledger, buys and sells merged, newest first.
func (s *portfolioService) History(userID uint) ([]LedgerEntry, error) {
	var purchases []models.Purchase
	if err := s.db.Where("user_id = ?", userID).Find(&purchases).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sells []models.Sell
	if err := s.db.Where("user_id = ?", userID).Find(&sells).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]LedgerEntry, 0, len(purchases)+len(sells))
	for _, p := range purchases {
		entries = append(entries, LedgerEntry{
			Type:     EntryBuy,
			Symbol:   p.Symbol,
			Quantity: p.Quantity,
			Price:    p.Price,
			Time:     p.CreatedAt,
		})
	}
	for _, sale := range sells {
		entries = append(entries, LedgerEntry{
			Type:     EntrySell,
			Symbol:   sale.Symbol,
			Quantity: sale.Quantity,
			Price:    sale.Price,
			Time:     sale.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.After(entries[j].Time)
	})
	return entries, nil
}
