package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/quotes"
)

// tradingService validates and commits buys and sells. Each operation runs
// its check and its mutation inside a single database transaction, so
// concurrent requests from the same user cannot overspend cash or oversell
// shares.
type tradingService struct {
	db     *gorm.DB
	quotes quotes.Service
}

// NewTradingService creates a new TradingServicer.
func NewTradingService(db *gorm.DB, quoteService quotes.Service) TradingServicer {
	return &tradingService{db: db, quotes: quoteService}
}

func (s *tradingService) lookup(ctx context.Context, symbol string) (quotes.Quote, error) {
	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		if errors.Is(err, quotes.ErrNotFound) {
			return quotes.Quote{}, apperrors.ErrSymbolNotFound
		}
		return quotes.Quote{}, apperrors.Wrap(apperrors.ErrQuoteUnavailable, err)
	}
	return quote, nil
}

func validateOrder(symbol string, shares int64) error {
	if strings.TrimSpace(symbol) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "must provide a symbol")
	}
	if shares <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "shares must be a positive whole number")
	}
	return nil
}

// Buy purchases shares at the current quoted price, debiting cash and
// appending a purchase row. The funds check is folded into the debit
// statement itself, so the balance can never go negative.
func (s *tradingService) Buy(ctx context.Context, userID uint, symbol string, shares int64) error {
	if err := validateOrder(symbol, shares); err != nil {
		return err
	}

	quote, err := s.lookup(ctx, symbol)
	if err != nil {
		return err
	}
	cost := quote.Price.Mul(decimal.NewFromInt(shares))

	return s.db.Transaction(func(tx *gorm.DB) error {
		debit := tx.Model(&models.User{}).
			Where("id = ? AND cash >= ?", userID, cost).
			Update("cash", gorm.Expr("cash - ?", cost))
		if debit.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, debit.Error)
		}
		if debit.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count == 0 {
				return apperrors.ErrUserNotFound
			}
			return apperrors.ErrInsufficientFunds
		}

		purchase := &models.Purchase{
			UserID:   userID,
			Symbol:   quote.Symbol,
			Quantity: shares,
			Price:    quote.Price,
		}
		if err := tx.Create(purchase).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// Sell sells shares at the current quoted price, appending a sell row and
// crediting cash. The cash credit runs first: the user-row update takes
// the row lock, so concurrent sells for the same user serialize on it and
// the net-quantity check below always sees the winner's committed rows.
// An oversell fails that check and the rollback undoes the credit.
func (s *tradingService) Sell(ctx context.Context, userID uint, symbol string, shares int64) error {
	if err := validateOrder(symbol, shares); err != nil {
		return err
	}

	quote, err := s.lookup(ctx, symbol)
	if err != nil {
		return err
	}
	proceeds := quote.Price.Mul(decimal.NewFromInt(shares))

	return s.db.Transaction(func(tx *gorm.DB) error {
		credit := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("cash", gorm.Expr("cash + ?", proceeds))
		if credit.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, credit.Error)
		}
		if credit.RowsAffected == 0 {
			return apperrors.ErrUserNotFound
		}

		held, err := netQuantity(tx, userID, quote.Symbol)
		if err != nil {
			return err
		}
		if shares > held {
			return apperrors.ErrInsufficientShares
		}

		sale := &models.Sell{
			UserID:   userID,
			Symbol:   quote.Symbol,
			Quantity: shares,
			Price:    quote.Price,
		}
		if err := tx.Create(sale).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// netQuantity computes shares currently held for one (user, symbol) pair.
func netQuantity(tx *gorm.DB, userID uint, symbol string) (int64, error) {
	var bought, sold int64
	if err := tx.Model(&models.Purchase{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Scan(&bought).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := tx.Model(&models.Sell{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Scan(&sold).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bought - sold, nil
}
