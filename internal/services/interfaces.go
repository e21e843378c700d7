package services

import (
	"context"

	"papertrade/internal/models"
)

// UserServicer handles registration and credential checks.
type UserServicer interface {
	Register(username, password, confirmation string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// PortfolioServicer derives holdings and history from the ledger.
type PortfolioServicer interface {
	GetPortfolio(ctx context.Context, userID uint) (*Portfolio, error)
	HeldSymbols(userID uint) ([]string, error)
	History(userID uint) ([]LedgerEntry, error)
}

// TradingServicer validates and commits buys and sells.
type TradingServicer interface {
	Buy(ctx context.Context, userID uint, symbol string, shares int64) error
	Sell(ctx context.Context, userID uint, symbol string, shares int64) error
}
