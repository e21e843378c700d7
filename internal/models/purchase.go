package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is one buy row in the ledger. Rows are append-only: they are
// never updated or deleted, and holdings are always derived by summing
// purchase and sell quantities per (user, symbol).
type Purchase struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"index:idx_purchases_user_symbol;not null" json:"user_id"`
	Symbol    string          `gorm:"index:idx_purchases_user_symbol;size:10;not null" json:"symbol"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}
