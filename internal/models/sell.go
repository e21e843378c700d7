package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sell is one sell row in the ledger, append-only like Purchase. Price is
// the quoted price at the time of sale; there is no cost-basis tracking.
type Sell struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"index:idx_sells_user_symbol;not null" json:"user_id"`
	Symbol    string          `gorm:"index:idx_sells_user_symbol;size:10;not null" json:"symbol"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}
