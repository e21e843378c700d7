package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the user model in the database. Cash is a decimal
// balance; it is only ever mutated by the trading service.
type User struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Username  string          `gorm:"uniqueIndex;not null" json:"username"`
	Password  string          `gorm:"not null" json:"-"`
	Cash      decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"cash"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
