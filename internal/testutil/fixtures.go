package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"papertrade/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password, a unique username,
// and the default 10,000.00 starting cash.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithCash(t, db, "10000.00")
}

// CreateTestUserWithCash creates a user with the given cash balance.
func CreateTestUserWithCash(t *testing.T, db *gorm.DB, cash string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: fmt.Sprintf("user%d", nextID()),
		Password: string(hash),
		Cash:     decimal.RequireFromString(cash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPurchase appends a purchase row to the ledger.
func CreateTestPurchase(t *testing.T, db *gorm.DB, userID uint, symbol string, quantity int64, price string) *models.Purchase {
	t.Helper()

	purchase := &models.Purchase{
		UserID:   userID,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
	}
	if err := db.Create(purchase).Error; err != nil {
		t.Fatalf("failed to create test purchase: %v", err)
	}
	return purchase
}

// CreateTestSell appends a sell row to the ledger.
func CreateTestSell(t *testing.T, db *gorm.DB, userID uint, symbol string, quantity int64, price string) *models.Sell {
	t.Helper()

	sale := &models.Sell{
		UserID:   userID,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
	}
	if err := db.Create(sale).Error; err != nil {
		t.Fatalf("failed to create test sell: %v", err)
	}
	return sale
}
