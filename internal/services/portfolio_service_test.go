package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"papertrade/internal/models"
	"papertrade/internal/testutil"
)

func TestGetPortfolio(t *testing.T) {
	t.Run("valued_holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := testutil.NewStaticQuotes()
		stub.Set("AAA", "Triple A Corp", "60.00")
		stub.Set("CCC", "Charlie Ltd", "5.00")
		svc := NewPortfolioService(db, stub)

		user := testutil.CreateTestUserWithCash(t, db, "9740.00")
		testutil.CreateTestPurchase(t, db, user.ID, "AAA", 10, "50.00")
		testutil.CreateTestSell(t, db, user.ID, "AAA", 4, "60.00")
		testutil.CreateTestPurchase(t, db, user.ID, "CCC", 2, "4.00")

		portfolio, err := svc.GetPortfolio(context.Background(), user.ID)
		testutil.AssertNoError(t, err)

		if len(portfolio.Holdings) != 2 {
			t.Fatalf("expected 2 holdings, got %d", len(portfolio.Holdings))
		}

		aaa := portfolio.Holdings[0]
		if aaa.Symbol != "AAA" || aaa.Name != "Triple A Corp" {
			t.Errorf("unexpected first holding: %+v", aaa)
		}
		if aaa.Quantity != 6 {
			t.Errorf("expected 6 AAA shares, got %d", aaa.Quantity)
		}
		testutil.AssertDecimalEqual(t, aaa.Price, "60.00")
		testutil.AssertDecimalEqual(t, aaa.Value, "360.00")

		ccc := portfolio.Holdings[1]
		if ccc.Symbol != "CCC" || ccc.Quantity != 2 {
			t.Errorf("unexpected second holding: %+v", ccc)
		}
		testutil.AssertDecimalEqual(t, ccc.Value, "10.00")

		testutil.AssertDecimalEqual(t, portfolio.Cash, "9740.00")
		testutil.AssertDecimalEqual(t, portfolio.GrandTotal, "10110.00")
	})

	t.Run("sold_out_symbols_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := testutil.NewStaticQuotes()
		svc := NewPortfolioService(db, stub)

		user := testutil.CreateTestUserWithCash(t, db, "1000.00")
		testutil.CreateTestPurchase(t, db, user.ID, "AAA", 5, "10.00")
		testutil.CreateTestSell(t, db, user.ID, "AAA", 5, "12.00")

		// No lookups happen because no symbol is held; an empty stub proves it.
		portfolio, err := svc.GetPortfolio(context.Background(), user.ID)
		testutil.AssertNoError(t, err)

		if len(portfolio.Holdings) != 0 {
			t.Errorf("expected no holdings, got %d", len(portfolio.Holdings))
		}
		testutil.AssertDecimalEqual(t, portfolio.GrandTotal, "1000.00")
	})

	t.Run("cash_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := testutil.NewStaticQuotes()
		svc := NewPortfolioService(db, stub)

		user := testutil.CreateTestUser(t, db)

		portfolio, err := svc.GetPortfolio(context.Background(), user.ID)
		testutil.AssertNoError(t, err)

		if len(portfolio.Holdings) != 0 {
			t.Errorf("expected no holdings, got %d", len(portfolio.Holdings))
		}
		testutil.AssertDecimalEqual(t, portfolio.Cash, "10000.00")
		testutil.AssertDecimalEqual(t, portfolio.GrandTotal, "10000.00")
	})

	t.Run("quote_failure_fails_view", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := testutil.NewStaticQuotes()
		stub.Fail(errors.New("connection refused"))
		svc := NewPortfolioService(db, stub)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestPurchase(t, db, user.ID, "AAA", 1, "10.00")

		_, err := svc.GetPortfolio(context.Background(), user.ID)
		testutil.AssertAppError(t, err, "QUOTE_UNAVAILABLE")
	})

	t.Run("read_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := testutil.NewStaticQuotes()
		stub.Set("AAA", "Triple A Corp", "50.00")
		svc := NewPortfolioService(db, stub)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestPurchase(t, db, user.ID, "AAA", 3, "50.00")

		first, err := svc.GetPortfolio(context.Background(), user.ID)
		testutil.AssertNoError(t, err)
		second, err := svc.GetPortfolio(context.Background(), user.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, second.GrandTotal, first.GrandTotal.String())

		var count int64
		if err := db.Model(&models.Purchase{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count purchases: %v", err)
		}
		if count != 1 {
			t.Errorf("expected ledger unchanged, got %d purchase rows", count)
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		stub := testutil.NewStaticQuotes()
		stub.Set("AAA", "Triple A Corp", "50.00")
		svc := NewPortfolioService(db, stub)

		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestPurchase(t, db, owner.ID, "AAA", 3, "50.00")

		portfolio, err := svc.GetPortfolio(context.Background(), other.ID)
		testutil.AssertNoError(t, err)
		if len(portfolio.Holdings) != 0 {
			t.Errorf("expected no holdings for other user, got %d", len(portfolio.Holdings))
		}
	})
}

func TestHeldSymbols(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	stub := testutil.NewStaticQuotes()
	svc := NewPortfolioService(db, stub)

	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestPurchase(t, db, user.ID, "BBB", 2, "20.00")
	testutil.CreateTestPurchase(t, db, user.ID, "AAA", 5, "10.00")
	testutil.CreateTestPurchase(t, db, user.ID, "CCC", 4, "30.00")
	testutil.CreateTestSell(t, db, user.ID, "CCC", 4, "35.00")

	symbols, err := svc.HeldSymbols(user.ID)
	testutil.AssertNoError(t, err)

	if len(symbols) != 2 {
		t.Fatalf("expected 2 symbols, got %d: %v", len(symbols), symbols)
	}
	// Symbol order, with the sold-out position gone.
	if symbols[0] != "AAA" || symbols[1] != "BBB" {
		t.Errorf("expected [AAA BBB], got %v", symbols)
	}
}

func TestHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	stub := testutil.NewStaticQuotes()
	svc := NewPortfolioService(db, stub)

	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	base := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	rows := []interface{}{
		&models.Purchase{UserID: user.ID, Symbol: "AAA", Quantity: 10, Price: decimal.RequireFromString("50.00"), CreatedAt: base},
		&models.Sell{UserID: user.ID, Symbol: "AAA", Quantity: 4, Price: decimal.RequireFromString("60.00"), CreatedAt: base.Add(time.Hour)},
		&models.Purchase{UserID: user.ID, Symbol: "BBB", Quantity: 2, Price: decimal.RequireFromString("20.00"), CreatedAt: base.Add(2 * time.Hour)},
		&models.Purchase{UserID: other.ID, Symbol: "ZZZ", Quantity: 1, Price: decimal.RequireFromString("1.00"), CreatedAt: base},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("failed to create ledger row: %v", err)
		}
	}

	entries, err := svc.History(user.ID)
	testutil.AssertNoError(t, err)

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Newest first, and only this user's rows.
	if entries[0].Symbol != "BBB" || entries[0].Type != EntryBuy {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Symbol != "AAA" || entries[1].Type != EntrySell {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}
	if entries[2].Symbol != "AAA" || entries[2].Type != EntryBuy {
		t.Errorf("unexpected third entry: %+v", entries[2])
	}
	if entries[1].Quantity != 4 {
		t.Errorf("expected quantity 4 on sell entry, got %d", entries[1].Quantity)
	}
	testutil.AssertDecimalEqual(t, entries[1].Price, "60.00")
}
