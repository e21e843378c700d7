package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"papertrade/internal/models"
	"papertrade/internal/services"
	"papertrade/internal/templates"
	"papertrade/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// newRouter builds a bare engine with the embedded templates loaded.
func newRouter() *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(templates.Must())
	return router
}

// injectUser stands in for the auth middleware in handler tests.
func injectUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
	}
}

func postForm(t *testing.T, router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func getPage(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// mockUserService implements services.UserServicer.
type mockUserService struct {
	registerFn     func(username, password, confirmation string) (*models.User, error)
	authenticateFn func(username, password string) (*models.User, error)
	getUserByIDFn  func(id uint) (*models.User, error)
}

func (m *mockUserService) Register(username, password, confirmation string) (*models.User, error) {
	return m.registerFn(username, password, confirmation)
}

func (m *mockUserService) Authenticate(username, password string) (*models.User, error) {
	return m.authenticateFn(username, password)
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	return m.getUserByIDFn(id)
}

// mockPortfolioService implements services.PortfolioServicer.
type mockPortfolioService struct {
	getPortfolioFn func(ctx context.Context, userID uint) (*services.Portfolio, error)
	heldSymbolsFn  func(userID uint) ([]string, error)
	historyFn      func(userID uint) ([]services.LedgerEntry, error)
}

func (m *mockPortfolioService) GetPortfolio(ctx context.Context, userID uint) (*services.Portfolio, error) {
	return m.getPortfolioFn(ctx, userID)
}

func (m *mockPortfolioService) HeldSymbols(userID uint) ([]string, error) {
	return m.heldSymbolsFn(userID)
}

func (m *mockPortfolioService) History(userID uint) ([]services.LedgerEntry, error) {
	return m.historyFn(userID)
}

// mockTradingService implements services.TradingServicer.
type mockTradingService struct {
	buyFn  func(ctx context.Context, userID uint, symbol string, shares int64) error
	sellFn func(ctx context.Context, userID uint, symbol string, shares int64) error
}

func (m *mockTradingService) Buy(ctx context.Context, userID uint, symbol string, shares int64) error {
	return m.buyFn(ctx, userID, symbol, shares)
}

func (m *mockTradingService) Sell(ctx context.Context, userID uint, symbol string, shares int64) error {
	return m.sellFn(ctx, userID, symbol, shares)
}
