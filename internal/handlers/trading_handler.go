package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/services"
)

// TradingHandler renders the buy/sell forms and executes orders.
type TradingHandler struct {
	trading   services.TradingServicer
	portfolio services.PortfolioServicer
}

// NewTradingHandler creates a new TradingHandler.
func NewTradingHandler(trading services.TradingServicer, portfolio services.PortfolioServicer) *TradingHandler {
	return &TradingHandler{trading: trading, portfolio: portfolio}
}

// orderForm is the shared buy/sell form payload. Shares is bound as a
// string so malformed counts get a precise validation message instead of
// a binding error.
type orderForm struct {
	Symbol string `form:"symbol" binding:"required,ticker"`
	Shares string `form:"shares" binding:"required"`
}

// parseOrder binds and validates the order form, returning the symbol and
// the share count.
func parseOrder(c *gin.Context) (string, int64, error) {
	var form orderForm
	if err := c.ShouldBind(&form); err != nil {
		return "", 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "must provide a symbol and a number of shares")
	}

	shares, err := strconv.ParseInt(strings.TrimSpace(form.Shares), 10, 64)
	if err != nil {
		return "", 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "shares must be a whole number")
	}
	if shares <= 0 {
		return "", 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "shares must be a positive whole number")
	}

	return strings.ToUpper(strings.TrimSpace(form.Symbol)), shares, nil
}

// ShowBuy renders the buy form.
func (h *TradingHandler) ShowBuy(c *gin.Context) {
	c.HTML(http.StatusOK, "buy.html", page(c, "Buy", nil))
}

// Buy executes a purchase and returns to the portfolio.
func (h *TradingHandler) Buy(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	symbol, shares, err := parseOrder(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.trading.Buy(c.Request.Context(), userID, symbol, shares); err != nil {
		respondWithError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// ShowSell renders the sell form with the symbols the user currently holds.
func (h *TradingHandler) ShowSell(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	symbols, err := h.portfolio.HeldSymbols(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.HTML(http.StatusOK, "sell.html", page(c, "Sell", gin.H{
		"Symbols": symbols,
	}))
}

// Sell executes a sale and returns to the portfolio.
func (h *TradingHandler) Sell(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	symbol, shares, err := parseOrder(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.trading.Sell(c.Request.Context(), userID, symbol, shares); err != nil {
		respondWithError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
