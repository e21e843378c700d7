package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"papertrade/internal/services"
)

// PortfolioHandler renders the portfolio and history pages.
type PortfolioHandler struct {
	portfolio services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolio services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// Index renders the portfolio view: valued holdings, cash, and grand total.
func (h *PortfolioHandler) Index(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolio.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.HTML(http.StatusOK, "portfolio.html", page(c, "Portfolio", gin.H{
		"Holdings":   portfolio.Holdings,
		"Cash":       portfolio.Cash,
		"GrandTotal": portfolio.GrandTotal,
	}))
}

// History renders the user's full transaction history, newest first.
func (h *PortfolioHandler) History(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.portfolio.History(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.HTML(http.StatusOK, "history.html", page(c, "History", gin.H{
		"Entries": entries,
	}))
}
