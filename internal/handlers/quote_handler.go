package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/quotes"
)

// QuoteHandler renders the quote form and looked-up quotes.
type QuoteHandler struct {
	quotes quotes.Service
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService quotes.Service) *QuoteHandler {
	return &QuoteHandler{quotes: quoteService}
}

type quoteForm struct {
	Symbol string `form:"symbol" binding:"required,ticker"`
}

// ShowQuote renders the quote form.
func (h *QuoteHandler) ShowQuote(c *gin.Context) {
	c.HTML(http.StatusOK, "quote.html", page(c, "Quote", nil))
}

// Quote looks up a symbol and renders the result.
func (h *QuoteHandler) Quote(c *gin.Context) {
	var form quoteForm
	if err := c.ShouldBind(&form); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "must provide a symbol"))
		return
	}

	quote, err := h.quotes.Lookup(c.Request.Context(), form.Symbol)
	if err != nil {
		if errors.Is(err, quotes.ErrNotFound) {
			respondWithError(c, apperrors.ErrSymbolNotFound)
			return
		}
		respondWithError(c, apperrors.Wrap(apperrors.ErrQuoteUnavailable, err))
		return
	}

	c.HTML(http.StatusOK, "quoted.html", page(c, "Quote", gin.H{
		"Quote": quote,
	}))
}
