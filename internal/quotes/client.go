package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// quoteResponse is the quote payload returned by the IEX-style endpoint.
type quoteResponse struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"companyName"`
	LatestPrice float64 `json:"latestPrice"`
}

// Client fetches quotes over HTTP from an IEX-style quote endpoint.
type Client struct {
	http  *resty.Client
	token string
}

// NewClient creates a quote client for the given base URL and API token.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	client := resty.New().
		SetTimeout(timeout).
		SetBaseURL(baseURL)
	return &Client{http: client, token: token}
}

// Lookup fetches the current quote for a symbol. Unknown symbols and
// symbols quoted without a positive price return ErrNotFound.
func (c *Client) Lookup(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, ErrNotFound
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("token", c.token).
		SetPathParam("symbol", symbol).
		Get("/stock/{symbol}/quote")
	if err != nil {
		return Quote{}, fmt.Errorf("quote request for %s: %w", symbol, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return Quote{}, ErrNotFound
	}
	if resp.StatusCode() != http.StatusOK {
		return Quote{}, fmt.Errorf("quote request for %s: unexpected status %d", symbol, resp.StatusCode())
	}

	var body quoteResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return Quote{}, fmt.Errorf("decoding quote for %s: %w", symbol, err)
	}

	if body.LatestPrice <= 0 {
		return Quote{}, ErrNotFound
	}
	if body.Symbol == "" {
		body.Symbol = symbol
	}

	return Quote{
		Symbol: strings.ToUpper(body.Symbol),
		Name:   body.CompanyName,
		Price:  decimal.NewFromFloat(body.LatestPrice).Round(2),
	}, nil
}
