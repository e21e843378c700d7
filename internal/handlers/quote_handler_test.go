package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"papertrade/internal/testutil"
)

func newQuoteRouter(stub *testutil.StaticQuotes) *gin.Engine {
	router := newRouter()
	handler := NewQuoteHandler(stub)

	authed := router.Group("/", injectUser(7))
	authed.GET("quote", handler.ShowQuote)
	authed.POST("quote", handler.Quote)
	return router
}

func TestQuoteHandler(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		stub := testutil.NewStaticQuotes()
		stub.Set("AAPL", "Apple Inc", "189.84")
		router := newQuoteRouter(stub)

		recorder := postForm(t, router, "/quote", url.Values{
			"symbol": {"aapl"},
		})

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		body := recorder.Body.String()
		if !strings.Contains(body, "Apple Inc (AAPL) costs $189.84.") {
			t.Errorf("unexpected quote page body: %s", body)
		}
	})

	t.Run("missing_symbol", func(t *testing.T) {
		router := newQuoteRouter(testutil.NewStaticQuotes())

		recorder := postForm(t, router, "/quote", url.Values{})

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
		if !strings.Contains(recorder.Body.String(), "must provide a symbol") {
			t.Errorf("expected apology, got: %s", recorder.Body.String())
		}
	})

	t.Run("unknown_symbol", func(t *testing.T) {
		router := newQuoteRouter(testutil.NewStaticQuotes())

		recorder := postForm(t, router, "/quote", url.Values{
			"symbol": {"NOPE"},
		})

		if recorder.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", recorder.Code)
		}
		if !strings.Contains(recorder.Body.String(), "Symbol does not exist") {
			t.Errorf("expected symbol apology, got: %s", recorder.Body.String())
		}
	})

	t.Run("quote_service_down", func(t *testing.T) {
		stub := testutil.NewStaticQuotes()
		stub.Fail(errors.New("connection refused"))
		router := newQuoteRouter(stub)

		recorder := postForm(t, router, "/quote", url.Values{
			"symbol": {"AAPL"},
		})

		if recorder.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", recorder.Code)
		}
	})
}
