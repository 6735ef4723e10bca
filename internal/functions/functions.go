// Package functions holds the handlers shipped with the lambda binaries.
package functions

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"lambda-handler-factory/internal/middleware"
	"lambda-handler-factory/pkg/factory"
	"lambda-handler-factory/pkg/handler"
	"lambda-handler-factory/pkg/server"
)

// PriceList maps product names to unit prices
var PriceList = map[string]float64{
	"sourdough": 7.50,
	"baguette":  4.00,
	"croissant": 3.20,
	"muffin":    3.80,
}

// QuoteRequest is the payload accepted by the Quote handler
type QuoteRequest struct {
	Items []QuoteItem `json:"items" validate:"required,min=1,dive"`
}

// QuoteItem is one requested product
type QuoteItem struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=1000"`
}

// QuoteResult is the result of the Quote handler
type QuoteResult struct {
	Lines []QuoteLine `json:"lines"`
	Total float64     `json:"total"`
}

// QuoteLine is one priced product
type QuoteLine struct {
	Product   string  `json:"product"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
}

// Register adds the bundled handlers and their scoped hooks
func Register(c *server.Container) error {
	if err := c.Factory.Register([]factory.Func{Ping, Quote}); err != nil {
		return err
	}
	if err := c.Factory.RegisterByName("Prices", handler.HTTPMethods(map[string]handler.MethodFunc{
		"get": listPrices,
	})); err != nil {
		return err
	}

	var quoteHooks []factory.Func
	if c.Auth != nil {
		quoteHooks = append(quoteHooks, middleware.Authenticate(c.Auth))
	}
	quoteHooks = append(quoteHooks, middleware.ValidatePayload[QuoteRequest]())

	return c.Factory.Before(quoteHooks, factory.For(Quote))
}

// Ping reports liveness
func Ping(ctx context.Context, event factory.Event, previous any) (any, error) {
	return map[string]any{
		"message":    "pong",
		"request_id": factory.RequestID(ctx),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Quote prices a validated QuoteRequest produced by the previous hook
func Quote(ctx context.Context, event factory.Event, previous any) (any, error) {
	req, ok := previous.(*QuoteRequest)
	if !ok {
		return nil, fmt.Errorf("quote expects a validated request, got %T", previous)
	}

	quote := &QuoteResult{Lines: make([]QuoteLine, 0, len(req.Items))}
	for _, item := range req.Items {
		price, ok := PriceList[item.Product]
		if !ok {
			return nil, &middleware.HookError{Status: http.StatusNotFound, Code: "unknown_product", Message: fmt.Sprintf("unknown product %q", item.Product)}
		}

		amount := roundCents(price * float64(item.Quantity))
		quote.Lines = append(quote.Lines, QuoteLine{
			Product:   item.Product,
			Quantity:  item.Quantity,
			UnitPrice: price,
			Amount:    amount,
		})
		quote.Total = roundCents(quote.Total + amount)
	}

	return quote, nil
}

func listPrices(h *handler.HTTPEventHandler, previous any) (any, error) {
	products := make([]string, 0, len(PriceList))
	for product := range PriceList {
		products = append(products, product)
	}
	sort.Strings(products)

	prices := make([]QuoteLine, 0, len(products))
	for _, product := range products {
		prices = append(prices, QuoteLine{Product: product, Quantity: 1, UnitPrice: PriceList[product], Amount: PriceList[product]})
	}
	return prices, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
