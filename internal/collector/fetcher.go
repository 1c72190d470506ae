package collector

import (
	"context"
	"errors"

	"StockTerminal/internal/model"
)

// ErrNoData is returned when the provider has no price history for a symbol.
var ErrNoData = errors.New("no price data available")

// DefaultRange is the history window requested when none is configured.
const DefaultRange = "1y"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol, rng string) (model.PriceSeries, error)
	FetchQuote(ctx context.Context, symbol string) (model.Quote, error)
	FetchProfile(ctx context.Context, symbol string) (model.CompanyInfo, error)
	Name() string
}

// ValidRanges lists the history windows the providers understand.
var ValidRanges = []string{"1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}

// IsValidRange reports whether rng is one of ValidRanges.
func IsValidRange(rng string) bool {
	for _, r := range ValidRanges {
		if r == rng {
			return true
		}
	}
	return false
}
