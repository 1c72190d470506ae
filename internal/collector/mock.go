package collector

import (
	"context"
	"sync/atomic"
	"time"

	"StockTerminal/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price      float64
	Bars       []model.OHLCV
	Profile    model.CompanyInfo
	Quotes     map[string]model.Quote
	HistoryErr error
	ProfileErr error
	QuoteErr   error

	historyCalls atomic.Int64
}

func (m *MockFetcher) Name() string { return "mock" }

// HistoryCalls returns how many times FetchHistory has been called.
func (m *MockFetcher) HistoryCalls() int64 { return m.historyCalls.Load() }

func (m *MockFetcher) FetchHistory(_ context.Context, symbol, _ string) (model.PriceSeries, error) {
	m.historyCalls.Add(1)
	if m.HistoryErr != nil {
		return model.PriceSeries{}, m.HistoryErr
	}
	bars := m.Bars
	if bars == nil {
		bars = GenerateMockBars(m.Price, 250)
	}
	out := make([]model.OHLCV, len(bars))
	copy(out, bars)
	return model.PriceSeries{Symbol: symbol, Bars: out, FetchedAt: time.Now()}, nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (model.Quote, error) {
	if m.QuoteErr != nil {
		return model.Quote{}, m.QuoteErr
	}
	if q, ok := m.Quotes[symbol]; ok {
		return q, nil
	}
	return model.Quote{Symbol: symbol, LastPrice: m.Price, PreviousClose: m.Price}, nil
}

func (m *MockFetcher) FetchProfile(_ context.Context, _ string) (model.CompanyInfo, error) {
	if m.ProfileErr != nil {
		return model.CompanyInfo{}, m.ProfileErr
	}
	return m.Profile, nil
}

// GenerateMockBars builds count daily bars drifting gently around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	start := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
