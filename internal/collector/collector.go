package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"StockTerminal/internal/calculator"
	"StockTerminal/internal/model"

	"github.com/dustin/go-humanize"
)

// ErrEmptySymbol is returned for a blank symbol.
var ErrEmptySymbol = errors.New("symbol is required")

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher Fetcher
	Range   string
}

// NewCollector creates a new Collector. An empty rng means DefaultRange.
func NewCollector(fetcher Fetcher, rng string) *Collector {
	if rng == "" {
		rng = DefaultRange
	}
	return &Collector{Fetcher: fetcher, Range: rng}
}

// NormalizeSymbol trims and upper-cases a user-entered symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// StockData fetches history and company information for symbol.
// A failed profile lookup is tolerated; the name falls back to the symbol.
func (c *Collector) StockData(ctx context.Context, symbol string) (*model.StockData, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	series, err := c.Fetcher.FetchHistory(ctx, symbol, c.Range)
	if err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	last, ok := series.Last()
	if !ok {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, ErrNoData)
	}

	info, err := c.Fetcher.FetchProfile(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] fetch profile %s: %v", symbol, err)
		info = model.CompanyInfo{}
	}
	if !info.FiftyTwoWeekCh.Valid {
		info.FiftyTwoWeekCh = calculator.Calculate52WeekChange(series.Bars)
	}

	name := info.LongName
	if name == "" {
		name = symbol
	}
	return &model.StockData{
		Symbol:      symbol,
		Name:        name,
		Price:       last.Close,
		History:     series,
		Info:        info,
		HasEarnings: len(info.Earnings) > 0,
	}, nil
}

// Technical fetches symbol and enriches its history with indicators.
func (c *Collector) Technical(ctx context.Context, symbol string) (*model.StockData, model.EnrichedSeries, error) {
	data, err := c.StockData(ctx, symbol)
	if err != nil {
		return nil, model.EnrichedSeries{}, err
	}
	enriched, err := calculator.Enrich(data.History)
	if err != nil {
		return data, model.EnrichedSeries{}, fmt.Errorf("compute indicators %s: %w", data.Symbol, err)
	}
	return data, enriched, nil
}

// MarketOverview prices every instrument in model.MarketIndices.
// Instruments whose quote fails are left out.
func (c *Collector) MarketOverview(ctx context.Context) []model.OverviewSection {
	sections := make([]model.OverviewSection, len(model.MarketIndices))
	var wg sync.WaitGroup
	for i, cat := range model.MarketIndices {
		sections[i].Category = cat.Name
		items := make([]*model.OverviewItem, len(cat.Indices))
		for j, idx := range cat.Indices {
			wg.Add(1)
			go func(j int, idx model.MarketIndex, category string) {
				defer wg.Done()
				q, err := c.Fetcher.FetchQuote(ctx, idx.Symbol)
				if err != nil {
					log.Printf("[WARN] overview quote %s: %v", idx.Symbol, err)
					return
				}
				item := OverviewItem(category, idx, q)
				items[j] = &item
			}(j, idx, cat.Name)
		}
		wg.Wait()
		for _, it := range items {
			if it != nil {
				sections[i].Items = append(sections[i].Items, *it)
			}
		}
	}
	return sections
}

// OverviewItem prices one instrument. Change is a percentage and is 0
// when the previous close is unknown.
func OverviewItem(category string, idx model.MarketIndex, q model.Quote) model.OverviewItem {
	change := 0.0
	if q.PreviousClose != 0 {
		change = (q.LastPrice - q.PreviousClose) / q.PreviousClose * 100
	}
	currency := "$"
	if strings.Contains(category, "Indian Markets") {
		currency = "₹"
	}
	return model.OverviewItem{
		Symbol:   idx.Symbol,
		Name:     idx.Name,
		Price:    currency + humanize.FormatFloat("#,###.##", q.LastPrice),
		Change:   change,
		RawPrice: q.LastPrice,
	}
}

// Prices fetches the last price of each symbol. Symbols whose quote fails are absent.
func (c *Collector) Prices(ctx context.Context, symbols []string) map[string]float64 {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]float64, len(symbols))
	)
	for _, sym := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			q, err := c.Fetcher.FetchQuote(ctx, sym)
			if err != nil {
				log.Printf("[WARN] quote %s: %v", sym, err)
				return
			}
			mu.Lock()
			out[sym] = q.LastPrice
			mu.Unlock()
		}(sym)
	}
	wg.Wait()
	return out
}
