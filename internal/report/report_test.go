package report

import (
	"strings"
	"testing"
	"time"

	"StockTerminal/internal/model"
)

func TestOverview(t *testing.T) {
	d := &model.StockData{
		Symbol: "AAPL",
		Name:   "Apple Inc.",
		Price:  110,
		History: model.PriceSeries{Bars: []model.OHLCV{
			{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Open: 100, High: 101, Low: 99, Close: 100, Volume: 10},
			{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 100, High: 111, Low: 99, Close: 110, Volume: 10},
		}},
		Info: model.CompanyInfo{MarketCap: model.Defined(2.5e12)},
	}
	out := Overview(d)
	for _, want := range []string{
		"Apple Inc. (AAPL)",
		"Current Price: $110.00 (+10.0%)",
		"Market Cap: $2,500.00B",
		"52 Week Change: N/A",
		"52 Week Range: $99.00 - $111.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("overview missing %q:\n%s", want, out)
		}
	}
}

func TestTechnical_UndefinedRendersNA(t *testing.T) {
	series := model.EnrichedSeries{Symbol: "X", Bars: []model.EnrichedBar{{
		OHLCV: model.OHLCV{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 12.5},
		Indicators: model.IndicatorSet{
			SMA20: model.Defined(12.25),
			RSI14: model.Defined(100),
			OBV:   model.Defined(1234567),
		},
	}}}
	out := Technical(series)
	for _, want := range []string{
		"Close: 12.50 (2024-01-02)",
		"SMA 20: 12.25",
		"SMA 200: N/A",
		"RSI 14: 100.00",
		"MACD: N/A | Signal: N/A",
		"OBV: 1,234,567",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("technical missing %q:\n%s", want, out)
		}
	}

	if out := Technical(model.EnrichedSeries{}); !strings.Contains(out, "No indicator data") {
		t.Errorf("empty series: %s", out)
	}
}

func TestInfoSections(t *testing.T) {
	info := model.CompanyInfo{
		TrailingPE:          model.Defined(28.456),
		RevenueGrowth:       model.Defined(0.081),
		InsiderPercentHeld:  model.Defined(0.0007),
		ShortPercentOfFloat: model.Defined(0.012),
		Earnings: []model.EarningsPeriod{{
			PeriodEnd: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			Revenue:   model.Defined(119.58e9),
			Earnings:  model.Defined(33.92e9),
		}},
	}
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{"fundamentals", Fundamentals(info), []string{"P/E Ratio: 28.46", "Forward P/E: N/A", "Beta: N/A"}},
		{"financial", FinancialMetrics(info), []string{"Revenue Growth: 8.1%", "Gross Margins: N/A"}},
		{"earnings", Earnings(info), []string{"2023-12-31", "Revenue: $119.58B", "Earnings: $33.92B"}},
		{"ownership", Ownership(info), []string{"Insider Ownership: 0.1%", "Short % of Float: 1.2%", "Short Ratio: N/A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, w := range tt.want {
				if !strings.Contains(tt.out, w) {
					t.Errorf("missing %q:\n%s", w, tt.out)
				}
			}
		})
	}

	if out := Earnings(model.CompanyInfo{}); !strings.Contains(out, "No earnings data available") {
		t.Errorf("empty earnings: %s", out)
	}
}

func TestMarketOverviewAndWatchlist(t *testing.T) {
	out := MarketOverview([]model.OverviewSection{
		{Category: "US Markets", Items: []model.OverviewItem{{Symbol: "^GSPC", Name: "S&P 500", Price: "$5,100.25", Change: 0.5}}},
		{Category: "Forex"},
	})
	if !strings.Contains(out, "S&P 500") || !strings.Contains(out, "+0.50%") {
		t.Errorf("overview output:\n%s", out)
	}
	if !strings.Contains(out, "Forex\n  N/A") {
		t.Errorf("empty section should show N/A:\n%s", out)
	}

	wl := Watchlist([]string{"AAPL", "MSFT"}, map[string]float64{"AAPL": 1234.5})
	if !strings.Contains(wl, "AAPL: $1,234.50") || !strings.Contains(wl, "MSFT: N/A") {
		t.Errorf("watchlist output:\n%s", wl)
	}
}
