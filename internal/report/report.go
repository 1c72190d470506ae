// Package report renders stock data as plain text for the command line.
package report

import (
	"fmt"
	"strings"
	"time"

	"StockTerminal/internal/calculator"
	"StockTerminal/internal/model"

	"github.com/dustin/go-humanize"
)

// NA is printed for every missing or undefined value.
const NA = "N/A"

func num(v model.Value) string {
	if !v.Valid {
		return NA
	}
	return fmt.Sprintf("%.2f", v.Float)
}

func pct(v model.Value) string {
	if !v.Valid {
		return NA
	}
	return fmt.Sprintf("%.1f%%", v.Float*100)
}

func money(f float64) string {
	return "$" + humanize.FormatFloat("#,###.##", f)
}

func billions(v model.Value) string {
	if !v.Valid || v.Float == 0 {
		return NA
	}
	return "$" + humanize.FormatFloat("#,###.##", v.Float/1e9) + "B"
}

// Stock renders every section for one symbol. series may be empty when indicators are unavailable.
func Stock(d *model.StockData, series model.EnrichedSeries) string {
	var b strings.Builder
	b.WriteString(Overview(d))
	b.WriteString("\n")
	b.WriteString(Technical(series))
	b.WriteString("\n")
	b.WriteString(Fundamentals(d.Info))
	b.WriteString("\n")
	b.WriteString(FinancialMetrics(d.Info))
	b.WriteString("\n")
	b.WriteString(Earnings(d.Info))
	b.WriteString("\n")
	b.WriteString(Ownership(d.Info))
	return b.String()
}

// Overview renders price, daily change, market cap and 52-week change.
func Overview(d *model.StockData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 %s (%s) | %s\n\n", d.Name, d.Symbol, time.Now().Format("2006-01-02 15:04")))
	change := calculator.PriceChange(d.History.Bars)
	b.WriteString(fmt.Sprintf("Current Price: %s (%+.1f%%)\n", money(d.Price), change*100))
	b.WriteString(fmt.Sprintf("Market Cap: %s\n", billions(d.Info.MarketCap)))
	b.WriteString(fmt.Sprintf("52 Week Change: %s\n", pct(d.Info.FiftyTwoWeekCh)))
	if high, low, err := calculator.Calculate52WeekRange(d.History.Bars); err == nil {
		b.WriteString(fmt.Sprintf("52 Week Range: %s - %s\n", money(low), money(high)))
	}
	return b.String()
}

// Technical renders the indicators of the latest bar.
func Technical(series model.EnrichedSeries) string {
	var b strings.Builder
	b.WriteString("📈 Technical Analysis\n")
	bar, ok := series.Latest()
	if !ok {
		b.WriteString("  No indicator data\n")
		return b.String()
	}
	ind := bar.Indicators
	b.WriteString(fmt.Sprintf("  Close: %.2f (%s)\n", bar.Close, bar.Time.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("  EMA 9: %s | SMA 20: %s | SMA 50: %s | SMA 200: %s\n",
		num(ind.EMA9), num(ind.SMA20), num(ind.SMA50), num(ind.SMA200)))
	b.WriteString(fmt.Sprintf("  RSI 14: %s\n", num(ind.RSI14)))
	b.WriteString(fmt.Sprintf("  MACD: %s | Signal: %s\n", num(ind.MACD), num(ind.MACDSignal)))
	b.WriteString(fmt.Sprintf("  Bollinger: %s / %s / %s\n", num(ind.BBUpper), num(ind.BBMiddle), num(ind.BBLower)))
	obv := NA
	if ind.OBV.Valid {
		obv = humanize.Comma(int64(ind.OBV.Float))
	}
	b.WriteString(fmt.Sprintf("  OBV: %s\n", obv))
	return b.String()
}

// Fundamentals renders valuation ratios.
func Fundamentals(info model.CompanyInfo) string {
	var b strings.Builder
	b.WriteString("🏦 Fundamental Analysis\n")
	b.WriteString(fmt.Sprintf("  P/E Ratio: %s | Forward P/E: %s\n", num(info.TrailingPE), num(info.ForwardPE)))
	b.WriteString(fmt.Sprintf("  PEG Ratio: %s | Beta: %s\n", num(info.PEGRatio), num(info.Beta)))
	return b.String()
}

// FinancialMetrics renders growth and margins.
func FinancialMetrics(info model.CompanyInfo) string {
	var b strings.Builder
	b.WriteString("💵 Financial Metrics\n")
	b.WriteString(fmt.Sprintf("  Revenue Growth: %s | Gross Margins: %s\n", pct(info.RevenueGrowth), pct(info.GrossMargins)))
	b.WriteString(fmt.Sprintf("  Profit Margins: %s | Operating Margins: %s\n", pct(info.ProfitMargins), pct(info.OperatingMargins)))
	return b.String()
}

// Earnings renders the recent quarterly revenue and net income.
func Earnings(info model.CompanyInfo) string {
	var b strings.Builder
	b.WriteString("🧾 Earnings Analysis\n")
	if len(info.Earnings) == 0 {
		b.WriteString("  No earnings data available\n")
		return b.String()
	}
	for _, e := range info.Earnings {
		b.WriteString(fmt.Sprintf("  %s  Revenue: %s  Earnings: %s\n",
			e.PeriodEnd.Format("2006-01-02"), billions(e.Revenue), billions(e.Earnings)))
	}
	return b.String()
}

// Ownership renders holder and short-interest figures.
func Ownership(info model.CompanyInfo) string {
	var b strings.Builder
	b.WriteString("👥 Ownership Analysis\n")
	b.WriteString(fmt.Sprintf("  Institutional Ownership: %s | Insider Ownership: %s\n",
		pct(info.InstitutionPercentHeld), pct(info.InsiderPercentHeld)))
	b.WriteString(fmt.Sprintf("  Short Ratio: %s | Short %% of Float: %s\n",
		num(info.ShortRatio), pct(info.ShortPercentOfFloat)))
	return b.String()
}

// MarketOverview renders the index and forex board.
func MarketOverview(sections []model.OverviewSection) string {
	var b strings.Builder
	b.WriteString("🌐 Market Overview\n")
	for _, sec := range sections {
		b.WriteString(fmt.Sprintf("\n%s\n", sec.Category))
		if len(sec.Items) == 0 {
			b.WriteString(fmt.Sprintf("  %s\n", NA))
			continue
		}
		for _, it := range sec.Items {
			b.WriteString(fmt.Sprintf("  %-12s %14s  %+.2f%%\n", it.Name, it.Price, it.Change))
		}
	}
	return b.String()
}

// Watchlist renders symbols with their last known price; missing prices print as N/A.
func Watchlist(symbols []string, prices map[string]float64) string {
	var b strings.Builder
	b.WriteString("⭐ Watchlist\n")
	if len(symbols) == 0 {
		b.WriteString("  (empty)\n")
		return b.String()
	}
	for _, s := range symbols {
		p, ok := prices[s]
		if !ok {
			b.WriteString(fmt.Sprintf("  %s: %s\n", s, NA))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %s\n", s, money(p)))
	}
	return b.String()
}
