package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"StockTerminal/internal/model"
)

// YahooBaseURL is the public Yahoo Finance API host.
const YahooBaseURL = "https://query1.finance.yahoo.com"

// maxEarningsPeriods is how many recent quarters are kept.
const maxEarningsPeriods = 4

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: YahooBaseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"NIFTY":  "^NSEI",
			"SENSEX": "^BSESN",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yahooRaw is Yahoo's {"raw": 1.23, "fmt": "1.23"} number wrapper.
type yahooRaw struct {
	Raw *float64 `json:"raw"`
}

func (r yahooRaw) value() model.Value { return model.ValueOf(r.Raw) }

type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName  string   `json:"longName"`
				ShortName string   `json:"shortName"`
				MarketCap yahooRaw `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE yahooRaw `json:"trailingPE"`
				ForwardPE  yahooRaw `json:"forwardPE"`
				Beta       yahooRaw `json:"beta"`
				MarketCap  yahooRaw `json:"marketCap"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PEGRatio                yahooRaw `json:"pegRatio"`
				FiftyTwoWeekChange      yahooRaw `json:"52WeekChange"`
				HeldPercentInstitutions yahooRaw `json:"heldPercentInstitutions"`
				HeldPercentInsiders     yahooRaw `json:"heldPercentInsiders"`
				ShortRatio              yahooRaw `json:"shortRatio"`
				ShortPercentOfFloat     yahooRaw `json:"shortPercentOfFloat"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				RevenueGrowth    yahooRaw `json:"revenueGrowth"`
				GrossMargins     yahooRaw `json:"grossMargins"`
				ProfitMargins    yahooRaw `json:"profitMargins"`
				OperatingMargins yahooRaw `json:"operatingMargins"`
			} `json:"financialData"`
			IncomeStatementHistoryQuarterly struct {
				IncomeStatementHistory []struct {
					EndDate      yahooRaw `json:"endDate"`
					TotalRevenue yahooRaw `json:"totalRevenue"`
					NetIncome    yahooRaw `json:"netIncome"`
				} `json:"incomeStatementHistory"`
			} `json:"incomeStatementHistoryQuarterly"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"quoteSummary"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func at(vs []interface{}, i int) interface{} {
	if i < len(vs) {
		return vs[i]
	}
	return nil
}

func (f *YahooFetcher) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("yahoo: symbol not found: %w", ErrNoData)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), interval, rng)
	body, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: %w", ErrNoData)
	}
	return &chart, nil
}

func (f *YahooFetcher) FetchHistory(ctx context.Context, symbol, rng string) (model.PriceSeries, error) {
	if rng == "" {
		rng = DefaultRange
	}
	chart, err := f.fetchChart(ctx, symbol, "1d", rng)
	if err != nil {
		return model.PriceSeries{}, err
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo: %w", ErrNoData)
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		ro, rh, rl, rc := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if ro == nil || rh == nil || rl == nil || rc == nil {
			continue // skip incomplete bars (holidays, halted sessions)
		}
		o, h, l, c := toFloat(ro), toFloat(rh), toFloat(rl), toFloat(rc)
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: int64(toFloat(at(quote.Volume, i))),
		})
	}
	if len(bars) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo: %w", ErrNoData)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	chart, err := f.fetchChart(ctx, symbol, "1d", "1d")
	if err != nil {
		return model.Quote{}, err
	}
	meta := chart.Chart.Result[0].Meta
	prev := meta.PreviousClose
	if prev == 0 {
		prev = meta.ChartPreviousClose
	}
	return model.Quote{Symbol: symbol, LastPrice: meta.RegularMarketPrice, PreviousClose: prev}, nil
}

func (f *YahooFetcher) FetchProfile(ctx context.Context, symbol string) (model.CompanyInfo, error) {
	modules := strings.Join([]string{
		"price", "summaryDetail", "defaultKeyStatistics", "financialData", "incomeStatementHistoryQuarterly",
	}, ",")
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), modules)
	body, err := f.get(ctx, u)
	if err != nil {
		return model.CompanyInfo{}, err
	}

	var summary yahooSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return model.CompanyInfo{}, fmt.Errorf("yahoo decode summary: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return model.CompanyInfo{}, fmt.Errorf("yahoo api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return model.CompanyInfo{}, fmt.Errorf("yahoo summary: %w", ErrNoData)
	}

	r := summary.QuoteSummary.Result[0]
	info := model.CompanyInfo{
		LongName:               r.Price.LongName,
		MarketCap:              r.Price.MarketCap.value(),
		FiftyTwoWeekCh:         r.DefaultKeyStatistics.FiftyTwoWeekChange.value(),
		TrailingPE:             r.SummaryDetail.TrailingPE.value(),
		ForwardPE:              r.SummaryDetail.ForwardPE.value(),
		PEGRatio:               r.DefaultKeyStatistics.PEGRatio.value(),
		Beta:                   r.SummaryDetail.Beta.value(),
		RevenueGrowth:          r.FinancialData.RevenueGrowth.value(),
		GrossMargins:           r.FinancialData.GrossMargins.value(),
		ProfitMargins:          r.FinancialData.ProfitMargins.value(),
		OperatingMargins:       r.FinancialData.OperatingMargins.value(),
		InstitutionPercentHeld: r.DefaultKeyStatistics.HeldPercentInstitutions.value(),
		InsiderPercentHeld:     r.DefaultKeyStatistics.HeldPercentInsiders.value(),
		ShortRatio:             r.DefaultKeyStatistics.ShortRatio.value(),
		ShortPercentOfFloat:    r.DefaultKeyStatistics.ShortPercentOfFloat.value(),
	}
	if info.LongName == "" {
		info.LongName = r.Price.ShortName
	}
	if !info.MarketCap.Valid {
		info.MarketCap = r.SummaryDetail.MarketCap.value()
	}

	for _, st := range r.IncomeStatementHistoryQuarterly.IncomeStatementHistory {
		if len(info.Earnings) == maxEarningsPeriods {
			break
		}
		p := model.EarningsPeriod{Revenue: st.TotalRevenue.value(), Earnings: st.NetIncome.value()}
		if st.EndDate.Raw != nil {
			p.PeriodEnd = time.Unix(int64(*st.EndDate.Raw), 0).UTC()
		}
		info.Earnings = append(info.Earnings, p)
	}
	return info, nil
}
