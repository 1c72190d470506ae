package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockTerminal/internal/model"
)

// VsTraderFetcher implements Fetcher using the vstrader REST API.
type VsTraderFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewVsTraderFetcher creates a new fetcher with optional proxy support.
func NewVsTraderFetcher(baseURL, apiKey, proxyURL string) *VsTraderFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &VsTraderFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *VsTraderFetcher) Name() string { return "vstrader" }

// vsBar is the expected JSON shape from the vstrader API.
type vsBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

type vsEarnings struct {
	PeriodEnd int64    `json:"period_end"`
	Revenue   *float64 `json:"revenue"`
	NetIncome *float64 `json:"net_income"`
}

type vsProfile struct {
	Name                string       `json:"name"`
	MarketCap           *float64     `json:"market_cap"`
	FiftyTwoWeekChange  *float64     `json:"fifty_two_week_change"`
	TrailingPE          *float64     `json:"trailing_pe"`
	ForwardPE           *float64     `json:"forward_pe"`
	PEGRatio            *float64     `json:"peg_ratio"`
	Beta                *float64     `json:"beta"`
	RevenueGrowth       *float64     `json:"revenue_growth"`
	GrossMargins        *float64     `json:"gross_margins"`
	ProfitMargins       *float64     `json:"profit_margins"`
	OperatingMargins    *float64     `json:"operating_margins"`
	InstitutionHeld     *float64     `json:"institution_percent_held"`
	InsiderHeld         *float64     `json:"insider_percent_held"`
	ShortRatio          *float64     `json:"short_ratio"`
	ShortPercentOfFloat *float64     `json:"short_percent_of_float"`
	Earnings            []vsEarnings `json:"earnings"`
}

func (f *VsTraderFetcher) FetchHistory(ctx context.Context, symbol, rng string) (model.PriceSeries, error) {
	if rng == "" {
		rng = DefaultRange
	}
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&range=%s", f.BaseURL, url.QueryEscape(symbol), rng)
	var vsBars []vsBar
	if err := f.getJSON(ctx, endpoint, &vsBars); err != nil {
		return model.PriceSeries{}, fmt.Errorf("fetch bars: %w", err)
	}
	if len(vsBars) == 0 {
		return model.PriceSeries{}, fmt.Errorf("vstrader: %w", ErrNoData)
	}
	bars := make([]model.OHLCV, len(vsBars))
	for i, vb := range vsBars {
		bars[i] = model.OHLCV{
			Time:   time.Unix(vb.Timestamp, 0).UTC(),
			Open:   vb.Open,
			High:   vb.High,
			Low:    vb.Low,
			Close:  vb.Close,
			Volume: int64(vb.Volume),
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

func (f *VsTraderFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	var result struct {
		Price         float64 `json:"price"`
		PreviousClose float64 `json:"previous_close"`
	}
	if err := f.getJSON(ctx, endpoint, &result); err != nil {
		return model.Quote{}, fmt.Errorf("fetch quote: %w", err)
	}
	return model.Quote{Symbol: symbol, LastPrice: result.Price, PreviousClose: result.PreviousClose}, nil
}

func (f *VsTraderFetcher) FetchProfile(ctx context.Context, symbol string) (model.CompanyInfo, error) {
	endpoint := fmt.Sprintf("%s/api/v1/profile?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	var p vsProfile
	if err := f.getJSON(ctx, endpoint, &p); err != nil {
		return model.CompanyInfo{}, fmt.Errorf("fetch profile: %w", err)
	}
	info := model.CompanyInfo{
		LongName:               p.Name,
		MarketCap:              model.ValueOf(p.MarketCap),
		FiftyTwoWeekCh:         model.ValueOf(p.FiftyTwoWeekChange),
		TrailingPE:             model.ValueOf(p.TrailingPE),
		ForwardPE:              model.ValueOf(p.ForwardPE),
		PEGRatio:               model.ValueOf(p.PEGRatio),
		Beta:                   model.ValueOf(p.Beta),
		RevenueGrowth:          model.ValueOf(p.RevenueGrowth),
		GrossMargins:           model.ValueOf(p.GrossMargins),
		ProfitMargins:          model.ValueOf(p.ProfitMargins),
		OperatingMargins:       model.ValueOf(p.OperatingMargins),
		InstitutionPercentHeld: model.ValueOf(p.InstitutionHeld),
		InsiderPercentHeld:     model.ValueOf(p.InsiderHeld),
		ShortRatio:             model.ValueOf(p.ShortRatio),
		ShortPercentOfFloat:    model.ValueOf(p.ShortPercentOfFloat),
	}
	for i, e := range p.Earnings {
		if i == maxEarningsPeriods {
			break
		}
		info.Earnings = append(info.Earnings, model.EarningsPeriod{
			PeriodEnd: time.Unix(e.PeriodEnd, 0).UTC(),
			Revenue:   model.ValueOf(e.Revenue),
			Earnings:  model.ValueOf(e.NetIncome),
		})
	}
	return info, nil
}

func (f *VsTraderFetcher) getJSON(ctx context.Context, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
