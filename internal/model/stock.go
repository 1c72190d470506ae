package model

import "time"

// CompanyInfo holds the fundamental and ownership metrics reported by the provider.
type CompanyInfo struct {
	LongName string `json:"long_name"`

	MarketCap      Value `json:"market_cap"`
	FiftyTwoWeekCh Value `json:"fifty_two_week_change"`

	TrailingPE Value `json:"trailing_pe"`
	ForwardPE  Value `json:"forward_pe"`
	PEGRatio   Value `json:"peg_ratio"`
	Beta       Value `json:"beta"`

	RevenueGrowth    Value `json:"revenue_growth"`
	GrossMargins     Value `json:"gross_margins"`
	ProfitMargins    Value `json:"profit_margins"`
	OperatingMargins Value `json:"operating_margins"`

	InstitutionPercentHeld Value `json:"institution_percent_held"`
	InsiderPercentHeld     Value `json:"insider_percent_held"`
	ShortRatio             Value `json:"short_ratio"`
	ShortPercentOfFloat    Value `json:"short_percent_of_float"`

	Earnings []EarningsPeriod `json:"earnings"`
}

// EarningsPeriod is one quarterly income statement line.
type EarningsPeriod struct {
	PeriodEnd time.Time `json:"period_end"`
	Revenue   Value     `json:"revenue"`
	Earnings  Value     `json:"earnings"`
}

// StockData is everything the dashboard shows for one symbol.
type StockData struct {
	Symbol      string      `json:"symbol"`
	Name        string      `json:"name"`
	Price       float64     `json:"price"`
	History     PriceSeries `json:"history"`
	Info        CompanyInfo `json:"info"`
	HasEarnings bool        `json:"has_earnings"`
}
