package model

// MarketIndex names one instrument shown in the market overview.
type MarketIndex struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// IndexCategory groups overview instruments under a heading.
type IndexCategory struct {
	Name    string        `json:"name"`
	Indices []MarketIndex `json:"indices"`
}

// MarketIndices is the fixed overview layout, in display order.
var MarketIndices = []IndexCategory{
	{Name: "US Markets", Indices: []MarketIndex{
		{Symbol: "^GSPC", Name: "S&P 500"},
		{Symbol: "^DJI", Name: "Dow Jones"},
		{Symbol: "^IXIC", Name: "NASDAQ"},
	}},
	{Name: "Indian Markets", Indices: []MarketIndex{
		{Symbol: "^NSEI", Name: "NIFTY 50"},
		{Symbol: "^BSESN", Name: "SENSEX"},
	}},
	{Name: "Forex", Indices: []MarketIndex{
		{Symbol: "EURUSD=X", Name: "EUR/USD"},
		{Symbol: "GBPUSD=X", Name: "GBP/USD"},
		{Symbol: "INR=X", Name: "USD/INR"},
	}},
}

// StockCategory is a quick-pick group of symbols.
type StockCategory struct {
	Name    string   `json:"name"`
	Symbols []string `json:"symbols"`
}

// CommonStocks lists quick-access symbols by sector.
var CommonStocks = []StockCategory{
	{Name: "Technology", Symbols: []string{"AAPL", "MSFT", "GOOGL", "META", "NVDA"}},
	{Name: "Healthcare", Symbols: []string{"JNJ", "PFE", "UNH", "ABBV", "MRK"}},
	{Name: "Finance", Symbols: []string{"JPM", "BAC", "V", "MA", "GS"}},
	{Name: "Retail", Symbols: []string{"AMZN", "WMT", "COST", "TGT", "HD"}},
	{Name: "Electric Vehicles", Symbols: []string{"TSLA", "F", "GM", "NIO", "RIVN"}},
	{Name: "Indian Tech", Symbols: []string{"TCS.NS", "INFY.NS", "WIPRO.NS", "TECHM.NS", "HCLTECH.NS"}},
	{Name: "Indian Banks", Symbols: []string{"HDFCBANK.NS", "SBIN.NS", "ICICIBANK.NS", "AXISBANK.NS", "KOTAKBANK.NS"}},
}

// OverviewItem is one priced row of the market overview.
type OverviewItem struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Price    string  `json:"price"`
	Change   float64 `json:"change"` // percent vs previous close
	RawPrice float64 `json:"raw_price"`
}

// OverviewSection is the priced counterpart of IndexCategory.
type OverviewSection struct {
	Category string         `json:"category"`
	Items    []OverviewItem `json:"items"`
}
