// Package calculator derives technical indicators from price series.
//
// Every function here is pure: inputs are never modified and nothing is
// logged or cached, so calls over independent series may run concurrently.
package calculator

import "StockTerminal/internal/model"

// Moving average windows used by Enrich.
const (
	EMAShort  = 9
	SMAShort  = 20
	SMAMedium = 50
	SMALong   = 200
	RSIPeriod = 14
)

// Enrich validates series and returns a new series carrying the full
// IndicatorSet for every bar. An empty series yields *InsufficientDataError
// and an invalid bar yields *MalformedBarError; in both cases nothing else
// is returned. Columns whose window exceeds the history stay undefined.
func Enrich(series model.PriceSeries) (model.EnrichedSeries, error) {
	bars := series.Bars
	if len(bars) == 0 {
		return model.EnrichedSeries{}, &InsufficientDataError{Have: 0, Need: 1}
	}
	if err := ValidateBars(bars); err != nil {
		return model.EnrichedSeries{}, err
	}

	closes := series.Closes()
	ema9 := EMA(closes, EMAShort)
	sma20 := SMA(closes, SMAShort)
	sma50 := SMA(closes, SMAMedium)
	sma200 := SMA(closes, SMALong)
	rsi := RSI(closes, RSIPeriod)
	macd, macdSignal := MACD(closes, MACDFast, MACDSlow, MACDSignal)
	bbUpper, bbMiddle, bbLower := BollingerBands(closes, BollingerPeriod, BollingerWidth)
	obv := OBV(bars)

	out := model.EnrichedSeries{
		Symbol: series.Symbol,
		Bars:   make([]model.EnrichedBar, len(bars)),
	}
	for i, b := range bars {
		out.Bars[i] = model.EnrichedBar{
			OHLCV: b,
			Indicators: model.IndicatorSet{
				EMA9:       ema9[i],
				SMA20:      sma20[i],
				SMA50:      sma50[i],
				SMA200:     sma200[i],
				RSI14:      rsi[i],
				MACD:       macd[i],
				MACDSignal: macdSignal[i],
				BBUpper:    bbUpper[i],
				BBMiddle:   bbMiddle[i],
				BBLower:    bbLower[i],
				OBV:        obv[i],
			},
		}
	}
	return out, nil
}
