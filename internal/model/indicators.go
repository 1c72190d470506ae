package model

import (
	"encoding/json"
	"math"
)

// Value is a number that may be undefined, e.g. an indicator still in warm-up
// or a metric the data provider did not report.
type Value struct {
	Float float64
	Valid bool
}

// Undefined is the zero Value.
var Undefined = Value{}

// Defined wraps f as a valid Value.
func Defined(f float64) Value { return Value{Float: f, Valid: true} }

// ValueOf returns a valid Value for a non-nil finite pointer, Undefined otherwise.
func ValueOf(f *float64) Value {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return Undefined
	}
	return Defined(*f)
}

// MarshalJSON encodes undefined values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Undefined
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Defined(f)
	return nil
}

// IndicatorSet holds the derived values for one bar.
type IndicatorSet struct {
	EMA9       Value `json:"ema_9"`
	SMA20      Value `json:"sma_20"`
	SMA50      Value `json:"sma_50"`
	SMA200     Value `json:"sma_200"`
	RSI14      Value `json:"rsi_14"`
	MACD       Value `json:"macd"`
	MACDSignal Value `json:"macd_signal"`
	BBUpper    Value `json:"bb_upper"`
	BBMiddle   Value `json:"bb_middle"`
	BBLower    Value `json:"bb_lower"`
	OBV        Value `json:"obv"`
}

// EnrichedBar is a bar together with its indicators.
type EnrichedBar struct {
	OHLCV
	Indicators IndicatorSet `json:"indicators"`
}

// EnrichedSeries is a new series built from a PriceSeries; the source is never modified.
type EnrichedSeries struct {
	Symbol string        `json:"symbol"`
	Bars   []EnrichedBar `json:"bars"`
}

// Len returns the number of bars.
func (s EnrichedSeries) Len() int { return len(s.Bars) }

// Latest returns the most recent enriched bar. ok is false for an empty series.
func (s EnrichedSeries) Latest() (bar EnrichedBar, ok bool) {
	if len(s.Bars) == 0 {
		return EnrichedBar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}
