package calculator

import (
	"errors"
	"math"

	"StockTerminal/internal/model"
)

// tradingDaysPerYear approximates 52 weeks of daily bars.
const tradingDaysPerYear = 252

// PriceChange returns last close / previous close - 1.
// It is 0 with fewer than two bars or a zero previous close.
func PriceChange(bars []model.OHLCV) float64 {
	n := len(bars)
	if n < 2 {
		return 0
	}
	prev := bars[n-2].Close
	if prev == 0 {
		return 0
	}
	return bars[n-1].Close/prev - 1
}

// Calculate52WeekRange scans the most recent 252 trading days and returns the high and low.
func Calculate52WeekRange(dailyBars []model.OHLCV) (high, low float64, err error) {
	if len(dailyBars) == 0 {
		return 0, 0, errors.New("no daily bars provided")
	}
	n := len(dailyBars)
	start := n - tradingDaysPerYear
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if dailyBars[i].High > high {
			high = dailyBars[i].High
		}
		if dailyBars[i].Low < low {
			low = dailyBars[i].Low
		}
	}
	return high, low, nil
}

// Calculate52WeekChange returns the fractional close-to-close change over the
// most recent 252 trading days, or over the available history if shorter.
// Undefined with fewer than two bars.
func Calculate52WeekChange(dailyBars []model.OHLCV) model.Value {
	n := len(dailyBars)
	if n < 2 {
		return model.Undefined
	}
	start := n - 1 - tradingDaysPerYear
	if start < 0 {
		start = 0
	}
	base := dailyBars[start].Close
	if base == 0 {
		return model.Undefined
	}
	return model.Defined(dailyBars[n-1].Close/base - 1)
}
