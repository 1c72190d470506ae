package calculator

import "StockTerminal/internal/model"

// OBV returns the on-balance volume of bars, starting at 0 on the first bar.
func OBV(bars []model.OHLCV) []model.Value {
	out := make([]model.Value, len(bars))
	var total int64
	for i, b := range bars {
		if i > 0 {
			switch prev := bars[i-1].Close; {
			case b.Close > prev:
				total += b.Volume
			case b.Close < prev:
				total -= b.Volume
			}
		}
		out[i] = model.Defined(float64(total))
	}
	return out
}
