package calculator

import "StockTerminal/internal/model"

// RSI computes the Wilder-smoothed relative strength index of xs.
// The first defined value is at index period; it averages the first period
// changes, and later values use avg = (avg*(period-1) + x) / period.
// A window with no losses yields 100.
func RSI(xs []float64, period int) []model.Value {
	out := make([]model.Value, len(xs))
	if period <= 0 || len(xs) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss := change(xs[i-1], xs[i])
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = model.Defined(rsiValue(avgGain, avgLoss))

	for i := period + 1; i < len(xs); i++ {
		gain, loss := change(xs[i-1], xs[i])
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = model.Defined(rsiValue(avgGain, avgLoss))
	}
	return out
}

func change(prev, cur float64) (gain, loss float64) {
	d := cur - prev
	if d > 0 {
		return d, 0
	}
	return 0, -d
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
