package calculator

import "StockTerminal/internal/model"

// SMA returns the simple moving average of xs over period.
// Positions before period-1 are undefined.
func SMA(xs []float64, period int) []model.Value {
	out := make([]model.Value, len(xs))
	if period <= 0 {
		return out
	}
	sum := 0.0
	for i, x := range xs {
		sum += x
		if i >= period {
			sum -= xs[i-period]
		}
		if i >= period-1 {
			out[i] = model.Defined(sum / float64(period))
		}
	}
	return out
}

// EMA returns the exponential moving average of xs, seeded with the SMA of
// the first period values and smoothed with k = 2/(period+1) afterwards.
func EMA(xs []float64, period int) []model.Value {
	out := make([]model.Value, len(xs))
	emaInto(out, xs, 0, period)
	return out
}

// emaInto writes the EMA of xs[start:] into out[start:].
func emaInto(out []model.Value, xs []float64, start, period int) {
	if period <= 0 || len(xs)-start < period {
		return
	}
	seedAt := start + period - 1
	// Incremental mean: exact on constant input, unlike sum/period.
	prev := 0.0
	for i := start; i <= seedAt; i++ {
		prev += (xs[i] - prev) / float64(i-start+1)
	}
	out[seedAt] = model.Defined(prev)

	k := 2.0 / float64(period+1)
	for i := seedAt + 1; i < len(xs); i++ {
		// Same as x*k + prev*(1-k), but exact when x == prev.
		prev += k * (xs[i] - prev)
		out[i] = model.Defined(prev)
	}
}
