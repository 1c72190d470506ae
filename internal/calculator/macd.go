package calculator

import "StockTerminal/internal/model"

// MACD periods.
const (
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// MACD returns EMA(fast) - EMA(slow) of xs and the EMA(signal) of that line.
// The line is undefined until the slow EMA is; the signal needs a further
// signal-1 defined line values.
func MACD(xs []float64, fast, slow, signal int) (line, sig []model.Value) {
	line = make([]model.Value, len(xs))
	sig = make([]model.Value, len(xs))

	emaFast := EMA(xs, fast)
	emaSlow := EMA(xs, slow)

	start := -1
	diffs := make([]float64, len(xs))
	for i := range xs {
		if !emaFast[i].Valid || !emaSlow[i].Valid {
			continue
		}
		if start < 0 {
			start = i
		}
		diffs[i] = emaFast[i].Float - emaSlow[i].Float
		line[i] = model.Defined(diffs[i])
	}
	if start < 0 {
		return line, sig
	}
	emaInto(sig, diffs, start, signal)
	return line, sig
}
