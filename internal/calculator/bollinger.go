package calculator

import (
	"math"

	"StockTerminal/internal/model"
)

// Bollinger band defaults.
const (
	BollingerPeriod = 20
	BollingerWidth  = 2.0
)

// BollingerBands returns the band around SMA(period) at width population
// standard deviations. All three columns share the SMA warm-up.
// The deviation is taken over each window shifted by its first close, so a
// flat window gives exactly zero width at any price level.
func BollingerBands(xs []float64, period int, width float64) (upper, middle, lower []model.Value) {
	upper = make([]model.Value, len(xs))
	middle = make([]model.Value, len(xs))
	lower = make([]model.Value, len(xs))
	if period <= 0 {
		return upper, middle, lower
	}

	n := float64(period)
	var sum float64
	for i, x := range xs {
		sum += x
		if i >= period {
			sum -= xs[i-period]
		}
		if i < period-1 {
			continue
		}
		mean := sum / n
		sd := windowStdDev(xs[i-period+1 : i+1])
		middle[i] = model.Defined(mean)
		upper[i] = model.Defined(mean + width*sd)
		lower[i] = model.Defined(mean - width*sd)
	}
	return upper, middle, lower
}

// windowStdDev returns the population standard deviation of w.
func windowStdDev(w []float64) float64 {
	shift := w[0]
	var d, dSq float64
	for _, x := range w {
		v := x - shift
		d += v
		dSq += v * v
	}
	n := float64(len(w))
	m := d / n
	variance := dSq/n - m*m
	if variance < 0 {
		variance = 0 // rounding
	}
	return math.Sqrt(variance)
}
