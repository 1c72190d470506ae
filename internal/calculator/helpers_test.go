package calculator

import (
	"math"
	"testing"
	"time"

	"StockTerminal/internal/model"
)

var day0 = time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC)

func makeBars(closes []float64, volume int64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   day0.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: volume,
		}
	}
	return bars
}

func rising(start float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)
	}
	return out
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f, diff=%.6f)", label, got, want, tol, math.Abs(got-want))
	}
}

func assertUndefinedBefore(t *testing.T, label string, col []model.Value, first int) {
	t.Helper()
	for i, v := range col {
		if i < first && v.Valid {
			t.Errorf("%s[%d]: expected undefined, got %.6f", label, i, v.Float)
		}
		if i >= first && !v.Valid {
			t.Errorf("%s[%d]: expected a value, got undefined", label, i)
		}
	}
}
