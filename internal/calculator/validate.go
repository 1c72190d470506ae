package calculator

import (
	"math"

	"StockTerminal/internal/model"
)

// ValidateBars checks prices, volumes and timestamp ordering.
// It returns a *MalformedBarError for the first offending bar.
func ValidateBars(bars []model.OHLCV) error {
	for i, b := range bars {
		prices := []struct {
			name string
			v    float64
		}{
			{"open", b.Open},
			{"high", b.High},
			{"low", b.Low},
			{"close", b.Close},
		}
		for _, p := range prices {
			if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
				return &MalformedBarError{Index: i, Field: p.name, Reason: "is not finite"}
			}
			if p.v <= 0 {
				return &MalformedBarError{Index: i, Field: p.name, Reason: "must be positive"}
			}
		}
		if b.Volume < 0 {
			return &MalformedBarError{Index: i, Field: "volume", Reason: "must not be negative"}
		}
		if i > 0 && !b.Time.After(bars[i-1].Time) {
			return &MalformedBarError{Index: i, Field: "time", Reason: "must be strictly ascending"}
		}
	}
	return nil
}
