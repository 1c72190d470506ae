package calculator

import (
	"math"
	"testing"
)

func TestBollinger_KnownWindow(t *testing.T) {
	// population std dev of 1..20 is sqrt(33.25)
	upper, middle, lower := BollingerBands(rising(1, 20), 20, 2)
	assertUndefinedBefore(t, "BB_Middle", middle, 19)
	sd := math.Sqrt(33.25)
	assertClose(t, "BB_Middle", middle[19].Float, 10.5, 1e-9)
	assertClose(t, "BB_Upper", upper[19].Float, 10.5+2*sd, 1e-9)
	assertClose(t, "BB_Lower", lower[19].Float, 10.5-2*sd, 1e-9)
}

func TestBollinger_ConstantCollapses(t *testing.T) {
	upper, middle, lower := BollingerBands(constant(42, 30), 20, 2)
	for i := 19; i < 30; i++ {
		if upper[i].Float != 42 || middle[i].Float != 42 || lower[i].Float != 42 {
			t.Errorf("index %d: expected all bands at 42, got %.4f/%.4f/%.4f",
				i, upper[i].Float, middle[i].Float, lower[i].Float)
		}
	}
}

func TestBollinger_MiddleMatchesSMA(t *testing.T) {
	closes := []float64{}
	for i := 0; i < 60; i++ {
		closes = append(closes, 300+math.Sin(float64(i))*12)
	}
	_, middle, _ := BollingerBands(closes, BollingerPeriod, BollingerWidth)
	sma := SMA(closes, BollingerPeriod)
	for i := range closes {
		if middle[i] != sma[i] {
			t.Errorf("index %d: middle %+v != SMA %+v", i, middle[i], sma[i])
		}
	}
}

func TestBollinger_HighPriceFlatWindow(t *testing.T) {
	for _, p := range []float64{700000.37, 123.37, 187.43} {
		upper, _, lower := BollingerBands(constant(p, 300), BollingerPeriod, BollingerWidth)
		for i := BollingerPeriod - 1; i < 300; i++ {
			if w := upper[i].Float - lower[i].Float; w != 0 {
				t.Errorf("price %.2f index %d: expected zero width, got %g", p, i, w)
				break
			}
		}
	}
}

func TestBollinger_HighPriceKnownDeviation(t *testing.T) {
	// Alternating +/-0.5 around 1e6: population std dev is exactly 0.5.
	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = 1000000.5
		if i%2 == 1 {
			closes[i] = 999999.5
		}
	}
	upper, middle, lower := BollingerBands(closes, BollingerPeriod, BollingerWidth)
	for i := BollingerPeriod - 1; i < len(closes); i++ {
		assertClose(t, "BB width", upper[i].Float-lower[i].Float, 2, 1e-6)
		assertClose(t, "BB_Middle", middle[i].Float, 1000000, 1e-6)
	}
}
