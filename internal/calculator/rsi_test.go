package calculator

import (
	"math/rand"
	"testing"
)

func TestRSI_WarmUp(t *testing.T) {
	got := RSI(rising(100, 20), 14)
	assertUndefinedBefore(t, "RSI(14)", got, 14)
}

func TestRSI_TooShort(t *testing.T) {
	got := RSI(rising(100, 14), 14)
	for i, v := range got {
		if v.Valid {
			t.Errorf("RSI[%d]: expected undefined with only 14 closes", i)
		}
	}
}

func TestRSI_AllGainsIs100(t *testing.T) {
	got := RSI(rising(100, 30), 14)
	for i := 14; i < len(got); i++ {
		if got[i].Float != 100 {
			t.Errorf("RSI[%d]: expected 100, got %.4f", i, got[i].Float)
		}
	}
}

func TestRSI_AllLossesIs0(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	got := RSI(closes, 14)
	for i := 14; i < len(got); i++ {
		if got[i].Float != 0 {
			t.Errorf("RSI[%d]: expected 0, got %.4f", i, got[i].Float)
		}
	}
}

func TestRSI_HandCalculated(t *testing.T) {
	// period 2 over 10, 12, 11, 13
	// changes: +2, -1, +2
	// first avg: gain 1.0, loss 0.5 -> RS 2 -> 66.6667
	// next: gain (1*1+2)/2 = 1.5, loss (0.5*1+0)/2 = 0.25 -> RS 6 -> 85.7143
	got := RSI([]float64{10, 12, 11, 13}, 2)
	assertUndefinedBefore(t, "RSI(2)", got, 2)
	assertClose(t, "RSI(2)[2]", got[2].Float, 100-100.0/3, 1e-9)
	assertClose(t, "RSI(2)[3]", got[3].Float, 100-100.0/7, 1e-9)
}

func TestRSI_Bounded(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	closes := make([]float64, 500)
	p := 100.0
	for i := range closes {
		p *= 1 + (r.Float64()-0.5)*0.08
		closes[i] = p
	}
	for i, v := range RSI(closes, 14) {
		if v.Valid && (v.Float < 0 || v.Float > 100) {
			t.Errorf("RSI[%d] = %.4f out of [0, 100]", i, v.Float)
		}
	}
}
