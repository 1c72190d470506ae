package calculator

import "testing"

func TestMACD_WarmUp(t *testing.T) {
	line, sig := MACD(rising(50, 60), MACDFast, MACDSlow, MACDSignal)
	if len(line) != 60 || len(sig) != 60 {
		t.Fatalf("expected 60 values, got line=%d signal=%d", len(line), len(sig))
	}
	assertUndefinedBefore(t, "MACD", line, MACDSlow-1)
	assertUndefinedBefore(t, "MACD_Signal", sig, MACDSlow-1+MACDSignal-1)
}

func TestMACD_LineIsFastMinusSlow(t *testing.T) {
	closes := []float64{}
	for i := 0; i < 80; i++ {
		closes = append(closes, 100+float64(i%7)*1.5-float64(i%3))
	}
	line, _ := MACD(closes, MACDFast, MACDSlow, MACDSignal)
	fast := EMA(closes, MACDFast)
	slow := EMA(closes, MACDSlow)
	for i := MACDSlow - 1; i < len(closes); i++ {
		assertClose(t, "MACD", line[i].Float, fast[i].Float-slow[i].Float, 1e-12)
	}
}

func TestMACD_SignalIsEMAOfLine(t *testing.T) {
	closes := []float64{}
	for i := 0; i < 70; i++ {
		closes = append(closes, 20+float64(i)*0.3+float64(i%4))
	}
	line, sig := MACD(closes, MACDFast, MACDSlow, MACDSignal)

	start := MACDSlow - 1
	defined := make([]float64, 0, len(closes)-start)
	for i := start; i < len(closes); i++ {
		defined = append(defined, line[i].Float)
	}
	want := EMA(defined, MACDSignal)
	for j, w := range want {
		if !w.Valid {
			continue
		}
		assertClose(t, "MACD_Signal", sig[start+j].Float, w.Float, 1e-12)
	}
}

func TestMACD_ShortSeries(t *testing.T) {
	line, sig := MACD(rising(1, 10), MACDFast, MACDSlow, MACDSignal)
	for i := range line {
		if line[i].Valid || sig[i].Valid {
			t.Errorf("index %d: expected undefined MACD on a 10-bar series", i)
		}
	}
}
