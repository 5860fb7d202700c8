package indicator

import (
	"errors"
	"testing"

	"github.com/markcheno/go-talib"

	"TAEngine/internal/domain/models"
)

func TestRsiMatchesReference(t *testing.T) {
	closes := testCloses(150)
	out, err := Rsi(closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(closes)-14 {
		t.Fatalf("rsi length: got %d, want %d", len(out), len(closes)-14)
	}
	ref := talib.Rsi(closes, 14)
	assertSeriesEqual(t, "rsi", out, tail(ref, len(out)), 1e-8)
}

func TestRsiBounds(t *testing.T) {
	flat := make([]float64, 30)
	for i := range flat {
		flat[i] = 55
	}
	out, err := Rsi(flat, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v != 50 {
			t.Fatalf("rsi[%d] on a flat series: got %v, want 50", i, v)
		}
	}

	up := make([]float64, 30)
	for i := range up {
		up[i] = 100 + float64(i)
	}
	out, err = Rsi(up, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v != 100 {
			t.Fatalf("rsi[%d] on a pure uptrend: got %v, want 100", i, v)
		}
	}
}

func TestStochasticMatchesReference(t *testing.T) {
	highs, lows, closes := testOHLC(120)
	k, d, err := StochasticOsc(highs, lows, closes, 14, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(k) != len(d) {
		t.Fatalf("%%K and %%D lengths differ: %d vs %d", len(k), len(d))
	}
	refK, refD := talib.StochF(highs, lows, closes, 14, 3, talib.SMA)
	assertSeriesEqual(t, "stoch %K", k, tail(refK, len(k)), 1e-8)
	assertSeriesEqual(t, "stoch %D", d, tail(refD, len(d)), 1e-8)
}

func TestStochasticFlatWindow(t *testing.T) {
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := range highs {
		highs[i], lows[i], closes[i] = 10, 10, 10
	}
	k, d, err := StochasticOsc(highs, lows, closes, 14, 3)
	if err != nil {
		t.Fatal(err)
	}
	if k[len(k)-1] != 50 || d[len(d)-1] != 50 {
		t.Fatalf("flat window should pin the oscillator at 50, got k=%v d=%v", k[len(k)-1], d[len(d)-1])
	}
}

func TestStochasticRsiRange(t *testing.T) {
	closes := testCloses(120)
	k, d, err := StochasticRsiOsc(closes, 14, 14, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(k) != len(d) {
		t.Fatalf("%%K and %%D lengths differ: %d vs %d", len(k), len(d))
	}
	for i := range k {
		if k[i] < 0 || k[i] > 100 || d[i] < 0 || d[i] > 100 {
			t.Fatalf("stochrsi out of range at %d: k=%v d=%v", i, k[i], d[i])
		}
	}
}

func TestMacdConvergesOnLinearSeries(t *testing.T) {
	// On x[i] = i the EMA lag approaches (period-1)/2, so the MACD line
	// settles at (slow-fast)/2 and the histogram at zero.
	values := make([]float64, 500)
	for i := range values {
		values[i] = float64(i)
	}
	macd, signal, hist, err := Macd(values, 12, 26, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(macd) != len(signal) || len(macd) != len(hist) {
		t.Fatalf("macd slices misaligned: %d %d %d", len(macd), len(signal), len(hist))
	}
	last := len(macd) - 1
	if !almostEqual(macd[last], 7, 1e-3) {
		t.Fatalf("macd on linear series: got %v, want ~7", macd[last])
	}
	if !almostEqual(signal[last], 7, 1e-3) {
		t.Fatalf("macd signal on linear series: got %v, want ~7", signal[last])
	}
	if !almostEqual(hist[last], 0, 1e-3) {
		t.Fatalf("macd histogram on linear series: got %v, want ~0", hist[last])
	}
	if !almostEqual(hist[last], macd[last]-signal[last], 1e-12) {
		t.Fatal("histogram must be macd minus signal")
	}
}

func TestMacdRejectsFastNotBelowSlow(t *testing.T) {
	closes := testCloses(100)
	_, _, _, err := Macd(closes, 26, 12, 9)
	var invalid *models.InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	if invalid.Name != "fastPeriod" {
		t.Fatalf("expected fastPeriod to be flagged, got %q", invalid.Name)
	}
}

func TestCciMatchesReference(t *testing.T) {
	highs, lows, closes := testOHLC(120)
	out, err := Cci(highs, lows, closes, 20)
	if err != nil {
		t.Fatal(err)
	}
	ref := talib.Cci(highs, lows, closes, 20)
	assertSeriesEqual(t, "cci", out, tail(ref, len(out)), 1e-8)
}

func TestRocMatchesReference(t *testing.T) {
	closes := testCloses(100)
	out, err := Roc(closes, 12)
	if err != nil {
		t.Fatal(err)
	}
	ref := talib.Roc(closes, 12)
	assertSeriesEqual(t, "roc", out, tail(ref, len(out)), 1e-8)
}

func TestRocZeroBase(t *testing.T) {
	out, err := Roc([]float64{0, 5, 10}, 1)
	if err != nil {
		t.Fatal(err)
	}
	assertSeriesEqual(t, "roc", out, []float64{0, 100}, 1e-12)
}

func TestMomentumMatchesReference(t *testing.T) {
	closes := testCloses(100)
	out, err := MomentumOsc(closes, 10)
	if err != nil {
		t.Fatal(err)
	}
	ref := talib.Mom(closes, 10)
	assertSeriesEqual(t, "momentum", out, tail(ref, len(out)), 1e-8)
}

func TestWilliamsPercentRMatchesReference(t *testing.T) {
	highs, lows, closes := testOHLC(120)
	out, err := WilliamsPercentR(highs, lows, closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	ref := talib.WillR(highs, lows, closes, 14)
	assertSeriesEqual(t, "williams %R", out, tail(ref, len(out)), 1e-8)
}

func TestTsiSaturatesOnPureTrend(t *testing.T) {
	up := make([]float64, 80)
	for i := range up {
		up[i] = 100 + 2*float64(i)
	}
	tsi, signal, err := Tsi(up, 25, 13, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(tsi) != len(signal) {
		t.Fatalf("tsi slices misaligned: %d vs %d", len(tsi), len(signal))
	}
	for i := range tsi {
		if !almostEqual(tsi[i], 100, 1e-9) {
			t.Fatalf("tsi[%d] on a pure uptrend: got %v, want 100", i, tsi[i])
		}
	}
	if !almostEqual(signal[len(signal)-1], 100, 1e-9) {
		t.Fatalf("tsi signal on a pure uptrend: got %v", signal[len(signal)-1])
	}
}

func TestMomentumInsufficientData(t *testing.T) {
	short := testCloses(10)

	var insufficient *models.InsufficientDataError
	if _, err := Rsi(short, 14); !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if insufficient.Required != 15 || insufficient.Actual != 10 {
		t.Fatalf("unexpected bounds: required=%d actual=%d", insufficient.Required, insufficient.Actual)
	}
	if _, _, _, err := Macd(short, 12, 26, 9); !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	highs, lows, closes := testOHLC(10)
	if _, _, err := StochasticOsc(highs, lows, closes, 14, 3); !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}
