package indicator

import (
	"errors"
	"testing"

	"github.com/markcheno/go-talib"

	"TAEngine/internal/domain/models"
)

func TestSmaKnownValues(t *testing.T) {
	out, err := Sma([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatal(err)
	}
	assertSeriesEqual(t, "sma", out, []float64{2, 3, 4}, 1e-12)
}

func TestSmaNonNegativeInputStaysNonNegative(t *testing.T) {
	// A rolling add/subtract sum leaves residue after large values drop out
	// of the window and can report a tiny negative mean over all-zero input.
	values := []float64{0.1, 0.7, 0.3, 1e9, 3e7, 0.2, 0, 0, 0, 0, 0, 0}
	out, err := Sma(values, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v < 0 {
			t.Fatalf("sma[%d] = %v on non-negative input", i, v)
		}
	}
	if last := out[len(out)-1]; last != 0 {
		t.Fatalf("sma over zero window: got %v, want exactly 0", last)
	}
}

func TestSmaMatchesReference(t *testing.T) {
	closes := testCloses(120)
	out, err := Sma(closes, 20)
	if err != nil {
		t.Fatal(err)
	}
	ref := talib.Sma(closes, 20)
	assertSeriesEqual(t, "sma", out, tail(ref, len(out)), 1e-8)
}

func TestEmaMatchesReference(t *testing.T) {
	closes := testCloses(200)
	out, err := Ema(closes, 12)
	if err != nil {
		t.Fatal(err)
	}
	ref := talib.Ema(closes, 12)
	assertSeriesEqual(t, "ema", out, tail(ref, len(out)), 1e-8)
}

func TestEmaSeededWithSma(t *testing.T) {
	closes := testCloses(50)
	out, err := Ema(closes, 10)
	if err != nil {
		t.Fatal(err)
	}
	sma, err := Sma(closes[:10], 10)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(out[0], sma[0], 1e-12) {
		t.Fatalf("ema seed: got %v, want sma %v", out[0], sma[0])
	}
}

func TestWmaMatchesReference(t *testing.T) {
	closes := testCloses(100)
	out, err := Wma(closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	ref := talib.Wma(closes, 14)
	assertSeriesEqual(t, "wma", out, tail(ref, len(out)), 1e-8)
}

func TestDemaConvergesFasterThanEma(t *testing.T) {
	// After a step change, DEMA should sit closer to the new level.
	n := 80
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100
		if i >= n/2 {
			closes[i] = 110
		}
	}
	dema, err := Dema(closes, 10)
	if err != nil {
		t.Fatal(err)
	}
	ema, err := Ema(closes, 10)
	if err != nil {
		t.Fatal(err)
	}
	dLast, eLast := dema[len(dema)-1], ema[len(ema)-1]
	if 110-dLast > 110-eLast {
		t.Fatalf("dema %v should be at least as close to 110 as ema %v", dLast, eLast)
	}
}

func TestMovingAveragesTrackConstantSeries(t *testing.T) {
	flat := make([]float64, 120)
	for i := range flat {
		flat[i] = 42.5
	}

	type maFn struct {
		name string
		fn   func([]float64, int) ([]float64, error)
	}
	for _, tc := range []maFn{
		{"sma", Sma}, {"ema", Ema}, {"wma", Wma}, {"dema", Dema},
		{"tema", Tema}, {"hma", Hma}, {"kama", Kama}, {"zlema", Zlema},
		{"trima", Trima},
	} {
		out, err := tc.fn(flat, 10)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		for i, v := range out {
			if !almostEqual(v, 42.5, 1e-9) {
				t.Fatalf("%s[%d]: got %v on constant series", tc.name, i, v)
			}
		}
	}
}

func TestVwmaWeightsByVolume(t *testing.T) {
	closes := []float64{10, 20}
	volumes := []float64{1, 3}
	out, err := Vwma(closes, volumes, 2)
	if err != nil {
		t.Fatal(err)
	}
	// (10*1 + 20*3) / 4
	if !almostEqual(out[0], 17.5, 1e-12) {
		t.Fatalf("vwma: got %v, want 17.5", out[0])
	}
}

func TestVwmaZeroVolumeFallsBackToClose(t *testing.T) {
	out, err := Vwma([]float64{10, 20}, []float64{0, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != 20 {
		t.Fatalf("vwma zero volume: got %v, want close 20", out[0])
	}
}

func TestAlmaTracksConstantAndOrdersWeights(t *testing.T) {
	flat := make([]float64, 30)
	for i := range flat {
		flat[i] = 7
	}
	out, err := Alma(flat, 9, 0.85, 6)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(out[len(out)-1], 7, 1e-9) {
		t.Fatalf("alma constant: got %v", out[len(out)-1])
	}

	// Offset near 1 weights recent bars: on a strict uptrend ALMA sits above
	// the plain SMA of the same window.
	up := make([]float64, 40)
	for i := range up {
		up[i] = 100 + float64(i)
	}
	alma, err := Alma(up, 9, 0.85, 6)
	if err != nil {
		t.Fatal(err)
	}
	sma, err := Sma(up, 9)
	if err != nil {
		t.Fatal(err)
	}
	if alma[len(alma)-1] <= sma[len(sma)-1] {
		t.Fatalf("alma %v should exceed sma %v on an uptrend", alma[len(alma)-1], sma[len(sma)-1])
	}
}

func TestMaPeriodValidation(t *testing.T) {
	closes := testCloses(20)

	if _, err := Sma(closes, 0); err == nil {
		t.Fatal("expected error for period 0")
	}
	if _, err := Sma(closes, MaxPeriod+1); err == nil {
		t.Fatal("expected error above max period")
	}

	var paramErr *models.InvalidParameterError
	_, err := Ema(closes, -3)
	if !errors.As(err, &paramErr) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestMaInsufficientData(t *testing.T) {
	short := testCloses(5)

	var dataErr *models.InsufficientDataError
	_, err := Sma(short, 10)
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if dataErr.Required != 10 || dataErr.Actual != 5 {
		t.Fatalf("unexpected bounds: %+v", dataErr)
	}

	// Length exactly at the minimum must succeed.
	if _, err := Sma(testCloses(10), 10); err != nil {
		t.Fatalf("length == min should pass: %v", err)
	}
	if _, err := Dema(testCloses(20), 10); err != nil {
		t.Fatalf("dema length == 2p should pass: %v", err)
	}
	if _, err := Tema(testCloses(30), 10); err != nil {
		t.Fatalf("tema length == 3p should pass: %v", err)
	}
}

func TestHmaMinimumLengthInCandles(t *testing.T) {
	// Period 16: the final smoothing pass needs round(sqrt(16)) = 4 extra
	// points, so 19 candles is the floor.
	var dataErr *models.InsufficientDataError
	_, err := Hma(testCloses(16), 16)
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if dataErr.Required != 19 || dataErr.Actual != 16 {
		t.Fatalf("unexpected bounds: %+v", dataErr)
	}

	out, err := Hma(testCloses(19), 16)
	if err != nil {
		t.Fatalf("length == min should pass: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("hma at minimum length: got %d points, want 1", len(out))
	}
}
