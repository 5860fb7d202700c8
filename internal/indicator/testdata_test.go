package indicator

import (
	"math"
	"testing"
)

// Deterministic price fixtures shared across the function-library tests.
// A wavy uptrend exercises gains, losses and flat stretches without pulling
// in a random source.
func testCloses(n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = 100 + 0.08*float64(i) + 4*math.Sin(float64(i)*0.35) + 1.5*math.Cos(float64(i)*0.9)
	}
	return out
}

func testOHLC(n int) (highs, lows, closes []float64) {
	closes = testCloses(n)
	highs = make([]float64, n)
	lows = make([]float64, n)
	for i := range closes {
		spread := 0.8 + 0.4*math.Abs(math.Sin(float64(i)*0.7))
		highs[i] = closes[i] + spread
		lows[i] = closes[i] - spread
	}
	return highs, lows, closes
}

func testVolumes(n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = 1000 + 300*math.Sin(float64(i)*0.5) + 10*float64(i%7)
	}
	return out
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// assertSeriesEqual compares two aligned slices within eps.
func assertSeriesEqual(t *testing.T, name string, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length mismatch: got %d, want %d", name, len(got), len(want))
	}
	for i := range got {
		if !almostEqual(got[i], want[i], eps) {
			t.Fatalf("%s[%d]: got %v, want %v", name, i, got[i], want[i])
		}
	}
}

// tail returns the last n elements.
func tail(xs []float64, n int) []float64 {
	return xs[len(xs)-n:]
}
