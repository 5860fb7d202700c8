package indicator

import (
	"errors"
	"testing"

	"TAEngine/internal/domain/models"
)

func TestLinRegRecoversExactLine(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = 3 + 2*float64(i)
	}
	res, err := LinReg(values, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Slope) != 16 {
		t.Fatalf("got %d points, want 16", len(res.Slope))
	}
	for i := range res.Slope {
		if !almostEqual(res.Slope[i], 2, 1e-9) {
			t.Fatalf("slope[%d]: got %v, want 2", i, res.Slope[i])
		}
		// Intercept is the fitted value at the window start.
		if !almostEqual(res.Intercept[i], values[i], 1e-9) {
			t.Fatalf("intercept[%d]: got %v, want %v", i, res.Intercept[i], values[i])
		}
	}
	// The forecast predicts the bar after the window; on an exact line it
	// lands on the series itself.
	for i := 0; i < len(res.Forecast)-1; i++ {
		if !almostEqual(res.Forecast[i], values[i+5], 1e-9) {
			t.Fatalf("forecast[%d]: got %v, want %v", i, res.Forecast[i], values[i+5])
		}
	}
	last := len(res.Forecast) - 1
	if !almostEqual(res.Forecast[last], values[len(values)-1]+2, 1e-9) {
		t.Fatalf("final forecast: got %v", res.Forecast[last])
	}
}

func TestLinRegFlatSeries(t *testing.T) {
	flat := make([]float64, 10)
	for i := range flat {
		flat[i] = 42.5
	}
	res, err := LinReg(flat, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i := range res.Slope {
		if !almostEqual(res.Slope[i], 0, 1e-12) {
			t.Fatalf("slope[%d]: got %v, want 0", i, res.Slope[i])
		}
		if !almostEqual(res.Forecast[i], 42.5, 1e-9) {
			t.Fatalf("forecast[%d]: got %v, want 42.5", i, res.Forecast[i])
		}
	}
}

func TestLinRegErrors(t *testing.T) {
	var invalid *models.InvalidParameterError
	if _, err := LinReg(testCloses(20), 1); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError for period 1, got %v", err)
	}

	var insufficient *models.InsufficientDataError
	if _, err := LinReg(testCloses(5), 14); !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}
