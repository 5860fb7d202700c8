package usecase

import (
	"context"
	"errors"
	"testing"

	"TAEngine/internal/domain/models"
)

func TestDispatcherAppliesDefaults(t *testing.T) {
	d := NewDispatcher()
	candles := testCandles(60)

	res, err := d.Calculate(context.Background(), candles, models.IndicatorConfig{Type: models.SMA})
	if err != nil {
		t.Fatal(err)
	}
	if res.Type != models.SMA || res.Category != models.CategoryTrend {
		t.Fatalf("envelope: got %s/%s", res.Type, res.Category)
	}
	if res.Metadata.Period != 20 {
		t.Fatalf("default period: got %d, want 20", res.Metadata.Period)
	}
	if !res.Timestamp.Equal(candles[len(candles)-1].Timestamp) {
		t.Fatalf("timestamp should be the latest candle's, got %v", res.Timestamp)
	}
	if _, ok := res.Value.(models.MAValue); !ok {
		t.Fatalf("value: got %T, want MAValue", res.Value)
	}
}

func TestDispatcherFoldsTopLevelPeriod(t *testing.T) {
	d := NewDispatcher()
	candles := testCandles(60)

	res, err := d.Calculate(context.Background(), candles, models.IndicatorConfig{Type: models.SMA, Period: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.Metadata.Period != 10 {
		t.Fatalf("period: got %d, want 10", res.Metadata.Period)
	}

	// The same period through the parameter map must behave identically.
	res2, err := d.Calculate(context.Background(), candles, models.IndicatorConfig{
		Type:       models.SMA,
		Parameters: map[string]any{"period": 10},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res2.Metadata.Period != 10 {
		t.Fatalf("period via parameters: got %d, want 10", res2.Metadata.Period)
	}
	v1 := res.Value.(models.MAValue)
	v2 := res2.Value.(models.MAValue)
	if v1.Value != v2.Value {
		t.Fatalf("equivalent configs diverged: %v vs %v", v1.Value, v2.Value)
	}
}

func TestDispatcherRejectsUnknownParameters(t *testing.T) {
	d := NewDispatcher()
	candles := testCandles(60)

	var invalid *models.InvalidParameterError
	_, err := d.Calculate(context.Background(), candles, models.IndicatorConfig{
		Type:       models.SMA,
		Parameters: map[string]any{"bogus": 1},
	})
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestDispatcherRejectsOutOfRangePeriod(t *testing.T) {
	d := NewDispatcher()
	candles := testCandles(60)

	var invalid *models.InvalidParameterError
	_, err := d.Calculate(context.Background(), candles, models.IndicatorConfig{Type: models.RSI, Period: -5})
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
	_, err = d.Calculate(context.Background(), candles, models.IndicatorConfig{Type: models.RSI, Period: 1000})
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestDispatcherUnsupportedType(t *testing.T) {
	d := NewDispatcher()

	var unsupported *models.UnsupportedIndicatorError
	_, err := d.Calculate(context.Background(), testCandles(60), models.IndicatorConfig{Type: "hodl_meter"})
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedIndicatorError, got %v", err)
	}
}

func TestDispatcherEmptyCandles(t *testing.T) {
	d := NewDispatcher()

	var insufficient *models.InsufficientDataError
	_, err := d.Calculate(context.Background(), nil, models.IndicatorConfig{Type: models.SMA})
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}

func TestDispatcherMacdDefaults(t *testing.T) {
	d := NewDispatcher()

	res, err := d.Calculate(context.Background(), testCandles(120), models.IndicatorConfig{Type: models.MACD})
	if err != nil {
		t.Fatal(err)
	}
	v, ok := res.Value.(models.MACDValue)
	if !ok {
		t.Fatalf("value: got %T, want MACDValue", res.Value)
	}
	if got := res.Metadata.Parameters["fastPeriod"]; got != 12 {
		t.Fatalf("fastPeriod: got %v, want 12", got)
	}
	if got := res.Metadata.Parameters["slowPeriod"]; got != 26 {
		t.Fatalf("slowPeriod: got %v, want 26", got)
	}
	if !almostEqualF(v.Histogram, v.MACD-v.Signal, 1e-9) {
		t.Fatal("histogram must equal macd minus signal")
	}
}

func TestDispatcherRsiFlags(t *testing.T) {
	d := NewDispatcher()
	candles := testCandles(60)
	for i := range candles {
		candles[i].Close = 100 + float64(i)
	}

	res, err := d.Calculate(context.Background(), candles, models.IndicatorConfig{Type: models.RSI})
	if err != nil {
		t.Fatal(err)
	}
	v, ok := res.Value.(models.OscillatorValue)
	if !ok {
		t.Fatalf("value: got %T, want OscillatorValue", res.Value)
	}
	if v.Value != 100 || !v.Overbought || v.Oversold {
		t.Fatalf("pure uptrend should read overbought at 100, got %+v", v)
	}
}

func TestDispatcherPivotDefaultsToClassic(t *testing.T) {
	d := NewDispatcher()

	res, err := d.Calculate(context.Background(), testCandles(10), models.IndicatorConfig{Type: models.PivotPoints})
	if err != nil {
		t.Fatal(err)
	}
	v, ok := res.Value.(models.PivotPointsValue)
	if !ok {
		t.Fatalf("value: got %T, want PivotPointsValue", res.Value)
	}
	if v.Method != "classic" {
		t.Fatalf("method: got %q, want classic", v.Method)
	}
}

func TestDispatcherCumulativeTakesNoParameters(t *testing.T) {
	d := NewDispatcher()
	candles := testCandles(30)

	if _, err := d.Calculate(context.Background(), candles, models.IndicatorConfig{Type: models.OBV}); err != nil {
		t.Fatal(err)
	}

	var invalid *models.InvalidParameterError
	_, err := d.Calculate(context.Background(), candles, models.IndicatorConfig{Type: models.OBV, Period: 5})
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestDispatcherCoversEveryKnownType(t *testing.T) {
	for typ := range registry {
		if _, ok := models.CategoryOf(typ); !ok {
			t.Fatalf("registry type %q has no category", typ)
		}
	}
	all := []models.IndicatorType{
		models.SMA, models.EMA, models.WMA, models.DEMA, models.TEMA, models.HMA,
		models.KAMA, models.ZLEMA, models.VWMA, models.ALMA, models.TRIMA,
		models.RSI, models.Stochastic, models.StochasticRSI, models.MACD, models.CCI,
		models.ROC, models.Momentum, models.WilliamsR, models.TSI,
		models.ATR, models.BollingerBands, models.KeltnerChannel, models.DonchianChannel, models.StdDev,
		models.OBV, models.VWAP, models.AD, models.CMF, models.MFI, models.ADX,
		models.LinearRegression,
		models.SuperTrend, models.Ichimoku, models.PivotPoints, models.FibonacciRetracement,
	}
	for _, typ := range all {
		if _, ok := registry[typ]; !ok {
			t.Fatalf("type %q missing from registry", typ)
		}
	}

	// Every indicator must produce a result from a generous default window.
	d := NewDispatcher()
	candles := testCandles(200)
	for _, typ := range all {
		if _, err := d.Calculate(context.Background(), candles, models.IndicatorConfig{Type: typ}); err != nil {
			t.Fatalf("%s with defaults over 200 candles: %v", typ, err)
		}
	}
}

func almostEqualF(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
