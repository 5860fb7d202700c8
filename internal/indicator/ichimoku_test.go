package indicator

import (
	"errors"
	"testing"

	"TAEngine/internal/domain/models"
)

func trendBars(n int, step float64) (highs, lows, closes []float64) {
	highs = make([]float64, n)
	lows = make([]float64, n)
	closes = make([]float64, n)
	for i := range highs {
		base := 100 + step*float64(i)
		lows[i] = base
		highs[i] = base + 1
		closes[i] = base + 0.5
	}
	return highs, lows, closes
}

func TestIchimokuStrongBuyOnUptrend(t *testing.T) {
	highs, lows, closes := trendBars(100, 1)
	out, err := IchimokuCalc(highs, lows, closes, 9, 26, 52, 26)
	if err != nil {
		t.Fatal(err)
	}
	if out.Signal != SignalStrongBuy {
		t.Fatalf("signal: got %q, want %q", out.Signal, SignalStrongBuy)
	}
	if out.CloudColor != CloudBullish {
		t.Fatalf("cloud: got %q, want %q", out.CloudColor, CloudBullish)
	}
	if out.PricePosition != PriceAboveCloud {
		t.Fatalf("position: got %q, want %q", out.PricePosition, PriceAboveCloud)
	}
	if out.TenkanSen <= out.KijunSen {
		t.Fatalf("tenkan %v should lead kijun %v in an uptrend", out.TenkanSen, out.KijunSen)
	}
	if out.ChikouSpan != closes[len(closes)-1] {
		t.Fatalf("chikou: got %v, want latest close %v", out.ChikouSpan, closes[len(closes)-1])
	}
}

func TestIchimokuStrongSellOnDowntrend(t *testing.T) {
	highs, lows, closes := trendBars(100, -1)
	out, err := IchimokuCalc(highs, lows, closes, 9, 26, 52, 26)
	if err != nil {
		t.Fatal(err)
	}
	if out.Signal != SignalStrongSell {
		t.Fatalf("signal: got %q, want %q", out.Signal, SignalStrongSell)
	}
	if out.PricePosition != PriceBelowCloud {
		t.Fatalf("position: got %q, want %q", out.PricePosition, PriceBelowCloud)
	}
}

func TestIchimokuNeutralOnFlatSeries(t *testing.T) {
	highs, lows, closes := trendBars(100, 0)
	out, err := IchimokuCalc(highs, lows, closes, 9, 26, 52, 26)
	if err != nil {
		t.Fatal(err)
	}
	if out.PricePosition != PriceInCloud {
		t.Fatalf("position: got %q, want %q", out.PricePosition, PriceInCloud)
	}
	if out.Signal != SignalNeutral {
		t.Fatalf("signal: got %q, want %q", out.Signal, SignalNeutral)
	}
	if out.SenkouSpanA != out.SenkouSpanB {
		t.Fatalf("flat series should collapse the cloud, got A=%v B=%v", out.SenkouSpanA, out.SenkouSpanB)
	}
}

func TestIchimokuKnownMidpoints(t *testing.T) {
	highs, lows, _ := trendBars(100, 1)
	// Window 91..99: highest high 200, lowest low 191.
	if got := midpoint(highs, lows, 99, 9); got != 195.5 {
		t.Fatalf("tenkan midpoint: got %v, want 195.5", got)
	}
	// Window 74..99: highest high 200, lowest low 174.
	if got := midpoint(highs, lows, 99, 26); got != 187 {
		t.Fatalf("kijun midpoint: got %v, want 187", got)
	}
}

func TestIchimokuInsufficientData(t *testing.T) {
	highs, lows, closes := trendBars(77, 1)
	var insufficient *models.InsufficientDataError
	if _, err := IchimokuCalc(highs, lows, closes, 9, 26, 52, 26); !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if insufficient.Required != 78 {
		t.Fatalf("required: got %d, want 78", insufficient.Required)
	}

	highs, lows, closes = trendBars(78, 1)
	if _, err := IchimokuCalc(highs, lows, closes, 9, 26, 52, 26); err != nil {
		t.Fatalf("78 candles should be enough: %v", err)
	}
}
