package indicator

import (
	"errors"
	"testing"

	"TAEngine/internal/domain/models"
)

// bars builds a constant-spread candle series around the given closes.
func bars(closes []float64) (highs, lows []float64) {
	highs = make([]float64, len(closes))
	lows = make([]float64, len(closes))
	for i, c := range closes {
		highs[i] = c + 1
		lows[i] = c - 1
	}
	return highs, lows
}

func TestSuperTrendStaysUpInUptrend(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + 0.5*float64(i)
	}
	highs, lows := bars(closes)

	res, err := SuperTrendCalc(highs, lows, closes, 10, 3)
	if err != nil {
		t.Fatal(err)
	}
	offset := len(closes) - len(res.Value)
	for i := range res.Direction {
		if res.Direction[i] != DirectionUp {
			t.Fatalf("direction[%d]: got %q, want up", i, res.Direction[i])
		}
		if res.Signal[i] != SignalHold {
			t.Fatalf("signal[%d]: got %q, want hold", i, res.Signal[i])
		}
		if res.Value[i] >= closes[i+offset] {
			t.Fatalf("uptrend value[%d]=%v should sit below close %v", i, res.Value[i], closes[i+offset])
		}
	}
}

func TestSuperTrendFlipsOnCrashAndRally(t *testing.T) {
	// Ten rising bars, a crash to 90, five flat bars, then a rally to 120.
	closes := make([]float64, 0, 20)
	for i := 0; i < 10; i++ {
		closes = append(closes, 100+0.5*float64(i))
	}
	for i := 0; i < 5; i++ {
		closes = append(closes, 90)
	}
	for i := 0; i < 5; i++ {
		closes = append(closes, 120)
	}
	highs, lows := bars(closes)

	res, err := SuperTrendCalc(highs, lows, closes, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	offset := len(closes) - len(res.Value)
	crash := 10 - offset
	rally := 15 - offset

	var buys, sells int
	for i, sig := range res.Signal {
		switch sig {
		case SignalBuy:
			buys++
			if i != rally {
				t.Fatalf("buy at index %d, want %d", i, rally)
			}
		case SignalSell:
			sells++
			if i != crash {
				t.Fatalf("sell at index %d, want %d", i, crash)
			}
		}
	}
	if sells != 1 || buys != 1 {
		t.Fatalf("got %d sells and %d buys, want exactly one of each", sells, buys)
	}

	for i := range res.Direction {
		want := DirectionUp
		if i >= crash && i < rally {
			want = DirectionDown
		}
		if res.Direction[i] != want {
			t.Fatalf("direction[%d]: got %q, want %q", i, res.Direction[i], want)
		}
		// The trailing stop sits on the opposite side of price.
		c := closes[i+offset]
		if res.Direction[i] == DirectionUp && res.Value[i] > c {
			t.Fatalf("up value[%d]=%v above close %v", i, res.Value[i], c)
		}
		if res.Direction[i] == DirectionDown && res.Value[i] < c {
			t.Fatalf("down value[%d]=%v below close %v", i, res.Value[i], c)
		}
	}
}

func TestSuperTrendParameterErrors(t *testing.T) {
	closes := testCloses(30)
	highs, lows := bars(closes)

	var invalid *models.InvalidParameterError
	if _, err := SuperTrendCalc(highs, lows, closes, 10, 50); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParameterError for multiplier, got %v", err)
	}

	var insufficient *models.InsufficientDataError
	if _, err := SuperTrendCalc(highs[:5], lows[:5], closes[:5], 10, 3); !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}
