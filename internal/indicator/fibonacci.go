package indicator

import (
	"math"

	"TAEngine/internal/domain/models"
)

// fibRatios are the nine retracement/extension levels, in level order.
var fibRatios = []struct {
	label string
	ratio float64
}{
	{"0", 0},
	{"23.6", 0.236},
	{"38.2", 0.382},
	{"50", 0.5},
	{"61.8", 0.618},
	{"78.6", 0.786},
	{"100", 1},
	{"127.2", 1.272},
	{"161.8", 1.618},
}

// Fib trend directions.
const (
	TrendUptrend   = "uptrend"
	TrendDowntrend = "downtrend"
)

// FibonacciCalc builds the nine-level retracement table for a swing range.
// In an uptrend levels run from the low upward; in a downtrend from the high
// downward. When currentPrice is non-nil the nearest level by absolute
// distance is returned as well, ties broken by level order.
func FibonacciCalc(high, low float64, trend string, currentPrice *float64) (*models.FibonacciValue, error) {
	if high <= low {
		return nil, &models.InvalidRangeError{Reason: "high must be greater than low"}
	}
	if trend != TrendUptrend && trend != TrendDowntrend {
		return nil, &models.InvalidParameterError{Name: "trend", Actual: trend}
	}

	rng := high - low
	levels := make([]models.FibLevel, 0, len(fibRatios))
	for _, r := range fibRatios {
		price := low + rng*r.ratio
		if trend == TrendDowntrend {
			price = high - rng*r.ratio
		}
		levels = append(levels, models.FibLevel{Label: r.label, Ratio: r.ratio, Price: price})
	}

	out := &models.FibonacciValue{
		Trend:  trend,
		High:   high,
		Low:    low,
		Levels: levels,
	}

	if currentPrice != nil {
		best := 0
		bestDist := math.Abs(levels[0].Price - *currentPrice)
		for i := 1; i < len(levels); i++ {
			d := math.Abs(levels[i].Price - *currentPrice)
			if d < bestDist {
				best = i
				bestDist = d
			}
		}
		nearest := levels[best]
		out.NearestLevel = &nearest
	}
	return out, nil
}
