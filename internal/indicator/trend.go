package indicator

import "math"

// Trend labels returned by DetermineTrend.
const (
	TrendUp       = "up"
	TrendDown     = "down"
	TrendSideways = "sideways"
)

// DetermineTrend buckets the last lookback deltas of a series into
// up/down/sideways. The dead zone is relative to the latest value
// (0.1% of it) so near-flat series do not flip labels on noise.
func DetermineTrend(values []float64, lookback int) string {
	if lookback < 1 {
		lookback = 3
	}
	if len(values) < 2 {
		return TrendSideways
	}
	if len(values) < lookback+1 {
		lookback = len(values) - 1
	}

	var net float64
	for i := len(values) - lookback; i < len(values); i++ {
		net += values[i] - values[i-1]
	}

	threshold := math.Abs(values[len(values)-1]) * 0.001
	switch {
	case net > threshold:
		return TrendUp
	case net < -threshold:
		return TrendDown
	default:
		return TrendSideways
	}
}
