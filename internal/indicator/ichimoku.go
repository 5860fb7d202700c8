package indicator

import (
	"TAEngine/internal/domain/models"
	"TAEngine/internal/indicator/series"
)

// Ichimoku signal and cloud labels.
const (
	CloudBullish = "bullish"
	CloudBearish = "bearish"

	PriceAboveCloud = "above_cloud"
	PriceInCloud    = "in_cloud"
	PriceBelowCloud = "below_cloud"

	SignalStrongBuy  = "strong_buy"
	SignalNeutral    = "neutral"
	SignalStrongSell = "strong_sell"
)

// IchimokuCalc computes the Ichimoku Cloud at the latest bar. Tenkan-sen and
// Kijun-sen are rolling highest-high/lowest-low midpoints; Senkou Span A/B
// form the cloud displaced forward, so the cloud in effect at the latest bar
// is built from values `displacement` bars back. Chikou Span is the latest
// close (plotted backward by the same displacement).
//
// The signal classification is total: every input maps to exactly one of
// strong_buy, buy, neutral, sell, strong_sell.
func IchimokuCalc(highs, lows, closes []float64, tenkanPeriod, kijunPeriod, senkouBPeriod, displacement int) (*models.IchimokuValue, error) {
	if err := series.ValidatePeriod(tenkanPeriod, "tenkanPeriod", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidatePeriod(kijunPeriod, "kijunPeriod", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidatePeriod(senkouBPeriod, "senkouBPeriod", 2, MaxPeriod); err != nil {
		return nil, err
	}
	if err := series.ValidatePeriod(displacement, "displacement", 1, MaxPeriod); err != nil {
		return nil, err
	}
	n := len(closes)
	if err := series.ValidateMinLength(n, senkouBPeriod+displacement, "Ichimoku"); err != nil {
		return nil, err
	}

	last := n - 1
	back := last - displacement

	tenkan := midpoint(highs, lows, last, tenkanPeriod)
	kijun := midpoint(highs, lows, last, kijunPeriod)

	// Cloud currently in effect: spans computed `displacement` bars ago.
	spanA := (midpoint(highs, lows, back, tenkanPeriod) + midpoint(highs, lows, back, kijunPeriod)) / 2
	spanB := midpoint(highs, lows, back, senkouBPeriod)

	price := closes[last]

	cloud := CloudBullish
	if spanA <= spanB {
		cloud = CloudBearish
	}

	position := PriceInCloud
	switch {
	case price > spanA && price > spanB:
		position = PriceAboveCloud
	case price < spanA && price < spanB:
		position = PriceBelowCloud
	}

	var signal string
	switch position {
	case PriceAboveCloud:
		if tenkan > kijun && cloud == CloudBullish {
			signal = SignalStrongBuy
		} else {
			signal = SignalBuy
		}
	case PriceBelowCloud:
		if tenkan < kijun && cloud == CloudBearish {
			signal = SignalStrongSell
		} else {
			signal = SignalSell
		}
	default:
		signal = SignalNeutral
	}

	return &models.IchimokuValue{
		TenkanSen:     tenkan,
		KijunSen:      kijun,
		SenkouSpanA:   spanA,
		SenkouSpanB:   spanB,
		ChikouSpan:    price,
		CloudColor:    cloud,
		PricePosition: position,
		Signal:        signal,
	}, nil
}

// midpoint returns (highest high + lowest low) / 2 over the period ending
// at index end inclusive.
func midpoint(highs, lows []float64, end, period int) float64 {
	start := end - period + 1
	if start < 0 {
		start = 0
	}
	hh, ll := highs[start], lows[start]
	for i := start; i <= end; i++ {
		if highs[i] > hh {
			hh = highs[i]
		}
		if lows[i] < ll {
			ll = lows[i]
		}
	}
	return (hh + ll) / 2
}
