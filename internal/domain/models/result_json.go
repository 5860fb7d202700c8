package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// valuePrototype returns a zero value of the payload variant used by the
// given indicator type, so cached results decode back into typed values.
func valuePrototype(t IndicatorType) (IndicatorValue, bool) {
	switch t {
	case SMA, EMA, WMA, DEMA, TEMA, HMA, KAMA, ZLEMA, VWMA, ALMA, TRIMA:
		return &MAValue{}, true
	case RSI, WilliamsR, MFI, CCI:
		return &OscillatorValue{}, true
	case Stochastic, StochasticRSI:
		return &StochasticValue{}, true
	case MACD:
		return &MACDValue{}, true
	case TSI:
		return &TSIValue{}, true
	case ROC, Momentum, StdDev, ATR, OBV, VWAP, AD, CMF:
		return &SingleValue{}, true
	case BollingerBands, KeltnerChannel, DonchianChannel:
		return &BandsValue{}, true
	case ADX:
		return &ADXValue{}, true
	case LinearRegression:
		return &LinRegValue{}, true
	case SuperTrend:
		return &SuperTrendValue{}, true
	case Ichimoku:
		return &IchimokuValue{}, true
	case PivotPoints:
		return &PivotPointsValue{}, true
	case FibonacciRetracement:
		return &FibonacciValue{}, true
	}
	return nil, false
}

// UnmarshalJSON decodes the polymorphic Value field into the variant that
// matches the Type tag.
func (r *IndicatorResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type      IndicatorType     `json:"type"`
		Category  IndicatorCategory `json:"category"`
		Timestamp time.Time         `json:"timestamp"`
		Value     json.RawMessage   `json:"value"`
		Metadata  ResultMetadata    `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Type = raw.Type
	r.Category = raw.Category
	r.Timestamp = raw.Timestamp
	r.Metadata = raw.Metadata
	r.Value = nil

	if len(raw.Value) == 0 || string(raw.Value) == "null" {
		return nil
	}
	proto, ok := valuePrototype(raw.Type)
	if !ok {
		return fmt.Errorf("decode result: unknown indicator type %q", raw.Type)
	}
	if err := json.Unmarshal(raw.Value, proto); err != nil {
		return fmt.Errorf("decode %s value: %w", raw.Type, err)
	}
	r.Value = deref(proto)
	return nil
}

func deref(v IndicatorValue) IndicatorValue {
	switch p := v.(type) {
	case *MAValue:
		return *p
	case *OscillatorValue:
		return *p
	case *StochasticValue:
		return *p
	case *MACDValue:
		return *p
	case *TSIValue:
		return *p
	case *SingleValue:
		return *p
	case *BandsValue:
		return *p
	case *ADXValue:
		return *p
	case *LinRegValue:
		return *p
	case *SuperTrendValue:
		return *p
	case *IchimokuValue:
		return *p
	case *PivotPointsValue:
		return *p
	case *FibonacciValue:
		return *p
	}
	return v
}
