package models

import "fmt"

// UnsupportedIndicatorError is returned when the requested indicator type is
// not in the registry. Fatal to the requesting unit, never retried.
type UnsupportedIndicatorError struct {
	Type IndicatorType
}

func (e *UnsupportedIndicatorError) Error() string {
	return fmt.Sprintf("unsupported indicator type: %s", e.Type)
}

// InvalidParameterError is returned for a missing, non-numeric or
// out-of-range configuration parameter.
type InvalidParameterError struct {
	Name   string
	Min    float64
	Max    float64
	HasMax bool
	Actual any
}

func (e *InvalidParameterError) Error() string {
	if e.HasMax {
		return fmt.Sprintf("invalid parameter %q: got %v, expected [%g, %g]", e.Name, e.Actual, e.Min, e.Max)
	}
	return fmt.Sprintf("invalid parameter %q: got %v, expected >= %g", e.Name, e.Actual, e.Min)
}

// InsufficientDataError is returned when the candle series is shorter than
// the indicator's minimum. Recoverable by supplying more candles.
type InsufficientDataError struct {
	Indicator string
	Required  int
	Actual    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data, need %d candles, got %d", e.Indicator, e.Required, e.Actual)
}

// InvalidRangeError is returned for domain-specific range violations, e.g. a
// Fibonacci retracement with high <= low.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return "invalid range: " + e.Reason
}
