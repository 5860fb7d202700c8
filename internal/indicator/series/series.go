// Package series extracts OHLCV component arrays from candle sequences and
// hosts the validators shared by every indicator.
package series

import (
	"TAEngine/internal/domain/models"
)

// Opens returns the open prices in series order.
func Opens(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Open
	}
	return out
}

// Highs returns the high prices in series order.
func Highs(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.High
	}
	return out
}

// Lows returns the low prices in series order.
func Lows(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Low
	}
	return out
}

// Closes returns the close prices in series order.
func Closes(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// Volumes returns the volumes in series order.
func Volumes(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Volume
	}
	return out
}

// TypicalPrices returns (high+low+close)/3 per candle.
func TypicalPrices(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = (c.High + c.Low + c.Close) / 3
	}
	return out
}

// MedianPrices returns (high+low)/2 per candle.
func MedianPrices(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = (c.High + c.Low) / 2
	}
	return out
}

// ValidateMinLength fails with InsufficientDataError when fewer than min
// points are available for the named indicator.
func ValidateMinLength(actual, min int, indicator string) error {
	if actual < min {
		return &models.InsufficientDataError{
			Indicator: indicator,
			Required:  min,
			Actual:    actual,
		}
	}
	return nil
}

// ValidateParam checks that a float parameter lies in [min, max].
func ValidateParam(value float64, name string, min, max float64) error {
	if value < min || value > max {
		return &models.InvalidParameterError{
			Name: name, Min: min, Max: max, HasMax: true, Actual: value,
		}
	}
	return nil
}

// ValidateParamMin checks that a float parameter is at least min.
func ValidateParamMin(value float64, name string, min float64) error {
	if value < min {
		return &models.InvalidParameterError{
			Name: name, Min: min, Actual: value,
		}
	}
	return nil
}

// ValidatePeriod checks an integer period against [min, max].
func ValidatePeriod(value int, name string, min, max int) error {
	if value < min || value > max {
		return &models.InvalidParameterError{
			Name: name, Min: float64(min), Max: float64(max), HasMax: true, Actual: value,
		}
	}
	return nil
}
