package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"TAEngine/internal/domain/models"
)

var validate = validator.New()

// Dispatcher validates indicator configurations and routes them to the
// matching function from the indicator library, wrapping raw output into the
// uniform result envelope. It never retries: validation failures and
// computation errors propagate immediately as typed errors.
type Dispatcher struct{}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Calculate computes one indicator over the candle series.
func (d *Dispatcher) Calculate(_ context.Context, candles []models.Candle, cfg models.IndicatorConfig) (*models.IndicatorResult, error) {
	category, ok := models.CategoryOf(cfg.Type)
	if !ok {
		return nil, &models.UnsupportedIndicatorError{Type: cfg.Type}
	}
	calc, ok := registry[cfg.Type]
	if !ok {
		return nil, &models.UnsupportedIndicatorError{Type: cfg.Type}
	}

	if len(candles) == 0 {
		return nil, &models.InsufficientDataError{Indicator: string(cfg.Type), Required: 1, Actual: 0}
	}

	start := time.Now()
	value, meta, err := calc(candles, cfg)
	if err != nil {
		return nil, err
	}

	return &models.IndicatorResult{
		Type:      cfg.Type,
		Category:  category,
		Timestamp: candles[len(candles)-1].Timestamp,
		Value:     value,
		Metadata: models.ResultMetadata{
			Period:            meta.period,
			Parameters:        meta.params,
			CalculationTimeMs: float64(time.Since(start).Microseconds()) / 1000,
		},
	}, nil
}

// calcMeta carries the effective configuration back into the result envelope.
type calcMeta struct {
	period int
	params map[string]any
}

// decodeParams parses the open parameter map into a typed per-indicator
// config struct: unknown fields are rejected, defaults filled in, ranges
// checked. The explicit top-level Period field is folded into the map first.
func decodeParams[T any](cfg models.IndicatorConfig) (*T, error) {
	raw := make(map[string]any, len(cfg.Parameters)+1)
	for k, v := range cfg.Parameters {
		raw[k] = v
	}
	if cfg.Period != 0 {
		raw["period"] = cfg.Period
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, &models.InvalidParameterError{Name: "parameters", Actual: err.Error()}
	}

	out := new(T)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return nil, &models.InvalidParameterError{Name: "parameters", Actual: err.Error()}
	}
	if err := defaults.Set(out); err != nil {
		return nil, &models.InvalidParameterError{Name: "parameters", Actual: err.Error()}
	}
	if err := validate.Struct(out); err != nil {
		return nil, translateValidation(err)
	}
	return out, nil
}

func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if ok := errors.As(err, &verrs); ok && len(verrs) > 0 {
		e := verrs[0]
		pe := &models.InvalidParameterError{Name: e.Field(), Actual: e.Value()}
		switch e.Tag() {
		case "min", "gte":
			pe.Min = paramFloat(e.Param())
		case "max", "lte":
			pe.Max = paramFloat(e.Param())
			pe.HasMax = true
		}
		return pe
	}
	return &models.InvalidParameterError{Name: "parameters", Actual: err.Error()}
}

func paramFloat(s string) float64 {
	var f float64
	_ = json.Unmarshal([]byte(s), &f)
	return f
}
