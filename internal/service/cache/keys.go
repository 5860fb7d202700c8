package cache

import (
	"encoding/json"
	"fmt"

	pkgcache "TAEngine/pkg/cache"

	"TAEngine/internal/domain/models"
)

const keyPrefix = "indicators"

// BuildKey derives the cache key for one calculation. Two configs that are
// semantically equal must always hash to the same key, so the configuration
// is reduced to canonical JSON (map keys sorted by the encoder) before
// hashing.
func BuildKey(market models.MarketKey, cfg models.IndicatorConfig) string {
	return pkgcache.GenerateKeyWithParams(keyPrefix,
		market.Venue, market.Symbol, market.Timeframe, string(cfg.Type), ConfigHash(cfg))
}

// ConfigHash returns the MD5 digest of the canonical configuration.
func ConfigHash(cfg models.IndicatorConfig) string {
	canonical := struct {
		Period     int            `json:"period,omitempty"`
		Parameters map[string]any `json:"parameters,omitempty"`
	}{
		Period:     cfg.Period,
		Parameters: cfg.Parameters,
	}
	data, err := json.Marshal(canonical)
	if err != nil {
		// Parameters came from JSON, so this cannot fail in practice.
		data = []byte(fmt.Sprintf("%v:%v", cfg.Period, cfg.Parameters))
	}
	return pkgcache.HashKey(string(data))
}

// hitsKey is the sibling counter key used for atomic hit increments.
func hitsKey(key string) string {
	return key + ":hits"
}

// BuildPattern translates an invalidation filter into a key glob. Empty
// filter fields widen to a wildcard segment.
func BuildPattern(f models.InvalidationFilter) string {
	venue, symbol, typ := f.Venue, f.Symbol, string(f.IndicatorType)
	if venue == "" {
		venue = "*"
	}
	if symbol == "" {
		symbol = "*"
	}
	if typ == "" {
		typ = "*"
	}
	return pkgcache.GenerateKeyWithParams(keyPrefix, venue, symbol, "*", typ, "*")
}
