package models

// BatchItemError describes one failed slot of a batch request.
type BatchItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchItem is one slot of a batch response. Exactly one of Result or Error
// is set; Index mirrors the position of the config in the request.
type BatchItem struct {
	Index     int              `json:"index"`
	Result    *IndicatorResult `json:"result,omitempty"`
	FromCache bool             `json:"fromCache"`
	Error     *BatchItemError  `json:"error,omitempty"`
}

// BatchResult aggregates the per-slot outcomes of a batch calculation.
type BatchResult struct {
	Market                 MarketKey   `json:"market"`
	Items                  []BatchItem `json:"items"`
	TotalCalculationTimeMs float64     `json:"totalCalculationTimeMs"`
}
