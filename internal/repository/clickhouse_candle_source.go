package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"TAEngine/internal/domain/models"
	domrepo "TAEngine/internal/domain/repository"
	pkgch "TAEngine/pkg/clickhouse"
	applogger "TAEngine/pkg/logger"
)

// CHCandleSource implements CandleSource backed by per-timeframe ClickHouse
// candle tables.
type CHCandleSource struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHCandleSource(ch *pkgch.Client) *CHCandleSource {
	return &CHCandleSource{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHCandleSource) SetLogger(l *applogger.Logger) { s.l = l }

// Fetch returns up to limit candles ascending by bucket, newest window last.
func (s *CHCandleSource) Fetch(ctx context.Context, venue, symbol string, tf domrepo.Timeframe, limit int) ([]models.Candle, error) {
	start := time.Now()
	table, err := tableForTF(tf)
	if err != nil {
		return nil, err
	}
	const qtpl = `
        SELECT bucket, open, high, low, close, vol
        FROM %s
        WHERE venue = ? AND symbol = ?
        ORDER BY bucket DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, table)
	rows, err := s.db.QueryContext(ctx, q, venue, symbol, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse candles query error",
				applogger.String("table", table),
				applogger.String("venue", venue),
				applogger.String("symbol", symbol),
				applogger.String("tf", string(tf)),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("fetch candles: %w", err)
	}
	defer rows.Close()

	out := make([]models.Candle, 0, limit)
	for rows.Next() {
		var c models.Candle
		if err := rows.Scan(&c.Timestamp, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse candles scan error",
					applogger.String("table", table),
					applogger.String("venue", venue),
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if s.l != nil {
		s.l.Debug("clickhouse candles ok",
			applogger.String("table", table),
			applogger.String("venue", venue),
			applogger.String("symbol", symbol),
			applogger.String("tf", string(tf)),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func tableForTF(tf domrepo.Timeframe) (string, error) {
	switch tf {
	case domrepo.TF1m:
		return "taengine.candles_1m", nil
	case domrepo.TF5m:
		return "taengine.candles_5m", nil
	case domrepo.TF15m:
		return "taengine.candles_15m", nil
	case domrepo.TF30m:
		return "taengine.candles_30m", nil
	case domrepo.TF1h:
		return "taengine.candles_1h", nil
	case domrepo.TF4h:
		return "taengine.candles_4h", nil
	case domrepo.TF1d:
		return "taengine.candles_1d", nil
	case domrepo.TF1w:
		return "taengine.candles_1w", nil
	case domrepo.TF1M:
		return "taengine.candles_1mo", nil
	default:
		return "", fmt.Errorf("unsupported timeframe: %s", tf)
	}
}

var _ domrepo.CandleSource = (*CHCandleSource)(nil)
