package stats

import (
	"context"
	"time"

	"TAEngine/internal/domain/repository"
	"TAEngine/pkg/kafka"
	"TAEngine/pkg/logger"
)

const publishTimeout = 5 * time.Second

// KafkaSink publishes usage observations to a Kafka topic. Observations are
// fire-and-forget: publish failures are logged and dropped, never returned
// to the calculation path.
type KafkaSink struct {
	producer *kafka.Producer
	topic    string
	log      *logger.Logger
}

func NewKafkaSink(producer *kafka.Producer, topic string, log *logger.Logger) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic, log: log}
}

// Observe publishes one observation keyed by market so per-market ordering
// is preserved within a partition.
func (s *KafkaSink) Observe(ctx context.Context, obs repository.Observation) {
	// Detach from the caller's deadline; the request should not wait on Kafka.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.producer.Publish(pctx, s.topic, []byte(obs.Market.String()), obs); err != nil {
		s.log.Warn("stats publish dropped",
			logger.String("market", obs.Market.String()),
			logger.String("indicator", string(obs.IndicatorType)),
			logger.Error(err),
		)
	}
}

// NopSink discards observations.
type NopSink struct{}

func (NopSink) Observe(context.Context, repository.Observation) {}

var (
	_ repository.StatsSink = (*KafkaSink)(nil)
	_ repository.StatsSink = NopSink{}
)
