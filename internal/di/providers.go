package di

import (
	"context"
	"fmt"
	"time"

	"TAEngine/internal/domain/repository"
	"TAEngine/internal/handler/api"
	internalrepo "TAEngine/internal/repository"
	svccache "TAEngine/internal/service/cache"
	"TAEngine/internal/service/stats"
	"TAEngine/internal/usecase"
	pkgcache "TAEngine/pkg/cache"
	pkgch "TAEngine/pkg/clickhouse"
	"TAEngine/pkg/config"
	xhttp "TAEngine/pkg/http"
	pkgkafka "TAEngine/pkg/kafka"
	"TAEngine/pkg/logger"
	"TAEngine/pkg/metrics"
	"TAEngine/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	lc := &logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "json"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return logger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the candle
// tables exist.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{"CREATE DATABASE IF NOT EXISTS taengine"}
	for _, tf := range []string{"1m", "5m", "15m", "30m", "1h", "4h", "1d", "1w", "1mo"} {
		stmts = append(stmts, fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS taengine.candles_%s (venue String, symbol String, bucket DateTime, open Float64, high Float64, low Float64, close Float64, vol Float64) ENGINE=ReplacingMergeTree ORDER BY (venue, symbol, bucket)",
			tf,
		))
	}
	if err := client.InitSchema(ctx, stmts); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideCandleSource creates the ClickHouse candle source.
func ProvideCandleSource(chClient *pkgch.Client, log *logger.Logger) repository.CandleSource {
	src := internalrepo.NewCHCandleSource(chClient)
	src.SetLogger(log)
	return src
}

// ProvideCacheService selects the cache backend from config.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	memOpts := []pkgcache.MemoryOption{}
	if cfg.Cache.Memory.MaxSize > 0 {
		memOpts = append(memOpts, pkgcache.WithMemoryMaxSize(cfg.Cache.Memory.MaxSize))
	}
	if cfg.Cache.Memory.CleanupInterval > 0 {
		memOpts = append(memOpts, pkgcache.WithMemoryCleanup(cfg.Cache.Memory.CleanupInterval))
	}

	switch cfg.Cache.Backend {
	case "", "memory":
		return pkgcache.NewMemoryCache(memOpts...), nil
	case "redis", "layered":
		redisOpts := []pkgcache.RedisOption{
			pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		}
		if cfg.Cache.Redis.Port > 0 {
			redisOpts = append(redisOpts, pkgcache.WithRedisPort(cfg.Cache.Redis.Port))
		}
		if cfg.Cache.Redis.Password != "" {
			redisOpts = append(redisOpts, pkgcache.WithRedisPassword(cfg.Cache.Redis.Password))
		}
		if cfg.Cache.Redis.Prefix != "" {
			redisOpts = append(redisOpts, pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix))
		}
		rc, err := pkgcache.NewRedisCache(redisOpts...)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		if cfg.Cache.Backend == "layered" {
			return pkgcache.NewLayeredCache(rc), nil
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// ProvideResultStore creates the result cache over the selected backend.
func ProvideResultStore(store pkgcache.Service, m repository.Metrics, log *logger.Logger) repository.ResultStore {
	return svccache.NewResultCache(store, m, log)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is off.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.BatchTimeout),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideStatsSink routes observations to Kafka when enabled, otherwise
// discards them.
func ProvideStatsSink(producer *pkgkafka.Producer, cfg *config.Config, log *logger.Logger) repository.StatsSink {
	if producer == nil {
		return stats.NopSink{}
	}
	return stats.NewKafkaSink(producer, cfg.Kafka.Topic, log)
}

// ProvideDispatcher creates the indicator dispatcher.
func ProvideDispatcher() *usecase.Dispatcher {
	return usecase.NewDispatcher()
}

// ProvideEngine assembles the calculation engine.
func ProvideEngine(
	dispatcher *usecase.Dispatcher,
	candles repository.CandleSource,
	store repository.ResultStore,
	sink repository.StatsSink,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Engine {
	opts := []usecase.EngineOption{}
	if cfg.Engine.CandleLimit > 0 {
		opts = append(opts, usecase.WithCandleLimit(cfg.Engine.CandleLimit))
	}
	if cfg.Engine.CacheTimeout > 0 {
		opts = append(opts, usecase.WithCacheTimeout(cfg.Engine.CacheTimeout))
	}
	return usecase.NewEngine(dispatcher, candles, store, sink, m, log, opts...)
}

// ProvideHTTPHandler creates the indicators HTTP handler.
func ProvideHTTPHandler(log *logger.Logger, engine *usecase.Engine) xhttp.Handler {
	return api.NewIndicatorsHandler(log, engine)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, log, handler, chClient, producer)
}
