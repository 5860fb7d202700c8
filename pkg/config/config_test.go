package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
environment: test
server:
  port: 8080
engine:
  candle_limit: 500
  cache_timeout: 150ms
  max_batch_size: 50
cache:
  backend: memory
clickhouse:
  host: localhost
  port: 9000
  database: taengine
logging:
  level: info
  format: json
  output: stdout
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	if c.Environment != "test" || c.Server.Port != 8080 {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.Engine.CandleLimit != 500 || c.Engine.MaxBatchSize != 50 {
		t.Fatalf("engine section: %+v", c.Engine)
	}
	if c.Cache.Backend != "memory" {
		t.Fatalf("cache backend: %q", c.Cache.Backend)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	c.Cache.Backend = "memcached"
	if err := c.Validate(); err == nil {
		t.Fatal("expected backend validation error")
	}
}

func TestValidateRedisBackendNeedsHost(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	c.Cache.Backend = "redis"
	if err := c.Validate(); err == nil {
		t.Fatal("redis backend without host should fail")
	}
	c.Cache.Redis.Host = "localhost"
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateKafkaRequirements(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	c.Kafka.Enabled = true
	if err := c.Validate(); err == nil {
		t.Fatal("enabled kafka without brokers should fail")
	}
	c.Kafka.Brokers = []string{"localhost:9092"}
	if err := c.Validate(); err == nil {
		t.Fatal("enabled kafka without topic should fail")
	}
	c.Kafka.Topic = "taengine.indicator.stats"
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateRequiresClickHouseHost(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	c.ClickHouse.Host = ""
	if err := c.Validate(); err == nil {
		t.Fatal("missing clickhouse host should fail")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "layered")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_TOPIC", "stats")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	if c.Cache.Backend != "layered" || c.Cache.Redis.Host != "redis.internal" || c.Cache.Redis.Port != 6380 {
		t.Fatalf("cache overrides: %+v", c.Cache)
	}
	if !c.Kafka.Enabled || len(c.Kafka.Brokers) != 2 || c.Kafka.Topic != "stats" {
		t.Fatalf("kafka overrides: %+v", c.Kafka)
	}
	if c.Logging.Level != "debug" {
		t.Fatalf("log level override: %q", c.Logging.Level)
	}
}
