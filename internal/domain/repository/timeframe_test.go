package repository

import (
	"testing"
	"time"
)

func TestCacheTTLPerTimeframe(t *testing.T) {
	cases := []struct {
		tf  Timeframe
		ttl time.Duration
	}{
		{TF1m, time.Minute},
		{TF5m, 5 * time.Minute},
		{TF15m, 15 * time.Minute},
		{TF30m, 30 * time.Minute},
		{TF1h, time.Hour},
		{TF4h, 4 * time.Hour},
		{TF1d, 24 * time.Hour},
		{TF1w, 7 * 24 * time.Hour},
		{TF1M, 30 * 24 * time.Hour},
	}
	for _, c := range cases {
		if got := CacheTTL(c.tf); got != c.ttl {
			t.Fatalf("%s: got %v, want %v", c.tf, got, c.ttl)
		}
	}
}

func TestCacheTTLUnknownFallsBackTo5m(t *testing.T) {
	if got := CacheTTL("3h"); got != 5*time.Minute {
		t.Fatalf("unknown timeframe: got %v, want 5m", got)
	}
}

func TestNormalizeTimeframe(t *testing.T) {
	if got := NormalizeTimeframe(""); got != TF1h {
		t.Fatalf("empty: got %s, want 1h", got)
	}
	if got := NormalizeTimeframe("4h"); got != TF4h {
		t.Fatalf("4h: got %s", got)
	}
	if got := NormalizeTimeframe("2h"); got != TF1h {
		t.Fatalf("unsupported: got %s, want default", got)
	}
	// Minute and month buckets differ only by case.
	if got := NormalizeTimeframe("1m"); got != TF1m {
		t.Fatalf("1m: got %s", got)
	}
	if got := NormalizeTimeframe("1M"); got != TF1M {
		t.Fatalf("1M: got %s", got)
	}
}

func TestIsValidTimeframe(t *testing.T) {
	for _, tf := range []Timeframe{TF1m, TF5m, TF15m, TF30m, TF1h, TF4h, TF1d, TF1w, TF1M} {
		if !IsValidTimeframe(tf) {
			t.Fatalf("%s should be valid", tf)
		}
	}
	if IsValidTimeframe("7h") {
		t.Fatal("7h should be invalid")
	}
}
