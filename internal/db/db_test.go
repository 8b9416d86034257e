package db

import (
	"testing"
	"time"
)

func TestConfigWithDefaults(t *testing.T) {
	got := Config{DSN: "postgres://x"}.withDefaults()
	if got.MaxConns != 8 {
		t.Fatalf("expected default max conns 8, got %d", got.MaxConns)
	}
	if got.MaxConnIdleTime != 5*time.Minute || got.MaxConnLifetime != 30*time.Minute {
		t.Fatalf("unexpected defaults %+v", got)
	}
	if got.PingTimeout != 5*time.Second {
		t.Fatalf("expected default ping timeout, got %v", got.PingTimeout)
	}
}

func TestConfigKeepsExplicitValues(t *testing.T) {
	in := Config{
		DSN:             "postgres://x",
		MaxConns:        2,
		MaxConnIdleTime: time.Minute,
		MaxConnLifetime: time.Hour,
		PingTimeout:     time.Second,
	}
	if got := in.withDefaults(); got != in {
		t.Fatalf("explicit values were overridden: %+v", got)
	}
}
