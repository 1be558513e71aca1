package app

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr == "" || cfg.MetricsAddr == "" {
		t.Fatal("expected default listen addresses to be set")
	}
	if cfg.HTTPAddr == cfg.MetricsAddr {
		t.Fatal("api and ops servers must not share an address")
	}
	if cfg.BaseURL == "" {
		t.Fatal("expected default base url")
	}
	if cfg.PostgresDSN != "" {
		t.Fatal("default config must run on in-memory storage")
	}
	if cfg.PayOS.Configured() {
		t.Fatal("default config must not carry provider credentials")
	}
}
