package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "test-does-not-exist")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 5000 {
		t.Errorf("port = %d, want 5000", cfg.Port)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Errorf("ping period = %v, want 54s", cfg.PingPeriod)
	}
	if cfg.WriteTimeout != 10*time.Second {
		t.Errorf("write timeout = %v, want 10s", cfg.WriteTimeout)
	}
	if cfg.ReadLimit != 65536 {
		t.Errorf("read limit = %d, want 65536", cfg.ReadLimit)
	}
}

func TestOriginAllowed(t *testing.T) {
	cfg := &Config{AllowedOrigins: []string{"http://localhost:5173", "https://meet.example.com"}}

	cases := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:5173", true},
		{"https://meet.example.com", true},
		{"https://evil.example.com", false},
		{"", true}, // non-browser clients send no Origin
	}
	for _, tc := range cases {
		if got := cfg.OriginAllowed(tc.origin); got != tc.want {
			t.Errorf("OriginAllowed(%q) = %v, want %v", tc.origin, got, tc.want)
		}
	}

	open := &Config{}
	if !open.OriginAllowed("https://anywhere.example.com") {
		t.Error("empty allow-list should admit any origin")
	}
}
