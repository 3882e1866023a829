package middleware

import (
	"testing"

	"ridebook/config"

	"golang.org/x/time/rate"
)

func TestLimiterUsesConfiguredRate(t *testing.T) {
	prev := config.AppConfig.MaxRequestsPerMin
	config.AppConfig.MaxRequestsPerMin = 2
	defer func() { config.AppConfig.MaxRequestsPerMin = prev }()

	store := &rateLimiterStore{limiters: make(map[string]*rate.Limiter)}
	limiter := store.getLimiter("10.0.0.1")

	if !limiter.Allow() || !limiter.Allow() {
		t.Fatal("burst within the configured limit must pass")
	}
	if limiter.Allow() {
		t.Fatal("request beyond the configured burst must be limited")
	}
}

func TestLimiterFallsBackWhenUnconfigured(t *testing.T) {
	prev := config.AppConfig.MaxRequestsPerMin
	config.AppConfig.MaxRequestsPerMin = 0
	defer func() { config.AppConfig.MaxRequestsPerMin = prev }()

	store := &rateLimiterStore{limiters: make(map[string]*rate.Limiter)}
	limiter := store.getLimiter("10.0.0.2")

	if got := limiter.Burst(); got != 100 {
		t.Fatalf("fallback burst = %d, want 100", got)
	}
}
