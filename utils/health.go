package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	healthCheckInterval = 60 * time.Second
	healthProbeTimeout  = 10 * time.Second
)

// HealthStatus is the latest dependency probe snapshot served on /health.
// Redis holds one entry per client (drafts, sessions, operator params);
// Dispatch reports reachability of the upstream dispatch API.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	Dispatch  bool      `json:"dispatch"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	healthMu      sync.RWMutex
	currentHealth HealthStatus
)

// GetHealthStatus returns the most recent snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes Mongo, every Redis client, and the dispatch
// upstream on a fixed interval, replacing the stored snapshot each round.
// A nil pingDispatch skips the upstream probe and reports it down.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client, pingDispatch func(context.Context) error) {
	go func() {
		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)

			snapshot := HealthStatus{CheckedAt: time.Now()}
			for _, client := range redisClients {
				snapshot.Redis = append(snapshot.Redis, client.Ping(ctx).Err() == nil)
			}
			snapshot.Mongo = mongoClient.Ping(ctx, nil) == nil
			if pingDispatch != nil {
				snapshot.Dispatch = pingDispatch(ctx) == nil
			}
			cancel()

			healthMu.Lock()
			currentHealth = snapshot
			healthMu.Unlock()
		}
	}()
}
