package operator

import (
	"context"
	"encoding/json"
	"sync"

	"ridebook/clients/dispatch"
	"ridebook/models"
	"ridebook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service holds the per-tenant operator configuration. It is fetched once per
// operator token, cached in Redis for the browser session, and read-only to
// the rest of the system; Refresh is the only mutation path.
type Service struct {
	Dispatch *dispatch.Client
	Cache    *redis.Client
	Logger   *zap.Logger

	mu     sync.RWMutex
	params *models.OperatorParams
}

func (s *Service) cacheKey() string {
	return utils.OperatorParamsPrefix + s.Dispatch.OperatorToken
}

// Params returns the operator configuration, consulting memory, then the
// Redis cache, then the dispatch API.
func (s *Service) Params(ctx context.Context) (*models.OperatorParams, error) {
	s.mu.RLock()
	if s.params != nil {
		params := *s.params
		s.mu.RUnlock()
		return &params, nil
	}
	s.mu.RUnlock()

	if data, err := s.Cache.Get(ctx, s.cacheKey()).Result(); err == nil {
		var params models.OperatorParams
		if err := json.Unmarshal([]byte(data), &params); err == nil {
			s.mu.Lock()
			s.params = &params
			s.mu.Unlock()
			return &params, nil
		}
		s.Logger.Warn("discarding unreadable cached operator params")
	}

	return s.Refresh(ctx)
}

// Refresh refetches the operator params and replaces both caches.
func (s *Service) Refresh(ctx context.Context) (*models.OperatorParams, error) {
	params, err := s.Dispatch.FetchOperatorParams(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.params = params
	s.mu.Unlock()

	if data, err := json.Marshal(params); err == nil {
		if err := s.Cache.Set(ctx, s.cacheKey(), data, utils.OperatorParamsTTL).Err(); err != nil {
			s.Logger.Warn("failed to cache operator params", zap.Error(err))
		}
	}
	return params, nil
}
