package booking

import (
	"context"
	"sync"

	"ridebook/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PromotionFetcher lists the promotions applicable at a pickup point.
type PromotionFetcher interface {
	FetchPromotions(ctx context.Context, session *models.Session, lat, lng float64) ([]models.Promotion, error)
}

// DispatchAPI is the slice of the dispatch client the booking services need.
type DispatchAPI interface {
	DriverFinder
	ScheduleSubmitter
	CardFetcher
	CardDeleter
	PromotionFetcher
}

// Scope bundles the per-draft services: the store, its navigation guard, the
// payment reconciler, and the orchestrator, all sharing one draft id.
type Scope struct {
	Store        *Store
	Guard        *NavigationGuard
	Payment      *PaymentService
	Orchestrator *Orchestrator
}

// Manager hands out Scopes keyed by draft id, creating them on demand and
// restoring persisted drafts from Redis.
type Manager struct {
	Cache     *redis.Client
	Dispatch  DispatchAPI
	Records   BookingRecorder
	Reminders ReminderScheduler
	Recents   RecentLocationSaver
	Operator  OperatorSource
	Logger    *zap.Logger

	mu     sync.Mutex
	scopes map[string]*Scope
}

// NewManager builds an empty scope manager.
func NewManager(cache *redis.Client, api DispatchAPI, records BookingRecorder, reminders ReminderScheduler, recents RecentLocationSaver, operator OperatorSource, logger *zap.Logger) *Manager {
	return &Manager{
		Cache:     cache,
		Dispatch:  api,
		Records:   records,
		Reminders: reminders,
		Recents:   recents,
		Operator:  operator,
		Logger:    logger,
		scopes:    make(map[string]*Scope),
	}
}

// Scope returns the services for a draft id, creating them on first use.
func (m *Manager) Scope(draftID string) *Scope {
	m.mu.Lock()
	defer m.mu.Unlock()
	if scope, ok := m.scopes[draftID]; ok {
		return scope
	}

	store := NewStore(draftID, m.Cache, m.Logger)
	scope := &Scope{
		Store: store,
		Guard: NewNavigationGuard(store, m.Logger),
		Payment: &PaymentService{
			Store:    store,
			Fetcher:  m.Dispatch,
			Deleter:  m.Dispatch,
			Operator: m.Operator,
			Logger:   m.Logger,
		},
		Orchestrator: &Orchestrator{
			Store:     store,
			Dispatch:  m.Dispatch,
			Finder:    m.Dispatch,
			Records:   m.Records,
			Reminders: m.Reminders,
			Recents:   m.Recents,
			Logger:    m.Logger,
		},
	}
	m.scopes[draftID] = scope
	return scope
}

// Promotions fetches the promotions applicable at a pickup point.
func (m *Manager) Promotions(ctx context.Context, session *models.Session, lat, lng float64) ([]models.Promotion, error) {
	return m.Dispatch.FetchPromotions(ctx, session, lat, lng)
}

// Drop clears a draft and forgets its scope. Used on logout.
func (m *Manager) Drop(draftID string) {
	m.mu.Lock()
	scope, ok := m.scopes[draftID]
	delete(m.scopes, draftID)
	m.mu.Unlock()
	if ok {
		scope.Store.Reset()
	}
}
