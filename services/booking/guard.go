package booking

import (
	"sync"

	"go.uber.org/zap"
)

// Browser navigation-timing entry types reported by the client on mount.
const (
	NavigationReload      = "reload"
	NavigationNavigate    = "navigate"
	NavigationBackForward = "back_forward"
)

// NavigationGuard resets the booking draft on hard page loads and leaves it
// alone for in-app transitions. It runs at most once per page load: the client
// generates a fresh load id on each page load, and re-renders within that load
// report the same id, so they cannot re-trigger the reset. A new load id
// re-arms the guard.
type NavigationGuard struct {
	mu         sync.Mutex
	evaluated  bool
	lastLoadID string
	store      *Store
	logger     *zap.Logger
}

// NewNavigationGuard builds a guard over the given draft store.
func NewNavigationGuard(store *Store, logger *zap.Logger) *NavigationGuard {
	return &NavigationGuard{store: store, logger: logger}
}

// Evaluate runs the transition once per page load. "reload" and "navigate"
// are fresh page loads and clear both the draft and its persisted copy; any
// other type (back/forward cache restores included) is left untouched.
// Returns whether the draft was cleared; repeat calls with the same load id
// always return false.
func (g *NavigationGuard) Evaluate(loadID, navigationType string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.evaluated && loadID == g.lastLoadID {
		return false
	}
	g.evaluated = true
	g.lastLoadID = loadID

	switch navigationType {
	case NavigationReload, NavigationNavigate:
		g.store.Reset()
		g.logger.Debug("booking draft cleared on hard load",
			zap.String("navigationType", navigationType))
		return true
	default:
		return false
	}
}

// Evaluated reports whether the guard has run for any page load.
func (g *NavigationGuard) Evaluated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.evaluated
}
