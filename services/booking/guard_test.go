package booking

import (
	"testing"

	"go.uber.org/zap"
)

func seededStore(t *testing.T, id string) *Store {
	t.Helper()
	store := NewStore(id, nil, zap.NewNop())
	pickup := loc("A St", 1, 1)
	store.SetPickup(&pickup)
	return store
}

func TestGuardClearsOnReload(t *testing.T) {
	store := seededStore(t, "guard-reload")
	guard := NewNavigationGuard(store, zap.NewNop())

	if !guard.Evaluate("load-1", NavigationReload) {
		t.Fatal("reload must clear the draft")
	}
	if store.Snapshot().Pickup != nil {
		t.Fatal("draft still populated after reload")
	}
}

func TestGuardClearsOnNavigate(t *testing.T) {
	store := seededStore(t, "guard-navigate")
	guard := NewNavigationGuard(store, zap.NewNop())

	if !guard.Evaluate("load-1", NavigationNavigate) {
		t.Fatal("navigate must clear the draft")
	}
	if store.Snapshot().Pickup != nil {
		t.Fatal("draft still populated after navigate")
	}
}

func TestGuardLeavesBackForwardAlone(t *testing.T) {
	store := seededStore(t, "guard-bf")
	guard := NewNavigationGuard(store, zap.NewNop())

	if guard.Evaluate("load-1", NavigationBackForward) {
		t.Fatal("back_forward must not clear the draft")
	}
	if store.Snapshot().Pickup == nil {
		t.Fatal("draft lost on back_forward restore")
	}
	if !guard.Evaluated() {
		t.Fatal("guard must be done after its first evaluation")
	}
}

func TestGuardIgnoresRepeatsWithinOnePageLoad(t *testing.T) {
	store := seededStore(t, "guard-once")
	guard := NewNavigationGuard(store, zap.NewNop())

	// Re-renders within one page load report the same load id; a stray repeat
	// claiming reload must not wipe the draft the rider is working on.
	guard.Evaluate("load-1", NavigationBackForward)
	if guard.Evaluate("load-1", NavigationReload) {
		t.Fatal("repeat evaluation within a page load must be a no-op")
	}
	if store.Snapshot().Pickup == nil {
		t.Fatal("draft cleared by a repeat evaluation")
	}
}

func TestGuardReArmsOnNextPageLoad(t *testing.T) {
	store := seededStore(t, "guard-rearm")
	guard := NewNavigationGuard(store, zap.NewNop())

	if !guard.Evaluate("load-1", NavigationReload) {
		t.Fatal("first hard load must clear the draft")
	}

	// The rider books partially, closes the tab, and hard-loads again. The
	// fresh load id re-arms the guard, so the second reload clears as well.
	pickup := loc("B St", 2, 2)
	store.SetPickup(&pickup)

	if !guard.Evaluate("load-2", NavigationReload) {
		t.Fatal("second hard load must clear the draft again")
	}
	if store.Snapshot().Pickup != nil {
		t.Fatal("stale draft survived the second hard load")
	}
}
