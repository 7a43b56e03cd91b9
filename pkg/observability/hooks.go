// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages never log directly. They emit events through the hooks
// registered here, and the application decides what to do with them (the CLI
// turns them into debug log lines).
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCascadeHooks(&myCascadeHooks{})
//	    observability.SetSchedulerHooks(&mySchedulerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Cascade().OnExpand(id, candidates, moves, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Cascade Hooks
// =============================================================================

// CascadeHooks receives events from the collision-avoidance core.
type CascadeHooks interface {
	// OnExpand records a forward push. found is false when the reference
	// node did not exist; moved counts displaced nodes.
	OnExpand(id string, found bool, candidates, moved int, duration time.Duration)

	// OnCollapse records a reverse push issued by a cleanup function.
	OnCollapse(id string, moved int)
}

// =============================================================================
// Scheduler Hooks
// =============================================================================

// SchedulerHooks receives events from the deferred trigger machinery.
type SchedulerHooks interface {
	// OnScheduled records a deferred run being queued.
	OnScheduled(id string)

	// OnCancelled records a pending run being discarded before it fired.
	OnCancelled(id string)

	// OnRun records a deferred run that executed.
	OnRun(id string, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCascadeHooks is a no-op implementation of CascadeHooks.
type NoopCascadeHooks struct{}

func (NoopCascadeHooks) OnExpand(string, bool, int, int, time.Duration) {}
func (NoopCascadeHooks) OnCollapse(string, int)                         {}

// NoopSchedulerHooks is a no-op implementation of SchedulerHooks.
type NoopSchedulerHooks struct{}

func (NoopSchedulerHooks) OnScheduled(string)          {}
func (NoopSchedulerHooks) OnCancelled(string)          {}
func (NoopSchedulerHooks) OnRun(string, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	cascadeHooks   CascadeHooks   = NoopCascadeHooks{}
	schedulerHooks SchedulerHooks = NoopSchedulerHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetCascadeHooks registers custom cascade hooks.
// This should be called once at application startup.
func SetCascadeHooks(h CascadeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cascadeHooks = h
	}
}

// SetSchedulerHooks registers custom scheduler hooks.
// This should be called once at application startup.
func SetSchedulerHooks(h SchedulerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		schedulerHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Cascade returns the registered cascade hooks.
func Cascade() CascadeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cascadeHooks
}

// Scheduler returns the registered scheduler hooks.
func Scheduler() SchedulerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return schedulerHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	cascadeHooks = NoopCascadeHooks{}
	schedulerHooks = NoopSchedulerHooks{}
	cacheHooks = NoopCacheHooks{}
}
