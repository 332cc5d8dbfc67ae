// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages emit events through the registered hooks without depending
// on any particular backend. The defaults are no-ops; the CLI registers
// implementations at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetFetchHooks(&myFetchHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnSourceLoaded(ctx, "GitHub", sponsors, transactions, err)
//	observability.Fetch().OnFetch(ctx, ref, size, cached, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the sponsor pipeline.
type PipelineHooks interface {
	// OnSourceLoaded fires once per platform export, found or not.
	OnSourceLoaded(ctx context.Context, platform string, sponsors, transactions int, err error)

	// OnAvatarRendered fires after each sponsor avatar is composited.
	OnAvatarRendered(ctx context.Context, name string, size int, duration time.Duration, err error)

	// OnDocumentWritten fires after an SVG file is written.
	OnDocumentWritten(ctx context.Context, path string, sponsors int, err error)
}

// =============================================================================
// Fetch Hooks
// =============================================================================

// FetchHooks receives events from avatar fetching.
type FetchHooks interface {
	// OnFetch records one avatar fetch. cached is true when the bytes came
	// from the byte cache instead of the network or disk.
	OnFetch(ctx context.Context, ref string, size int, cached bool, duration time.Duration, err error)

	// OnRetry records a retried transient failure.
	OnRetry(ctx context.Context, ref string, attempt int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnSourceLoaded(context.Context, string, int, int, error)              {}
func (NoopPipelineHooks) OnAvatarRendered(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnDocumentWritten(context.Context, string, int, error)               {}

// NoopFetchHooks is a no-op implementation of FetchHooks.
type NoopFetchHooks struct{}

func (NoopFetchHooks) OnFetch(context.Context, string, int, bool, time.Duration, error) {}
func (NoopFetchHooks) OnRetry(context.Context, string, int, error)                     {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	fetchHooks    FetchHooks    = NoopFetchHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetFetchHooks registers custom fetch hooks.
func SetFetchHooks(h FetchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fetchHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Fetch returns the registered fetch hooks.
func Fetch() FetchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fetchHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	fetchHooks = NoopFetchHooks{}
}
