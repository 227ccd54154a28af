// Package observability provides hooks for metrics, tracing, and logging.
//
// Alignment, graph editing, the construction pipeline and the caches emit
// events through small hook interfaces. The defaults are no-ops; an
// application registers real implementations at startup, for example the
// OpenTelemetry-backed [OTelHooks].
//
// # Usage
//
// Register hooks at application startup:
//
//	hooks, err := observability.NewOTelHooks(otel.Meter("graphalign"))
//	if err != nil {
//	    return err
//	}
//	observability.SetAlignHooks(hooks)
//	observability.SetBuildHooks(hooks)
//
// Libraries call hooks to emit events:
//
//	observability.Align().OnAlignStart(ctx, rows, cols)
//	// ... fill the matrices ...
//	observability.Align().OnAlignComplete(ctx, rows, cols, score, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Align Hooks
// =============================================================================

// AlignHooks receives events from the alignment engine. Rows and cols are the
// symbol counts of the two inputs.
type AlignHooks interface {
	OnAlignStart(ctx context.Context, rows, cols int)
	OnAlignComplete(ctx context.Context, rows, cols, score int, duration time.Duration, err error)
}

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from the graph builder. Builder operations take
// no context, so these hooks don't either.
type BuildHooks interface {
	// OnEdit records a composite edit such as "snp", "insertion",
	// "deletion" or "merge".
	OnEdit(kind string, nodeCount int)

	// OnLinearize records a conversion to the compact form.
	OnLinearize(nodeCount, edgeCount int, duration time.Duration, err error)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the iterative construction loop.
type PipelineHooks interface {
	OnRoundStart(ctx context.Context, round, graphLen int)
	OnRoundComplete(ctx context.Context, round, nodeCount int, duration time.Duration, err error)
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

// NoopAlignHooks is a no-op implementation of AlignHooks.
type NoopAlignHooks struct{}

func (NoopAlignHooks) OnAlignStart(context.Context, int, int)                                {}
func (NoopAlignHooks) OnAlignComplete(context.Context, int, int, int, time.Duration, error) {}

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnEdit(string, int)                           {}
func (NoopBuildHooks) OnLinearize(int, int, time.Duration, error) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRoundStart(context.Context, int, int)                           {}
func (NoopPipelineHooks) OnRoundComplete(context.Context, int, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	alignHooks    AlignHooks    = NoopAlignHooks{}
	buildHooks    BuildHooks    = NoopBuildHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetAlignHooks registers custom alignment hooks.
// This should be called once at application startup before any alignment.
func SetAlignHooks(h AlignHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		alignHooks = h
	}
}

// SetBuildHooks registers custom builder hooks.
// Builders capture the registered hooks when they are created.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
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

// Align returns the registered alignment hooks.
func Align() AlignHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return alignHooks
}

// Build returns the registered builder hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
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
	alignHooks = NoopAlignHooks{}
	buildHooks = NoopBuildHooks{}
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
