// Package observability lets an application attach metrics or tracing to
// report generation without the libraries depending on a backend.
//
// Hooks are registered once at startup and default to no-ops:
//
//	func main() {
//	    observability.SetReportHooks(&promReportHooks{})
//	    // ... run application
//	}
//
// Libraries emit events through the accessors:
//
//	observability.Report().OnGenerateStart(ctx, caseID)
//	// ... render ...
//	observability.Report().OnGenerateComplete(ctx, caseID, pages, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ReportHooks receives events from document generation.
type ReportHooks interface {
	OnGenerateStart(ctx context.Context, caseID string)
	OnGenerateComplete(ctx context.Context, caseID string, pages int, duration time.Duration, err error)

	// OnOverflow reports a row taller than a page. excess is the height in
	// points beyond the printable area.
	OnOverflow(ctx context.Context, caseID string, page, row int, excess float64)
}

// CacheHooks receives events from cache lookups. keyType is "report" or
// "chart".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events for HTTP traffic: chart downloads and API
// requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopReportHooks ignores every event.
type NoopReportHooks struct{}

func (NoopReportHooks) OnGenerateStart(context.Context, string) {}
func (NoopReportHooks) OnGenerateComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopReportHooks) OnOverflow(context.Context, string, int, int, float64) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	hooksMu     sync.RWMutex
	reportHooks ReportHooks = NoopReportHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
)

// SetReportHooks registers report hooks. nil is ignored.
func SetReportHooks(h ReportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		reportHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Report returns the registered report hooks.
func Report() ReportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return reportHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op hooks. Used by tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	reportHooks = NoopReportHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
