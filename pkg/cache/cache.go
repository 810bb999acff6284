// Package cache stores generated documents and fetched chart images.
//
// Rendering is deterministic, so a document can be reused whenever the
// request and the options that shape its bytes are unchanged. Keys are built
// by a [Keyer]; values are opaque byte slices with an optional TTL.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON entry per key on local disk, used by the CLI
//   - [RedisCache]: shared cache for server deployments
//
// # Keys
//
//	k := cache.NewDefaultKeyer()
//	key := k.ReportKey(cache.Hash(requestJSON), cache.ReportKeyOpts{Version: "v1"})
//
// Servers that isolate tenants wrap the keyer with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	ReportTTL = 7 * 24 * time.Hour
	ChartTTL  = 24 * time.Hour
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer builds cache keys.
type Keyer interface {
	// ReportKey identifies a rendered document by the hash of its
	// canonical request and the options that affect its bytes.
	ReportKey(inputHash string, opts ReportKeyOpts) string

	// ChartKey identifies a chart image fetched from url.
	ChartKey(url string) string
}

// ReportKeyOpts are the rendering options that change output bytes.
type ReportKeyOpts struct {
	Version    string `json:"version"`
	Build      string `json:"build,omitempty"` // renderer version, stamped as PDF producer
	Locale     string `json:"locale"`
	Currency   string `json:"currency"`
	DateLayout string `json:"date_layout,omitempty"`
	Labels     string `json:"labels,omitempty"` // hash of the label set
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ReportKey returns "report:<sha256>".
func (DefaultKeyer) ReportKey(inputHash string, opts ReportKeyOpts) string {
	return hashKey("report", inputHash, opts)
}

// ChartKey returns "chart:<sha256>".
func (DefaultKeyer) ChartKey(url string) string {
	return hashKey("chart", url)
}

var _ Keyer = DefaultKeyer{}
