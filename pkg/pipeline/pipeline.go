// Package pipeline runs executive summary generation for the CLI and the
// HTTP API.
//
// A [Runner] wraps [executive.Generate] with a document cache and an export
// archive. Generation is deterministic, so a request rendered once with the
// same options is served from the cache byte for byte.
//
//	runner := pipeline.NewRunner(c, nil, store, logger)
//	res, err := runner.Execute(ctx, req, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(res.Filename, res.Data, 0o644)
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/execreport/pkg/buildinfo"
	"github.com/matzehuels/execreport/pkg/cache"
	"github.com/matzehuels/execreport/pkg/errors"
	"github.com/matzehuels/execreport/pkg/render/layout"
	"github.com/matzehuels/execreport/pkg/report"
)

// Options controls one generation.
type Options struct {
	// Labels overrides the built-in label set.
	Labels *report.Labels

	// Format sets locale, currency and date layout. Zero fields take the
	// report package defaults.
	Format report.FormatOptions

	// Version replaces the request's report version when set.
	Version string

	// DefaultVersion applies to requests that carry no report version.
	DefaultVersion string

	// TTL is how long the document stays cached (default cache.ReportTTL).
	TTL time.Duration

	// SkipCache renders without reading or writing the cache.
	SkipCache bool

	// Keyer replaces the runner's keyer for this call, typically with a
	// per-tenant cache.ScopedKeyer.
	Keyer cache.Keyer

	Logger   *log.Logger
	Observer layout.Observer
}

// ValidateAndSetDefaults fills zero fields and checks the rest.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Labels == nil {
		l := report.DefaultLabels()
		o.Labels = &l
	}
	if o.Format.Locale == "" {
		o.Format.Locale = report.DefaultLocale
	}
	if o.Format.Currency == "" {
		o.Format.Currency = report.DefaultCurrency
	}
	if o.Format.DateLayout == "" {
		o.Format.DateLayout = report.DefaultDateLayout
	}
	for _, v := range []string{o.Version, o.DefaultVersion} {
		if v == "" {
			continue
		}
		if err := errors.ValidateReportVersion(v); err != nil {
			return err
		}
	}
	if o.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if o.TTL == 0 {
		o.TTL = cache.ReportTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// formatter builds the formatter for validated options.
func (o *Options) formatter() (*report.Formatter, error) {
	return report.NewFormatter(*o.Labels, o.Format)
}

// keyOpts returns the options that change document bytes.
func (o *Options) keyOpts(version string) cache.ReportKeyOpts {
	labels, _ := json.Marshal(o.Labels)
	return cache.ReportKeyOpts{
		Version:    version,
		Build:      buildinfo.Version,
		Locale:     o.Format.Locale,
		Currency:   o.Format.Currency,
		DateLayout: o.Format.DateLayout,
		Labels:     cache.Hash(labels),
	}
}

// Result is a generated (or cached) document.
type Result struct {
	Filename  string
	Data      []byte
	Pages     int
	Rows      int
	Overflows []layout.OverflowWarning
	Stats     layout.Stats
	CacheHit  bool
	Duration  time.Duration
}

// cachedDocument is the cache entry for a document.
type cachedDocument struct {
	Data  []byte       `json:"data"`
	Stats layout.Stats `json:"stats"`
}
