package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/execreport/pkg/archive"
	"github.com/matzehuels/execreport/pkg/cache"
	"github.com/matzehuels/execreport/pkg/errors"
	"github.com/matzehuels/execreport/pkg/observability"
	"github.com/matzehuels/execreport/pkg/render/executive"
	"github.com/matzehuels/execreport/pkg/report"
)

// Runner generates documents with caching and archiving.
//
// The runner holds no per-request state; each Execute call creates its own
// surface and layout engine, so one runner can serve many goroutines.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Archive archive.Store
	Logger  *log.Logger
}

// NewRunner creates a runner. Nil arguments select a NullCache, the
// DefaultKeyer, a NullStore and a discard logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, store archive.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if store == nil {
		store = archive.NewNullStore()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Archive: store,
		Logger:  logger,
	}
}

// Execute validates req, serves it from the cache or renders it, and
// archives the export. Cancellation is observed before rendering and
// before anything is persisted.
func (r *Runner) Execute(ctx context.Context, req report.Request, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	switch {
	case opts.Version != "":
		req.Metadata.ReportVersion = opts.Version
	case req.Metadata.ReportVersion == "" && opts.DefaultVersion != "":
		req.Metadata.ReportVersion = opts.DefaultVersion
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	caseID := req.Metadata.CaseID
	hooks := observability.Report()
	hooks.OnGenerateStart(ctx, caseID)
	start := time.Now()

	res, err := r.execute(ctx, req, opts)
	elapsed := time.Since(start)
	pages := 0
	if res != nil {
		res.Duration = elapsed
		pages = res.Pages
	}
	hooks.OnGenerateComplete(ctx, caseID, pages, elapsed, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("executive summary ready",
		"case", caseID,
		"file", res.Filename,
		"pages", res.Pages,
		"cache_hit", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) execute(ctx context.Context, req report.Request, opts Options) (*Result, error) {
	key, err := r.cacheKey(req, &opts)
	if err != nil {
		return nil, err
	}

	if !opts.SkipCache {
		if res, ok := r.lookup(ctx, key, opts.Logger); ok {
			res.Filename = report.BuildFilename(req.Metadata, report.ExtPDF)
			if err := r.archive(ctx, req, res, opts.Logger); err != nil {
				return nil, err
			}
			return res, nil
		}
	}

	f, err := opts.formatter()
	if err != nil {
		return nil, err
	}
	doc, err := executive.Generate(req,
		executive.WithFormatter(f),
		executive.WithLogger(opts.Logger),
		executive.WithObserver(opts.Observer),
	)
	if err != nil {
		return nil, err
	}
	for _, w := range doc.Stats.Overflows {
		observability.Report().OnOverflow(ctx, req.Metadata.CaseID, w.Page, w.Row, w.Height-w.Available)
	}

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	res := &Result{
		Filename:  doc.Filename,
		Data:      doc.Data,
		Pages:     doc.Stats.Pages,
		Rows:      doc.Stats.Rows,
		Overflows: doc.Stats.Overflows,
		Stats:     doc.Stats,
	}
	if !opts.SkipCache {
		r.store(ctx, key, res, opts)
	}
	if err := r.archive(ctx, req, res, opts.Logger); err != nil {
		return nil, err
	}
	return res, nil
}

// cacheKey hashes the canonical JSON request together with the options
// that change the document bytes.
func (r *Runner) cacheKey(req report.Request, opts *Options) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode request")
	}
	keyer := r.Keyer
	if opts.Keyer != nil {
		keyer = opts.Keyer
	}
	return keyer.ReportKey(cache.Hash(data), opts.keyOpts(req.Metadata.Version())), nil
}

func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "report")
		return nil, false
	}
	var entry cachedDocument
	if err := json.Unmarshal(data, &entry); err != nil {
		logger.Warn("discarding corrupt cache entry", "key", key, "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "report")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "report")
	logger.Debug("cache hit", "key", key)
	return &Result{
		Data:      entry.Data,
		Pages:     entry.Stats.Pages,
		Rows:      entry.Stats.Rows,
		Overflows: entry.Stats.Overflows,
		Stats:     entry.Stats,
		CacheHit:  true,
	}, true
}

// store writes the cache entry. Failures are logged; the document is
// still returned.
func (r *Runner) store(ctx context.Context, key string, res *Result, opts Options) {
	data, err := json.Marshal(cachedDocument{Data: res.Data, Stats: res.Stats})
	if err != nil {
		opts.Logger.Warn("cache encode failed", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
		opts.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "report", len(data))
}

// archive records the export. A failing archive is logged rather than
// returned: the document itself is complete.
func (r *Runner) archive(ctx context.Context, req report.Request, res *Result, logger *log.Logger) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	rec := archive.NewRecord(req.Metadata, res.Filename, res.Data, res.Pages, res.CacheHit)
	if err := r.Archive.Save(ctx, rec); err != nil {
		logger.Warn("archive write failed", "case", rec.CaseID, "err", err)
	}
	return nil
}

// Close releases the cache and archive.
func (r *Runner) Close() error {
	var first error
	if r.Cache != nil {
		first = r.Cache.Close()
	}
	if r.Archive != nil {
		if err := r.Archive.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeTimeout, err, "generation canceled")
	}
	return nil
}
