package io

import (
	"bytes"
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/execreport/pkg/buildinfo"
	"github.com/matzehuels/execreport/pkg/cache"
	"github.com/matzehuels/execreport/pkg/errors"
	"github.com/matzehuels/execreport/pkg/observability"
	"github.com/matzehuels/execreport/pkg/report"
)

// DefaultMaxChartBytes caps a single chart image.
const DefaultMaxChartBytes = 16 << 20

// LoadOptions configures chart loading. Zero fields take defaults.
type LoadOptions struct {
	BaseDir  string            // root for relative chart paths
	Client   *http.Client      // default: 30s timeout
	Cache    cache.Cache       // caches fetched URLs; default: none
	Keyer    cache.Keyer       // default: cache.NewDefaultKeyer()
	TTL      time.Duration     // default: cache.ChartTTL
	Retry    cache.RetryPolicy // default: cache.DefaultRetryPolicy
	MaxBytes int64             // default: DefaultMaxChartBytes
	Logger   *log.Logger
}

func (o *LoadOptions) setDefaults() {
	if o.Client == nil {
		o.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.TTL == 0 {
		o.TTL = cache.ChartTTL
	}
	if o.Retry.Attempts == 0 {
		o.Retry = cache.DefaultRetryPolicy
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxChartBytes
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LoadCharts resolves specs in order. Charts without bytes are dropped;
// missing dimensions are read from the image header, which fails with
// ENCODING_ERROR for data that is not a PNG, JPEG or GIF.
func LoadCharts(ctx context.Context, specs []ChartSpec, opts LoadOptions) ([]report.ChartImage, error) {
	opts.setDefaults()
	out := make([]report.ChartImage, 0, len(specs))
	for i, s := range specs {
		data, err := opts.load(ctx, s)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			opts.Logger.Debug("chart dropped: no image data", "chart", i, "title", s.Title)
			continue
		}

		w, h := s.Width, s.Height
		if w <= 0 || h <= 0 {
			cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeEncoding, err, "chart %q: read image header", s.Title)
			}
			w, h = cfg.Width, cfg.Height
		}
		out = append(out, report.ChartImage{Title: s.Title, Data: data, Width: w, Height: h})
	}
	return out, nil
}

func (o *LoadOptions) load(ctx context.Context, s ChartSpec) ([]byte, error) {
	sources := 0
	for _, set := range []bool{len(s.Data) > 0, s.Path != "", s.URL != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart %q: set only one of data, path or url", s.Title)
	}

	switch {
	case len(s.Data) > 0:
		return s.Data, nil
	case s.Path != "":
		return o.readFile(s.Path)
	case strings.HasPrefix(s.URL, "data:"):
		return decodeDataURL(s.URL)
	case s.URL != "":
		return o.fetch(ctx, s.URL)
	}
	return nil, nil
}

func (o *LoadOptions) readFile(path string) ([]byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	full := filepath.Join(o.BaseDir, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read chart %s", path)
	}
	return data, nil
}

// decodeDataURL accepts base64 data URLs only.
func decodeDataURL(u string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(u, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart data URL must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode chart data URL")
	}
	return data, nil
}

func (o *LoadOptions) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	key := o.Keyer.ChartKey(rawURL)
	data, hit, err := o.Cache.Get(ctx, key)
	if err != nil {
		o.Logger.Warn("chart cache read failed", "url", rawURL, "err", err)
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, "chart")
		o.Logger.Debug("chart cache hit", "url", rawURL)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "chart")

	err = cache.Retry(ctx, o.Retry, func() error {
		var err error
		data, err = o.get(ctx, rawURL)
		return err
	})
	switch {
	case err == nil:
	case errors.GetCode(err) != "":
		return nil, err
	case stderrors.Is(err, cache.ErrNotFound):
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "chart %s", rawURL)
	case ctx.Err() != nil:
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch chart %s", rawURL)
	default:
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch chart %s", rawURL)
	}

	if err := o.Cache.Set(ctx, key, data, o.TTL); err != nil {
		o.Logger.Warn("chart cache write failed", "url", rawURL, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "chart", len(data))
	}
	return data, nil
}

// get performs one GET. Transport errors, 429 and 5xx are retryable.
func (o *LoadOptions) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "chart url %q", rawURL)
	}
	req.Header.Set("User-Agent", buildinfo.Producer())

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := o.Client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, cache.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, cache.Retryable(fmt.Errorf("%w: %s", cache.ErrNetwork, resp.Status))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %s", cache.ErrNetwork, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, o.MaxBytes+1))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	if int64(len(data)) > o.MaxBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart %s exceeds %d bytes", rawURL, o.MaxBytes)
	}
	o.Logger.Debug("chart fetched", "url", rawURL, "bytes", len(data), "duration", time.Since(start))
	return data, nil
}
