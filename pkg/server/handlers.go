package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/matzehuels/execreport/pkg/archive"
	"github.com/matzehuels/execreport/pkg/buildinfo"
	"github.com/matzehuels/execreport/pkg/cache"
	"github.com/matzehuels/execreport/pkg/errors"
	pkgio "github.com/matzehuels/execreport/pkg/io"
	"github.com/matzehuels/execreport/pkg/pipeline"
	"github.com/matzehuels/execreport/pkg/report"
)

// Response headers set on generated documents.
const (
	HeaderPages = "X-Report-Pages"
	HeaderCache = "X-Cache"
)

// TenantHeader selects a cache namespace for multi-tenant deployments.
const TenantHeader = "X-Tenant-ID"

var tenantPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) executive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rf, err := pkgio.ReadRequest(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, c := range rf.Charts {
		if c.Path != "" {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
				"chart %q: file paths are not accepted over HTTP; send data or url", c.Title))
			return
		}
	}

	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	keyer, err := s.keyer(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Keyer = keyer
	req, err := rf.Resolve(ctx, s.chartOptions(keyer))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Execute(ctx, req, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheHit {
		cacheState = "hit"
	}
	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	h.Set("Content-Length", strconv.Itoa(len(res.Data)))
	h.Set(HeaderPages, strconv.Itoa(res.Pages))
	h.Set(HeaderCache, cacheState)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		s.logger.Warn("write response failed", "id", RequestID(ctx), "err", err)
	}
}

func (s *Server) filename(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Metadata report.Metadata `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	meta := body.Metadata
	switch {
	case opts.Version != "":
		meta.ReportVersion = opts.Version
	case meta.ReportVersion == "" && opts.DefaultVersion != "":
		meta.ReportVersion = opts.DefaultVersion
	}
	if err := meta.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"filename": report.BuildFilename(meta, report.ExtPDF),
	})
}

func (s *Server) exports(w http.ResponseWriter, r *http.Request) {
	q := archive.Query{CaseID: r.URL.Query().Get("case")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		q.Limit = n
	}
	recs, err := s.runner.Archive.List(r.Context(), q)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "list exports"))
		return
	}
	if recs == nil {
		recs = []archive.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// keyer scopes cache keys to the tenant named in [TenantHeader]. Requests
// without the header share the runner's key space.
func (s *Server) keyer(r *http.Request) (cache.Keyer, error) {
	tenant := r.Header.Get(TenantHeader)
	if tenant == "" {
		return s.runner.Keyer, nil
	}
	if !tenantPattern.MatchString(tenant) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", TenantHeader, tenant)
	}
	return cache.NewScopedKeyer(s.runner.Keyer, "tenant:"+tenant+":"), nil
}

// requestOptions applies the locale, currency, version and no_cache query
// parameters over the server defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.opts
	q := r.URL.Query()
	if v := q.Get("locale"); v != "" {
		opts.Format.Locale = v
	}
	if v := q.Get("currency"); v != "" {
		opts.Format.Currency = v
	}
	if v := q.Get("version"); v != "" {
		if err := errors.ValidateReportVersion(v); err != nil {
			return opts, err
		}
		opts.Version = v
	}
	if v := q.Get("no_cache"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid no_cache %q", v)
		}
		opts.SkipCache = skip
	}
	return opts, nil
}

// statusFor maps error codes to HTTP status codes. Caller errors are 4xx.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	code := errors.GetCode(err)
	switch {
	case code == errors.ErrCodeInvalidPayload, code == errors.ErrCodeEncoding:
		return http.StatusUnprocessableEntity
	case errors.IsCallerError(err):
		return http.StatusBadRequest
	}
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	switch {
	case errors.IsCallerError(err), status < http.StatusInternalServerError:
		s.logger.Debug("request rejected", "id", RequestID(r.Context()), "code", code, "err", err)
	default:
		s.logger.Error("request failed", "id", RequestID(r.Context()), "code", code, "err", err)
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
