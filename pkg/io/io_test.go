package io

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/execreport/pkg/cache"
	"github.com/matzehuels/execreport/pkg/errors"
)

var fastRetry = cache.RetryPolicy{Attempts: 3, Delay: time.Millisecond}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const requestJSON = `{
  "metadata": {"case_id": "tsl-2024", "exported_at": "2025-11-30T09:30:00Z"},
  "payload": {
    "subject": "Tech Solutions ApS",
    "financial": {"latest_year": 2024, "gross_profit": 12000000},
    "risk": {"risk_scores": [{"category": "Tax", "risk_level": "HØJ"}]}
  },
  "charts": [{"title": "Revenue", "path": "revenue.png"}]
}`

func TestReadRequest(t *testing.T) {
	rf, err := ReadRequest(strings.NewReader(requestJSON))
	if err != nil {
		t.Fatalf("ReadRequest() error = %v", err)
	}
	if rf.Metadata.CaseID != "tsl-2024" {
		t.Errorf("CaseID = %q", rf.Metadata.CaseID)
	}
	if got := rf.Payload.Risk.Scores[0].Level; got != "HIGH" {
		t.Errorf("risk level = %q, want HIGH", got)
	}
	if len(rf.Charts) != 1 || rf.Charts[0].Path != "revenue.png" {
		t.Errorf("Charts = %+v", rf.Charts)
	}
}

func TestReadRequestMalformed(t *testing.T) {
	_, err := ReadRequest(strings.NewReader(`{"metadata": `))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadRequest() error = %v, want INVALID_FORMAT", err)
	}
}

func TestImportRequestResolvesRelativeCharts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "request.json"), []byte(requestJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "revenue.png"), pngBytes(t, 40, 20), 0o644); err != nil {
		t.Fatal(err)
	}

	rf, err := ImportRequest(filepath.Join(dir, "request.json"))
	if err != nil {
		t.Fatalf("ImportRequest() error = %v", err)
	}
	req, err := rf.Resolve(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(req.Charts) != 1 {
		t.Fatalf("len(Charts) = %d, want 1", len(req.Charts))
	}
	if c := req.Charts[0]; c.Width != 40 || c.Height != 20 {
		t.Errorf("chart dims = %dx%d, want 40x20", c.Width, c.Height)
	}
}

func TestImportRequestMissing(t *testing.T) {
	_, err := ImportRequest(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportRequest() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadCharts(t *testing.T) {
	img := pngBytes(t, 30, 10)
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(img)

	tests := []struct {
		name     string
		spec     ChartSpec
		wantCode errors.Code
		wantN    int
	}{
		{"inline", ChartSpec{Title: "a", Data: img}, "", 1},
		{"inline with dims", ChartSpec{Title: "a", Data: img, Width: 300, Height: 100}, "", 1},
		{"data url", ChartSpec{Title: "a", URL: dataURL}, "", 1},
		{"empty dropped", ChartSpec{Title: "a"}, "", 0},
		{"two sources", ChartSpec{Title: "a", Data: img, URL: dataURL}, errors.ErrCodeInvalidInput, 0},
		{"traversal", ChartSpec{Title: "a", Path: "../secret.png"}, errors.ErrCodeInvalidPath, 0},
		{"missing file", ChartSpec{Title: "a", Path: "missing.png"}, errors.ErrCodeFileNotFound, 0},
		{"not base64", ChartSpec{Title: "a", URL: "data:image/png,raw"}, errors.ErrCodeInvalidInput, 0},
		{"bad scheme", ChartSpec{Title: "a", URL: "ftp://example.com/a.png"}, errors.ErrCodeInvalidInput, 0},
		{"not an image", ChartSpec{Title: "a", Data: []byte("hello")}, errors.ErrCodeEncoding, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charts, err := LoadCharts(context.Background(), []ChartSpec{tt.spec}, LoadOptions{BaseDir: t.TempDir()})
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("LoadCharts() error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCharts() error = %v", err)
			}
			if len(charts) != tt.wantN {
				t.Fatalf("len(charts) = %d, want %d", len(charts), tt.wantN)
			}
			if tt.wantN == 1 && tt.spec.Width == 0 && (charts[0].Width != 30 || charts[0].Height != 10) {
				t.Errorf("dims = %dx%d, want 30x10", charts[0].Width, charts[0].Height)
			}
			if tt.wantN == 1 && tt.spec.Width == 300 && charts[0].Width != 300 {
				t.Errorf("supplied width overridden: %d", charts[0].Width)
			}
		})
	}
}

func TestLoadChartsFetch(t *testing.T) {
	img := pngBytes(t, 20, 20)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	}))
	defer srv.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := LoadOptions{Cache: c, Retry: fastRetry}
	specs := []ChartSpec{{Title: "remote", URL: srv.URL + "/chart.png"}}

	for i := 0; i < 2; i++ {
		charts, err := LoadCharts(context.Background(), specs, opts)
		if err != nil {
			t.Fatalf("LoadCharts() error = %v", err)
		}
		if len(charts) != 1 || !bytes.Equal(charts[0].Data, img) {
			t.Fatalf("charts = %+v", charts)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hits = %d, want 1 (second load cached)", n)
	}
}

func TestLoadChartsFetchRetries(t *testing.T) {
	img := pngBytes(t, 20, 20)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write(img)
	}))
	defer srv.Close()

	charts, err := LoadCharts(context.Background(), []ChartSpec{{URL: srv.URL}}, LoadOptions{Retry: fastRetry})
	if err != nil {
		t.Fatalf("LoadCharts() error = %v", err)
	}
	if len(charts) != 1 {
		t.Errorf("len(charts) = %d, want 1", len(charts))
	}
	if n := hits.Load(); n != 3 {
		t.Errorf("server hits = %d, want 3", n)
	}
}

func TestLoadChartsFetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode errors.Code
		wantHits int32
	}{
		{"not found", http.StatusNotFound, errors.ErrCodeNotFound, 1},
		{"forbidden", http.StatusForbidden, errors.ErrCodeNetwork, 1},
		{"server error", http.StatusInternalServerError, errors.ErrCodeNetwork, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := LoadCharts(context.Background(), []ChartSpec{{URL: srv.URL}}, LoadOptions{Retry: fastRetry})
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("LoadCharts() error = %v, want %s", err, tt.wantCode)
			}
			if n := hits.Load(); n != tt.wantHits {
				t.Errorf("server hits = %d, want %d", n, tt.wantHits)
			}
		})
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.pdf")
	if err := WritePDF(path, []byte("%PDF-1.3")); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "%PDF-1.3" {
		t.Errorf("content = %q", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the PDF", len(entries))
	}

	if err := WritePDF(path, []byte("%PDF-1.4")); err != nil {
		t.Fatalf("WritePDF() overwrite error = %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "%PDF-1.4" {
		t.Errorf("overwrite content = %q", got)
	}
}
