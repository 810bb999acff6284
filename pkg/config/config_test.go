package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/execreport/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Report.Version != "v1" {
		t.Errorf("Report.Version = %q, want v1", cfg.Report.Version)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[report]
version = "v2"
locale = "da-DK"

[labels]
report_title = "Ledelsesresumé"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "72h"

[server]
read_timeout = "5s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name      string
		got, want any
	}{
		{"version", cfg.Report.Version, "v2"},
		{"locale", cfg.Report.Locale, "da-DK"},
		{"currency kept", cfg.Report.Currency, "DKK"},
		{"title", cfg.Labels.ReportTitle, "Ledelsesresumé"},
		{"other labels kept", cfg.Labels.FooterPage, "Page %d of %d"},
		{"backend", cfg.Cache.Backend, BackendRedis},
		{"ttl", cfg.Cache.TTL.Duration, 72 * time.Hour},
		{"read timeout", cfg.Server.ReadTimeout.Duration, 5 * time.Second},
		{"write timeout kept", cfg.Server.WriteTimeout.Duration, 60 * time.Second},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "[report]\ncolour = \"red\"\n"},
		{"unknown cache backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"mongo without uri", "[archive]\nbackend = \"mongo\"\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n"},
		{"bad version", "[report]\nversion = \"v 1\"\n"},
		{"bad locale", "[report]\nlocale = \"not a locale!\"\n"},
		{"zero body limit", "[server]\nmax_body_bytes = 0\n"},
		{"syntax", "[report\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Report.Version = "v3"
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(data), `ttl = "168h0m0s"`) {
		t.Errorf("encoded config lacks duration string:\n%s", data)
	}

	back := Default()
	if _, err := toml.Decode(string(data), back); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if back.Report.Version != "v3" || back.Cache.TTL != cfg.Cache.TTL {
		t.Errorf("round trip = %+v, want %+v", back.Report, cfg.Report)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_CACHE_HOME", "/cache")
	t.Setenv("XDG_DATA_HOME", "/data")

	if got := Path(); got != filepath.Join("/cfg", "execreport", "config.toml") {
		t.Errorf("Path() = %q", got)
	}
	if got := CacheDir(); got != filepath.Join("/cache", "execreport") {
		t.Errorf("CacheDir() = %q", got)
	}
	if got := DataDir(); got != filepath.Join("/data", "execreport") {
		t.Errorf("DataDir() = %q", got)
	}
}
