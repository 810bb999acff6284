// Package config loads execreport settings from TOML.
//
// The file lives at $XDG_CONFIG_HOME/execreport/config.toml (or
// ~/.config/execreport/config.toml). Every key is optional; missing keys keep
// the values from [Default]. Example:
//
//	[report]
//	version = "v2"
//	locale = "da-DK"
//
//	[labels]
//	report_title = "Ledelsesresumé"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "72h"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/execreport/pkg/errors"
	"github.com/matzehuels/execreport/pkg/report"
)

const appName = "execreport"

// Backend names.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config is the complete configuration.
type Config struct {
	Report  ReportConfig  `toml:"report"`
	Labels  report.Labels `toml:"labels"`
	Cache   CacheConfig   `toml:"cache"`
	Archive ArchiveConfig `toml:"archive"`
	Server  ServerConfig  `toml:"server"`
}

// ReportConfig controls rendering.
type ReportConfig struct {
	Version    string `toml:"version"`
	OutputDir  string `toml:"output_dir"`
	Locale     string `toml:"locale"`
	Currency   string `toml:"currency"`
	DateLayout string `toml:"date_layout"`
}

// CacheConfig selects the document cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// ArchiveConfig selects where export records are kept.
type ArchiveConfig struct {
	Backend         string `toml:"backend"`
	Path            string `toml:"path"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a Go duration string ("90s").
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration. Paths follow the XDG base
// directory conventions.
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			Version:    report.DefaultReportVersion,
			OutputDir:  ".",
			Locale:     report.DefaultLocale,
			Currency:   report.DefaultCurrency,
			DateLayout: report.DefaultDateLayout,
		},
		Labels: report.DefaultLabels(),
		Cache: CacheConfig{
			Backend: BackendFile,
			Dir:     CacheDir(),
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Archive: ArchiveConfig{
			Backend:         BackendFile,
			Path:            filepath.Join(DataDir(), "exports.jsonl"),
			MongoDatabase:   appName,
			MongoCollection: "exports",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
			MaxBodyBytes: 32 << 20,
		},
	}
}

// Load reads the file at path over the defaults. An empty path means
// [Path]; a missing default file yields the defaults, while a missing
// explicit file is an error. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backends, durations and report options.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendNone, BackendFile:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}

	switch c.Archive.Backend {
	case BackendNone, BackendFile:
	case BackendMongo:
		if c.Archive.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "archive.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown archive backend %q", c.Archive.Backend)
	}

	if c.Server.ReadTimeout.Duration < 0 || c.Server.WriteTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeouts must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}

	if err := errors.ValidateReportVersion(c.Report.Version); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "report.version")
	}
	if _, err := c.Formatter(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "report.locale")
	}
	return nil
}

// FormatOptions returns the report formatting options.
func (c *Config) FormatOptions() report.FormatOptions {
	return report.FormatOptions{
		Locale:     c.Report.Locale,
		Currency:   c.Report.Currency,
		DateLayout: c.Report.DateLayout,
	}
}

// Formatter builds a formatter from the configured labels and options.
func (c *Config) Formatter() (*report.Formatter, error) {
	return report.NewFormatter(c.Labels, c.FormatOptions())
}

// Encode renders c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
