package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get() = %q, %v, want miss", data, hit)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get() hit on empty cache")
	}

	if err := c.Set(ctx, "report:a", []byte("%PDF-1.3"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "report:a")
	if err != nil || !hit {
		t.Fatalf("Get() = %v, %v, want hit", hit, err)
	}
	if string(data) != "%PDF-1.3" {
		t.Errorf("Get() = %q, want %%PDF-1.3", data)
	}

	if err := c.Delete(ctx, "report:a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "report:a"); hit {
		t.Error("Get() hit after Delete")
	}
	if err := c.Delete(ctx, "report:a"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get() hit on expired entry")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("Get() missed entry without TTL")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() = %v, %v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear", len(entries))
	}
}

func TestHash(t *testing.T) {
	if Hash([]byte("hello")) != Hash([]byte("hello")) {
		t.Error("Hash() is not deterministic")
	}
	if Hash([]byte("hello")) == Hash([]byte("world")) {
		t.Error("Hash() collides on different inputs")
	}
	if n := len(Hash(nil)); n != 64 {
		t.Errorf("len(Hash()) = %d, want 64", n)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := ReportKeyOpts{Version: "v1", Locale: "en-GB", Currency: "DKK"}

	if k.ReportKey("abc", base) != k.ReportKey("abc", base) {
		t.Error("ReportKey() is not deterministic")
	}
	if !strings.HasPrefix(k.ReportKey("abc", base), "report:") {
		t.Errorf("ReportKey() = %q, want report: prefix", k.ReportKey("abc", base))
	}

	variants := []ReportKeyOpts{
		{Version: "v2", Locale: "en-GB", Currency: "DKK"},
		{Version: "v1", Locale: "da", Currency: "DKK"},
		{Version: "v1", Locale: "en-GB", Currency: "EUR"},
		{Version: "v1", Locale: "en-GB", Currency: "DKK", Labels: "x"},
		{Version: "v1", Locale: "en-GB", Currency: "DKK", Build: "v0.2.0"},
	}
	for _, v := range variants {
		if k.ReportKey("abc", v) == k.ReportKey("abc", base) {
			t.Errorf("ReportKey(%+v) equals base key", v)
		}
	}
	if k.ReportKey("abc", base) == k.ReportKey("abd", base) {
		t.Error("ReportKey() ignores the input hash")
	}

	if !strings.HasPrefix(k.ChartKey("https://example.com/a.png"), "chart:") {
		t.Error("ChartKey() missing chart: prefix")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:acme:")

	opts := ReportKeyOpts{Version: "v1"}
	if got, want := scoped.ReportKey("h", opts), "tenant:acme:"+inner.ReportKey("h", opts); got != want {
		t.Errorf("ReportKey() = %q, want %q", got, want)
	}
	if got, want := scoped.ChartKey("u"), "tenant:acme:"+inner.ChartKey("u"); got != want {
		t.Errorf("ChartKey() = %q, want %q", got, want)
	}

	if got := NewScopedKeyer(nil, "p:").ChartKey("u"); got != "p:"+inner.ChartKey("u") {
		t.Errorf("nil inner ChartKey() = %q", got)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error lost its sentinel")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), ErrNetwork.Error())
	}
	if IsRetryable(ErrNotFound) {
		t.Error("IsRetryable() = true for plain error")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	fast := RetryPolicy{Attempts: 3, Delay: time.Millisecond}

	tests := []struct {
		name      string
		failUntil int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"success first try", 0, true, 1, false},
		{"success after retry", 2, true, 3, false},
		{"attempts exhausted", 10, true, 3, true},
		{"not retryable", 10, false, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, fast, func() error {
				calls++
				if calls <= tt.failUntil {
					if tt.retryable {
						return Retryable(ErrNetwork)
					}
					return ErrNotFound
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Retry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, RetryPolicy{Attempts: 3, Delay: time.Hour}, func() error {
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("EXECREPORT_REDIS_ADDR")
	if addr == "" {
		t.Skip("EXECREPORT_REDIS_ADDR not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "execreport-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get() = %v, %v, want clean miss", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if data, hit, err := c.Get(ctx, "k"); !hit || err != nil || string(data) != "v" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get() hit after Clear")
	}
}
