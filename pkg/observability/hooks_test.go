package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooks(t *testing.T) {
	ctx := context.Background()

	r := NoopReportHooks{}
	r.OnGenerateStart(ctx, "TSL-2024")
	r.OnGenerateComplete(ctx, "TSL-2024", 2, time.Second, nil)
	r.OnOverflow(ctx, "TSL-2024", 1, 0, 12.5)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "report")
	c.OnCacheMiss(ctx, "chart")
	c.OnCacheSet(ctx, "report", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "charts.example.com", "/revenue.png")
	h.OnResponse(ctx, "GET", "charts.example.com", "/revenue.png", 200, time.Second)
	h.OnError(ctx, "GET", "charts.example.com", "/revenue.png", nil)
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Report().(NoopReportHooks); !ok {
		t.Error("Report() default is not a no-op")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() default is not a no-op")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() default is not a no-op")
	}

	rh := &countingReportHooks{}
	SetReportHooks(rh)
	SetReportHooks(nil)
	if Report() != rh {
		t.Error("SetReportHooks(nil) replaced registered hooks")
	}
	Report().OnGenerateStart(context.Background(), "X")
	if rh.starts != 1 {
		t.Errorf("starts = %d, want 1", rh.starts)
	}

	ch := &testCacheHooks{}
	SetCacheHooks(ch)
	if Cache() != ch {
		t.Error("SetCacheHooks() did not register")
	}
	hh := &testHTTPHooks{}
	SetHTTPHooks(hh)
	if HTTP() != hh {
		t.Error("SetHTTPHooks() did not register")
	}

	Reset()
	if _, ok := Report().(NoopReportHooks); !ok {
		t.Error("Reset() did not restore report hooks")
	}
}

type countingReportHooks struct {
	NoopReportHooks
	starts int
}

func (h *countingReportHooks) OnGenerateStart(context.Context, string) { h.starts++ }

type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
