package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func captureSpinner(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := spinnerOut
	spinnerOut = &buf
	t.Cleanup(func() { spinnerOut = old })
	return &buf
}

func TestSpinnerDrawsFrames(t *testing.T) {
	buf := captureSpinner(t)
	s := newSpinner(context.Background(), "Rendering summary")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Rendering summary") {
		t.Errorf("spinner output = %q, should contain message", buf.String())
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	buf := captureSpinner(t)
	s := newSpinner(context.Background(), "Loading charts")
	s.Start()
	s.SetMessage("Rendering summary")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Rendering summary") {
		t.Errorf("spinner output = %q, should contain updated message", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	captureSpinner(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, "Testing with context...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after its context was canceled")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureSpinner(t)
	s := newSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	captureSpinner(t)
	var out bytes.Buffer
	old := stdout
	stdout = &out
	defer func() { stdout = old }()

	s := newSpinner(context.Background(), "Testing success...")
	s.Start()
	s.StopWithSuccess("Done!")

	if !strings.Contains(out.String(), "Done!") {
		t.Errorf("StopWithSuccess output = %q", out.String())
	}
}
