package surface

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/execreport/pkg/errors"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 99, G: 102, B: 241, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func drawSample(t *testing.T, s Surface, chart []byte) {
	t.Helper()
	body := TextStyle{Font: Font{Size: 10}, Color: RGB(45, 55, 72), LineHeight: 16}
	s.NewPage()
	s.DrawRect(0, 0, 595.28, 841.89, RectStyle{Paint: Fill, Fill: RGB(250, 250, 250)})
	s.DrawRect(54, 54, 200, 100, RectStyle{Paint: Fill | Stroke, Fill: RGB(255, 255, 255), Stroke: RGB(229, 231, 235), LineWidth: 0.5, Radius: 12})
	s.DrawText(s.WrapLines("Sector risk is stable with moderate exposure to fuel prices.", body.Font, 150), 70, 80, body)
	s.Line(70, 95, 112, 95, RGB(196, 201, 253), 0.8)
	if err := s.DrawImage("chart", chart, 54, 200, 200, 100); err != nil {
		t.Fatalf("DrawImage: %v", err)
	}
	s.NewPage()
	s.DrawText([]string{"Page two"}, 54, 80, body)
	for i := 1; i <= s.PageCount(); i++ {
		s.SelectPage(i)
		s.DrawText([]string{"Page footer"}, 541, 814, TextStyle{Font: Font{Size: 9}, Align: AlignRight})
	}
}

func TestPDFDeterministic(t *testing.T) {
	chart := testPNG(t, 8, 4)
	opts := PDFOptions{
		Title:     "Executive Summary",
		Subject:   "tsl",
		Producer:  "execreport test",
		CreatedAt: time.Date(2025, 11, 30, 22, 0, 0, 0, time.UTC),
	}

	render := func() []byte {
		p := NewPDF(opts)
		drawSample(t, p, chart)
		var buf bytes.Buffer
		if err := p.Save(&buf); err != nil {
			t.Fatalf("Save: %v", err)
		}
		return buf.Bytes()
	}

	first, second := render(), render()
	if !bytes.HasPrefix(first, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", first[:min(len(first), 16)])
	}
	if !bytes.Equal(first, second) {
		t.Error("identical input produced different documents")
	}
}

func TestPDFSaveTwice(t *testing.T) {
	p := NewPDF(PDFOptions{})
	p.NewPage()
	var a, b bytes.Buffer
	if err := p.Save(&a); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(&b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("second Save wrote different bytes")
	}
}

func TestPDFBadImage(t *testing.T) {
	p := NewPDF(PDFOptions{})
	p.NewPage()

	err := p.DrawImage("broken", []byte("definitely not a png"), 0, 0, 10, 10)
	if !errors.Is(err, errors.ErrCodeEncoding) {
		t.Fatalf("DrawImage() error = %v, want %s", err, errors.ErrCodeEncoding)
	}
	if p.Err() == nil {
		t.Fatal("Err() should report the failure")
	}

	var buf bytes.Buffer
	if err := p.Save(&buf); err == nil {
		t.Fatal("Save() should fail after an encoding error")
	}
	if buf.Len() != 0 {
		t.Errorf("Save() wrote %d bytes after failure", buf.Len())
	}
}

func TestPDFEmptyImage(t *testing.T) {
	p := NewPDF(PDFOptions{})
	p.NewPage()
	if err := p.DrawImage("empty", nil, 0, 0, 10, 10); !errors.Is(err, errors.ErrCodeEncoding) {
		t.Errorf("DrawImage(nil) error = %v", err)
	}
}

func TestPDFMeasureDoesNotDraw(t *testing.T) {
	p := NewPDF(PDFOptions{})
	p.NewPage()
	var before bytes.Buffer
	_ = p.Save(&before)

	q := NewPDF(PDFOptions{})
	q.NewPage()
	for i := 0; i < 20; i++ {
		q.WrapLines(strings.Repeat("measure me ", i), Font{Bold: i%2 == 0, Size: float64(8 + i)}, 120)
		q.TextWidth("width", Font{Size: 12})
	}
	var after bytes.Buffer
	_ = q.Save(&after)

	if !bytes.Equal(before.Bytes(), after.Bytes()) {
		t.Error("measuring changed the document")
	}
}

func TestPDFMetrics(t *testing.T) {
	p := NewPDF(PDFOptions{})
	regular := p.TextWidth("Executive", Font{Size: 10})
	bold := p.TextWidth("Executive", Font{Bold: true, Size: 10})
	large := p.TextWidth("Executive", Font{Size: 20})

	if regular <= 0 {
		t.Fatalf("TextWidth() = %v", regular)
	}
	if bold <= regular {
		t.Errorf("bold width %v should exceed regular %v", bold, regular)
	}
	if diff := large - 2*regular; diff > 0.01 || diff < -0.01 {
		t.Errorf("width should scale with size: %v vs %v", large, 2*regular)
	}

	lines := p.WrapLines("Næste bestyrelsesmøde — godkendelse af årsrapport", Font{Size: 10}, 120)
	for _, l := range lines {
		if w := p.TextWidth(l, Font{Size: 10}); w > 120 {
			t.Errorf("line %q is %v wide", l, w)
		}
	}
}

func TestPDFPageSize(t *testing.T) {
	w, h := NewPDF(PDFOptions{}).PageSize()
	if diff := cmp.Diff([]float64{A4Width, A4Height}, []float64{w, h}); diff != "" {
		t.Errorf("PageSize() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	chart := testPNG(t, 4, 4)
	drawSample(t, r, chart)

	if r.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", r.PageCount())
	}

	var kinds []OpKind
	for _, op := range r.OpsOn(1) {
		kinds = append(kinds, op.Kind)
	}
	want := []OpKind{OpRect, OpRect, OpText, OpLine, OpImage, OpText}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("page 1 ops mismatch (-want +got):\n%s", diff)
	}

	if got := r.TextWidth("abcd", Font{Size: 10}); got != 20 {
		t.Errorf("TextWidth() = %v, want 20", got)
	}

	var a, b bytes.Buffer
	_ = r.Save(&a)
	_ = r.Save(&b)
	if a.String() != b.String() || a.Len() == 0 {
		t.Error("Save() should be stable and non-empty")
	}
}

func TestRecorderRejectsBadImage(t *testing.T) {
	r := NewRecorder()
	r.NewPage()
	if err := r.DrawImage("x", []byte{1, 2, 3}, 0, 0, 1, 1); !errors.Is(err, errors.ErrCodeEncoding) {
		t.Fatalf("DrawImage() error = %v", err)
	}
	r.DrawText([]string{"after"}, 0, 0, TextStyle{})
	if len(r.Ops()) != 0 {
		t.Errorf("ops recorded after failure: %d", len(r.Ops()))
	}
	if err := r.Save(&bytes.Buffer{}); err == nil {
		t.Error("Save() should fail")
	}
}
