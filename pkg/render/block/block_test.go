package block

import (
	"bytes"
	"image"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/execreport/pkg/render/surface"
	"github.com/matzehuels/execreport/pkg/render/theme"
	"github.com/matzehuels/execreport/pkg/report"
)

func newContext(width float64) (Context, *surface.Recorder) {
	rec := surface.NewRecorder()
	rec.NewPage()
	return Context{Surface: rec, Theme: theme.Default(), X: 10, Y: 20, Width: width}, rec
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func words(r *rand.Rand, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strings.Repeat(string(rune('a'+r.Intn(26))), 1+r.Intn(14))
	}
	return strings.Join(parts, " ")
}

func TestMeasureEqualsDraw(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	th := theme.Default()
	chart := pngBytes(t)

	for i := 0; i < 200; i++ {
		items := make([]string, r.Intn(6))
		for j := range items {
			items[j] = words(r, r.Intn(30))
		}
		metrics := make([]Metric, r.Intn(9))
		for j := range metrics {
			metrics[j] = Metric{Label: words(r, 2), Value: words(r, 1), Tone: theme.Tone(r.Intn(4))}
		}
		risks := make([]RiskRow, r.Intn(4))
		for j := range risks {
			lvl := []report.RiskLevel{report.RiskCritical, report.RiskLow, report.RiskUnknown}[r.Intn(3)]
			risks[j] = RiskRow{Label: string(lvl), Badge: th.Badge(lvl), Category: words(r, 2), Justification: words(r, r.Intn(40))}
		}

		blocks := map[string]Func{
			"heading":   Heading(words(r, 3)),
			"label":     SectionLabel(words(r, r.Intn(3))),
			"paragraph": Paragraph(words(r, r.Intn(80))),
			"keyfigure": KeyFigure(words(r, 2), words(r, 3)),
			"bullets":   BulletList(items, ""),
			"metrics":   MetricGrid(metrics),
			"risks":     RiskRows(risks),
			"image":     Image("chart", chart, r.Float64()),
			"masthead":  Masthead(words(r, 2), words(r, 3), words(r, 2)),
			"stack":     Stack(Heading("x"), BulletList(items, "!"), RiskRows(risks), Space(6)),
		}

		width := 40 + r.Float64()*500
		for name, fn := range blocks {
			ctx, rec := newContext(width)
			measured := fn(Measure, ctx)
			if n := len(rec.Ops()); n != 0 {
				t.Fatalf("%s: measure drew %d ops", name, n)
			}
			drawn := fn(Draw, ctx)
			if measured != drawn {
				t.Fatalf("%s at width %.1f: measure=%v draw=%v", name, width, measured, drawn)
			}
			if measured < 0 {
				t.Fatalf("%s: negative height %v", name, measured)
			}
		}
	}
}

func TestFixedHeights(t *testing.T) {
	ctx, _ := newContext(200)

	tests := []struct {
		name string
		fn   Func
		want float64
	}{
		{"heading", Heading("Financial overview"), 26},
		{"label", SectionLabel("Observations"), 18},
		{"empty label", SectionLabel("  "), 0},
		{"key figure", KeyFigure("Tax case exposure", "None registered"), 28},
		{"metrics 7", MetricGrid(make([]Metric, 7)), 160},
		{"metrics 2", MetricGrid(make([]Metric, 2)), 40},
		{"metrics 0", MetricGrid(nil), 0},
		{"empty paragraph", Paragraph(""), 0},
		{"empty bullets", BulletList(nil, "›"), 0},
		{"blank bullets", BulletList([]string{"", "  "}, "›"), 0},
		{"empty risks", RiskRows(nil), 0},
		{"masthead", Masthead("a", "b", "c"), 74},
		{"space", Space(6), 6},
		{"when false", When(false, Heading("x")), 0},
		{"when true", When(true, Heading("x"), Space(4)), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(Measure, ctx); got != tt.want {
				t.Errorf("height = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParagraphWrapsToWidth(t *testing.T) {
	// Recorder glyphs are 5pt wide at body size, so 20 per 100pt line.
	ctx, rec := newContext(100)
	fn := Paragraph("aaaa bbbb cccc dddd eeee")

	if got := fn(Draw, ctx); got != 32 {
		t.Fatalf("height = %v, want 32", got)
	}
	ops := rec.Ops()
	if len(ops) != 1 {
		t.Fatalf("ops = %d, want 1", len(ops))
	}
	if diff := cmp.Diff([]string{"aaaa bbbb cccc dddd", "eeee"}, ops[0].Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if ops[0].Y != 32 {
		t.Errorf("baseline = %v, want 32", ops[0].Y)
	}
}

func TestBulletList(t *testing.T) {
	// 200 - 14 indent = 186pt, 37 glyphs per line.
	ctx, rec := newContext(200)
	items := []string{
		"short item",
		strings.Repeat("x", 30) + " " + strings.Repeat("y", 30),
	}
	got := BulletList(items, "›")(Draw, ctx)

	// (1*15 + 6) + (2*15 + 6)
	if got != 57 {
		t.Fatalf("height = %v, want 57", got)
	}

	var icons, bodies []surface.Op
	for _, op := range rec.Ops() {
		if op.X == ctx.X {
			icons = append(icons, op)
		} else {
			bodies = append(bodies, op)
		}
	}
	if len(icons) != 2 || icons[0].Lines[0] != "›" {
		t.Fatalf("icons = %+v", icons)
	}
	if icons[1].Y != ctx.Y+21+10 {
		t.Errorf("second icon baseline = %v, want %v", icons[1].Y, ctx.Y+31)
	}
	if bodies[0].X != ctx.X+14 {
		t.Errorf("body x = %v, want %v", bodies[0].X, ctx.X+14)
	}
}

func TestRiskRows(t *testing.T) {
	ctx, rec := newContext(200)
	th := ctx.Theme
	rows := []RiskRow{
		{Label: "Critical", Badge: th.Badge(report.RiskCritical), Category: "Tax", Justification: strings.Repeat("a", 10) + " " + strings.Repeat("b", 10) + " " + strings.Repeat("c", 8)},
		{Label: "Low", Badge: th.Badge(report.RiskLow), Category: "Sector"},
	}

	// Row 1: badge 8*5+18 = 58, text width 200-72 = 128 → 2 lines → 3*16+6 = 54.
	// Row 2: badge floor 52, no justification → max(20, 16+6) = 22.
	got := RiskRows(rows)(Draw, ctx)
	if want := 54.0 + 10 + 22 + 10; got != want {
		t.Fatalf("height = %v, want %v", got, want)
	}

	var badges []float64
	for _, op := range rec.Ops() {
		if op.Kind == surface.OpRect {
			badges = append(badges, op.W)
		}
	}
	if diff := cmp.Diff([]float64{58, 52}, badges); diff != "" {
		t.Errorf("badge widths mismatch (-want +got):\n%s", diff)
	}
}

func TestRiskRowsWrapCategory(t *testing.T) {
	ctx, rec := newContext(200)
	rows := []RiskRow{{
		Label:    "Low",
		Badge:    ctx.Theme.Badge(report.RiskLow),
		Category: "Regulatory compliance and reporting",
	}}

	// Badge floor 52, text width 200-66 = 134 → category wraps to 2 lines
	// → max(20, 2*16+6) = 38.
	fn := RiskRows(rows)
	measured := fn(Measure, ctx)
	if want := 38.0 + 10; measured != want {
		t.Fatalf("measured height = %v, want %v", measured, want)
	}
	if drawn := fn(Draw, ctx); drawn != measured {
		t.Errorf("drawn height = %v, measured %v", drawn, measured)
	}

	var category []string
	for _, op := range rec.Ops() {
		if op.Kind == surface.OpText && op.Text.Font.Bold && op.Text.Align != surface.AlignCenter {
			category = op.Lines
			for _, line := range op.Lines {
				if w := rec.TextWidth(line, op.Text.Font); w > 134 {
					t.Errorf("category line %q is %vpt wide, limit 134", line, w)
				}
			}
		}
	}
	if diff := cmp.Diff([]string{"Regulatory compliance and", "reporting"}, category); diff != "" {
		t.Errorf("category lines mismatch (-want +got):\n%s", diff)
	}
}

func TestImage(t *testing.T) {
	chart := pngBytes(t)

	tests := []struct {
		name   string
		data   []byte
		aspect float64
		width  float64
		want   float64
	}{
		{"scaled", chart, 0.5, 200, 100},
		{"capped", chart, 2, 200, 240},
		{"zero aspect", chart, 0, 200, 0},
		{"no data", nil, 0.5, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, rec := newContext(tt.width)
			if got := Image("c", tt.data, tt.aspect)(Draw, ctx); got != tt.want {
				t.Errorf("height = %v, want %v", got, tt.want)
			}
			if tt.want == 0 && len(rec.Ops()) != 0 {
				t.Error("empty image should not draw")
			}
		})
	}
}

func TestImageCappedKeepsAspect(t *testing.T) {
	ctx, rec := newContext(200)
	Image("c", pngBytes(t), 2)(Draw, ctx)
	op := rec.Ops()[0]
	if op.W != 120 || op.H != 240 {
		t.Errorf("image size = %vx%v, want 120x240", op.W, op.H)
	}
	if op.X != ctx.X+40 {
		t.Errorf("image x = %v, want centered at %v", op.X, ctx.X+40)
	}
}

func TestStackOffsets(t *testing.T) {
	ctx, rec := newContext(200)
	Stack(Heading("A"), nil, SectionLabel("b"), Paragraph("c"))(Draw, ctx)

	var ys []float64
	for _, op := range rec.Ops() {
		if op.Kind == surface.OpText {
			ys = append(ys, op.Y)
		}
	}
	// heading at +15, label at 26+11, paragraph at 26+18+12
	want := []float64{ctx.Y + 15, ctx.Y + 37, ctx.Y + 56}
	if diff := cmp.Diff(want, ys); diff != "" {
		t.Errorf("baselines mismatch (-want +got):\n%s", diff)
	}
}

func TestModeString(t *testing.T) {
	if Measure.String() != "measure" || Draw.String() != "draw" {
		t.Errorf("Mode strings = %q, %q", Measure, Draw)
	}
}
