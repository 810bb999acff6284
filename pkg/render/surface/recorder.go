package surface

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// GlyphWidth is the advance of every rune on a [Recorder], as a fraction of
// the font size.
const GlyphWidth = 0.5

// OpKind identifies a recorded operation.
type OpKind uint8

const (
	OpText OpKind = iota + 1
	OpRect
	OpLine
	OpImage
)

func (k OpKind) String() string {
	switch k {
	case OpText:
		return "text"
	case OpRect:
		return "rect"
	case OpLine:
		return "line"
	case OpImage:
		return "image"
	}
	return "unknown"
}

// Op is one recorded inking operation.
type Op struct {
	Kind       OpKind
	Page       int
	X, Y, W, H float64
	Lines      []string
	Text       TextStyle
	Rect       RectStyle
	Name       string
}

// Recorder is an in-memory [Surface] with fixed metrics: every rune is
// GlyphWidth×size wide regardless of face. It validates images the same way
// [PDF] does.
type Recorder struct {
	width, height float64
	pages         int
	current       int
	ops           []Op
	err           error
}

// NewRecorder returns an empty recorder with A4 pages.
func NewRecorder() *Recorder {
	return &Recorder{width: A4Width, height: A4Height}
}

// NewRecorderSize returns an empty recorder with the given page size.
func NewRecorderSize(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) TextWidth(s string, f Font) float64 {
	return float64(utf8.RuneCountInString(s)) * f.Size * GlyphWidth
}

func (r *Recorder) WrapLines(text string, f Font, maxWidth float64) []string {
	return wrapText(text, maxWidth, func(s string) float64 { return r.TextWidth(s, f) })
}

func (r *Recorder) record(op Op) {
	if r.err != nil {
		return
	}
	op.Page = r.current
	r.ops = append(r.ops, op)
}

func (r *Recorder) DrawText(lines []string, x, y float64, st TextStyle) {
	if len(lines) == 0 {
		return
	}
	r.record(Op{Kind: OpText, X: x, Y: y, Lines: append([]string(nil), lines...), Text: st})
}

func (r *Recorder) DrawRect(x, y, w, h float64, st RectStyle) {
	r.record(Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Rect: st})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, c Color, width float64) {
	r.record(Op{Kind: OpLine, X: x1, Y: y1, W: x2 - x1, H: y2 - y1,
		Rect: RectStyle{Paint: Stroke, Stroke: c, LineWidth: width}})
}

func (r *Recorder) DrawImage(name string, data []byte, x, y, w, h float64) error {
	if r.err != nil {
		return r.err
	}
	if _, err := imageType(name, data); err != nil {
		r.err = err
		return err
	}
	r.record(Op{Kind: OpImage, X: x, Y: y, W: w, H: h, Name: name})
	return nil
}

func (r *Recorder) NewPage() {
	r.pages++
	r.current = r.pages
}

func (r *Recorder) PageCount() int { return r.pages }

func (r *Recorder) SelectPage(n int) {
	if n >= 1 && n <= r.pages {
		r.current = n
	}
}

func (r *Recorder) PageSize() (float64, float64) { return r.width, r.height }

func (r *Recorder) Err() error { return r.err }

// Save writes one line per operation. The format is stable and meant for
// comparisons in tests, not for display.
func (r *Recorder) Save(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	for _, op := range r.ops {
		if _, err := fmt.Fprintf(w, "%d %s %.2f %.2f %.2f %.2f %q\n",
			op.Page, op.Kind, op.X, op.Y, op.W, op.H, strings.Join(op.Lines, "|")); err != nil {
			return err
		}
	}
	return nil
}

// Ops returns the recorded operations in drawing order.
func (r *Recorder) Ops() []Op { return r.ops }

// Reset forgets recorded operations but keeps pages.
func (r *Recorder) Reset() { r.ops = nil }

// Texts returns every drawn line, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.Kind == OpText {
			out = append(out, op.Lines...)
		}
	}
	return out
}

// OpsOn returns the operations drawn on page n.
func (r *Recorder) OpsOn(n int) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Page == n {
			out = append(out, op)
		}
	}
	return out
}

var _ Surface = (*Recorder)(nil)
