// Package surface defines the drawing primitives the layout engine targets.
//
// A [Surface] draws text runs, rectangles, lines and raster images onto
// pages measured in points with the origin at the top-left corner. Two
// implementations are provided:
//
//   - [PDF]: encodes a real document through go-pdf/fpdf
//   - [Recorder]: keeps an in-memory list of operations with fixed glyph
//     metrics, used by tests and dry runs
//
// # Measurement
//
// [Metrics.WrapLines] must return exactly the lines [Surface.DrawText]
// will render for the same font and width. Both implementations use the
// same greedy word wrap, so a measure pass and a draw pass always agree.
// Measuring never writes to the document.
//
// # Errors
//
// Drawing errors are sticky. After the first failure every inking call is
// a no-op, [Surface.Err] reports the failure and [Surface.Save] refuses to
// write.
package surface

import "io"

// A4 page size in points.
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// RGB returns the color with the given components.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// Font selects a face of the document font family.
type Font struct {
	Bold bool
	Size float64
}

// Align positions a text run relative to its x coordinate.
type Align uint8

const (
	AlignLeft   Align = iota // x is the left edge
	AlignCenter              // x is the center
	AlignRight               // x is the right edge
)

// TextStyle describes how lines of text are drawn.
// Lines are drawn on baselines y, y+LineHeight, y+2*LineHeight and so on.
type TextStyle struct {
	Font       Font
	Color      Color
	Align      Align
	LineHeight float64
}

// Paint selects fill and/or stroke.
type Paint uint8

const (
	Fill Paint = 1 << iota
	Stroke
)

// RectStyle describes a rectangle. Radius > 0 rounds all four corners.
type RectStyle struct {
	Paint     Paint
	Fill      Color
	Stroke    Color
	LineWidth float64
	Radius    float64
}

// Metrics measures text. Implementations never draw.
type Metrics interface {
	TextWidth(s string, f Font) float64
	WrapLines(text string, f Font, maxWidth float64) []string
}

// Surface is a paginated drawing target.
//
// Page numbers are 1-based. NewPage appends a page and makes it current;
// SelectPage makes an existing page current again.
type Surface interface {
	Metrics

	DrawText(lines []string, x, y float64, st TextStyle)
	DrawRect(x, y, w, h float64, st RectStyle)
	Line(x1, y1, x2, y2 float64, c Color, width float64)
	DrawImage(name string, data []byte, x, y, w, h float64) error

	NewPage()
	PageCount() int
	SelectPage(n int)
	PageSize() (w, h float64)

	Err() error
	Save(w io.Writer) error
}
