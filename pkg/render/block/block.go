// Package block implements the content renderers placed inside cards.
//
// Every renderer is a [Func] called twice per layout: once in [Measure]
// mode to learn how much vertical space it needs at a given width, then in
// [Draw] mode to ink the surface at the same position and width. Both calls
// perform the same wrapping and return the same height. Measure mode never
// calls an inking surface method.
//
// Renderers compose with [Stack], which places blocks one below the other:
//
//	card := block.Stack(
//	    block.Heading("Financial overview"),
//	    block.SectionLabel("Latest fiscal year: 2024"),
//	    block.MetricGrid(metrics),
//	)
//	h := card(block.Measure, ctx)
package block

import (
	"github.com/matzehuels/execreport/pkg/render/surface"
	"github.com/matzehuels/execreport/pkg/render/theme"
)

// Mode selects between measuring and drawing.
type Mode uint8

const (
	Measure Mode = iota
	Draw
)

func (m Mode) String() string {
	if m == Draw {
		return "draw"
	}
	return "measure"
}

// Context is the position and width a renderer works in. It is passed by
// value so a renderer cannot leak position changes into its siblings.
type Context struct {
	Surface surface.Surface
	Theme   *theme.Theme
	X, Y    float64
	Width   float64
}

// Below returns ctx moved down by dy.
func (c Context) Below(dy float64) Context {
	c.Y += dy
	return c
}

// Indent returns ctx moved right by dx with the width reduced accordingly.
func (c Context) Indent(dx float64) Context {
	c.X += dx
	c.Width -= dx
	return c
}

// Func renders one block and returns the height it occupies.
type Func func(mode Mode, ctx Context) float64

// Empty renders nothing.
func Empty(Mode, Context) float64 { return 0 }

// Space reserves a fixed amount of vertical space.
func Space(h float64) Func {
	return func(Mode, Context) float64 { return h }
}

// Stack renders parts top to bottom. Nil parts are skipped.
func Stack(parts ...Func) Func {
	return func(mode Mode, ctx Context) float64 {
		var h float64
		for _, part := range parts {
			if part != nil {
				h += part(mode, ctx.Below(h))
			}
		}
		return h
	}
}

// When renders parts only if cond holds.
func When(cond bool, parts ...Func) Func {
	if !cond {
		return Empty
	}
	return Stack(parts...)
}

func text(size float64, bold bool, c surface.Color) surface.TextStyle {
	return surface.TextStyle{Font: theme.Font(size, bold), Color: c}
}
