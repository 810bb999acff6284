package block

import (
	"strings"

	"github.com/matzehuels/execreport/pkg/render/surface"
	"github.com/matzehuels/execreport/pkg/render/theme"
)

// Baseline offsets from the top of a block.
const (
	headingBaseline   = 15
	underlineOffset   = 20
	underlineWidth    = 42
	underlineStroke   = 0.8
	labelBaseline     = 11
	paragraphBaseline = 12
	keyValueBaseline  = 30
)

// Heading draws a card title with a short accent underline.
func Heading(title string) Func {
	return func(mode Mode, ctx Context) float64 {
		th := ctx.Theme
		if mode == Draw {
			ctx.Surface.DrawText([]string{title}, ctx.X, ctx.Y+headingBaseline,
				text(th.Fonts.CardTitle, true, th.Colors.PageHeading))
			ctx.Surface.Line(ctx.X, ctx.Y+underlineOffset, ctx.X+underlineWidth, ctx.Y+underlineOffset,
				th.Colors.AccentSoft, underlineStroke)
		}
		return th.Lines.CardTitle
	}
}

// SectionLabel draws an uppercase label. An empty label takes no space.
func SectionLabel(label string) Func {
	label = strings.TrimSpace(label)
	return func(mode Mode, ctx Context) float64 {
		if label == "" {
			return 0
		}
		th := ctx.Theme
		if mode == Draw {
			ctx.Surface.DrawText([]string{strings.ToUpper(label)}, ctx.X, ctx.Y+labelBaseline,
				text(th.Fonts.SectionLabel, true, th.Colors.TextSecondary))
		}
		return th.Lines.SectionLabel
	}
}

// Paragraph draws body text wrapped to the context width.
func Paragraph(body string) Func {
	return func(mode Mode, ctx Context) float64 {
		th := ctx.Theme
		st := text(th.Fonts.Body, false, th.Colors.TextPrimary)
		st.LineHeight = th.Lines.Body

		lines := ctx.Surface.WrapLines(body, st.Font, ctx.Width)
		if mode == Draw {
			ctx.Surface.DrawText(lines, ctx.X, ctx.Y+paragraphBaseline, st)
		}
		return float64(len(lines)) * th.Lines.Body
	}
}

// KeyFigure draws a label above a prominent value in a fixed height.
func KeyFigure(label, value string) Func {
	return func(mode Mode, ctx Context) float64 {
		th := ctx.Theme
		if mode == Draw {
			ctx.Surface.DrawText([]string{strings.ToUpper(label)}, ctx.X, ctx.Y+labelBaseline,
				text(th.Fonts.SectionLabel, true, th.Colors.TextSecondary))
			ctx.Surface.DrawText([]string{value}, ctx.X, ctx.Y+keyValueBaseline,
				text(th.Fonts.KeyValue, true, th.Colors.PageHeading))
		}
		return th.Spacing.KeyFigure
	}
}

// Masthead draws the page title with a subject and a generated line below.
// y is the title baseline.
func Masthead(title, subject, generated string) Func {
	const (
		titleAdvance   = 32
		subjectAdvance = 16
		trailing       = 26
	)
	return func(mode Mode, ctx Context) float64 {
		th := ctx.Theme
		if mode == Draw {
			ctx.Surface.DrawText([]string{title}, ctx.X, ctx.Y,
				text(th.Fonts.PageTitle, true, th.Colors.PageHeading))
			sub := surface.TextStyle{
				Font:       theme.Font(th.Fonts.PageSubtitle, false),
				Color:      th.Colors.TextSecondary,
				LineHeight: subjectAdvance,
			}
			ctx.Surface.DrawText([]string{subject, generated}, ctx.X, ctx.Y+titleAdvance, sub)
		}
		return titleAdvance + subjectAdvance + trailing
	}
}
