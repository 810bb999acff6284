package block

import (
	"math"

	"github.com/matzehuels/execreport/pkg/render/surface"
	"github.com/matzehuels/execreport/pkg/render/theme"
)

const (
	riskTitleBaseline = 12
	badgeBaseline     = 13
)

// RiskRow is one weighted risk: a colored badge beside a category and its
// justification.
type RiskRow struct {
	Label         string // badge text
	Badge         theme.Badge
	Category      string
	Justification string
}

// RiskRows draws one badge row per entry. The badge is as wide as its
// label plus padding, never narrower than the theme minimum. Category and
// justification wrap in the space to its right. A row is as tall as the
// larger of the badge and its text.
func RiskRows(rows []RiskRow) Func {
	return func(mode Mode, ctx Context) float64 {
		th := ctx.Theme
		sp := th.Spacing
		badgeFont := theme.Font(th.Fonts.Badge, true)
		body := text(th.Fonts.Body, false, th.Colors.TextPrimary)
		body.LineHeight = th.Lines.Body
		title := text(th.Fonts.Body, true, th.Colors.PageHeading)
		title.LineHeight = th.Lines.Body

		var h float64
		for _, r := range rows {
			badgeWidth := math.Max(sp.BadgeMinW, ctx.Surface.TextWidth(r.Label, badgeFont)+sp.BadgePadding)
			textCtx := ctx.Indent(badgeWidth + sp.BadgeGap)
			category := ctx.Surface.WrapLines(r.Category, title.Font, textCtx.Width)
			titleHeight := float64(max(1, len(category))) * th.Lines.Body
			lines := ctx.Surface.WrapLines(r.Justification, body.Font, textCtx.Width)
			rowHeight := math.Max(sp.BadgeHeight, titleHeight+float64(len(lines))*th.Lines.Body+sp.TextPad)

			if mode == Draw {
				y := ctx.Y + h
				ctx.Surface.DrawRect(ctx.X, y, badgeWidth, sp.BadgeHeight, surface.RectStyle{
					Paint:  surface.Fill,
					Fill:   r.Badge.Fill,
					Radius: sp.BadgeRadius,
				})
				label := surface.TextStyle{Font: badgeFont, Color: r.Badge.Text, Align: surface.AlignCenter}
				ctx.Surface.DrawText([]string{r.Label}, ctx.X+badgeWidth/2, y+badgeBaseline, label)
				ctx.Surface.DrawText(category, textCtx.X, y+riskTitleBaseline, title)
				ctx.Surface.DrawText(lines, textCtx.X, y+riskTitleBaseline+titleHeight, body)
			}
			h += rowHeight + sp.RiskRowGap
		}
		return h
	}
}
