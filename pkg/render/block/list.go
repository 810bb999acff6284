package block

const bulletBaseline = 10

// BulletList draws items with an icon in the left gutter. Each item wraps
// independently to the width minus the bullet indent. Items that wrap to
// no lines are skipped; an empty list takes no space.
func BulletList(items []string, icon string) Func {
	return func(mode Mode, ctx Context) float64 {
		th := ctx.Theme
		if icon == "" {
			icon = th.Icons.Default
		}
		body := text(th.Fonts.Body, false, th.Colors.TextPrimary)
		body.LineHeight = th.Lines.Bullet
		mark := text(th.Fonts.Body, true, th.Colors.Bullet)
		inner := ctx.Indent(th.Spacing.BulletIndent)

		var h float64
		for _, item := range items {
			lines := ctx.Surface.WrapLines(item, body.Font, inner.Width)
			if len(lines) == 0 {
				continue
			}
			if mode == Draw {
				y := ctx.Y + h + bulletBaseline
				ctx.Surface.DrawText([]string{icon}, ctx.X, y, mark)
				ctx.Surface.DrawText(lines, inner.X, y, body)
			}
			h += float64(len(lines))*th.Lines.Bullet + th.Spacing.BulletGap
		}
		return h
	}
}
