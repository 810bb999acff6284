package block

import (
	"strings"

	"github.com/matzehuels/execreport/pkg/render/theme"
)

// Metric is one cell of a [MetricGrid].
type Metric struct {
	Label string
	Value string
	Tone  theme.Tone
}

const (
	metricColumns       = 2
	metricLabelBaseline = 10
	metricValueBaseline = 30
)

// MetricGrid lays metrics out two per row in cells of fixed height.
// Values are colored by tone.
func MetricGrid(metrics []Metric) Func {
	return func(mode Mode, ctx Context) float64 {
		if len(metrics) == 0 {
			return 0
		}
		th := ctx.Theme
		rows := (len(metrics) + metricColumns - 1) / metricColumns

		if mode == Draw {
			colWidth := (ctx.Width - th.Spacing.MetricGap) / metricColumns
			for i, m := range metrics {
				col, row := i%metricColumns, i/metricColumns
				x := ctx.X + float64(col)*(colWidth+th.Spacing.MetricGap)
				y := ctx.Y + float64(row)*th.Spacing.MetricRow

				ctx.Surface.DrawText([]string{strings.ToUpper(m.Label)}, x, y+metricLabelBaseline,
					text(th.Fonts.MetricLabel, true, th.Colors.TextMuted))
				ctx.Surface.DrawText([]string{m.Value}, x, y+metricValueBaseline,
					text(th.Fonts.MetricValue, true, th.ToneColor(m.Tone)))
			}
		}
		return float64(rows) * th.Spacing.MetricRow
	}
}
