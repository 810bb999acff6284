// Package theme holds the style table shared by every block renderer:
// spacing, font sizes, line heights, colors and the risk badge palette.
//
// A [Theme] is plain data. [Default] returns the executive summary look;
// callers may copy and adjust it.
package theme

import (
	"github.com/matzehuels/execreport/pkg/render/surface"
	"github.com/matzehuels/execreport/pkg/report"
)

// Spacing constants, in points.
type Spacing struct {
	PageMargin   float64
	CardPadding  float64
	CardRadius   float64
	CardBorder   float64 // stroke width of card borders
	RowGap       float64
	ColumnGap    float64
	BulletIndent float64
	BulletGap    float64 // between bullet items
	TextPad      float64 // below paragraphs that precede other blocks
	MetricGap    float64 // gap between the two metric grid columns
	MetricRow    float64 // fixed metric cell height
	BadgeHeight  float64
	BadgeMinW    float64
	BadgeRadius  float64
	BadgePadding float64 // added to the badge label width
	BadgeGap     float64 // between badge and justification
	RiskRowGap   float64
	ChartGap     float64 // between chart heading and image
	ChartMaxH    float64
	KeyFigure    float64 // fixed key figure height
}

// FontSizes in points.
type FontSizes struct {
	PageTitle    float64
	PageSubtitle float64
	CardTitle    float64
	SectionLabel float64
	Body         float64
	MetricLabel  float64
	MetricValue  float64
	KeyValue     float64
	Badge        float64
	Footer       float64
}

// LineHeights in points.
type LineHeights struct {
	CardTitle    float64
	SectionLabel float64
	Body         float64
	Bullet       float64
}

// Palette holds the named colors.
type Palette struct {
	PageBackground surface.Color
	PageHeading    surface.Color
	TextPrimary    surface.Color
	TextSecondary  surface.Color
	TextMuted      surface.Color
	CardBackground surface.Color
	CardBorder     surface.Color
	Accent         surface.Color
	AccentSoft     surface.Color
	Bullet         surface.Color
	Positive       surface.Color
	Warning        surface.Color
	Negative       surface.Color
}

// Badge colors a risk level.
type Badge struct {
	Fill surface.Color
	Text surface.Color
}

// Icons prefixed to bullet items. All are Windows-1252 safe.
type Icons struct {
	Default  string
	Deadline string
	Board    string
	Critical string
	Roadmap  string
}

// Theme is the complete style table.
type Theme struct {
	Spacing Spacing
	Fonts   FontSizes
	Lines   LineHeights
	Colors  Palette
	Risk    map[report.RiskLevel]Badge
	Icons   Icons
}

// Default returns the executive summary theme.
func Default() *Theme {
	return &Theme{
		Spacing: Spacing{
			PageMargin:   54,
			CardPadding:  28,
			CardRadius:   12,
			CardBorder:   0.6,
			RowGap:       24,
			ColumnGap:    24,
			BulletIndent: 14,
			BulletGap:    6,
			TextPad:      6,
			MetricGap:    22,
			MetricRow:    40,
			BadgeHeight:  20,
			BadgeMinW:    52,
			BadgeRadius:  6,
			BadgePadding: 18,
			BadgeGap:     14,
			RiskRowGap:   10,
			ChartGap:     10,
			ChartMaxH:    240,
			KeyFigure:    28,
		},
		Fonts: FontSizes{
			PageTitle:    24,
			PageSubtitle: 11,
			CardTitle:    13,
			SectionLabel: 10,
			Body:         10,
			MetricLabel:  9,
			MetricValue:  16,
			KeyValue:     14,
			Badge:        10,
			Footer:       9,
		},
		Lines: LineHeights{
			CardTitle:    26,
			SectionLabel: 18,
			Body:         16,
			Bullet:       15,
		},
		Colors: Palette{
			PageBackground: surface.RGB(250, 250, 250),
			PageHeading:    surface.RGB(30, 41, 59),
			TextPrimary:    surface.RGB(45, 55, 72),
			TextSecondary:  surface.RGB(88, 102, 126),
			TextMuted:      surface.RGB(149, 162, 188),
			CardBackground: surface.RGB(255, 255, 255),
			CardBorder:     surface.RGB(229, 231, 235),
			Accent:         surface.RGB(99, 102, 241),
			AccentSoft:     surface.RGB(196, 201, 253),
			Bullet:         surface.RGB(99, 102, 241),
			Positive:       surface.RGB(34, 197, 94),
			Warning:        surface.RGB(245, 158, 11),
			Negative:       surface.RGB(239, 68, 68),
		},
		Risk: map[report.RiskLevel]Badge{
			report.RiskCritical: {Fill: surface.RGB(220, 38, 38), Text: surface.RGB(255, 255, 255)},
			report.RiskHigh:     {Fill: surface.RGB(234, 179, 8), Text: surface.RGB(17, 24, 39)},
			report.RiskMedium:   {Fill: surface.RGB(59, 130, 246), Text: surface.RGB(255, 255, 255)},
			report.RiskLow:      {Fill: surface.RGB(34, 197, 94), Text: surface.RGB(17, 24, 39)},
			report.RiskUnknown:  {Fill: surface.RGB(148, 163, 184), Text: surface.RGB(17, 24, 39)},
		},
		Icons: Icons{
			Default:  "•",
			Deadline: "›",
			Board:    "•",
			Critical: "!",
			Roadmap:  "»",
		},
	}
}

// Tone classifies a metric value for coloring.
type Tone uint8

const (
	Neutral Tone = iota
	Positive
	Negative
	Warning
)

// ToneOf returns Positive for v >= 0 and Negative otherwise; nil is Neutral.
func ToneOf(v *float64) Tone {
	switch {
	case v == nil:
		return Neutral
	case *v >= 0:
		return Positive
	default:
		return Negative
	}
}

// ToneColor maps a tone to its color.
func (t *Theme) ToneColor(tone Tone) surface.Color {
	switch tone {
	case Positive:
		return t.Colors.Positive
	case Negative:
		return t.Colors.Negative
	case Warning:
		return t.Colors.Warning
	default:
		return t.Colors.PageHeading
	}
}

// Badge returns the colors for a risk level, falling back to N/A.
func (t *Theme) Badge(lvl report.RiskLevel) Badge {
	if b, ok := t.Risk[lvl]; ok {
		return b
	}
	return t.Risk[report.RiskUnknown]
}

// ContentWidth is the printable width of a page of the given width.
func (t *Theme) ContentWidth(pageWidth float64) float64 {
	return pageWidth - 2*t.Spacing.PageMargin
}

// Font returns a surface font.
func Font(size float64, bold bool) surface.Font {
	return surface.Font{Bold: bold, Size: size}
}
