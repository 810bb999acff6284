package executive

import (
	"fmt"
	"strings"

	"github.com/matzehuels/execreport/pkg/render/block"
	"github.com/matzehuels/execreport/pkg/render/layout"
	"github.com/matzehuels/execreport/pkg/render/theme"
	"github.com/matzehuels/execreport/pkg/report"
)

// chartsPerRow is the number of chart cards placed side by side.
const chartsPerRow = 2

// Rows builds the card rows for req: financial beside risk, the action
// radar alone, then charts in pairs. Charts without image data are left out.
func Rows(req report.Request, f *report.Formatter) []layout.Row {
	p := req.Payload
	rows := []layout.Row{
		{FinancialCard(p.Financial, f), RiskCard(p.Risk, f)},
		{ActionsCard(p.Actions, f)},
	}

	var charts []layout.Card
	for i, c := range req.Charts {
		if c.Empty() {
			continue
		}
		charts = append(charts, ChartCard(fmt.Sprintf("chart-%d", i), c))
	}
	for i := 0; i < len(charts); i += chartsPerRow {
		rows = append(rows, layout.Row(charts[i:min(i+chartsPerRow, len(charts))]))
	}
	return rows
}

// FinancialCard shows the latest-year key figures and any alerts.
func FinancialCard(fin report.Financial, f *report.Formatter) layout.Card {
	l := f.Labels()
	metrics := []block.Metric{
		{Label: l.GrossProfit, Value: f.Currency(fin.GrossProfit)},
		{Label: l.GrossChange, Value: f.Percent(fin.YoYGrossChange), Tone: theme.ToneOf(fin.YoYGrossChange)},
		{Label: l.ProfitAfterTax, Value: f.Currency(fin.ProfitAfterTax)},
		{Label: l.ProfitChange, Value: f.Percent(fin.YoYProfitChange), Tone: theme.ToneOf(fin.YoYProfitChange)},
		{Label: l.Liquidity, Value: f.Currency(fin.Liquidity), Tone: theme.Warning},
		{Label: l.DSO, Value: f.Days(fin.DSO)},
		{Label: l.IntercompanyLoans, Value: f.Currency(fin.IntercompanyLoans), Tone: theme.Negative},
	}
	alerts := findings(fin.Alerts, f)

	return layout.Card{
		Name: "financial",
		Span: layout.Half,
		Render: block.Stack(
			block.Heading(l.FinancialTitle),
			block.SectionLabel(fmt.Sprintf(l.LatestYear, f.Year(fin.LatestYear))),
			block.MetricGrid(metrics),
			block.When(len(alerts) > 0,
				block.SectionLabel(l.Observations),
				iconList(alerts, func(ic theme.Icons) string { return ic.Default }),
			),
		),
	}
}

// RiskCard shows the sector analysis, compliance figures, weighted risks
// and red flags.
func RiskCard(risk report.Risk, f *report.Formatter) layout.Card {
	l := f.Labels()
	compliance := strings.TrimSpace(risk.ComplianceIssue)
	if compliance == "" {
		compliance = l.NoneRegistered
	}
	exposure := l.NoneRegistered
	if risk.TaxCaseExposure != nil && *risk.TaxCaseExposure != 0 {
		exposure = f.Currency(risk.TaxCaseExposure)
	}
	flags := findings(risk.RedFlags, f)

	return layout.Card{
		Name: "risk",
		Span: layout.Half,
		Render: block.Stack(
			block.Heading(l.RiskTitle),
			block.SectionLabel(l.SectorAnalysis),
			block.Paragraph(risk.SectorRiskSummary),
			func(_ block.Mode, ctx block.Context) float64 { return ctx.Theme.Spacing.TextPad },
			block.KeyFigure(l.Compliance, compliance),
			block.KeyFigure(l.TaxExposure, exposure),
			block.When(len(risk.Scores) > 0,
				block.SectionLabel(l.WeightedRisks),
				riskRows(risk.Scores, l),
			),
			block.When(len(flags) > 0,
				block.SectionLabel(l.RedFlags),
				iconList(flags, func(ic theme.Icons) string { return ic.Critical }),
			),
		),
	}
}

// ActionsCard is the full-width action radar. Each of its four lists is
// shown only when it has entries.
func ActionsCard(a report.Actions, f *report.Formatter) layout.Card {
	l := f.Labels()
	section := func(label string, items []string, icon func(theme.Icons) string) block.Func {
		return block.When(len(items) > 0, block.SectionLabel(label), iconList(items, icon))
	}

	return layout.Card{
		Name: "actions",
		Span: layout.Full,
		Render: block.Stack(
			block.Heading(l.ActionsTitle),
			section(l.Deadlines, actionItems(a.UpcomingDeadlines, l),
				func(ic theme.Icons) string { return ic.Deadline }),
			section(l.BoardActionables, actionItems(a.BoardActionables, l),
				func(ic theme.Icons) string { return ic.Board }),
			section(l.CriticalEvents, timeline(a.CriticalEvents, f),
				func(ic theme.Icons) string { return ic.Critical }),
			section(l.UpcomingEvents, timeline(a.UpcomingEvents, f),
				func(ic theme.Icons) string { return ic.Roadmap }),
		),
	}
}

// ChartCard shows one chart image under its title.
func ChartCard(name string, c report.ChartImage) layout.Card {
	return layout.Card{
		Name: name,
		Span: layout.Half,
		Render: block.Stack(
			block.Heading(c.Title),
			func(_ block.Mode, ctx block.Context) float64 { return ctx.Theme.Spacing.ChartGap },
			block.Image(name, c.Data, c.Aspect()),
		),
	}
}

// iconList resolves the bullet icon from the drawing theme.
func iconList(items []string, icon func(theme.Icons) string) block.Func {
	return func(mode block.Mode, ctx block.Context) float64 {
		return block.BulletList(items, icon(ctx.Theme.Icons))(mode, ctx)
	}
}

// riskRows resolves badge colors from the drawing theme.
func riskRows(scores []report.RiskScore, l report.Labels) block.Func {
	return func(mode block.Mode, ctx block.Context) float64 {
		rows := make([]block.RiskRow, len(scores))
		for i, s := range scores {
			rows[i] = block.RiskRow{
				Label:         l.RiskLevel(s.Level),
				Badge:         ctx.Theme.Badge(s.Level),
				Category:      s.Category,
				Justification: s.Justification,
			}
		}
		return block.RiskRows(rows)(mode, ctx)
	}
}

// findings formats alerts and red flags as bullet text.
func findings(fs []report.Finding, f *report.Formatter) []string {
	out := make([]string, 0, len(fs))
	for _, fd := range fs {
		s := fd.Label + ": " + f.FindingValue(fd)
		if d := strings.TrimSpace(fd.Description); d != "" {
			s += " — " + d
		}
		out = append(out, s)
	}
	return out
}

// actionItems formats action items as bullet text. Missing owners and
// horizons are spelled out rather than omitted.
func actionItems(items []report.ActionItem, l report.Labels) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		head := it.Title
		if p := strings.TrimSpace(it.Priority); p != "" {
			head += " (" + p + ")"
		}
		owner := strings.TrimSpace(it.OwnerRole)
		if owner == "" {
			owner = l.NotSpecified
		}
		horizon := strings.TrimSpace(it.TimeHorizon)
		if horizon == "" {
			horizon = l.NotApplicable
		}
		s := strings.Join([]string{
			head,
			l.Responsibility + ": " + owner,
			l.Horizon + ": " + horizon,
		}, " · ")
		if d := strings.TrimSpace(it.Description); d != "" {
			s += " — " + d
		}
		out = append(out, s)
	}
	return out
}

// timeline formats dated events as bullet text.
func timeline(events []report.TimelineEvent, f *report.Formatter) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		s := f.Date(ev.Date) + " · " + ev.Title
		if d := strings.TrimSpace(ev.Description); d != "" {
			s += " — " + d
		}
		out = append(out, s)
	}
	return out
}
