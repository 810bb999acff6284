// Package executive assembles the executive summary document.
//
// The summary is a masthead followed by rows of cards: financial overview
// beside risk and compliance, the full-width action radar, then chart cards
// two per row. Rows are placed by the layout engine, which handles page
// breaks and stamps the footer on every page.
//
// [Generate] produces PDF bytes. [Render] draws onto any surface, which is
// how tests and dry runs inspect the layout without encoding a document.
package executive

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/execreport/pkg/buildinfo"
	"github.com/matzehuels/execreport/pkg/render/block"
	"github.com/matzehuels/execreport/pkg/render/layout"
	"github.com/matzehuels/execreport/pkg/render/surface"
	"github.com/matzehuels/execreport/pkg/render/theme"
	"github.com/matzehuels/execreport/pkg/report"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	formatter *report.Formatter
	theme     *theme.Theme
	logger    *log.Logger
	observer  layout.Observer
	producer  string
}

// WithFormatter sets the labels and number formatting. The default uses
// [report.DefaultLabels] with the default locale.
func WithFormatter(f *report.Formatter) Option { return func(r *renderer) { r.formatter = f } }

// WithTheme overrides the default theme.
func WithTheme(t *theme.Theme) Option { return func(r *renderer) { r.theme = t } }

// WithLogger sets the logger for layout events and overflow warnings.
func WithLogger(l *log.Logger) Option { return func(r *renderer) { r.logger = l } }

// WithObserver receives every layout state transition.
func WithObserver(o layout.Observer) Option { return func(r *renderer) { r.observer = o } }

// WithProducer sets the PDF producer string (default: buildinfo.Producer()).
func WithProducer(p string) Option { return func(r *renderer) { r.producer = p } }

func newRenderer(opts []Option) (*renderer, error) {
	r := &renderer{producer: buildinfo.Producer()}
	for _, opt := range opts {
		opt(r)
	}
	if r.formatter == nil {
		f, err := report.NewFormatter(report.DefaultLabels(), report.FormatOptions{})
		if err != nil {
			return nil, err
		}
		r.formatter = f
	}
	if r.theme == nil {
		r.theme = theme.Default()
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return r, nil
}

// Document is a generated summary.
type Document struct {
	Filename string
	Data     []byte
	Stats    layout.Stats
}

// Generate renders req as a PDF. The request is validated before anything
// is drawn. Identical requests produce byte-identical documents.
func Generate(req report.Request, opts ...Option) (*Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r, err := newRenderer(opts)
	if err != nil {
		return nil, err
	}

	labels := r.formatter.Labels()
	pdf := surface.NewPDF(surface.PDFOptions{
		Title:     labels.ReportTitle,
		Subject:   req.SubjectLine(),
		Author:    req.Metadata.ExportedBy,
		Creator:   buildinfo.Producer(),
		Producer:  r.producer,
		CreatedAt: req.Metadata.ExportedAt,
	})
	stats, err := r.render(pdf, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Save(&buf); err != nil {
		return nil, err
	}
	return &Document{
		Filename: report.BuildFilename(req.Metadata, report.ExtPDF),
		Data:     buf.Bytes(),
		Stats:    stats,
	}, nil
}

// Render draws req onto s and runs the footer pass. It does not save s.
func Render(s surface.Surface, req report.Request, opts ...Option) (layout.Stats, error) {
	if err := req.Validate(); err != nil {
		return layout.Stats{}, err
	}
	r, err := newRenderer(opts)
	if err != nil {
		return layout.Stats{}, err
	}
	return r.render(s, req)
}

func (r *renderer) render(s surface.Surface, req report.Request) (layout.Stats, error) {
	f := r.formatter
	l := f.Labels()
	subject := strings.ToUpper(req.SubjectLine())
	exported := f.Time(req.Metadata.ExportedAt)

	e := layout.New(s, layout.Options{Theme: r.theme, Logger: r.logger, Observer: r.observer})
	masthead := block.Masthead(l.ReportTitle, fmt.Sprintf(l.SubjectLine, subject), fmt.Sprintf(l.GeneratedLine, exported))
	if err := e.Place("masthead", masthead); err != nil {
		return layout.Stats{}, err
	}
	if err := e.Layout(Rows(req, f)); err != nil {
		return layout.Stats{}, err
	}
	stats, err := e.Finish(layout.Footer{
		Left:  fmt.Sprintf(l.FooterMeta, exported, subject),
		Right: func(page, total int) string { return fmt.Sprintf(l.FooterPage, page, total) },
	})
	if err != nil {
		return stats, err
	}
	r.logger.Debug("executive summary rendered", "case", req.Metadata.CaseID,
		"rows", stats.Rows, "pages", stats.Pages, "overflows", len(stats.Overflows))
	return stats, nil
}
