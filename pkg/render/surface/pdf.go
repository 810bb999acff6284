package surface

import (
	"bytes"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/execreport/pkg/errors"
)

const fontFamily = "Helvetica"

// PDFOptions configures document metadata. CreatedAt is written as both the
// creation and modification date; a zero value is written as the Unix
// epoch so output never depends on the wall clock.
type PDFOptions struct {
	Title     string
	Subject   string
	Author    string
	Creator   string
	Producer  string
	CreatedAt time.Time
}

// PDF is a [Surface] backed by fpdf, using A4 portrait pages in points.
//
// Text is set in the core Helvetica faces, so runes outside Windows-1252 are
// substituted. A second fpdf instance without pages provides font metrics;
// it shares the translator so measured and drawn strings are identical.
type PDF struct {
	doc     *fpdf.Fpdf
	metrics *fpdf.Fpdf
	tr      func(string) string

	// fpdf skips redundant font changes based on its own state, which is
	// stale after SetPage returns to an earlier page.
	fontStale bool

	err error
	out []byte
}

// NewPDF creates an empty document. Call NewPage before drawing.
func NewPDF(opts PDFOptions) *PDF {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCatalogSort(true)
	doc.SetCompression(true)

	created := opts.CreatedAt
	if created.IsZero() {
		created = time.Unix(0, 0)
	}
	doc.SetCreationDate(created.UTC())
	doc.SetModificationDate(created.UTC())

	if opts.Title != "" {
		doc.SetTitle(opts.Title, true)
	}
	if opts.Subject != "" {
		doc.SetSubject(opts.Subject, true)
	}
	if opts.Author != "" {
		doc.SetAuthor(opts.Author, true)
	}
	if opts.Creator != "" {
		doc.SetCreator(opts.Creator, true)
	}
	if opts.Producer != "" {
		doc.SetProducer(opts.Producer, true)
	}

	metrics := fpdf.New("P", "pt", "A4", "")
	return &PDF{
		doc:     doc,
		metrics: metrics,
		tr:      doc.UnicodeTranslatorFromDescriptor(""),
	}
}

func fontStyle(f Font) string {
	if f.Bold {
		return "B"
	}
	return ""
}

// TextWidth returns the width of s in points.
func (p *PDF) TextWidth(s string, f Font) float64 {
	p.metrics.SetFont(fontFamily, fontStyle(f), f.Size)
	return p.metrics.GetStringWidth(p.tr(s))
}

// WrapLines wraps text to maxWidth.
func (p *PDF) WrapLines(text string, f Font, maxWidth float64) []string {
	p.metrics.SetFont(fontFamily, fontStyle(f), f.Size)
	return wrapText(text, maxWidth, func(s string) float64 {
		return p.metrics.GetStringWidth(p.tr(s))
	})
}

func (p *PDF) failed() bool {
	return p.Err() != nil
}

func (p *PDF) setFont(f Font) {
	if p.fontStale {
		p.doc.SetFontSize(f.Size + 1)
		p.fontStale = false
	}
	p.doc.SetFont(fontFamily, fontStyle(f), f.Size)
}

// DrawText draws one line per baseline starting at y.
func (p *PDF) DrawText(lines []string, x, y float64, st TextStyle) {
	if p.failed() || len(lines) == 0 {
		return
	}
	p.setFont(st.Font)
	c := st.Color
	p.doc.SetTextColor(int(c.R), int(c.G), int(c.B))
	// Text inherits the fill color when both match; set it so the page
	// stream state is explicit.
	p.doc.SetFillColor(int(c.R), int(c.G), int(c.B))

	for i, line := range lines {
		s := p.tr(line)
		lx := x
		switch st.Align {
		case AlignCenter:
			lx -= p.doc.GetStringWidth(s) / 2
		case AlignRight:
			lx -= p.doc.GetStringWidth(s)
		}
		p.doc.Text(lx, y+float64(i)*st.LineHeight, s)
	}
}

// DrawRect draws a filled and/or stroked rectangle.
func (p *PDF) DrawRect(x, y, w, h float64, st RectStyle) {
	if p.failed() || st.Paint == 0 {
		return
	}
	style := ""
	if st.Paint&Fill != 0 {
		p.doc.SetFillColor(int(st.Fill.R), int(st.Fill.G), int(st.Fill.B))
		style += "F"
	}
	if st.Paint&Stroke != 0 {
		p.doc.SetDrawColor(int(st.Stroke.R), int(st.Stroke.G), int(st.Stroke.B))
		p.doc.SetLineWidth(st.LineWidth)
		style += "D"
	}
	if st.Radius > 0 {
		p.doc.RoundedRect(x, y, w, h, st.Radius, "1234", style)
		return
	}
	p.doc.Rect(x, y, w, h, style)
}

// Line draws a straight stroke.
func (p *PDF) Line(x1, y1, x2, y2 float64, c Color, width float64) {
	if p.failed() {
		return
	}
	p.doc.SetDrawColor(int(c.R), int(c.G), int(c.B))
	p.doc.SetLineWidth(width)
	p.doc.Line(x1, y1, x2, y2)
}

// DrawImage embeds a PNG, JPEG or GIF image scaled to w×h.
// Malformed data fails with ENCODING_ERROR and poisons the surface.
func (p *PDF) DrawImage(name string, data []byte, x, y, w, h float64) error {
	if err := p.Err(); err != nil {
		return err
	}
	typ, err := imageType(name, data)
	if err != nil {
		p.err = err
		return err
	}

	key := imageKey(data)
	opts := fpdf.ImageOptions{ImageType: typ}
	p.doc.RegisterImageOptionsReader(key, opts, bytes.NewReader(data))
	if p.doc.Err() {
		p.err = errors.Wrap(errors.ErrCodeEncoding, p.doc.Error(), "embed image %q", name)
		return p.err
	}
	p.doc.ImageOptions(key, x, y, w, h, false, opts, 0, "")
	return p.Err()
}

// NewPage appends a page and makes it current.
func (p *PDF) NewPage() {
	if p.failed() {
		return
	}
	p.doc.AddPage()
	p.fontStale = false
}

// PageCount returns the number of pages.
func (p *PDF) PageCount() int { return p.doc.PageCount() }

// SelectPage makes page n (1-based) current.
func (p *PDF) SelectPage(n int) {
	if p.failed() {
		return
	}
	p.doc.SetPage(n)
	p.fontStale = true
}

// PageSize returns the page width and height in points.
func (p *PDF) PageSize() (float64, float64) { return p.doc.GetPageSize() }

// Err returns the first drawing error.
func (p *PDF) Err() error {
	if p.err != nil {
		return p.err
	}
	if p.doc.Err() {
		return errors.Wrap(errors.ErrCodeEncoding, p.doc.Error(), "pdf encoding failed")
	}
	return nil
}

// Save encodes the document and writes it to w. Nothing is written when
// the surface has failed. Repeated calls write the same bytes.
func (p *PDF) Save(w io.Writer) error {
	if err := p.Err(); err != nil {
		return err
	}
	if p.out == nil {
		var buf bytes.Buffer
		if err := p.doc.Output(&buf); err != nil {
			return errors.Wrap(errors.ErrCodeEncoding, err, "encode pdf")
		}
		p.out = buf.Bytes()
	}
	_, err := w.Write(p.out)
	return err
}

var _ Surface = (*PDF)(nil)
