package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/execreport/pkg/errors"
	"github.com/matzehuels/execreport/pkg/render/block"
	"github.com/matzehuels/execreport/pkg/render/surface"
	"github.com/matzehuels/execreport/pkg/render/theme"
)

// Options configures an [Engine].
type Options struct {
	Theme    *theme.Theme // defaults to theme.Default()
	Logger   *log.Logger  // defaults to a discard logger
	Observer Observer     // optional
}

// Engine lays rows of cards out on a surface.
type Engine struct {
	surface surface.Surface
	theme   *theme.Theme
	logger  *log.Logger
	observe Observer

	state  State
	cursor Cursor
	pageW  float64
	pageH  float64
	stats  Stats
}

// New creates an engine drawing on s. No page exists until the first row
// or an explicit [Engine.Begin].
func New(s surface.Surface, opts Options) *Engine {
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	w, h := s.PageSize()
	return &Engine{
		surface: s,
		theme:   opts.Theme,
		logger:  opts.Logger,
		observe: opts.Observer,
		pageW:   w,
		pageH:   h,
	}
}

// Cursor returns the current position.
func (e *Engine) Cursor() Cursor { return e.cursor }

// State returns the current state.
func (e *Engine) State() State { return e.state }

// ContentWidth is the page width inside the margins.
func (e *Engine) ContentWidth() float64 { return e.theme.ContentWidth(e.pageW) }

func (e *Engine) top() float64    { return e.theme.Spacing.PageMargin }
func (e *Engine) bottom() float64 { return e.pageH - e.theme.Spacing.PageMargin }

func (e *Engine) transition(s State, row int, height float64) {
	e.state = s
	if e.observe != nil {
		e.observe(Event{State: s, Row: row, Cursor: e.cursor, Height: height})
	}
}

// Begin starts the first page. It is called implicitly by the first
// placement and does nothing once a page exists.
func (e *Engine) Begin() {
	if e.cursor.Page == 0 {
		e.newPage()
	}
}

func (e *Engine) newPage() {
	e.surface.NewPage()
	e.surface.DrawRect(0, 0, e.pageW, e.pageH, surface.RectStyle{
		Paint: surface.Fill,
		Fill:  e.theme.Colors.PageBackground,
	})
	e.cursor = Cursor{Y: e.top(), Page: e.surface.PageCount()}
}

func (e *Engine) context(x, y, width float64) block.Context {
	return block.Context{Surface: e.surface, Theme: e.theme, X: x, Y: y, Width: width}
}

func (e *Engine) checkDone() error {
	if e.state == Done || e.state == FooterPass {
		return errors.New(errors.ErrCodeInternal, "layout already finished")
	}
	return nil
}

// Place draws an unbordered block across the content width at the cursor
// and advances by its height. It is used for page headers.
func (e *Engine) Place(name string, fn block.Func) error {
	if err := e.checkDone(); err != nil {
		return err
	}
	e.Begin()
	x := e.theme.Spacing.PageMargin
	h := fn(block.Measure, e.context(x, e.cursor.Y, e.ContentWidth()))
	e.fit(h, -1, []string{name})
	fn(block.Draw, e.context(x, e.cursor.Y, e.ContentWidth()))
	e.cursor.Y += h
	return e.surfaceErr()
}

// Layout places rows in order.
func (e *Engine) Layout(rows []Row) error {
	for _, row := range rows {
		if err := e.LayoutRow(row); err != nil {
			return err
		}
	}
	return nil
}

// LayoutRow places one row. A row mixing a full-span card with siblings is
// placed as consecutive single-card rows in the given order.
func (e *Engine) LayoutRow(row Row) error {
	if err := e.checkDone(); err != nil {
		return err
	}
	if len(row) == 0 {
		return nil
	}
	if len(row) > 1 && !row.multiColumn() {
		for _, c := range row {
			if err := e.LayoutRow(Row{c}); err != nil {
				return err
			}
		}
		return nil
	}
	e.Begin()

	sp := e.theme.Spacing
	idx := e.stats.Rows

	e.transition(RowSpanDetermination, idx, 0)
	widths, gap := ColumnWidths(e.ContentWidth(), sp.ColumnGap, len(row))
	xs := make([]float64, len(row))
	x := sp.PageMargin
	for i, w := range widths {
		xs[i] = x
		x += w + gap
	}

	e.transition(RowMeasurement, idx, 0)
	var inner float64
	for i, c := range row {
		ctx := e.context(xs[i]+sp.CardPadding, e.cursor.Y+sp.CardPadding, widths[i]-2*sp.CardPadding)
		inner = max(inner, c.Render(block.Measure, ctx))
	}
	height := inner + 2*sp.CardPadding

	e.transition(PageFitCheck, idx, height)
	overflow := e.fit(height, idx, row.Names())

	e.transition(RowDraw, idx, height)
	top := e.cursor.Y
	for i, c := range row {
		e.surface.DrawRect(xs[i], top, widths[i], height, surface.RectStyle{
			Paint:     surface.Fill | surface.Stroke,
			Fill:      e.theme.Colors.CardBackground,
			Stroke:    e.theme.Colors.CardBorder,
			LineWidth: sp.CardBorder,
			Radius:    sp.CardRadius,
		})
		c.Render(block.Draw, e.context(xs[i]+sp.CardPadding, top+sp.CardPadding, widths[i]-2*sp.CardPadding))
	}
	if err := e.surfaceErr(); err != nil {
		return err
	}

	e.stats.Placements = append(e.stats.Placements, Placement{
		Row:      idx,
		Cards:    row.Names(),
		Page:     e.cursor.Page,
		Y:        top,
		Height:   height,
		Overflow: overflow,
	})
	e.stats.Rows++
	e.logger.Debug("row placed", "row", idx, "cards", row.Names(), "page", e.cursor.Page, "y", top, "height", height)

	e.cursor.Y = top + height + sp.RowGap
	return nil
}

// fit starts a new page when height does not fit below the cursor. It
// reports whether the block overflows even a fresh page.
func (e *Engine) fit(height float64, row int, names []string) bool {
	if e.cursor.Y+height <= e.bottom() {
		return false
	}
	if e.cursor.Y > e.top() {
		e.newPage()
		e.stats.PageBreaks++
		e.logger.Debug("page break", "page", e.cursor.Page, "row", row)
		e.transition(PageFitCheck, row, height)
		if e.cursor.Y+height <= e.bottom() {
			return false
		}
	}

	w := OverflowWarning{
		Page:      e.cursor.Page,
		Row:       row,
		Cards:     names,
		Height:    height,
		Available: e.bottom() - e.cursor.Y,
	}
	e.stats.Overflows = append(e.stats.Overflows, w)
	e.logger.Warn("content exceeds printable page height", "row", row, "cards", names,
		"height", height, "available", w.Available, "page", w.Page)
	return true
}

func (e *Engine) surfaceErr() error {
	err := e.surface.Err()
	if err == nil {
		return nil
	}
	if errors.GetCode(err) == "" {
		return errors.Wrap(errors.ErrCodeEncoding, err, "drawing failed")
	}
	return err
}

// Footer is stamped on every page by [Engine.Finish].
type Footer struct {
	Left  string                       // left-aligned text
	Right func(page, total int) string // right-aligned text per page
}

// Finish runs the footer pass over every page and returns the layout stats.
// The engine accepts no further rows afterwards.
func (e *Engine) Finish(f Footer) (Stats, error) {
	if err := e.checkDone(); err != nil {
		return e.stats, err
	}
	e.Begin()
	e.transition(FooterPass, -1, 0)

	sp := e.theme.Spacing
	st := surface.TextStyle{
		Font:  theme.Font(e.theme.Fonts.Footer, false),
		Color: e.theme.Colors.TextMuted,
	}
	right := st
	right.Align = surface.AlignRight

	y := e.pageH - sp.PageMargin/2
	total := e.surface.PageCount()
	for page := 1; page <= total; page++ {
		e.surface.SelectPage(page)
		if f.Left != "" {
			e.surface.DrawText([]string{f.Left}, sp.PageMargin, y, st)
		}
		if f.Right != nil {
			e.surface.DrawText([]string{f.Right(page, total)}, e.pageW-sp.PageMargin, y, right)
		}
	}

	e.stats.Pages = total
	e.transition(Done, -1, 0)
	e.logger.Debug("layout finished", "rows", e.stats.Rows, "pages", total, "overflows", len(e.stats.Overflows))
	return e.stats, e.surfaceErr()
}
