package layout

import (
	"math"

	"github.com/matzehuels/execreport/pkg/render/block"
)

// Span is the number of columns a card declares.
type Span uint8

const (
	Half Span = 1
	Full Span = 2
)

// Card is a bordered group of blocks laid out as one unit.
type Card struct {
	Name   string
	Span   Span
	Render block.Func
}

// Row is a list of cards placed side by side.
type Row []Card

// Names returns the card names in order.
func (r Row) Names() []string {
	names := make([]string, len(r))
	for i, c := range r {
		names[i] = c.Name
	}
	return names
}

// multiColumn reports whether the row shares its width between cards.
func (r Row) multiColumn() bool {
	if len(r) < 2 {
		return false
	}
	for _, c := range r {
		if c.Span == Full {
			return false
		}
	}
	return true
}

// ColumnWidths splits contentWidth into n columns separated by gap and
// returns the widths together with the gap actually used. The gap shrinks
// when contentWidth is too narrow for it, so every width stays positive and
// widths plus gaps always sum to contentWidth.
func ColumnWidths(contentWidth, gap float64, n int) ([]float64, float64) {
	if n <= 1 {
		return []float64{contentWidth}, 0
	}
	gap = math.Max(0, math.Min(gap, contentWidth/float64(2*(n-1))))
	w := (contentWidth - float64(n-1)*gap) / float64(n)
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = w
	}
	return widths, gap
}
