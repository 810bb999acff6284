package layout

import "fmt"

// Cursor is the engine's position: the y offset on the current page.
type Cursor struct {
	Y    float64
	Page int
}

// State is a step of the layout state machine.
type State uint8

const (
	Idle State = iota
	RowSpanDetermination
	RowMeasurement
	PageFitCheck
	RowDraw
	FooterPass
	Done
)

var stateNames = [...]string{
	Idle:                 "idle",
	RowSpanDetermination: "row-span",
	RowMeasurement:       "row-measure",
	PageFitCheck:         "page-fit",
	RowDraw:              "row-draw",
	FooterPass:           "footer",
	Done:                 "done",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", s)
}

// Event is reported to an [Observer] on every state transition.
type Event struct {
	State  State
	Row    int // -1 outside row processing
	Cursor Cursor
	Height float64 // row height, once measured
}

// Observer receives state transitions.
type Observer func(Event)

// Placement records where a row was drawn.
type Placement struct {
	Row      int
	Cards    []string
	Page     int
	Y        float64
	Height   float64
	Overflow bool
}

// OverflowWarning reports a row taller than the printable page area. The
// row is drawn regardless and extends past the bottom margin.
type OverflowWarning struct {
	Page      int
	Row       int
	Cards     []string
	Height    float64
	Available float64
}

func (w OverflowWarning) Error() string {
	return fmt.Sprintf("row %d %v is %.1fpt tall but only %.1fpt fit on page %d",
		w.Row, w.Cards, w.Height, w.Available, w.Page)
}

// Stats summarizes a finished layout.
type Stats struct {
	Rows       int
	Pages      int
	PageBreaks int
	Placements []Placement
	Overflows  []OverflowWarning
}
