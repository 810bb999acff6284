// Package layout places cards on pages.
//
// Cards are grouped into rows by the caller. The [Engine] processes one row
// at a time through a fixed sequence of states:
//
//  1. [RowSpanDetermination]: pick column widths. Several half-span cards
//     share the content width; a lone card or a full-span card takes all of
//     it.
//  2. [RowMeasurement]: measure every card at its inner width. The row is as
//     tall as its tallest card plus padding, so sibling cards line up.
//  3. [PageFitCheck]: start a new page when the row does not fit below the
//     cursor. Rows are never split; a row taller than a whole page is drawn
//     anyway and reported as an [OverflowWarning].
//  4. [RowDraw]: draw each card's background and border at the shared row
//     height, then draw its content.
//
// After the last row, [Engine.Finish] runs the footer pass, which revisits
// every page to stamp "page i of N" once N is known.
//
// An engine owns its cursor and is used for exactly one document. It is not
// safe for concurrent use.
package layout
