package surface

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// runeWidth measures every rune as one unit.
func runeWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"empty", "", 10, nil},
		{"blank", "   \n  ", 10, nil},
		{"fits", "hello world", 20, []string{"hello world"}},
		{"exact fit", "hello world", 11, []string{"hello world"}},
		{"wraps", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"collapses spaces", "a   b    c", 10, []string{"a b c"}},
		{"newline", "one\ntwo", 20, []string{"one", "two"}},
		{"long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"long word after text", "ab abcdefgh", 4, []string{"ab", "abcd", "efgh"}},
		{"multibyte", "æøå æøå", 3, []string{"æøå", "æøå"}},
		{"zero width", "ab", 0, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width, runeWidth)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("wrapText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapTextLinesFit(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet consectetur ", 20)
	for width := 5.0; width < 80; width += 3 {
		for _, line := range wrapText(text, width, runeWidth) {
			if runeWidth(line) > width {
				t.Fatalf("width %v: line %q is %v wide", width, line, runeWidth(line))
			}
		}
	}
}
