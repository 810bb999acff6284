package surface

import (
	"strings"
	"unicode/utf8"
)

// wrapText breaks text into lines no wider than maxWidth using greedy word
// wrapping. Explicit newlines start a new line; blank lines are dropped.
// A single word wider than maxWidth is broken between runes, always keeping
// at least one rune per line.
func wrapText(text string, maxWidth float64, width func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}

		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if width(candidate) <= maxWidth {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			for utf8.RuneCountInString(word) > 1 && width(word) > maxWidth {
				head, tail := splitFitting(word, maxWidth, width)
				lines = append(lines, head)
				word = tail
			}
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// splitFitting returns the longest rune prefix of word that fits maxWidth
// (at least one rune) and the remainder.
func splitFitting(word string, maxWidth float64, width func(string) float64) (string, string) {
	cut := 0
	for i, r := range word {
		next := i + utf8.RuneLen(r)
		if cut > 0 && width(word[:next]) > maxWidth {
			break
		}
		cut = next
	}
	return word[:cut], word[cut:]
}
