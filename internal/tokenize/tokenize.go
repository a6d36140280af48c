// Package tokenize splits raw text into display units.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/verte-zerg/speedread/internal/model"
)

// Tokenize returns one unit per whitespace-delimited word. Punctuation stays
// attached to its word and whitespace runs collapse. Empty input yields nil.
func Tokenize(text string) []model.Unit {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	units := make([]model.Unit, len(fields))
	for i, f := range fields {
		units[i] = model.Unit{Text: f}
	}
	return units
}

// Count returns the number of units Tokenize would produce.
func Count(text string) int {
	n := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
		}
	}
	return n
}

// Join rebuilds text from units separated by single spaces.
func Join(units []model.Unit) string {
	var b strings.Builder
	for i, u := range units {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(u.Text)
	}
	return b.String()
}
