package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// metric is one line of the reading report.
type metric struct {
	label string
	value string
}

// alignMetrics lays metrics out as two columns: labels on the left, values
// right-aligned after them. When the lines would overflow width, labels are
// truncated; values are never cut. A width below 1 disables fitting.
func alignMetrics(metrics []metric, width int) []string {
	labelWidth, valueWidth := 0, 0
	for _, m := range metrics {
		labelWidth = max(labelWidth, displayWidth(m.label))
		valueWidth = max(valueWidth, displayWidth(m.value))
	}
	if width > 0 && labelWidth+1+valueWidth > width {
		labelWidth = max(1, width-1-valueWidth)
	}

	lines := make([]string, 0, len(metrics))
	for _, m := range metrics {
		label := runewidth.Truncate(m.label, labelWidth, "...")
		label = runewidth.FillRight(label, labelWidth)
		value := runewidth.FillLeft(m.value, valueWidth)
		lines = append(lines, label+" "+value)
	}
	return lines
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
