package stats

import "testing"

func TestAlignMetricsRightAlignsValues(t *testing.T) {
	lines := alignMetrics([]metric{
		{"Final WPM", "263"},
		{"Effective WPM", "251.3"},
	}, 80)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "Final WPM       263" {
		t.Fatalf("unexpected line: %q", lines[0])
	}
	if lines[1] != "Effective WPM 251.3" {
		t.Fatalf("unexpected line: %q", lines[1])
	}
}

func TestAlignMetricsWideRunes(t *testing.T) {
	lines := alignMetrics([]metric{{"日本", "1"}, {"ab", "22"}}, 0)
	if lines[0] != "日本  1" || lines[1] != "ab   22" {
		t.Fatalf("unexpected wide-rune alignment: %q", lines)
	}
}

func TestAlignMetricsTruncatesLabelsToWidth(t *testing.T) {
	lines := alignMetrics([]metric{{"Effective WPM", "251.3"}, {"Pauses", "2"}}, 12)
	for _, line := range lines {
		if w := displayWidth(line); w != 12 {
			t.Fatalf("expected width 12, got %d for %q", w, line)
		}
	}
	if lines[0] != "Eff... 251.3" {
		t.Fatalf("unexpected truncated line: %q", lines[0])
	}
	if lines[1] != "Pauses     2" {
		t.Fatalf("unexpected short line: %q", lines[1])
	}
}
