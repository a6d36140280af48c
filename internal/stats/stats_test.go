package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/speedread/internal/model"
)

func TestEffectiveWPM(t *testing.T) {
	if got := EffectiveWPM(300, time.Minute); got != 300 {
		t.Fatalf("expected 300, got %f", got)
	}
	if got := EffectiveWPM(150, 30*time.Second); got != 300 {
		t.Fatalf("expected 300, got %f", got)
	}
	if got := EffectiveWPM(10, 0); got != 0 {
		t.Fatalf("expected 0 for zero duration, got %f", got)
	}
}

func TestSparklineFlatAndRange(t *testing.T) {
	if got := Sparkline([]float64{5, 5, 5}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	got := Sparkline([]float64{1, 10})
	if got[0] != sparkChars[0] || got[1] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestDownsample(t *testing.T) {
	out := downsample([]float64{1, 3, 5, 7}, 2)
	if len(out) != 2 || out[0] != 2 || out[1] != 6 {
		t.Fatalf("unexpected downsample %v", out)
	}
	if got := downsample([]float64{1, 2}, 10); len(got) != 2 {
		t.Fatalf("short series must not be stretched, got %v", got)
	}
}

func TestBuildReport(t *testing.T) {
	start := time.Unix(0, 0)
	res := model.Result{
		Mode:        model.ModeFinished,
		Position:    100,
		Total:       100,
		FinalWPM:    263,
		StartedAt:   start,
		EndedAt:     start.Add(40 * time.Second),
		Paused:      10 * time.Second,
		Pauses:      2,
		RateHistory: []int{258, 263},
	}
	r := BuildReport(res)
	if r.Status != "finished" || r.WordsRead != 100 || r.Pauses != 2 {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.EffectiveWPM != 200 {
		t.Fatalf("expected 200 effective wpm, got %f", r.EffectiveWPM)
	}
	if r.Elapsed != 40*time.Second || len(r.Rates) != 2 {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	r := Report{
		Status:       "quit",
		WordsRead:    12,
		Total:        40,
		FinalWPM:     300,
		EffectiveWPM: 288.5,
		Elapsed:      2500 * time.Millisecond,
		Pauses:       1,
		Rates:        []float64{258, 263, 300},
	}
	if err := RenderReport(&buf, r, 40); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Reading report", "Status", "quit", "12 / 40", "288.5", "2.5s", "Rate", "258-300 WPM"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReportWithoutRates(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, Report{Status: "finished"}, 80); err != nil {
		t.Fatalf("render report: %v", err)
	}
	if strings.Contains(buf.String(), "Rate") {
		t.Fatalf("empty history must not print a sparkline: %s", buf.String())
	}
}
