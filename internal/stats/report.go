package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/speedread/internal/model"
)

const sparkPrefix = "Rate  "

// Report is the data printed after a session.
type Report struct {
	Status       string
	WordsRead    int
	Total        int
	FinalWPM     int
	EffectiveWPM float64
	Elapsed      time.Duration
	Paused       time.Duration
	Pauses       int
	Rates        []float64
}

// BuildReport derives the report from a session result.
func BuildReport(res model.Result) Report {
	rates := make([]float64, len(res.RateHistory))
	for i, wpm := range res.RateHistory {
		rates[i] = float64(wpm)
	}
	return Report{
		Status:       res.Mode.String(),
		WordsRead:    res.Position,
		Total:        res.Total,
		FinalWPM:     res.FinalWPM,
		EffectiveWPM: EffectiveWPM(res.Position, res.Active()),
		Elapsed:      res.Elapsed(),
		Paused:       res.Paused,
		Pauses:       res.Pauses,
		Rates:        rates,
	}
}

// RenderReport prints the report as aligned metrics followed by a rate
// sparkline fitted to width.
func RenderReport(w io.Writer, r Report, width int) error {
	metrics := []metric{
		{"Status", r.Status},
		{"Words read", fmt.Sprintf("%d / %d", r.WordsRead, r.Total)},
		{"Final WPM", fmt.Sprintf("%d", r.FinalWPM)},
		{"Effective WPM", fmt.Sprintf("%.1f", r.EffectiveWPM)},
		{"Elapsed", formatDuration(r.Elapsed)},
		{"Paused", formatDuration(r.Paused)},
		{"Pauses", fmt.Sprintf("%d", r.Pauses)},
	}
	if _, err := fmt.Fprintln(w, "Reading report"); err != nil {
		return err
	}
	for _, line := range alignMetrics(metrics, width) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(r.Rates) == 0 {
		return nil
	}
	sparkWidth := width - displayWidth(sparkPrefix)
	if sparkWidth < 1 {
		sparkWidth = 1
	}
	lo, hi := minMax(r.Rates)
	line := sparkPrefix + Sparkline(downsample(r.Rates, sparkWidth))
	if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s%.0f-%.0f WPM\n", strings.Repeat(" ", displayWidth(sparkPrefix)), lo, hi)
	return err
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(100 * time.Millisecond).String()
}
