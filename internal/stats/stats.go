// Package stats contains attempt statistics calculations and
// reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/tuisplit/tuisplit/internal/store"
	"github.com/tuisplit/tuisplit/internal/timing"
)

const sparkChars = " .:-=+*#%@"

const summaryPattern = "h:m:s.dd"

// SumOfBest sums the recorded golds. It is the theoretical floor for
// a completed run; zero when no golds exist yet.
func SumOfBest(golds map[int]int64) timing.Span {
	var total int64
	for _, ms := range golds {
		total += ms
	}
	return timing.Span(total)
}

// CompletionRate returns the fraction of attempts that finished.
func CompletionRate(attempts []store.Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	completed := 0
	for _, a := range attempts {
		if a.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(attempts))
}

// BestTime returns the fastest completed attempt duration, or nil.
func BestTime(attempts []store.Attempt) *timing.Span {
	var best *timing.Span
	for _, a := range attempts {
		if !a.Completed {
			continue
		}
		span := timing.Span(a.DurationMs)
		if best == nil || span < *best {
			s := span
			best = &s
		}
	}
	return best
}

// DurationSeries extracts completed attempt durations in order, in
// seconds, for plotting.
func DurationSeries(attempts []store.Attempt) []float64 {
	var out []float64
	for _, a := range attempts {
		if a.Completed {
			out = append(out, float64(a.DurationMs)/1000.0)
		}
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values,
// downsampled to at most width columns when width is positive.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	if width > 0 && len(values) > width {
		values = downsample(values, width)
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func downsample(values []float64, width int) []float64 {
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		lo := i * len(values) / width
		hi := (i + 1) * len(values) / width
		if hi <= lo {
			hi = lo + 1
		}
		var sum float64
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

// RenderSummary prints an attempt summary for a run.
func RenderSummary(w io.Writer, attempts []store.Attempt, golds map[int]int64, width int) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts recorded.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Attempts: %d\n", len(attempts)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Completed: %.0f%%\n", CompletionRate(attempts)*100); err != nil {
		return err
	}
	if best := BestTime(attempts); best != nil {
		if _, err := fmt.Fprintf(w, "Personal Best: %s\n", timing.Format(*best, summaryPattern)); err != nil {
			return err
		}
	}
	if sob := SumOfBest(golds); sob > 0 {
		if _, err := fmt.Fprintf(w, "Sum of Best: %s\n", timing.Format(sob, summaryPattern)); err != nil {
			return err
		}
	}
	if series := DurationSeries(attempts); len(series) > 1 {
		if _, err := fmt.Fprintf(w, "Trend: %s\n", Sparkline(series, width)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
