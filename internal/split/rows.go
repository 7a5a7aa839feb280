package split

import (
	"github.com/tuisplit/tuisplit/internal/run"
	"github.com/tuisplit/tuisplit/internal/timing"
)

// Split label layouts selectable via config.
const (
	// SplitFormatTime shows finished splits as absolute times.
	SplitFormatTime = "time"
	// SplitFormatDiff shows finished splits as signed diffs.
	SplitFormatDiff = "diff"
)

// RowConfig carries the display settings the row builder needs.
type RowConfig struct {
	// Split formats absolute split times, Segment formats diffs and
	// segment durations. Both are mutated through their caches, so
	// the caller holds them exclusively for the refresh tick.
	Split   *timing.FormatSpec
	Segment *timing.FormatSpec

	// SplitFormat selects SplitFormatTime or SplitFormatDiff.
	SplitFormat string

	// UseGameTime forces game time regardless of the timer's method.
	UseGameTime bool
}

// Row is one rendered segment line handed to the UI layer.
type Row struct {
	Name    string
	Value   string
	Class   Classification
	Current bool
}

// BuildRows computes the display row for every segment of the run:
// a label, a classification, and the current-segment marker. Called
// once per refresh tick.
func BuildRows(t *run.Timer, cfg RowConfig) []Row {
	segments := t.Run().Segments
	current := t.CurrentSplitIndex()
	method := t.CurrentTimingMethod()
	if cfg.UseGameTime {
		method = run.GameTime
	}

	rows := make([]Row, 0, len(segments))
	for i := range segments {
		seg := &segments[i]
		comparison := spanOrZero(seg.Comparison(t.CurrentComparison()).For(method))
		gold := spanOrZero(seg.BestSegment.For(method))

		// The previous segment's cumulative comparison time and its
		// actual split time anchor this segment's own durations.
		var prevComparison, prevSplit timing.Span
		if i > 0 {
			prev := &segments[i-1]
			prevComparison = spanOrZero(prev.Comparison(t.CurrentComparison()).For(method))
			prevSplit = spanOrZero(prev.SplitTime.For(method))
		}
		// Abs because a mis-ordered comparison can run backwards.
		segComparison := comparison.Sub(prevComparison).Abs()

		row := Row{
			Name:  seg.Name,
			Value: formatOpt(seg.Comparison(t.CurrentComparison()).For(method), cfg.Split),
		}

		switch {
		case i == current:
			row.Current = true
			attempt := t.CurrentAttemptDuration()
			diff := attempt.Sub(comparison)
			running := attempt
			if i > 0 {
				running = attempt.SubClamped(prevSplit)
			}
			// The live label flips from the comparison time to the
			// diff only once time is being lost: behind overall, or
			// past the gold pace for this segment.
			if diff > 0 || (gold != 0 && running >= gold) {
				row.Value = signedDiff(diff, cfg.Segment)
				row.Class = Classify(segComparison, running, diff, gold, true)
			}
		case current > i || t.Phase() == run.Ended:
			splitTime := seg.SplitTime.For(method)
			if splitTime == nil {
				// Skipped segment.
				row.Value = timing.NoTime
				break
			}
			diff := splitTime.Sub(comparison)
			if cfg.SplitFormat == SplitFormatTime {
				row.Value = formatOpt(splitTime, cfg.Split)
			} else {
				row.Value = signedDiff(diff, cfg.Segment)
			}
			segDur := splitTime.SubClamped(prevSplit)
			row.Class = Classify(segComparison, segDur, diff, gold, false)
		}

		rows = append(rows, row)
	}
	return rows
}

// signedDiff renders a diff with its +/-/~ prefix.
func signedDiff(diff timing.Span, spec *timing.FormatSpec) string {
	sign := "~"
	if diff > 0 {
		sign = "+"
	} else if diff < 0 {
		sign = "-"
	}
	return sign + timing.Format(diff.Abs(), spec.PatternFor(diff))
}

func formatOpt(span *timing.Span, spec *timing.FormatSpec) string {
	pattern := spec.Pattern()
	if span != nil {
		pattern = spec.PatternFor(*span)
	}
	return timing.FormatOpt(span, pattern)
}

func spanOrZero(span *timing.Span) timing.Span {
	if span == nil {
		return 0
	}
	return *span
}
