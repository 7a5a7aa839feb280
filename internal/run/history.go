package run

import "github.com/tuisplit/tuisplit/internal/timing"

// Key identifies the run in the attempt store.
func (r *Run) Key() string {
	return r.Game + "/" + r.Category
}

// ApplyHistory merges stored golds and personal-best split times into
// the run. Stored golds lower file-seeded ones; stored PB splits fill
// segments the file left without a comparison.
func (r *Run) ApplyHistory(golds, pbSplits map[int]int64) {
	for i := range r.Segments {
		seg := &r.Segments[i]
		if ms, ok := golds[i]; ok && ms > 0 {
			span := timing.Span(ms)
			if cur := seg.BestSegment.RealTime; cur == nil || span < *cur {
				seg.BestSegment = RealOnly(span)
			}
		}
		if ms, ok := pbSplits[i]; ok && ms > 0 {
			if seg.Comparison(ComparisonPersonalBest).RealTime == nil {
				seg.SetComparison(ComparisonPersonalBest, RealOnly(timing.Span(ms)))
			}
		}
	}
}

// RecordAttempt folds a finished or abandoned attempt's split times
// back into the run: golds for segments run faster than the recorded
// best, and a new personal-best comparison when a completed attempt
// beats the old one. Returns true when anything changed.
func (r *Run) RecordAttempt(completed bool) bool {
	changed := false
	var prev timing.Span
	for i := range r.Segments {
		seg := &r.Segments[i]
		split := seg.SplitTime.RealTime
		if split == nil {
			// Skipped segment: the next duration is unknowable.
			prev = 0
			continue
		}
		if prev > 0 || i == 0 {
			dur := split.SubClamped(prev)
			if dur > 0 {
				if gold := seg.BestSegment.RealTime; gold == nil || dur < *gold {
					seg.BestSegment = RealOnly(dur)
					changed = true
				}
			}
		}
		prev = *split
	}

	if completed && len(r.Segments) > 0 {
		last := &r.Segments[len(r.Segments)-1]
		final := last.SplitTime.RealTime
		oldPB := last.Comparison(ComparisonPersonalBest).RealTime
		if final != nil && (oldPB == nil || *final < *oldPB) {
			for i := range r.Segments {
				seg := &r.Segments[i]
				if split := seg.SplitTime.RealTime; split != nil {
					seg.SetComparison(ComparisonPersonalBest, RealOnly(*split))
				}
			}
			changed = true
		}
	}
	return changed
}
