// Package run models runs, segments, and the attempt timer.
package run

import "github.com/tuisplit/tuisplit/internal/timing"

// ComparisonPersonalBest is the default comparison name.
const ComparisonPersonalBest = "Personal Best"

// TimingMethod selects which clock feeds comparisons and display.
type TimingMethod int

const (
	// RealTime measures wall-clock time.
	RealTime TimingMethod = iota
	// GameTime measures in-game time, when the run provides it.
	GameTime
)

// ParseTimingMethod maps a config string to a TimingMethod. Unknown
// values fall back to real time.
func ParseTimingMethod(s string) TimingMethod {
	if s == "game-time" {
		return GameTime
	}
	return RealTime
}

// Time is a pair of optional spans, one per timing method.
type Time struct {
	RealTime *timing.Span
	GameTime *timing.Span
}

// For returns the span for the given timing method.
func (t Time) For(method TimingMethod) *timing.Span {
	if method == GameTime {
		return t.GameTime
	}
	return t.RealTime
}

// RealOnly builds a Time carrying only a real-time span.
func RealOnly(span timing.Span) Time {
	return Time{RealTime: span.Ptr()}
}

// Segment is one timed section of a run.
type Segment struct {
	Name string

	// comparisons maps a comparison name to the cumulative split time
	// recorded by that comparison run.
	comparisons map[string]Time

	// BestSegment is the fastest recorded duration for this segment
	// across all attempts (the gold).
	BestSegment Time

	// SplitTime is the cumulative time at which this segment ended in
	// the live attempt; zero Time until the segment is split.
	SplitTime Time
}

// NewSegment constructs a named segment with no recorded times.
func NewSegment(name string) Segment {
	return Segment{Name: name, comparisons: map[string]Time{}}
}

// Comparison returns the recorded time for a comparison name. Missing
// comparisons yield a zero Time.
func (s *Segment) Comparison(name string) Time {
	return s.comparisons[name]
}

// SetComparison records a comparison time under a name.
func (s *Segment) SetComparison(name string, t Time) {
	if s.comparisons == nil {
		s.comparisons = map[string]Time{}
	}
	s.comparisons[name] = t
}

// Run is an ordered list of segments with its metadata.
type Run struct {
	Game     string
	Category string

	// Offset shifts the attempt clock start; negative offsets make
	// the timer count up from below zero.
	Offset timing.Span

	AttemptCount int
	Segments     []Segment
}

// ClearSplits drops live attempt split times from every segment.
func (r *Run) ClearSplits() {
	for i := range r.Segments {
		r.Segments[i].SplitTime = Time{}
	}
}
