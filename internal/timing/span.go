// Package timing provides millisecond spans, display patterns, and
// pattern-driven duration formatting.
package timing

import "time"

// Millisecond boundaries used for decomposition and magnitude buckets.
const (
	MillisPerSecond int64 = 1_000
	MillisPerMinute int64 = 60_000
	MillisPerHour   int64 = 3_600_000
)

// Span is a signed duration with millisecond precision. Negative spans
// represent time behind a baseline, or elapsed time before zero when a
// run starts with a negative offset.
type Span int64

// FromDuration converts a time.Duration to a Span, truncating to
// milliseconds.
func FromDuration(d time.Duration) Span {
	return Span(d.Milliseconds())
}

// Millis returns the span in milliseconds.
func (s Span) Millis() int64 {
	return int64(s)
}

// Duration converts the span to a time.Duration.
func (s Span) Duration() time.Duration {
	return time.Duration(int64(s)) * time.Millisecond
}

// Abs returns the magnitude of the span.
func (s Span) Abs() Span {
	if s < 0 {
		return -s
	}
	return s
}

// Sub returns the signed difference s - o.
func (s Span) Sub(o Span) Span {
	return s - o
}

// SubClamped returns s - o, saturating at zero. Clock faces never show
// negative values; signed diffs use Sub instead.
func (s Span) SubClamped(o Span) Span {
	if o >= s {
		return 0
	}
	return s - o
}

// Ptr returns a pointer to the span, for optional-span call sites.
func (s Span) Ptr() *Span {
	return &s
}
