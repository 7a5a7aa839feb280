// Package split classifies segments against their baselines and builds
// the per-segment display rows.
package split

import "github.com/tuisplit/tuisplit/internal/timing"

// Classification tags a segment for the styling layer. Recomputed on
// every refresh; never persisted.
type Classification int

const (
	// None means the segment is exactly on pace, or has no verdict.
	None Classification = iota
	// Gold means a new best segment.
	Gold
	// AheadGaining: ahead of the comparison and gaining time.
	AheadGaining
	// AheadLosing: ahead overall but losing time this segment.
	AheadLosing
	// BehindGaining: behind overall but gaining time this segment.
	BehindGaining
	// BehindLosing: behind the comparison and losing time.
	BehindLosing
)

// String returns the tag vocabulary consumed by the styling layer.
func (c Classification) String() string {
	switch c {
	case Gold:
		return "gold"
	case AheadGaining:
		return "ahead-gaining"
	case AheadLosing:
		return "ahead-losing"
	case BehindGaining:
		return "behind-gaining"
	case BehindLosing:
		return "behind-losing"
	default:
		return "none"
	}
}

// Classify tags a segment from its baselines.
//
// comparison and splitDur are segment-relative durations (this
// segment's own pace), diff is the cumulative lead or deficit
// (splitDur - comparison at the same point), gold is the best recorded
// duration for the segment, and running marks the segment currently in
// progress (golds are never awarded mid-segment).
//
// A zero gold is treated as "no best recorded yet", so a finished
// segment is automatically a new gold. A legitimately instantaneous
// segment is indistinguishable from missing data here; the store never
// writes zero-length bests, so in practice zero only means absent.
//
// The gaining/losing sub-split separates the cumulative verdict (diff)
// from this segment's own pace (splitDur vs comparison): a runner can
// be ahead overall while losing time within the segment.
func Classify(comparison, splitDur, diff, gold timing.Span, running bool) Classification {
	if !running && (gold == 0 || splitDur < gold) {
		return Gold
	}
	switch {
	case diff < 0:
		if splitDur <= comparison {
			return AheadGaining
		}
		return AheadLosing
	case diff > 0:
		if splitDur <= comparison {
			return BehindGaining
		}
		return BehindLosing
	default:
		return None
	}
}
