package run

import (
	"testing"
	"time"

	"github.com/tuisplit/tuisplit/internal/timing"
)

// fakeClock advances manually so attempt durations are deterministic.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestTimer(names ...string) (*Timer, *fakeClock) {
	segs := make([]Segment, 0, len(names))
	for _, n := range names {
		segs = append(segs, NewSegment(n))
	}
	r := &Run{Game: "Test Game", Category: "Any%", Segments: segs}
	timer := NewTimer(r)
	clock := &fakeClock{t: time.Unix(1000, 0)}
	timer.SetClock(clock.now)
	return timer, clock
}

func TestTimerSplitFlow(t *testing.T) {
	timer, clock := newTestTimer("One", "Two", "Three")
	if timer.Phase() != NotRunning {
		t.Fatalf("expected NotRunning, got %v", timer.Phase())
	}

	timer.Start()
	if timer.Phase() != Running || timer.CurrentSplitIndex() != 0 {
		t.Fatalf("expected running at index 0, got phase %v index %d", timer.Phase(), timer.CurrentSplitIndex())
	}
	if timer.Run().AttemptCount != 1 {
		t.Fatalf("expected attempt count 1, got %d", timer.Run().AttemptCount)
	}

	clock.advance(10 * time.Second)
	timer.Split()
	first := timer.Run().Segments[0].SplitTime.RealTime
	if first == nil || *first != timing.Span(10_000) {
		t.Fatalf("expected first split at 10000ms, got %v", first)
	}

	clock.advance(5 * time.Second)
	timer.Split()
	clock.advance(5 * time.Second)
	timer.Split()
	if timer.Phase() != Ended {
		t.Fatalf("expected Ended after final split, got %v", timer.Phase())
	}
	if got := timer.CurrentAttemptDuration(); got != timing.Span(20_000) {
		t.Fatalf("expected final duration 20000ms, got %d", got)
	}
}

func TestTimerOffset(t *testing.T) {
	timer, clock := newTestTimer("One")
	timer.Run().Offset = timing.Span(-2_000)

	timer.Start()
	if got := timer.CurrentAttemptDuration(); got != timing.Span(-2_000) {
		t.Fatalf("expected -2000ms at start, got %d", got)
	}

	// Splits are refused while the clock is below zero.
	clock.advance(time.Second)
	timer.Split()
	if timer.Phase() != Running {
		t.Fatalf("expected split below zero to be ignored")
	}

	clock.advance(4 * time.Second)
	timer.Split()
	split := timer.Run().Segments[0].SplitTime.RealTime
	if split == nil || *split != timing.Span(3_000) {
		t.Fatalf("expected split at 3000ms, got %v", split)
	}
}

func TestTimerPauseDeductsTime(t *testing.T) {
	timer, clock := newTestTimer("One")
	timer.Start()
	clock.advance(5 * time.Second)

	timer.TogglePause()
	if timer.Phase() != Paused {
		t.Fatalf("expected Paused, got %v", timer.Phase())
	}
	clock.advance(30 * time.Second)
	if got := timer.CurrentAttemptDuration(); got != timing.Span(5_000) {
		t.Fatalf("expected clock frozen at 5000ms, got %d", got)
	}

	timer.TogglePause()
	clock.advance(2 * time.Second)
	if got := timer.CurrentAttemptDuration(); got != timing.Span(7_000) {
		t.Fatalf("expected 7000ms after resume, got %d", got)
	}
}

func TestTimerUndoAndSkip(t *testing.T) {
	timer, clock := newTestTimer("One", "Two", "Three")
	timer.Start()
	clock.advance(time.Second)
	timer.Split()

	timer.UndoSplit()
	if timer.CurrentSplitIndex() != 0 {
		t.Fatalf("expected index back at 0, got %d", timer.CurrentSplitIndex())
	}
	if timer.Run().Segments[0].SplitTime.RealTime != nil {
		t.Fatalf("expected first split discarded")
	}

	timer.SkipSplit()
	if timer.CurrentSplitIndex() != 1 {
		t.Fatalf("expected skip to advance to 1, got %d", timer.CurrentSplitIndex())
	}
	if timer.Run().Segments[0].SplitTime.RealTime != nil {
		t.Fatalf("expected skipped segment to keep no time")
	}

	// The final segment cannot be skipped.
	timer.SkipSplit()
	timer.SkipSplit()
	if timer.CurrentSplitIndex() != 2 {
		t.Fatalf("expected index pinned at last segment, got %d", timer.CurrentSplitIndex())
	}
}

func TestTimerUndoFromEnded(t *testing.T) {
	timer, clock := newTestTimer("One")
	timer.Start()
	clock.advance(time.Second)
	timer.Split()
	if timer.Phase() != Ended {
		t.Fatalf("expected Ended, got %v", timer.Phase())
	}

	timer.UndoSplit()
	if timer.Phase() != Running || timer.CurrentSplitIndex() != 0 {
		t.Fatalf("expected running at final segment, got phase %v index %d", timer.Phase(), timer.CurrentSplitIndex())
	}
}

func TestTimerResetKeepsSplitsUntilStart(t *testing.T) {
	timer, clock := newTestTimer("One", "Two")
	timer.Start()
	clock.advance(time.Second)
	timer.Split()
	timer.Reset()

	if timer.Phase() != NotRunning {
		t.Fatalf("expected NotRunning after reset, got %v", timer.Phase())
	}
	if timer.Run().Segments[0].SplitTime.RealTime == nil {
		t.Fatalf("expected split times kept for persistence until next start")
	}

	timer.Start()
	if timer.Run().Segments[0].SplitTime.RealTime != nil {
		t.Fatalf("expected splits cleared on start")
	}
}

func TestTimerGameTime(t *testing.T) {
	timer, clock := newTestTimer("One")
	timer.SetCurrentTimingMethod(GameTime)
	timer.Start()
	clock.advance(10 * time.Second)
	timer.SetGameTime(timing.Span(8_500))
	if got := timer.CurrentAttemptDuration(); got != timing.Span(8_500) {
		t.Fatalf("expected game time 8500ms, got %d", got)
	}
}

func TestSegmentComparisons(t *testing.T) {
	seg := NewSegment("One")
	if got := seg.Comparison(ComparisonPersonalBest); got.RealTime != nil {
		t.Fatalf("expected zero Time for missing comparison")
	}
	seg.SetComparison(ComparisonPersonalBest, RealOnly(timing.Span(10_000)))
	got := seg.Comparison(ComparisonPersonalBest).For(RealTime)
	if got == nil || *got != timing.Span(10_000) {
		t.Fatalf("expected 10000ms comparison, got %v", got)
	}
}
