package run

import (
	"time"

	"github.com/tuisplit/tuisplit/internal/timing"
)

// Phase is the lifecycle state of an attempt.
type Phase int

const (
	// NotRunning means no attempt is in progress.
	NotRunning Phase = iota
	// Running means an attempt is underway.
	Running
	// Paused means the attempt clock is stopped but resumable.
	Paused
	// Ended means the final segment has been split.
	Ended
)

// Timer drives a run attempt. It is not safe for concurrent use; the
// refresh loop and key handlers share one goroutine.
type Timer struct {
	run    *Run
	phase  Phase
	method TimingMethod

	comparison string

	currentSplit int

	startedAt time.Time
	endedAt   time.Time

	pausedAt   time.Time
	pausedTime timing.Span

	gameTime *timing.Span

	now func() time.Time
}

// NewTimer wraps a run in a timer using the default comparison.
func NewTimer(r *Run) *Timer {
	return &Timer{
		run:          r,
		comparison:   ComparisonPersonalBest,
		currentSplit: -1,
		now:          time.Now,
	}
}

// SetClock replaces the timer's time source. Tests install a manual
// clock here.
func (t *Timer) SetClock(now func() time.Time) {
	if now != nil {
		t.now = now
	}
}

// Run exposes the underlying run.
func (t *Timer) Run() *Run {
	return t.run
}

// Phase reports the attempt lifecycle state.
func (t *Timer) Phase() Phase {
	return t.phase
}

// CurrentComparison returns the active comparison name.
func (t *Timer) CurrentComparison() string {
	return t.comparison
}

// SetCurrentComparison switches the active comparison.
func (t *Timer) SetCurrentComparison(name string) {
	if name != "" {
		t.comparison = name
	}
}

// CurrentTimingMethod returns the active timing method.
func (t *Timer) CurrentTimingMethod() TimingMethod {
	return t.method
}

// SetCurrentTimingMethod switches the active timing method.
func (t *Timer) SetCurrentTimingMethod(m TimingMethod) {
	t.method = m
}

// SetGameTime records the current in-game time for the attempt.
func (t *Timer) SetGameTime(span timing.Span) {
	t.gameTime = span.Ptr()
}

// CurrentSplitIndex returns the index of the segment in progress, or
// -1 when no attempt is running.
func (t *Timer) CurrentSplitIndex() int {
	return t.currentSplit
}

// CurrentSegment returns the segment in progress, or nil.
func (t *Timer) CurrentSegment() *Segment {
	if t.currentSplit < 0 || t.currentSplit >= len(t.run.Segments) {
		return nil
	}
	return &t.run.Segments[t.currentSplit]
}

// Start begins a new attempt. No-op unless the timer is idle.
func (t *Timer) Start() {
	if t.phase != NotRunning {
		return
	}
	t.run.ClearSplits()
	t.run.AttemptCount++
	t.phase = Running
	t.currentSplit = 0
	t.startedAt = t.now()
	t.endedAt = time.Time{}
	t.pausedAt = time.Time{}
	t.pausedTime = 0
	t.gameTime = nil
}

// Split records the current attempt duration against the segment in
// progress and advances. Splitting the last segment ends the attempt.
func (t *Timer) Split() {
	if t.phase != Running {
		return
	}
	now := t.CurrentAttemptDuration()
	if now < 0 {
		// Still counting up to zero from a negative offset.
		return
	}
	seg := &t.run.Segments[t.currentSplit]
	seg.SplitTime = Time{RealTime: now.Ptr(), GameTime: t.gameTime}
	t.currentSplit++
	if t.currentSplit >= len(t.run.Segments) {
		t.phase = Ended
		t.endedAt = t.now()
		t.currentSplit = -1
	}
}

// UndoSplit steps back to the previous segment, discarding its split.
func (t *Timer) UndoSplit() {
	switch t.phase {
	case Running:
		if t.currentSplit <= 0 {
			return
		}
		t.currentSplit--
	case Ended:
		t.phase = Running
		t.currentSplit = len(t.run.Segments) - 1
		t.endedAt = time.Time{}
	default:
		return
	}
	t.run.Segments[t.currentSplit].SplitTime = Time{}
}

// SkipSplit passes over the current segment without a time. The final
// segment cannot be skipped.
func (t *Timer) SkipSplit() {
	if t.phase != Running || t.currentSplit >= len(t.run.Segments)-1 {
		return
	}
	t.run.Segments[t.currentSplit].SplitTime = Time{}
	t.currentSplit++
}

// TogglePause pauses a running attempt or resumes a paused one.
func (t *Timer) TogglePause() {
	switch t.phase {
	case Running:
		t.phase = Paused
		t.pausedAt = t.now()
	case Paused:
		t.pausedTime += timing.FromDuration(t.now().Sub(t.pausedAt))
		t.pausedAt = time.Time{}
		t.phase = Running
	}
}

// Reset abandons or finalizes the attempt and returns the timer to
// idle. Split times stay on the run until the next Start so callers
// can persist them first.
func (t *Timer) Reset() {
	t.phase = NotRunning
	t.currentSplit = -1
	t.pausedAt = time.Time{}
	t.pausedTime = 0
}

// CurrentAttemptDuration returns the live attempt clock: elapsed time
// plus the run offset, minus accumulated pause time. Game time is
// reported instead when that method is active and available.
func (t *Timer) CurrentAttemptDuration() timing.Span {
	if t.method == GameTime && t.gameTime != nil {
		return *t.gameTime
	}
	switch t.phase {
	case NotRunning:
		return t.run.Offset
	case Paused:
		elapsed := timing.FromDuration(t.pausedAt.Sub(t.startedAt))
		return elapsed + t.run.Offset - t.pausedTime
	case Ended:
		elapsed := timing.FromDuration(t.endedAt.Sub(t.startedAt))
		return elapsed + t.run.Offset - t.pausedTime
	default:
		elapsed := timing.FromDuration(t.now().Sub(t.startedAt))
		return elapsed + t.run.Offset - t.pausedTime
	}
}
