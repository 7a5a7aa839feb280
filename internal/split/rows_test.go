package split

import (
	"testing"
	"time"

	"github.com/tuisplit/tuisplit/internal/run"
	"github.com/tuisplit/tuisplit/internal/timing"
)

type manualClock struct {
	t time.Time
}

func (c *manualClock) now() time.Time {
	return c.t
}

func (c *manualClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func testRowConfig() RowConfig {
	splitSpec := timing.DefaultFormatSpec()
	segSpec := timing.DefaultFormatSpec()
	return RowConfig{
		Split:       &splitSpec,
		Segment:     &segSpec,
		SplitFormat: SplitFormatDiff,
	}
}

func newComparisonTimer(t *testing.T) (*run.Timer, *manualClock) {
	t.Helper()
	segs := []run.Segment{
		run.NewSegment("Forest"),
		run.NewSegment("Caves"),
		run.NewSegment("Boss"),
	}
	// Cumulative PB: 30s, 70s, 100s; golds: 28s, 35s, 29s.
	segs[0].SetComparison(run.ComparisonPersonalBest, run.RealOnly(timing.Span(30_000)))
	segs[1].SetComparison(run.ComparisonPersonalBest, run.RealOnly(timing.Span(70_000)))
	segs[2].SetComparison(run.ComparisonPersonalBest, run.RealOnly(timing.Span(100_000)))
	segs[0].BestSegment = run.RealOnly(timing.Span(28_000))
	segs[1].BestSegment = run.RealOnly(timing.Span(35_000))
	segs[2].BestSegment = run.RealOnly(timing.Span(29_000))

	r := &run.Run{Game: "Test Game", Category: "Any%", Segments: segs}
	timer := run.NewTimer(r)
	clock := &manualClock{t: time.Unix(5000, 0)}
	timer.SetClock(clock.now)
	return timer, clock
}

func TestBuildRowsIdleShowsComparisons(t *testing.T) {
	timer, _ := newComparisonTimer(t)
	rows := BuildRows(timer, testRowConfig())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Value != "30.00" {
		t.Fatalf("expected comparison 30.00, got %q", rows[0].Value)
	}
	if rows[1].Value != "1:10.00" {
		t.Fatalf("expected comparison 1:10.00, got %q", rows[1].Value)
	}
	for _, row := range rows {
		if row.Class != None || row.Current {
			t.Fatalf("idle rows must be unclassified, got %+v", row)
		}
	}
}

func TestBuildRowsCurrentSegmentHoldsComparisonWhileAhead(t *testing.T) {
	timer, clock := newComparisonTimer(t)
	timer.Start()
	clock.advance(10 * time.Second)

	rows := BuildRows(timer, testRowConfig())
	if !rows[0].Current {
		t.Fatalf("expected first row marked current")
	}
	// Ahead of pace and under gold: keep showing the comparison.
	if rows[0].Value != "30.00" || rows[0].Class != None {
		t.Fatalf("expected quiet comparison label, got %+v", rows[0])
	}
}

func TestBuildRowsCurrentSegmentShowsDiffPastGold(t *testing.T) {
	timer, clock := newComparisonTimer(t)
	timer.Start()
	// 29s elapsed: still ahead of the 30s comparison but past the
	// 28s gold pace, so the label flips to the live diff.
	clock.advance(29 * time.Second)

	rows := BuildRows(timer, testRowConfig())
	if rows[0].Value != "-1.00" {
		t.Fatalf("expected -1.00, got %q", rows[0].Value)
	}
	if rows[0].Class != AheadGaining {
		t.Fatalf("expected ahead-gaining, got %v", rows[0].Class)
	}
}

func TestBuildRowsCurrentSegmentBehind(t *testing.T) {
	timer, clock := newComparisonTimer(t)
	timer.Start()
	clock.advance(31 * time.Second)

	rows := BuildRows(timer, testRowConfig())
	if rows[0].Value != "+1.00" {
		t.Fatalf("expected +1.00, got %q", rows[0].Value)
	}
	if rows[0].Class != BehindLosing {
		t.Fatalf("expected behind-losing, got %v", rows[0].Class)
	}
}

func TestBuildRowsFinishedSegments(t *testing.T) {
	timer, clock := newComparisonTimer(t)
	timer.Start()
	clock.advance(29 * time.Second)
	timer.Split() // 29s: ahead of 30s PB, but over the 28s gold.

	rows := BuildRows(timer, testRowConfig())
	if rows[0].Value != "-1.00" {
		t.Fatalf("expected -1.00, got %q", rows[0].Value)
	}
	if rows[0].Class != AheadGaining {
		t.Fatalf("expected ahead-gaining, got %v", rows[0].Class)
	}
	if !rows[1].Current {
		t.Fatalf("expected second row current")
	}

	clock.advance(34 * time.Second)
	timer.Split() // 63s cumulative, segment 34s: a new gold (under 35s).
	rows = BuildRows(timer, testRowConfig())
	if rows[1].Class != Gold {
		t.Fatalf("expected gold, got %v", rows[1].Class)
	}
	if rows[1].Value != "-7.00" {
		t.Fatalf("expected -7.00, got %q", rows[1].Value)
	}
}

func TestBuildRowsSplitFormatTime(t *testing.T) {
	timer, clock := newComparisonTimer(t)
	timer.Start()
	clock.advance(29 * time.Second)
	timer.Split()

	cfg := testRowConfig()
	cfg.SplitFormat = SplitFormatTime
	rows := BuildRows(timer, cfg)
	if rows[0].Value != "29.00" {
		t.Fatalf("expected absolute split time 29.00, got %q", rows[0].Value)
	}
	// Classification is independent of the label format.
	if rows[0].Class != AheadGaining {
		t.Fatalf("expected ahead-gaining, got %v", rows[0].Class)
	}
}

func TestBuildRowsSkippedSegment(t *testing.T) {
	timer, clock := newComparisonTimer(t)
	timer.Start()
	clock.advance(10 * time.Second)
	timer.SkipSplit()

	rows := BuildRows(timer, testRowConfig())
	if rows[0].Value != timing.NoTime {
		t.Fatalf("expected %q for skipped segment, got %q", timing.NoTime, rows[0].Value)
	}
	if rows[0].Class != None {
		t.Fatalf("expected no classification for skipped segment, got %v", rows[0].Class)
	}
}

func TestBuildRowsFirstEverRun(t *testing.T) {
	// No comparisons and no golds recorded anywhere.
	segs := []run.Segment{run.NewSegment("Only")}
	r := &run.Run{Game: "g", Category: "c", Segments: segs}
	timer := run.NewTimer(r)
	clock := &manualClock{t: time.Unix(0, 0)}
	timer.SetClock(clock.now)

	timer.Start()
	clock.advance(12 * time.Second)
	timer.Split()

	rows := BuildRows(timer, testRowConfig())
	if rows[0].Class != Gold {
		t.Fatalf("expected automatic gold on first recorded segment, got %v", rows[0].Class)
	}
}
