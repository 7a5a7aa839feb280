package split

import (
	"testing"

	"github.com/tuisplit/tuisplit/internal/timing"
)

func TestClassifyGold(t *testing.T) {
	// No recorded best: any finished segment is an automatic gold.
	if got := Classify(10_000, 50_000, 40_000, 0, false); got != Gold {
		t.Fatalf("expected gold for first recorded segment, got %v", got)
	}
	// Faster than the recorded best.
	if got := Classify(10_000, 7_000, -3_000, 8_000, false); got != Gold {
		t.Fatalf("expected gold under best segment, got %v", got)
	}
	// Golds are never awarded while the segment is in progress.
	if got := Classify(10_000, 7_000, -3_000, 8_000, true); got != AheadGaining {
		t.Fatalf("expected ahead-gaining while running, got %v", got)
	}
}

func TestClassifyAheadBehind(t *testing.T) {
	tests := []struct {
		name       string
		comparison timing.Span
		splitDur   timing.Span
		diff       timing.Span
		gold       timing.Span
		running    bool
		want       Classification
	}{
		{"ahead and gaining", 10_000, 9_000, -1_000, 8_000, false, AheadGaining},
		{"ahead but losing", 10_000, 11_000, -500, 8_000, false, AheadLosing},
		{"behind but gaining", 10_000, 9_500, 500, 8_000, false, BehindGaining},
		{"behind and losing", 10_000, 11_000, 500, 8_000, false, BehindLosing},
		{"exactly on pace", 10_000, 10_000, 0, 8_000, false, None},
		{"running ahead gaining", 10_000, 9_000, -1_000, 8_000, true, AheadGaining},
		{"running behind losing", 10_000, 11_000, 2_000, 8_000, true, BehindLosing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.comparison, tt.splitDur, tt.diff, tt.gold, tt.running)
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestClassifyMissingComparison(t *testing.T) {
	// Callers substitute zero for a missing comparison, so diff equals
	// the split duration and the segment reads as behind-losing.
	if got := Classify(0, 11_000, 11_000, 8_000, false); got != BehindLosing {
		t.Fatalf("expected behind-losing, got %v", got)
	}
}

func TestClassificationString(t *testing.T) {
	tags := map[Classification]string{
		None:          "none",
		Gold:          "gold",
		AheadGaining:  "ahead-gaining",
		AheadLosing:   "ahead-losing",
		BehindGaining: "behind-gaining",
		BehindLosing:  "behind-losing",
	}
	for c, want := range tags {
		if got := c.String(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
