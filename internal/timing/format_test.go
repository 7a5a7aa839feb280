package timing

import (
	"testing"
	"time"
)

func TestFormatSecondsAndFractions(t *testing.T) {
	span := Span(3_145)
	tests := []struct {
		pattern string
		want    string
	}{
		{"s", "3"},
		{"s.d", "3.1"},
		{"s.dd", "3.14"},
		{"s.ddd", "3.145"},
		{"s.ddddd", "3.14500"},
	}
	for _, tt := range tests {
		if got := Format(span, tt.pattern); got != tt.want {
			t.Fatalf("pattern %q: expected %q, got %q", tt.pattern, tt.want, got)
		}
	}
}

func TestFormatTruncatesNeverRounds(t *testing.T) {
	// 999 ms must not round the seconds field up.
	if got := Format(Span(1_999), "s.d"); got != "1.9" {
		t.Fatalf("expected 1.9, got %q", got)
	}
	if got := Format(Span(1_999), "s.dd"); got != "1.99" {
		t.Fatalf("expected 1.99, got %q", got)
	}
}

func TestFormatMinutesSeconds(t *testing.T) {
	span := Span(125_340)
	if got := Format(span, "m:s"); got != "2:05" {
		t.Fatalf("expected 2:05, got %q", got)
	}
	if got := Format(span, "m:s.dd"); got != "2:05.34" {
		t.Fatalf("expected 2:05.34, got %q", got)
	}
}

func TestFormatHoursMinutesSeconds(t *testing.T) {
	span := Span(3_845_999)
	if got := Format(span, "h:m:s"); got != "1:04:05" {
		t.Fatalf("expected 1:04:05, got %q", got)
	}
	if got := Format(span, "h:m:s.ddd"); got != "1:04:05.999" {
		t.Fatalf("expected 1:04:05.999, got %q", got)
	}
}

func TestFormatSuppressesLeadingZeroFields(t *testing.T) {
	// Zero hours vanish entirely rather than rendering "0:".
	if got := Format(Span(125_340), "h:m:s"); got != "2:05" {
		t.Fatalf("expected 2:05, got %q", got)
	}
	// Zero hours and minutes leave a bare seconds readout.
	if got := Format(Span(7_000), "h:m:s"); got != "7" {
		t.Fatalf("expected 7, got %q", got)
	}
	// Seconds always render, even at zero.
	if got := Format(Span(0), "h:m:s.dd"); got != "0.00" {
		t.Fatalf("expected 0.00, got %q", got)
	}
}

func TestFormatNegativeSpans(t *testing.T) {
	span := Span(-61_230)
	if got := Format(span, "m:s.dd"); got != "1:01.23" {
		t.Fatalf("expected unsigned 1:01.23, got %q", got)
	}
	if got := FormatSigned(span, "m:s.dd"); got != "-1:01.23" {
		t.Fatalf("expected -1:01.23, got %q", got)
	}
	if got := FormatSigned(Span(61_230), "m:s.dd"); got != "1:01.23" {
		t.Fatalf("expected 1:01.23, got %q", got)
	}
}

func TestFormatRunLengthOnlyControlsPresence(t *testing.T) {
	// Repeated h/m/s runs do not change padding.
	if got := Format(Span(3_725_000), "hh:mm:ss"); got != "1:02:05" {
		t.Fatalf("expected 1:02:05, got %q", got)
	}
}

func TestFormatUnknownCharactersAreLiterals(t *testing.T) {
	if got := Format(Span(65_000), "m|s"); got != "1|05" {
		t.Fatalf("expected 1|05, got %q", got)
	}
	// Literals never lead the output.
	if got := Format(Span(5_000), ":s"); got != "5" {
		t.Fatalf("expected 5, got %q", got)
	}
}

func TestFormatOpt(t *testing.T) {
	if got := FormatOpt(nil, "m:s"); got != NoTime {
		t.Fatalf("expected %q, got %q", NoTime, got)
	}
	if got := FormatOpt(Span(10_000).Ptr(), "m:s"); got != "10" {
		t.Fatalf("expected 10, got %q", got)
	}
}

func TestSpanArithmetic(t *testing.T) {
	if got := Span(5_000).SubClamped(Span(8_000)); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := Span(8_000).SubClamped(Span(5_000)); got != 3_000 {
		t.Fatalf("expected 3000, got %d", got)
	}
	if got := Span(5_000).Sub(Span(8_000)); got != -3_000 {
		t.Fatalf("expected -3000, got %d", got)
	}
	if got := FromDuration(1500 * time.Millisecond); got != 1_500 {
		t.Fatalf("expected 1500, got %d", got)
	}
}
