package timing

import (
	"fmt"
	"strconv"
	"strings"
)

// NoTime is the canonical rendering for "no duration available".
const NoTime = "--"

// Format renders the magnitude of span against a pattern.
//
// Supported tokens:
//   - h               -> hours (0+)
//   - m               -> minutes (0-59)
//   - s               -> seconds (0-59)
//   - d / dd / ddd... -> fractional seconds. Truncated, not rounded.
//
// Any other character is a literal (e.g. ":" or "."). Leading
// zero-valued hours/minutes are suppressed entirely; seconds always
// render. Literals are dropped while nothing precedes them, so a
// pattern never yields a leading separator. The sign is the caller's
// concern; see FormatSigned.
func Format(span Span, pattern string) string {
	absMS := span.Abs().Millis()

	hours := absMS / MillisPerHour
	minutes := (absMS / MillisPerMinute) % 60
	seconds := (absMS / MillisPerSecond) % 60
	millis := absMS % MillisPerSecond

	var out strings.Builder
	for i := 0; i < len(pattern); {
		ch := pattern[i]
		run := 1
		for i+run < len(pattern) && pattern[i+run] == ch {
			run++
		}
		i += run

		switch ch {
		case 'h':
			appendNumber(&out, hours, false)
		case 'm':
			appendNumber(&out, minutes, false)
		case 's':
			appendNumber(&out, seconds, true)
		case 'd':
			appendFraction(&out, millis, run)
		default:
			if out.Len() > 0 {
				for j := 0; j < run; j++ {
					out.WriteByte(ch)
				}
			}
		}
	}
	return out.String()
}

// FormatSigned renders span like Format and prefixes "-" when it is
// negative.
func FormatSigned(span Span, pattern string) string {
	out := Format(span, pattern)
	if span < 0 {
		return "-" + out
	}
	return out
}

// FormatOpt renders an optional span, substituting the NoTime sentinel
// for nil.
func FormatOpt(span *Span, pattern string) string {
	if span == nil {
		return NoTime
	}
	return Format(*span, pattern)
}

// appendNumber writes a field value. Leading zero-valued fields are
// skipped unless alwaysShow (seconds). The first emitted field keeps
// its natural width; fields after it are zero-padded to two digits.
func appendNumber(out *strings.Builder, value int64, alwaysShow bool) {
	if value <= 0 && out.Len() == 0 && !alwaysShow {
		return
	}
	if out.Len() == 0 {
		out.WriteString(strconv.FormatInt(value, 10))
		return
	}
	fmt.Fprintf(out, "%02d", value)
}

// appendFraction writes the fractional part: the millis remainder is
// zero-padded to three digits, then truncated to width or extended
// with zeros. Never rounds.
func appendFraction(out *strings.Builder, millis int64, width int) {
	base := fmt.Sprintf("%03d", millis)
	if width <= 3 {
		out.WriteString(base[:width])
		return
	}
	out.WriteString(base)
	out.WriteString(strings.Repeat("0", width-3))
}
