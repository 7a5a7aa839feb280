package timing

import "strings"

// FormatSpec holds the display flags that resolve to a pattern string.
// The zero value hides everything and falls back to a bare seconds
// readout; DefaultFormatSpec gives the usual "h:m:s.dd" configuration.
type FormatSpec struct {
	ShowHours     bool `toml:"show-hours"`
	ShowMinutes   bool `toml:"show-minutes"`
	ShowSeconds   bool `toml:"show-seconds"`
	ShowDecimals  bool `toml:"show-decimals"`
	DecimalPlaces int  `toml:"decimal-places"`
	Dynamic       bool `toml:"dynamic"`

	cached string
}

// DefaultFormatSpec returns the default display configuration,
// resolving to "h:m:s.dd".
func DefaultFormatSpec() FormatSpec {
	return FormatSpec{
		ShowHours:     true,
		ShowMinutes:   true,
		ShowSeconds:   true,
		ShowDecimals:  true,
		DecimalPlaces: 2,
	}
}

// magnitudeBucket classifies the magnitude of a duration for dynamic
// pattern resolution.
type magnitudeBucket int

const (
	bucketUnknown magnitudeBucket = iota
	bucketUnderMinute
	bucketUnderHour
	bucketHourPlus
)

func bucketFor(total Span) magnitudeBucket {
	ms := total.Abs().Millis()
	switch {
	case ms < MillisPerMinute:
		return bucketUnderMinute
	case ms < MillisPerHour:
		return bucketUnderHour
	default:
		return bucketHourPlus
	}
}

// visibleFields is the resolved per-field visibility for one pattern
// computation.
type visibleFields struct {
	hours    bool
	minutes  bool
	seconds  bool
	decimals bool
}

// visible resolves field visibility from the configured flags and a
// magnitude bucket. bucketUnknown leaves the static flags unmodified.
func (f *FormatSpec) visible(b magnitudeBucket) visibleFields {
	v := visibleFields{
		hours:    f.ShowHours,
		minutes:  f.ShowMinutes,
		seconds:  f.ShowSeconds,
		decimals: f.ShowDecimals,
	}
	switch b {
	case bucketUnderMinute:
		v.hours = false
		v.minutes = false
	case bucketUnderHour:
		v.hours = false
		if f.ShowMinutes && f.ShowSeconds {
			v.decimals = false
		}
	case bucketHourPlus:
		// Minutes already carry enough precision; decimals would
		// only add clutter.
		if f.ShowMinutes && f.ShowSeconds {
			v.decimals = false
		}
	}
	return v
}

// Pattern returns the pattern for the configured flags, ignoring any
// duration magnitude. The result is memoized on first use; the pointer
// receiver makes the exclusive-access requirement explicit.
func (f *FormatSpec) Pattern() string {
	if f.Dynamic || f.cached == "" {
		f.cached = f.buildPattern(f.visible(bucketUnknown))
	}
	return f.cached
}

// PatternFor returns the pattern adapted to the magnitude of total when
// Dynamic is set. Non-dynamic specs behave exactly like Pattern.
// Dynamic specs recompute on every call; the cache is not trusted
// across magnitude buckets.
func (f *FormatSpec) PatternFor(total Span) string {
	if !f.Dynamic {
		return f.Pattern()
	}
	f.cached = f.buildPattern(f.visible(bucketFor(total)))
	return f.cached
}

// buildPattern assembles the pattern in fixed field order: hours,
// minutes, seconds, decimals, with separators only after an existing
// field.
func (f *FormatSpec) buildPattern(v visibleFields) string {
	var b strings.Builder
	sep := func(c byte) {
		if b.Len() > 0 {
			b.WriteByte(c)
		}
	}
	if v.hours {
		b.WriteByte('h')
	}
	if v.minutes {
		sep(':')
		b.WriteByte('m')
	}
	if v.seconds {
		sep(':')
		b.WriteByte('s')
	}
	if v.decimals && f.DecimalPlaces > 0 {
		b.WriteByte('.')
		for i := 0; i < f.DecimalPlaces; i++ {
			b.WriteByte('d')
		}
	}
	if b.Len() > 0 {
		return b.String()
	}
	// A readout must always show at least seconds.
	if f.ShowSeconds && f.ShowDecimals && f.DecimalPlaces > 0 {
		return "s." + strings.Repeat("d", f.DecimalPlaces)
	}
	return "s"
}
