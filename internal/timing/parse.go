package timing

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a span from "[-][h:][m:]s[.frac]" form, the same shapes
// the formatter emits. Fractional digits beyond milliseconds are
// truncated.
func Parse(s string) (Span, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, fmt.Errorf("empty duration")
	}
	negative := strings.HasPrefix(in, "-")
	if negative {
		in = in[1:]
	}

	whole := in
	var frac string
	if dot := strings.IndexByte(in, '.'); dot >= 0 {
		whole, frac = in[:dot], in[dot+1:]
	}

	parts := strings.Split(whole, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	var ms int64
	for _, part := range parts {
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		ms = ms*60 + v
	}
	ms *= MillisPerSecond

	if frac != "" {
		padded := (frac + "000")[:3]
		v, err := strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		ms += v
	}

	if negative {
		ms = -ms
	}
	return Span(ms), nil
}
