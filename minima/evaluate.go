package minima

import (
	"strings"
	"time"
)

// BelowAtInstant checks whether the TAF condition in effect at t is below
// the minima. When no segment applies the result is indeterminate and never
// below.
func BelowAtInstant(raw string, m Minima, t time.Time) Result {
	segments := ParseSegments(raw, t)
	res := Resolve(segments, t)

	result := Result{
		Index:    res.Index,
		Line:     res.Line,
		Segments: segments,
	}
	if !res.Found() {
		return result
	}

	result.Kind = res.Kind
	result.Condition = res.Condition
	result.Below = Extract(res.Condition).Below(m)
	return result
}

// BelowEachLine flags every physical line of a report whose own ceiling or
// visibility groups breach the minima. Validity periods are ignored, so any
// bad patch anywhere in the forecast is flagged.
func BelowEachLine(raw string, m Minima) []LineResult {
	lines := strings.Split(raw, "\n")
	results := make([]LineResult, len(lines))

	for i, line := range lines {
		results[i] = LineResult{
			Line:  line,
			Below: Extract(line).Below(m),
		}
	}

	return results
}

// HighlightAtInstant returns one entry per physical line in which only the
// line that introduced the governing segment is flagged, and only when that
// segment is below the minima.
func HighlightAtInstant(raw string, m Minima, t time.Time) []LineResult {
	check := BelowAtInstant(raw, m, t)
	lines := strings.Split(raw, "\n")
	results := make([]LineResult, len(lines))

	for i, line := range lines {
		results[i] = LineResult{
			Line:  line,
			Below: check.Below && i == check.Line,
		}
	}

	return results
}
