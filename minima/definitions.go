// Package minima decides whether TAF and METAR conditions fall below a
// ceiling/visibility minimum, either at a single instant or line by line.
//
// Everything in this package is a pure function of its inputs. Nothing is
// cached, logged or retained between calls.
package minima

import (
	"math"
	"regexp"
	"time"
)

// Kind identifies the change group that introduced a segment
type Kind string

const (
	KindInitial Kind = "INITIAL"
	KindFM      Kind = "FM"
	KindBECMG   Kind = "BECMG"
	KindTEMPO   Kind = "TEMPO"
	KindPROB    Kind = "PROB"
)

// Excursion reports whether the kind is a temporary or probable deviation
// from the governing forecast rather than a base condition.
func (k Kind) Excursion() bool {
	return k == KindTEMPO || k == KindPROB
}

// MinProbability is the lowest PROB percentage kept during segmentation.
const MinProbability = 30

// Unlimited marks a ceiling or visibility that was not reported.
var Unlimited = math.Inf(1)

// Commonly used regular expressions
var (
	// Validity window anywhere in the text, e.g. "0106/0212"
	windowRegex  = regexp.MustCompile(`\b(\d{2})(\d{2})/(\d{2})(\d{2})\b`)
	periodRegex  = regexp.MustCompile(`^(\d{2})(\d{2})/(\d{2})(\d{2})$`)
	fmRegex      = regexp.MustCompile(`^FM(\d{2})(\d{2})(\d{2})$`)
	fmLooseRegex = regexp.MustCompile(`^FM\d+$`)
	probRegex    = regexp.MustCompile(`^PROB(\d{2})$`)

	ceilingRegex = regexp.MustCompile(`\b(BKN|OVC|VV)(\d{3})`)
	// [P|M] [whole ]n[/d]SM: P6SM, 10SM, 1/2SM, 1 1/2SM, M1/4SM
	visibilityRegex = regexp.MustCompile(`\b([PM])?(?:(?:(\d{1,2}) )?(\d{1,2})/(\d{1,2})|(\d{1,2}))SM\b`)
)

// Condition is the ceiling and visibility extracted from one line of text
type Condition struct {
	CeilingFeet     float64 // Unlimited when no BKN/OVC/VV layer was found
	VisibilityMiles float64 // Unlimited when no statute-mile group was found

	// VisibilityAtLeast is set by a "P" prefix (P6SM): the true visibility
	// exceeds VisibilityMiles.
	VisibilityAtLeast bool
	// VisibilityLessThan is set by an "M" prefix (M1/4SM).
	VisibilityLessThan bool
}

// Minima are the ceiling and visibility thresholds for one query
type Minima struct {
	CeilingFeet     float64
	VisibilityMiles float64
}

// Segment is one dated validity period of a TAF
type Segment struct {
	Kind  Kind
	Start time.Time
	// End is nil for an FM group with no following FM group and no
	// validity window to fall back on.
	End *time.Time
	// EndInclusive is set when End is the end of the validity window, so
	// the segment still governs at that exact instant.
	EndInclusive bool
	Probability  int    // For PROB segments, the probability value (30, 40)
	Condition    string // Condition text without the marker and period groups
	Line         int    // Physical line the segment was introduced on
}

// Window is the overall validity period of a TAF
type Window struct {
	Start time.Time
	End   time.Time
}

// Resolution is the segment governing a single instant. Index is -1 when no
// segment applies.
type Resolution struct {
	Index     int
	Kind      Kind
	Condition string
	Line      int
}

// Found reports whether a governing segment was located
func (r Resolution) Found() bool {
	return r.Index >= 0
}

// Result is the outcome of an at-instant minima check
type Result struct {
	Below     bool
	Condition string // Empty when Index is -1
	Kind      Kind
	Index     int // Segment index, -1 when indeterminate
	Line      int // Physical line of the governing segment, -1 when indeterminate
	Segments  []Segment
}

// Indeterminate reports whether no condition applied at the instant
func (r Result) Indeterminate() bool {
	return r.Index < 0
}

// LineResult flags one physical line of a report
type LineResult struct {
	Line  string
	Below bool
}
