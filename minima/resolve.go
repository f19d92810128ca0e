package minima

import "time"

// covers reports whether an excursion segment applies at t. Both ends of a
// TEMPO or PROB period are inclusive.
func (s Segment) covers(t time.Time) bool {
	if s.Start.After(t) {
		return false
	}
	return s.End == nil || !t.After(*s.End)
}

// governs reports whether a base segment applies at t. The end is exclusive
// unless it is the end of the validity window.
func (s Segment) governs(t time.Time) bool {
	if s.Start.After(t) {
		return false
	}
	if s.End == nil {
		return true
	}
	if s.EndInclusive {
		return !t.After(*s.End)
	}
	return t.Before(*s.End)
}

// Applies reports whether the segment is in effect at t, using the
// boundary rules of its kind
func (s Segment) Applies(t time.Time) bool {
	if s.Kind.Excursion() {
		return s.covers(t)
	}
	return s.governs(t)
}

// Resolve picks the condition in effect at t.
//
// The first TEMPO or PROB segment covering t wins outright. Otherwise the
// last INITIAL, FM or BECMG segment in source order that covers t wins, so
// a later change supersedes an earlier one even when their periods overlap.
func Resolve(segments []Segment, t time.Time) Resolution {
	for i, seg := range segments {
		if seg.Kind.Excursion() && seg.covers(t) {
			return resolution(i, seg)
		}
	}

	found := -1
	for i, seg := range segments {
		if !seg.Kind.Excursion() && seg.governs(t) {
			found = i
		}
	}
	if found < 0 {
		return Resolution{Index: -1, Line: -1}
	}

	return resolution(found, segments[found])
}

func resolution(i int, seg Segment) Resolution {
	return Resolution{
		Index:     i,
		Kind:      seg.Kind,
		Condition: seg.Condition,
		Line:      seg.Line,
	}
}
