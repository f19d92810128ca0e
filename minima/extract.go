package minima

import (
	"strconv"
)

// Extract pulls the ceiling and visibility out of a single line of report
// text. Missing groups are reported as Unlimited, never as an error.
func Extract(line string) Condition {
	cond := Condition{
		CeilingFeet:     Unlimited,
		VisibilityMiles: Unlimited,
	}

	// Ceiling is the first broken, overcast or vertical visibility layer
	if matches := ceilingRegex.FindStringSubmatch(line); matches != nil {
		height, _ := strconv.Atoi(matches[2])
		cond.CeilingFeet = float64(height * 100)
	}

	if matches := visibilityRegex.FindStringSubmatch(line); matches != nil {
		cond.VisibilityMiles = parseVisibility(matches)
		switch matches[1] {
		case "P":
			cond.VisibilityAtLeast = true
		case "M":
			cond.VisibilityLessThan = true
		}
	}

	return cond
}

// parseVisibility converts the submatches of visibilityRegex into miles
func parseVisibility(matches []string) float64 {
	// Plain whole miles, e.g. "10SM"
	if matches[5] != "" {
		miles, _ := strconv.Atoi(matches[5])
		return float64(miles)
	}

	num, _ := strconv.Atoi(matches[3])
	den, _ := strconv.Atoi(matches[4])
	if den == 0 {
		return Unlimited
	}

	miles := float64(num) / float64(den)
	if matches[2] != "" {
		whole, _ := strconv.Atoi(matches[2])
		miles += float64(whole)
	}
	return miles
}

// Meets reports whether the condition satisfies both minima. Unreported
// values always pass, and a "P" visibility is never treated as failing.
func (c Condition) Meets(m Minima) bool {
	return c.visibilityOK(m) && c.CeilingFeet >= m.CeilingFeet
}

// Below is the negation of Meets
func (c Condition) Below(m Minima) bool {
	return !c.Meets(m)
}

func (c Condition) visibilityOK(m Minima) bool {
	switch {
	case c.VisibilityAtLeast:
		return true
	case c.VisibilityLessThan:
		// Only a stated bound at or under the minimum proves a breach
		return c.VisibilityMiles > m.VisibilityMiles
	default:
		return c.VisibilityMiles >= m.VisibilityMiles
	}
}

// Category returns the FAA flight category for the condition
func (c Condition) Category() string {
	switch {
	case c.CeilingFeet < 500 || c.VisibilityMiles < 1:
		return "LIFR"
	case c.CeilingFeet < 1000 || c.VisibilityMiles < 3:
		return "IFR"
	case c.CeilingFeet <= 3000 || c.VisibilityMiles <= 5:
		return "MVFR"
	default:
		return "VFR"
	}
}
