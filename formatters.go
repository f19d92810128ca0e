package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rmitchellscott/WxMinima/fetch"
	"github.com/rmitchellscott/WxMinima/minima"
)

// Color definitions using fatih/color
var (
	labelColor    = color.New(color.FgCyan)
	valueColor    = color.New(color.FgWhite)
	dateColor     = color.New(color.FgGreen)
	functionColor = color.New(color.FgMagenta)

	belowColor         = color.New(color.FgRed, color.Bold)
	withinColor        = color.New(color.FgGreen, color.Bold)
	indeterminateColor = color.New(color.FgYellow, color.Bold)

	// Age-based colors
	freshColor   = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	expiredColor = color.New(color.FgRed)

	// Flight category chart colors
	categoryColors = map[string]*color.Color{
		"VFR":  color.New(color.FgGreen),
		"MVFR": color.New(color.FgBlue),
		"IFR":  color.New(color.FgRed),
		"LIFR": color.New(color.FgMagenta),
	}
)

// getMetarAgeColor returns the appropriate color based on METAR age
func getMetarAgeColor(t, now time.Time) *color.Color {
	minutes := int(now.Sub(t).Minutes())
	if minutes > 60 {
		return expiredColor
	} else if minutes > 30 {
		return warningColor
	}
	return freshColor
}

// getTafAgeColor returns the appropriate color based on TAF age
func getTafAgeColor(t, now time.Time) *color.Color {
	hours := now.Sub(t).Hours()
	if hours > 6.0 {
		return expiredColor
	} else if hours > 5.5 {
		return warningColor
	}
	return freshColor
}

func verdictColor(e evaluation) *color.Color {
	switch {
	case e.Indeterminate:
		return indeterminateColor
	case e.Below:
		return belowColor
	default:
		return withinColor
	}
}

// formatLines writes the report back line for line, painting flagged
// lines red
func formatLines(lines []minima.LineResult) string {
	var sb strings.Builder
	for _, line := range lines {
		if line.Below {
			belowColor.Fprint(&sb, line.Line)
		} else {
			sb.WriteString(line.Line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatMinima describes the minima being checked
func formatMinima(m minima.Minima) string {
	return fmt.Sprintf("ceiling %s ft, visibility %s SM",
		milesString(m.CeilingFeet), milesString(m.VisibilityMiles))
}

// formatEvaluation renders an evaluation for display with colors
func formatEvaluation(e evaluation, opts options) string {
	var sb strings.Builder

	if !opts.noRaw {
		functionColor.Fprintf(&sb, "------ Raw %s ------\n", e.Kind)
		sb.WriteString(formatLines(e.Lines))
		sb.WriteString("\n")
	}

	if e.Station != "" {
		labelColor.Fprint(&sb, "Station: ")
		sb.WriteString(e.Station)
		sb.WriteString("\n")
	}

	labelColor.Fprint(&sb, "Minima: ")
	valueColor.Fprintln(&sb, formatMinima(opts.minima))

	if !e.At.IsZero() {
		labelColor.Fprint(&sb, "At: ")
		dateColor.Fprintln(&sb, e.At.UTC().Format("2006-01-02 15:04 UTC"))
	}

	labelColor.Fprint(&sb, "Verdict: ")
	verdictColor(e).Fprintln(&sb, e.Verdict())

	if e.PerLine && e.Kind == fetch.TAF {
		below := 0
		for _, line := range e.Lines {
			if line.Below {
				below++
			}
		}
		labelColor.Fprint(&sb, "Lines below minima: ")
		sb.WriteString(fmt.Sprintf("%d of %d\n", below, len(e.Lines)))
	}

	if e.Condition != "" {
		labelColor.Fprint(&sb, "Condition: ")
		if e.Segment != "" {
			valueColor.Fprint(&sb, string(e.Segment))
			sb.WriteString(" ")
		}
		sb.WriteString(e.Condition)
		sb.WriteString("\n")
	}

	if e.Category != "" {
		labelColor.Fprint(&sb, "Category: ")
		categoryColors[e.Category].Fprintln(&sb, e.Category)
	}

	if !e.Issued.IsZero() {
		now := e.EvaluatedAt
		labelColor.Fprint(&sb, "Issued: ")
		dateColor.Fprint(&sb, e.Issued.Format("2006-01-02 15:04 UTC"))
		sb.WriteString(" ")
		ageColor := getTafAgeColor(e.Issued, now)
		if e.Kind == fetch.METAR {
			ageColor = getMetarAgeColor(e.Issued, now)
		}
		ageColor.Fprint(&sb, relativeTimeString(e.Issued, now))
		if e.Cached {
			sb.WriteString(" [cached]")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
