package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rmitchellscott/WxMinima/fetch"
	"github.com/rmitchellscott/WxMinima/minima"
)

var (
	etaRegex    = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})Z$`)
	issuedRegex = regexp.MustCompile(`\b(\d{2})(\d{2})(\d{2})Z\b`)
)

// parseETA reads an instant given either as RFC3339 or as a DDHHMMZ group.
// A DDHHMMZ group is placed in whichever neighbouring month puts it closest
// to now.
func parseETA(value string, now time.Time) (time.Time, error) {
	value = strings.ToUpper(strings.TrimSpace(value))

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	matches := etaRegex.FindStringSubmatch(value)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid ETA %q: want RFC3339 or DDHHMMZ", value)
	}

	t, ok := nearestDayTime(matches[1:], now)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid ETA %q: day or time out of range", value)
	}
	return t, nil
}

// issueTime finds the DDHHMMZ issue group of a report
func issueTime(raw string, now time.Time) (time.Time, bool) {
	matches := issuedRegex.FindStringSubmatch(raw)
	if matches == nil {
		return time.Time{}, false
	}
	return nearestDayTime(matches[1:], now)
}

func nearestDayTime(groups []string, now time.Time) (time.Time, bool) {
	day, _ := strconv.Atoi(groups[0])
	hour, _ := strconv.Atoi(groups[1])
	minute, _ := strconv.Atoi(groups[2])
	if day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	now = now.UTC()
	var best time.Time
	found := false
	for _, offset := range []int{-1, 0, 1} {
		candidate := time.Date(now.Year(), now.Month()+time.Month(offset), day, hour, minute, 0, 0, time.UTC)
		// Day 31 in a 30-day month rolls over
		if candidate.Day() != day {
			continue
		}
		if !found || candidate.Sub(now).Abs() < best.Sub(now).Abs() {
			best = candidate
			found = true
		}
	}
	return best, found
}

// stationFromReport returns the station identifier at the head of a raw
// report, skipping the TAF/METAR/SPECI and AMD/COR header words
func stationFromReport(raw string) string {
	for _, field := range strings.Fields(raw) {
		switch field {
		case "TAF", "METAR", "SPECI", "AMD", "COR":
			continue
		}
		if station, err := fetch.NormalizeStation(field); err == nil {
			return station
		}
		return ""
	}
	return ""
}

// reportKind guesses whether raw text is a forecast or an observation
func reportKind(raw string, now time.Time) fetch.Kind {
	fields := strings.Fields(raw)
	if len(fields) > 0 && fields[0] == "TAF" {
		return fetch.TAF
	}
	if _, ok := minima.FindWindow(raw, now); ok {
		return fetch.TAF
	}
	return fetch.METAR
}
