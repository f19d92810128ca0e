package main

import (
	"time"

	"github.com/rmitchellscott/WxMinima/fetch"
	"github.com/rmitchellscott/WxMinima/minima"
)

// Verdict labels
const (
	verdictBelow         = "BELOW MINIMA"
	verdictWithin        = "Within minima"
	verdictIndeterminate = "Indeterminate"
)

// options holds what the user asked to check
type options struct {
	minima   minima.Minima
	eta      time.Time
	hasETA   bool
	allLines bool
	noRaw    bool
}

// evaluation is one report checked against the minima, ready for display
type evaluation struct {
	Kind          fetch.Kind
	Station       string
	Lines         []minima.LineResult
	Below         bool
	Indeterminate bool
	PerLine       bool
	At            time.Time
	Condition     string
	Segment       minima.Kind
	Category      string
	Issued        time.Time
	Cached        bool
	EvaluatedAt   time.Time
}

// Verdict returns the summary label for the evaluation
func (e evaluation) Verdict() string {
	switch {
	case e.Indeterminate:
		return verdictIndeterminate
	case e.Below:
		return verdictBelow
	default:
		return verdictWithin
	}
}
