package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rmitchellscott/WxMinima/fetch"
	"github.com/rmitchellscott/WxMinima/minima"
	"go.uber.org/multierr"
)

// reportFetcher is satisfied by *fetch.CachedFetcher
type reportFetcher interface {
	Fetch(ctx context.Context, station string, kind fetch.Kind) (fetch.Report, error)
}

// evaluate checks a report against the minima. Observations and -all
// forecasts are checked line by line; otherwise a forecast is checked at the
// ETA, or now when no ETA was given.
func evaluate(report fetch.Report, opts options, now time.Time) evaluation {
	e := evaluation{
		Kind:        report.Kind,
		Station:     report.Station,
		Cached:      report.Cached,
		EvaluatedAt: now,
	}
	if issued, ok := issueTime(report.Raw, now); ok {
		e.Issued = issued
	}

	switch {
	case report.Kind == fetch.METAR:
		e.PerLine = true
		e.Lines = minima.BelowEachLine(report.Raw, opts.minima)
		e.Below = anyBelow(e.Lines)
		e.Condition = firstLine(report.Raw)
		e.Category = minima.Extract(e.Condition).Category()

	case opts.allLines:
		e.PerLine = true
		e.Lines = minima.BelowEachLine(report.Raw, opts.minima)
		e.Below = anyBelow(e.Lines)

	default:
		at := now
		if opts.hasETA {
			at = opts.eta
		}
		e.At = at

		result := minima.BelowAtInstant(report.Raw, opts.minima, at)
		e.Lines = minima.HighlightAtInstant(report.Raw, opts.minima, at)
		e.Below = result.Below
		e.Indeterminate = result.Indeterminate()
		e.Condition = result.Condition
		e.Segment = result.Kind
		if !e.Indeterminate {
			e.Category = minima.Extract(result.Condition).Category()
		}
	}

	return e
}

func anyBelow(lines []minima.LineResult) bool {
	for _, line := range lines {
		if line.Below {
			return true
		}
	}
	return false
}

func firstLine(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// processReport fetches one report and writes its evaluation
func processReport(ctx context.Context, w io.Writer, fetcher reportFetcher, station string, kind fetch.Kind, opts options, now time.Time) error {
	report, err := fetcher.Fetch(ctx, station, kind)
	if err != nil {
		return fmt.Errorf("error fetching %s: %w", kind, err)
	}

	fmt.Fprint(w, formatEvaluation(evaluate(report, opts, now), opts))
	return nil
}

// processReports runs processReport for each kind, separating the outputs.
// A failure for one kind does not stop the others.
func processReports(ctx context.Context, w io.Writer, fetcher reportFetcher, station string, kinds []fetch.Kind, opts options, now time.Time) error {
	var errs error
	for i, kind := range kinds {
		if i > 0 {
			fmt.Fprint(w, "\n----------------------------------\n\n")
		}
		errs = multierr.Append(errs, processReport(ctx, w, fetcher, station, kind, opts, now))
	}
	return errs
}

// processPiped evaluates raw report text read from stdin
func processPiped(w io.Writer, raw string, opts options, now time.Time) {
	report := fetch.Report{
		Station: stationFromReport(raw),
		Kind:    reportKind(raw, now),
		Raw:     raw,
	}
	fmt.Fprint(w, formatEvaluation(evaluate(report, opts, now), opts))
}
