package minima

import (
	"strconv"
	"strings"
	"time"

	"k8s.io/utils/ptr"
)

// token is one whitespace-delimited word of a report and the physical line
// it came from
type token struct {
	text string
	line int
}

// chunk is the run of tokens from one change-group marker up to the next.
// A chunk with an empty marker holds the unmarked text before the first
// change group.
type chunk struct {
	marker string
	tokens []token
}

// calendar turns day/hour/minute groups into absolute instants. The year
// and month come from a reference instant; groups after a month-end wrap in
// the validity window land in the following month.
type calendar struct {
	year     int
	month    time.Month
	startDay int
	wraps    bool
}

func newCalendar(ref time.Time, startDay, endDay int) calendar {
	ref = ref.UTC()
	c := calendar{
		year:     ref.Year(),
		month:    ref.Month(),
		startDay: startDay,
		wraps:    startDay > 0 && endDay > 0 && endDay < startDay,
	}

	// Reference already sits in the month the window ends in
	if c.wraps && ref.Day() <= endDay {
		prev := time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		c.year, c.month = prev.Year(), prev.Month()
	}
	return c
}

func (c calendar) at(day, hour, minute int) time.Time {
	month := c.month
	if c.wraps && day < c.startDay {
		month++
	}
	// time.Date normalises month 13 and hour 24
	return time.Date(c.year, month, day, hour, minute, 0, 0, time.UTC)
}

// validGroup checks the ranges of a day/hour/minute group
func validGroup(day, hour, minute int) bool {
	return day >= 1 && day <= 31 && hour >= 0 && hour <= 24 && minute >= 0 && minute <= 59
}

// atoi4 parses four decimal submatches; regex guarantees the digits
func atoi4(matches []string) (int, int, int, int) {
	a, _ := strconv.Atoi(matches[1])
	b, _ := strconv.Atoi(matches[2])
	c, _ := strconv.Atoi(matches[3])
	d, _ := strconv.Atoi(matches[4])
	return a, b, c, d
}

// FindWindow locates the validity window of a TAF and resolves it against
// the reference instant. ok is false when the text carries no window.
func FindWindow(raw string, ref time.Time) (w Window, ok bool) {
	w, _, ok = findWindow(raw, ref)
	return w, ok
}

func findWindow(raw string, ref time.Time) (Window, calendar, bool) {
	matches := windowRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Window{}, newCalendar(ref, 0, 0), false
	}

	startDay, startHour, endDay, endHour := atoi4(matches)
	if !validGroup(startDay, startHour, 0) || !validGroup(endDay, endHour, 0) {
		return Window{}, newCalendar(ref, 0, 0), false
	}

	cal := newCalendar(ref, startDay, endDay)
	return Window{
		Start: cal.at(startDay, startHour, 0),
		End:   cal.at(endDay, endHour, 0),
	}, cal, true
}

// isMarker checks if a token opens a new change group
func isMarker(s string) bool {
	return s == "TEMPO" || s == "BECMG" || fmLooseRegex.MatchString(s) || probRegex.MatchString(s)
}

// isHeaderWord checks for report-type words that precede the station
func isHeaderWord(s string) bool {
	return s == "TAF" || s == "AMD" || s == "COR"
}

// stripHeader removes the report header and validity window from the first
// line. Without a window on the line only the header words are dropped.
func stripHeader(fields []string) []string {
	for i, field := range fields {
		if isMarker(field) {
			break
		}
		if periodRegex.MatchString(field) {
			return fields[i+1:]
		}
	}

	for len(fields) > 0 && isHeaderWord(fields[0]) {
		fields = fields[1:]
	}
	return fields
}

// tokenize splits a raw report into tokens across all of its lines
func tokenize(raw string) []token {
	var tokens []token
	header := true

	for i, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		// A bare "TAF" line pushes the header onto the next line
		if header {
			fields = stripHeader(fields)
			header = len(fields) == 0
		}

		for _, field := range fields {
			// Drop the end-of-report marker
			field = strings.TrimRight(field, "=")
			if field == "" {
				continue
			}
			tokens = append(tokens, token{text: field, line: i})
		}
	}

	return tokens
}

// split groups tokens into chunks at each change-group marker
func split(tokens []token) []chunk {
	var chunks []chunk

	for _, tok := range tokens {
		if isMarker(tok.text) {
			// PROB30 TEMPO is a single probability-qualified group
			if tok.text == "TEMPO" && len(chunks) > 0 {
				last := &chunks[len(chunks)-1]
				if probRegex.MatchString(last.marker) && len(last.tokens) == 1 {
					last.tokens = append(last.tokens, tok)
					continue
				}
			}
			chunks = append(chunks, chunk{marker: tok.text, tokens: []token{tok}})
			continue
		}

		if len(chunks) == 0 {
			chunks = append(chunks, chunk{})
		}
		last := &chunks[len(chunks)-1]
		last.tokens = append(last.tokens, tok)
	}

	return chunks
}

// joinTokens rebuilds condition text from tokens
func joinTokens(tokens []token) string {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.text
	}
	return strings.Join(words, " ")
}

// segmenter carries the per-call state of ParseSegments
type segmenter struct {
	cal         calendar
	window      Window
	hasWindow   bool
	initialSeen bool
}

// ParseSegments splits a raw TAF into dated validity segments in source
// order. The reference instant supplies the year and month that the day of
// month groups are resolved against.
//
// Chunks with malformed markers or periods are skipped, PROB groups under
// MinProbability are dropped, and unmarked text is only kept (once, as the
// INITIAL segment) when the report has a validity window.
func ParseSegments(raw string, ref time.Time) []Segment {
	s := segmenter{}
	s.window, s.cal, s.hasWindow = findWindow(raw, ref)

	var segments []Segment
	for _, c := range split(tokenize(raw)) {
		if seg, ok := s.parse(c); ok {
			segments = append(segments, seg)
		}
	}

	s.resolveFM(segments)
	return segments
}

// parse classifies a chunk by its marker and dates it
func (s *segmenter) parse(c chunk) (Segment, bool) {
	if len(c.tokens) == 0 {
		return Segment{}, false
	}

	switch {
	case c.marker == "":
		return s.parseInitial(c)
	case strings.HasPrefix(c.marker, "FM"):
		return s.parseFM(c)
	case c.marker == "BECMG":
		return s.parsePeriod(c, KindBECMG, c.tokens[1:])
	case c.marker == "TEMPO":
		return s.parsePeriod(c, KindTEMPO, c.tokens[1:])
	default:
		return s.parseProb(c)
	}
}

func (s *segmenter) parseInitial(c chunk) (Segment, bool) {
	if !s.hasWindow || s.initialSeen {
		return Segment{}, false
	}
	s.initialSeen = true

	return Segment{
		Kind:         KindInitial,
		Start:        s.window.Start,
		End:          ptr.To(s.window.End),
		EndInclusive: true,
		Condition:    joinTokens(c.tokens),
		Line:         c.tokens[0].line,
	}, true
}

func (s *segmenter) parseFM(c chunk) (Segment, bool) {
	matches := fmRegex.FindStringSubmatch(c.marker)
	if matches == nil {
		return Segment{}, false
	}

	day, _ := strconv.Atoi(matches[1])
	hour, _ := strconv.Atoi(matches[2])
	minute, _ := strconv.Atoi(matches[3])
	if !validGroup(day, hour, minute) {
		return Segment{}, false
	}

	// End is filled in by resolveFM once every segment is known
	return Segment{
		Kind:      KindFM,
		Start:     s.cal.at(day, hour, minute),
		Condition: joinTokens(c.tokens[1:]),
		Line:      c.tokens[0].line,
	}, true
}

func (s *segmenter) parseProb(c chunk) (Segment, bool) {
	matches := probRegex.FindStringSubmatch(c.marker)
	if matches == nil {
		return Segment{}, false
	}

	probability, err := strconv.Atoi(matches[1])
	if err != nil || probability < MinProbability {
		return Segment{}, false
	}

	rest := c.tokens[1:]
	if len(rest) > 0 && rest[0].text == "TEMPO" {
		rest = rest[1:]
	}

	seg, ok := s.parsePeriod(c, KindPROB, rest)
	seg.Probability = probability
	return seg, ok
}

// parsePeriod dates a group whose first body token is a DDHH/DDHH period
func (s *segmenter) parsePeriod(c chunk, kind Kind, rest []token) (Segment, bool) {
	if len(rest) == 0 {
		return Segment{}, false
	}

	matches := periodRegex.FindStringSubmatch(rest[0].text)
	if matches == nil {
		return Segment{}, false
	}

	fromDay, fromHour, toDay, toHour := atoi4(matches)
	if !validGroup(fromDay, fromHour, 0) || !validGroup(toDay, toHour, 0) {
		return Segment{}, false
	}

	return Segment{
		Kind:      kind,
		Start:     s.cal.at(fromDay, fromHour, 0),
		End:       ptr.To(s.cal.at(toDay, toHour, 0)),
		Condition: joinTokens(rest[1:]),
		Line:      c.tokens[0].line,
	}, true
}

// resolveFM ends every FM segment at the start of the next FM segment, or
// at the end of the validity window when it is the last one.
func (s *segmenter) resolveFM(segments []Segment) {
	for i := range segments {
		if segments[i].Kind != KindFM {
			continue
		}

		j := i + 1
		for j < len(segments) && segments[j].Kind != KindFM {
			j++
		}

		switch {
		case j < len(segments):
			segments[i].End = ptr.To(segments[j].Start)
		case s.hasWindow:
			segments[i].End = ptr.To(s.window.End)
			segments[i].EndInclusive = true
		}
	}
}
