// Package calendar implements the iCal ingestion and cleaning-job
// reconciliation pipeline: feed fetching, parsing, booking classification,
// and idempotent job materialization.
package calendar

import (
	"strings"
	"time"

	"github.com/turnover-manager/backend/internal/storage/models"
)

// Parser parses iCal/ICS calendar text into events.
//
// Parsing is deliberately lenient: unknown and malformed lines are skipped,
// and a VEVENT missing any of UID, SUMMARY, DTSTART, or DTEND is discarded
// silently rather than failing the feed.
type Parser struct {
	clock Clock
}

// NewParser creates a new iCal parser.
func NewParser(clock Clock) *Parser {
	if clock == nil {
		clock = SystemClock()
	}
	return &Parser{clock: clock}
}

// eventBuilder accumulates one VEVENT. Presence flags are tracked separately
// from values because parsed dates are never zero (the date parser falls back
// to "now").
type eventBuilder struct {
	event    models.CalendarEvent
	hasUID   bool
	hasSum   bool
	hasStart bool
	hasEnd   bool
}

func (b *eventBuilder) complete() bool {
	return b.hasUID && b.hasSum && b.hasStart && b.hasEnd
}

// Parse extracts calendar events from raw iCal text.
func (p *Parser) Parse(raw string) []models.CalendarEvent {
	var events []models.CalendarEvent
	var current *eventBuilder

	for _, line := range unfoldLines(raw) {
		colonIdx := strings.Index(line, ":")
		if colonIdx == -1 {
			continue
		}

		key := line[:colonIdx]
		value := line[colonIdx+1:]

		// Strip property parameters (e.g. DTSTART;VALUE=DATE:20231215).
		if semicolonIdx := strings.Index(key, ";"); semicolonIdx != -1 {
			key = key[:semicolonIdx]
		}

		switch key {
		case "BEGIN":
			if value == "VEVENT" {
				current = &eventBuilder{}
			}
		case "END":
			if value == "VEVENT" && current != nil {
				if current.complete() {
					events = append(events, current.event)
				}
				current = nil
			}
		default:
			if current != nil {
				p.setEventField(current, key, value)
			}
		}
	}

	return events
}

// unfoldLines splits raw text into logical lines, reassembling iCal folded
// continuations (physical lines starting with a space or tab) before any
// key/value interpretation happens.
func unfoldLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var logical []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			if len(logical) > 0 {
				logical[len(logical)-1] += line[1:]
			}
			continue
		}
		logical = append(logical, line)
	}
	return logical
}

// setEventField applies a recognized property to the event under construction.
// Unrecognized properties are ignored.
func (p *Parser) setEventField(b *eventBuilder, key, value string) {
	switch key {
	case "UID":
		b.event.UID = unescapeText(value)
		b.hasUID = true
	case "SUMMARY":
		b.event.Summary = unescapeText(value)
		b.hasSum = true
	case "DESCRIPTION":
		b.event.Description = unescapeText(value)
	case "LOCATION":
		b.event.Location = unescapeText(value)
	case "STATUS":
		b.event.Status = unescapeText(value)
	case "DTSTART":
		b.event.Start = p.parseICalDate(value)
		b.hasStart = true
	case "DTEND":
		b.event.End = p.parseICalDate(value)
		b.hasEnd = true
	}
}

// unescapeText unrolls the common iCal escape sequences.
func unescapeText(value string) string {
	value = strings.ReplaceAll(value, "\\n", "\n")
	value = strings.ReplaceAll(value, "\\N", "\n")
	value = strings.ReplaceAll(value, "\\,", ",")
	value = strings.ReplaceAll(value, "\\;", ";")
	value = strings.ReplaceAll(value, "\\\\", "\\")
	return value
}

// parseICalDate parses an iCal date or date-time value.
//
// Every character that is not a digit, 'T', or 'Z' is stripped first, which
// tolerates dashed and otherwise decorated inputs. Eight bare digits parse as
// a date-only value at local midnight. A 'T' splits date and time parts, with
// a trailing 'Z' selecting UTC. Anything else falls back to the current time;
// that imprecision matches the feeds this pipeline has to live with.
func (p *Parser) parseICalDate(value string) time.Time {
	var cleaned strings.Builder
	for _, c := range value {
		if (c >= '0' && c <= '9') || c == 'T' || c == 'Z' {
			cleaned.WriteRune(c)
		}
	}

	s := cleaned.String()
	loc := time.Local
	if strings.HasSuffix(s, "Z") {
		loc = time.UTC
		s = strings.TrimSuffix(s, "Z")
	}

	if len(s) == 8 && !strings.Contains(s, "T") {
		if t, err := time.ParseInLocation("20060102", s, time.Local); err == nil {
			return t
		}
		return p.clock.Now()
	}

	tIdx := strings.Index(s, "T")
	if tIdx != 8 {
		return p.clock.Now()
	}

	datePart := s[:8]
	timePart := s[tIdx+1:]
	if len(timePart) > 6 {
		timePart = timePart[:6]
	}
	// Missing minute/second default to zero.
	for len(timePart) < 6 {
		timePart += "0"
	}

	if t, err := time.ParseInLocation("20060102T150405", datePart+"T"+timePart, loc); err == nil {
		return t
	}
	return p.clock.Now()
}
