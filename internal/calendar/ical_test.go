package calendar

import (
	"testing"
	"time"
)

// fixedClock pins "now" for deterministic tests.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

const sampleFeed = "BEGIN:VCALENDAR\r\n" +
	"PRODID:-//Airbnb Inc//Hosting Calendar 0.8.8//EN\r\n" +
	"VERSION:2.0\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTAMP:20250601T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20250701\r\n" +
	"DTEND;VALUE=DATE:20250705\r\n" +
	"UID:abc123@airbnb.com\r\n" +
	"SUMMARY:Reserved\r\n" +
	"DESCRIPTION:Reservation URL: https://www.airbnb.com/hosting/reservations/de\r\n" +
	" tails/HMABC123\\nPhone Number (Last 4 Digits): 1234\r\n" +
	"LOCATION:1 Main St\r\n" +
	"STATUS:CONFIRMED\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTART;VALUE=DATE:20250710\r\n" +
	"DTEND;VALUE=DATE:20250712\r\n" +
	"UID:def456@airbnb.com\r\n" +
	"SUMMARY:Airbnb (Not available)\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseExtractsEvents(t *testing.T) {
	parser := NewParser(fixedClock{t: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)})

	events := parser.Parse(sampleFeed)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if first.UID != "abc123@airbnb.com" {
		t.Errorf("unexpected UID: %q", first.UID)
	}
	if first.Summary != "Reserved" {
		t.Errorf("unexpected summary: %q", first.Summary)
	}
	if first.Location != "1 Main St" {
		t.Errorf("unexpected location: %q", first.Location)
	}
	if first.Status != "CONFIRMED" {
		t.Errorf("unexpected status: %q", first.Status)
	}

	wantStart := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)
	if !first.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", first.Start, wantStart)
	}
	wantEnd := time.Date(2025, 7, 5, 0, 0, 0, 0, time.Local)
	if !first.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", first.End, wantEnd)
	}
}

func TestParseUnfoldsContinuationLines(t *testing.T) {
	parser := NewParser(nil)

	events := parser.Parse(sampleFeed)
	if len(events) == 0 {
		t.Fatal("expected events")
	}

	want := "Reservation URL: https://www.airbnb.com/hosting/reservations/details/HMABC123\nPhone Number (Last 4 Digits): 1234"
	if events[0].Description != want {
		t.Errorf("description = %q, want %q", events[0].Description, want)
	}
}

func TestParseUnfoldsTabContinuation(t *testing.T) {
	parser := NewParser(nil)

	feed := "BEGIN:VEVENT\n" +
		"UID:u1\n" +
		"SUMMARY:Reser\n" +
		"\tved\n" +
		"DTSTART:20250701\n" +
		"DTEND:20250702\n" +
		"END:VEVENT\n"

	events := parser.Parse(feed)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Summary != "Reserved" {
		t.Errorf("summary = %q, want %q", events[0].Summary, "Reserved")
	}
}

func TestParseDiscardsPartialEvents(t *testing.T) {
	parser := NewParser(nil)

	// Missing SUMMARY, missing DTEND, and missing UID respectively.
	feed := "BEGIN:VCALENDAR\n" +
		"BEGIN:VEVENT\nUID:u1\nDTSTART:20250701\nDTEND:20250702\nEND:VEVENT\n" +
		"BEGIN:VEVENT\nUID:u2\nSUMMARY:Reserved\nDTSTART:20250701\nEND:VEVENT\n" +
		"BEGIN:VEVENT\nSUMMARY:Reserved\nDTSTART:20250701\nDTEND:20250702\nEND:VEVENT\n" +
		"END:VCALENDAR\n"

	if events := parser.Parse(feed); len(events) != 0 {
		t.Errorf("expected partial events to be discarded, got %d", len(events))
	}
}

func TestParseIgnoresMalformedLines(t *testing.T) {
	parser := NewParser(nil)

	feed := "BEGIN:VEVENT\n" +
		"garbage line without colon\n" +
		"X-UNKNOWN-PROP:whatever\n" +
		"UID:u1\n" +
		"SUMMARY:Reserved\n" +
		"DTSTART:20250701\n" +
		"DTEND:20250702\n" +
		"END:VEVENT\n"

	events := parser.Parse(feed)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
}

func TestParseUnescapesText(t *testing.T) {
	parser := NewParser(nil)

	feed := "BEGIN:VEVENT\n" +
		"UID:u1\n" +
		"SUMMARY:Reserved\n" +
		"DESCRIPTION:line one\\nline two\\, with comma\\; and semicolon\n" +
		"DTSTART:20250701\n" +
		"DTEND:20250702\n" +
		"END:VEVENT\n"

	events := parser.Parse(feed)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	want := "line one\nline two, with comma; and semicolon"
	if events[0].Description != want {
		t.Errorf("description = %q, want %q", events[0].Description, want)
	}
}

func TestParseICalDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	parser := NewParser(fixedClock{t: now})

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date only", "20250615", time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)},
		{"utc datetime", "20250615T140000Z", time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)},
		{"local datetime", "20250615T140000", time.Date(2025, 6, 15, 14, 0, 0, 0, time.Local)},
		{"hour only", "20250615T14", time.Date(2025, 6, 15, 14, 0, 0, 0, time.Local)},
		{"dashed date", "2025-06-15", time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)},
		{"garbage falls back to now", "not a date", now},
		{"short digits fall back to now", "2025", now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.parseICalDate(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("parseICalDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
