package models

import (
	"time"
)

// CalendarEvent represents a parsed event from an iCal feed.
type CalendarEvent struct {
	UID         string    `json:"uid"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// BookingRecord is a calendar event classified as a genuine booking, with
// metadata mined from its description.
type BookingRecord struct {
	CalendarEvent

	// ReservationURL is the hosting reservation link, when present.
	ReservationURL string `json:"reservation_url,omitempty"`
	// PhoneLastFour holds at most the trailing four digits of a guest phone
	// number. The full number is never retained.
	PhoneLastFour string `json:"phone_last_four,omitempty"`
	NightsStayed  int    `json:"nights_stayed"`
}

// SyncResult contains the outcome of syncing one property's calendar.
type SyncResult struct {
	PropertyID    string    `json:"property_id"`
	Address       string    `json:"address"`
	EventsFound   int       `json:"events_found"`
	BookingsFound int       `json:"bookings_found"`
	JobsCreated   int       `json:"jobs_created"`
	Error         error     `json:"-"`
	SyncedAt      time.Time `json:"synced_at"`
}
