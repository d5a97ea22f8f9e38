package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/turnover-manager/backend/internal/storage/models"
)

func TestIsBooking(t *testing.T) {
	tests := []struct {
		summary string
		status  string
		want    bool
	}{
		{"Reserved", "", true},
		{"reserved", "", true},
		{" reserved ", "", true},
		{"RESERVED", "", true},
		{"Airbnb (Not available)", "", false},
		{"Blocked", "", false},
		{"reserved for cleaning", "", false},
		{"John Smith", "", false},
		{"", "", false},
		{"Reserved", "CANCELLED", false},
	}

	for _, tt := range tests {
		event := models.CalendarEvent{Summary: tt.summary, Status: tt.status}
		if got := IsBooking(event); got != tt.want {
			t.Errorf("IsBooking(summary=%q, status=%q) = %v, want %v", tt.summary, tt.status, got, tt.want)
		}
	}
}

func TestClassifyAnnotatesBookings(t *testing.T) {
	events := []models.CalendarEvent{
		{
			UID:         "u1",
			Summary:     "Reserved",
			Description: "Reservation URL: https://www.airbnb.com/hosting/reservations/details/HMABC123\nPhone Number (Last 4 Digits): 1234",
			Start:       time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local),
			End:         time.Date(2025, 7, 5, 0, 0, 0, 0, time.Local),
		},
		{
			UID:     "u2",
			Summary: "Airbnb (Not available)",
			Start:   time.Date(2025, 7, 10, 0, 0, 0, 0, time.Local),
			End:     time.Date(2025, 7, 12, 0, 0, 0, 0, time.Local),
		},
	}

	bookings := Classify(events)
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}

	booking := bookings[0]
	if booking.UID != "u1" {
		t.Errorf("unexpected UID: %q", booking.UID)
	}
	if booking.ReservationURL != "https://www.airbnb.com/hosting/reservations/details/HMABC123" {
		t.Errorf("unexpected reservation URL: %q", booking.ReservationURL)
	}
	if booking.PhoneLastFour != "1234" {
		t.Errorf("unexpected phone digits: %q", booking.PhoneLastFour)
	}
	if booking.NightsStayed != 4 {
		t.Errorf("nights = %d, want 4", booking.NightsStayed)
	}
}

func TestParseBookingDescriptionPhoneRedaction(t *testing.T) {
	_, phone := ParseBookingDescription("Phone: XXX-XXX-1234")
	if phone != "1234" {
		t.Fatalf("phone = %q, want %q", phone, "1234")
	}

	// A full number must never survive extraction.
	_, phone = ParseBookingDescription("Phone: 555-867-5309")
	if phone != "5309" {
		t.Fatalf("phone = %q, want %q", phone, "5309")
	}
	if strings.Contains(phone, "555") || len(phone) > 4 {
		t.Fatalf("extracted more than the last four digits: %q", phone)
	}
}

func TestParseBookingDescriptionMaskedPhone(t *testing.T) {
	_, phone := ParseBookingDescription("Contact: XX...4321")
	if phone != "4321" {
		t.Errorf("phone = %q, want %q", phone, "4321")
	}
}

func TestParseBookingDescriptionNoMatches(t *testing.T) {
	url, phone := ParseBookingDescription("Checkout by 11am. No smoking.")
	if url != "" || phone != "" {
		t.Errorf("expected empty results, got url=%q phone=%q", url, phone)
	}
}

func TestNightsBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			"four nights",
			time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local),
			time.Date(2025, 7, 5, 0, 0, 0, 0, time.Local),
			4,
		},
		{
			"half day rounds up",
			time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local),
			time.Date(2025, 7, 2, 12, 0, 0, 0, time.Local),
			2,
		},
		{
			"same instant floors at one",
			time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local),
			time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local),
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nightsBetween(tt.start, tt.end); got != tt.want {
				t.Errorf("nightsBetween = %d, want %d", got, tt.want)
			}
		})
	}
}
