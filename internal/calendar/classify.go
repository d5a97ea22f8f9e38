package calendar

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/turnover-manager/backend/internal/storage/models"
)

// bookingSummary is the only summary value that marks a genuine booking.
// Airbnb exports blocked-off dates and manual blocks under other summaries
// ("Airbnb (Not available)", "Blocked", ...), which must not produce cleaning
// jobs. The match is exact after trimming and case normalization; substring
// matching misfires on summaries like "reserved for cleaning".
const bookingSummary = "reserved"

// statusCancelled is the iCal STATUS value for cancelled events.
const statusCancelled = "CANCELLED"

var (
	// Airbnb hosting reservation details link.
	reservationURLPattern = regexp.MustCompile(`https://www\.airbnb\.com/hosting/reservations/details/[A-Za-z0-9]+`)

	// Labels like "Phone Number (Last 4 Digits): 1234" or "Phone: XXX-XXX-1234".
	// The greedy masked-digit run before the capture ensures only the trailing
	// four digits are kept even when the feed leaks a full number.
	phoneLabelPattern = regexp.MustCompile(`(?i)phone[^:\n]*:\s*[0-9Xx*\-\s().]*([0-9]{4})`)

	// Masked phone of the form XX...1234.
	maskedPhonePattern = regexp.MustCompile(`[Xx*]{2,}[\s\-.]*([0-9]{4})`)
)

// IsBooking reports whether a calendar event represents a genuine booking
// that requires a checkout cleaning.
func IsBooking(event models.CalendarEvent) bool {
	if event.Status == statusCancelled {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(event.Summary), bookingSummary)
}

// Classify filters events down to genuine bookings and annotates them with
// metadata mined from their descriptions.
func Classify(events []models.CalendarEvent) []models.BookingRecord {
	var bookings []models.BookingRecord
	for _, event := range events {
		if !IsBooking(event) {
			continue
		}

		reservationURL, phoneLastFour := ParseBookingDescription(event.Description)
		bookings = append(bookings, models.BookingRecord{
			CalendarEvent:  event,
			ReservationURL: reservationURL,
			PhoneLastFour:  phoneLastFour,
			NightsStayed:   nightsBetween(event.Start, event.End),
		})
	}
	return bookings
}

// ParseBookingDescription extracts a reservation URL and the last four phone
// digits from booking description text. For the phone number the labeled
// pattern is tried before the masked pattern, and the first match wins.
// Only the trailing four digits are ever retained; the full number is never
// stored or logged.
func ParseBookingDescription(description string) (reservationURL, phoneLastFour string) {
	reservationURL = reservationURLPattern.FindString(description)

	if m := phoneLabelPattern.FindStringSubmatch(description); len(m) > 1 {
		phoneLastFour = m[1]
		return reservationURL, phoneLastFour
	}
	if m := maskedPhonePattern.FindStringSubmatch(description); len(m) > 1 {
		phoneLastFour = m[1]
	}
	return reservationURL, phoneLastFour
}

// nightsBetween is the stay length in nights: ceil of the span in days, with
// a floor of one night for any well-formed pair.
func nightsBetween(start, end time.Time) int {
	nights := int(math.Ceil(end.Sub(start).Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	return nights
}
