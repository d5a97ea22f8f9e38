package models

import (
	"time"
)

// JobStatus is the lifecycle status of a cleaning job.
type JobStatus string

const (
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusOpen      JobStatus = "open"
	JobStatusBidding   JobStatus = "bidding"
	JobStatusAccepted  JobStatus = "accepted"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Terminal reports whether the status marks a job the sync pipeline must
// never touch again.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusScheduled, JobStatusOpen, JobStatusBidding,
		JobStatusAccepted, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// ActiveStatuses returns the non-terminal statuses, used as the status filter
// for the duplicate-job existence check.
func ActiveStatuses() []JobStatus {
	return []JobStatus{JobStatusOpen, JobStatusBidding, JobStatusAccepted, JobStatusScheduled}
}

// SourceICal marks jobs materialized from a calendar feed.
const SourceICal = "ical"

// CleaningJob represents a checkout cleaning materialized from a booking.
type CleaningJob struct {
	ID      string    `json:"id"`
	Address string    `json:"address"`
	Status  JobStatus `json:"status"`

	CleaningType      string    `json:"cleaning_type"`
	EstimatedDuration int       `json:"estimated_duration"` // hours
	PreferredDate     time.Time `json:"preferred_date"`
	PreferredTime     string    `json:"preferred_time"`

	// Denormalized booking details.
	GuestName          string    `json:"guest_name,omitempty"`
	CheckInDate        time.Time `json:"check_in_date"`
	CheckOutDate       time.Time `json:"check_out_date"`
	NightsStayed       int       `json:"nights_stayed"`
	BookingDescription string    `json:"booking_description,omitempty"`
	ReservationURL     string    `json:"reservation_url,omitempty"`
	PhoneLastFour      string    `json:"phone_last_four,omitempty"`

	// Source tracks how the job was created. Feed-created jobs carry
	// SourceICal and the originating event UID in ReservationID; records that
	// predate the source column may carry only the reservation id.
	Source        string `json:"source,omitempty"`
	ReservationID string `json:"reservation_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromICal reports whether the job was created by calendar sync. Both the
// source marker and the reservation id are checked because older records
// predate the source column.
func (j *CleaningJob) FromICal() bool {
	return j.Source == SourceICal || j.ReservationID != ""
}

// JobFilter selects cleaning jobs in a store query.
type JobFilter struct {
	Address       string
	PreferredDate *time.Time
	StatusIn      []JobStatus
}
