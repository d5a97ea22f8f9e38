package calendar

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/turnover-manager/backend/internal/storage/models"
)

// JobStore is the cleaning-job side of the store collaborator. The sqlite
// repositories implement it; tests substitute fakes.
type JobStore interface {
	Find(ctx context.Context, filter models.JobFilter) ([]models.CleaningJob, error)
	Create(ctx context.Context, job *models.CleaningJob) error
	DeleteByIDs(ctx context.Context, ids []string) error
}

// PropertyStore is the property side of the store collaborator.
type PropertyStore interface {
	GetByID(ctx context.Context, id string) (*models.Property, error)
	ListWithCalendar(ctx context.Context) ([]models.Property, error)
	SetLastSyncedAt(ctx context.Context, id string, at time.Time) error
}

// Defaults for jobs materialized from bookings.
const (
	cleaningTypeCheckout = "checkout"
	defaultDurationHours = 3
	defaultCheckoutTime  = "10:00"
)

// Reconciler maps classified bookings to cleaning-job records: it creates
// missing jobs, skips existing ones, and removes feed-created jobs whose
// source calendar went away.
type Reconciler struct {
	jobs  JobStore
	clock Clock

	checkoutHour   int
	checkoutMinute int
}

// NewReconciler creates a reconciler. checkoutTime is an "HH:MM" local time
// applied to checkout dates when computing a job's preferred date; empty
// selects 10:00.
func NewReconciler(jobs JobStore, clock Clock, checkoutTime string) *Reconciler {
	if clock == nil {
		clock = SystemClock()
	}
	hour, minute := parseTimeString(checkoutTime, 10, 0)
	return &Reconciler{
		jobs:           jobs,
		clock:          clock,
		checkoutHour:   hour,
		checkoutMinute: minute,
	}
}

// Reconcile creates cleaning jobs for bookings with a future checkout,
// skipping every booking that already has a non-terminal job at the same
// (address, preferred date). Re-running on an unchanged feed creates nothing.
//
// The cutoff instant is read once for the whole run, so every booking is
// compared against the same "now". A failure on one booking is logged and
// does not abort the rest; each job is built fully in memory before the
// single persist call.
func (r *Reconciler) Reconcile(ctx context.Context, property *models.Property, bookings []models.BookingRecord) (int, error) {
	now := r.clock.Now()
	created := 0

	for _, booking := range bookings {
		if !booking.End.After(now) {
			continue
		}

		preferred := r.preferredDate(booking.End)

		existing, err := r.jobs.Find(ctx, models.JobFilter{
			Address:       property.Address,
			PreferredDate: &preferred,
			StatusIn:      models.ActiveStatuses(),
		})
		if err != nil {
			log.Printf("Error checking existing jobs for %s: %v", property.Address, err)
			continue
		}
		if len(existing) > 0 {
			// Already materialized. Back-to-back same-day checkouts collapse
			// onto one job here; the second booking loses the dedup check.
			continue
		}

		job := r.buildJob(property, booking, preferred)
		if err := r.jobs.Create(ctx, job); err != nil {
			log.Printf("Error creating job for %s (%s): %v", property.Address, booking.UID, err)
			continue
		}
		created++
	}

	return created, nil
}

// buildJob constructs a complete cleaning job from a booking.
func (r *Reconciler) buildJob(property *models.Property, booking models.BookingRecord, preferred time.Time) *models.CleaningJob {
	return &models.CleaningJob{
		Address:           property.Address,
		Status:            models.JobStatusScheduled,
		CleaningType:      cleaningTypeCheckout,
		EstimatedDuration: defaultDurationHours,
		PreferredDate:     preferred,
		PreferredTime:     preferred.Format("3:04 PM"),

		GuestName:          booking.Summary,
		CheckInDate:        booking.Start,
		CheckOutDate:       booking.End,
		NightsStayed:       booking.NightsStayed,
		BookingDescription: booking.Description,
		ReservationURL:     booking.ReservationURL,
		PhoneLastFour:      booking.PhoneLastFour,

		Source:        models.SourceICal,
		ReservationID: booking.UID,
	}
}

// preferredDate is the dedup key component: the checkout date at the
// configured local checkout time.
func (r *Reconciler) preferredDate(checkout time.Time) time.Time {
	return time.Date(
		checkout.Year(), checkout.Month(), checkout.Day(),
		r.checkoutHour, r.checkoutMinute, 0, 0,
		time.Local,
	)
}

// RemoveCalendarJobs deletes future feed-created jobs for an address. It runs
// when a property's calendar is unlinked and when a property is deleted (with
// the address captured before deletion, so recreating a property at the same
// address does not silently resurrect orphaned jobs).
//
// Selection is future preferred date plus the iCal marker — source set OR a
// reservation id, since older records predate the source column. There is no
// status filter: even an accepted future job from a removed calendar goes.
// Past and completed jobs are never touched because the date bound excludes
// them.
func (r *Reconciler) RemoveCalendarJobs(ctx context.Context, address string) (int, error) {
	now := r.clock.Now()

	jobs, err := r.jobs.Find(ctx, models.JobFilter{Address: address})
	if err != nil {
		return 0, fmt.Errorf("listing jobs for %s: %w", address, err)
	}

	var ids []string
	for _, job := range jobs {
		if job.PreferredDate.Before(now) {
			continue
		}
		if !job.FromICal() {
			continue
		}
		ids = append(ids, job.ID)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	if err := r.jobs.DeleteByIDs(ctx, ids); err != nil {
		return 0, fmt.Errorf("deleting jobs for %s: %w", address, err)
	}

	return len(ids), nil
}

// parseTimeString parses a time string "HH:MM" and returns hour and minute.
func parseTimeString(s string, defaultHour, defaultMinute int) (int, int) {
	if len(s) < 4 {
		return defaultHour, defaultMinute
	}

	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return defaultHour, defaultMinute
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return defaultHour, defaultMinute
	}

	return hour, minute
}
