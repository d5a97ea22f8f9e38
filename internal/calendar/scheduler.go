package calendar

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the batch sync on a fixed interval and serves manual
// triggers.
type Scheduler struct {
	cron        *cron.Cron
	syncService *SyncService
	interval    time.Duration
	entryID     cron.EntryID
}

// NewScheduler creates a scheduler running SyncAll every interval. A
// non-positive interval selects the 6-hour default.
func NewScheduler(syncService *SyncService, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &Scheduler{
		cron:        cron.New(),
		syncService: syncService,
		interval:    interval,
	}
}

// Start registers the batch job and starts the cron loop.
func (s *Scheduler) Start() error {
	spec := "@every " + s.interval.String()
	entryID, err := s.cron.AddFunc(spec, s.runBatch)
	if err != nil {
		return err
	}
	s.entryID = entryID

	s.cron.Start()
	log.Printf("Calendar sync scheduler started (every %s)", s.interval)
	return nil
}

// Stop gracefully shuts down the scheduler, waiting for a running batch.
func (s *Scheduler) Stop() {
	log.Println("Stopping calendar sync scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Calendar sync scheduler stopped")
}

// TriggerSync runs an immediate sync for one property in the background.
func (s *Scheduler) TriggerSync(propertyID string) {
	go func() {
		result, err := s.syncService.SyncProperty(context.Background(), propertyID)
		if err != nil {
			log.Printf("Manual sync failed for property %s: %v", propertyID, err)
			return
		}
		log.Printf("Manual sync for %s: %d events, %d bookings, %d jobs created",
			result.Address, result.EventsFound, result.BookingsFound, result.JobsCreated)
	}()
}

// NextRun returns when the next batch sync is due, or nil before Start.
func (s *Scheduler) NextRun() *time.Time {
	entry := s.cron.Entry(s.entryID)
	if entry.Next.IsZero() {
		return nil
	}
	return &entry.Next
}

// runBatch executes one scheduled batch sync.
func (s *Scheduler) runBatch() {
	log.Println("Starting scheduled calendar sync...")
	results := s.syncService.SyncAll(context.Background())

	created, failed := 0, 0
	for _, result := range results {
		created += result.JobsCreated
		if result.Error != nil {
			failed++
		}
	}
	log.Printf("Scheduled sync completed: %d properties, %d jobs created, %d failed",
		len(results), created, failed)
}
