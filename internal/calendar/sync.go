package calendar

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/turnover-manager/backend/internal/storage/models"
	"github.com/turnover-manager/backend/internal/websocket"
)

// SyncService is the pipeline entry point: given a property it pulls the
// calendar feed, parses and classifies it, reconciles cleaning jobs, and
// records sync completion.
type SyncService struct {
	properties  PropertyStore
	jobs        JobStore
	fetcher     *Fetcher
	parser      *Parser
	reconciler  *Reconciler
	clock       Clock
	broadcaster *websocket.EventBroadcaster
}

// NewSyncService creates a sync service. broadcaster may be nil when no live
// event stream is attached; checkoutTime as in NewReconciler.
func NewSyncService(
	properties PropertyStore,
	jobs JobStore,
	fetcher *Fetcher,
	broadcaster *websocket.EventBroadcaster,
	clock Clock,
	checkoutTime string,
) *SyncService {
	if clock == nil {
		clock = SystemClock()
	}
	if fetcher == nil {
		fetcher = NewFetcher(0, 0)
	}
	return &SyncService{
		properties:  properties,
		jobs:        jobs,
		fetcher:     fetcher,
		parser:      NewParser(clock),
		reconciler:  NewReconciler(jobs, clock, checkoutTime),
		clock:       clock,
		broadcaster: broadcaster,
	}
}

// SyncProperty synchronizes a single property's calendar feed. The terminal
// error is surfaced to the caller; a result is returned alongside it when the
// run got far enough to produce one.
func (s *SyncService) SyncProperty(ctx context.Context, propertyID string) (*models.SyncResult, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("getting property: %w", err)
	}
	if property == nil {
		return nil, fmt.Errorf("property not found: %s", propertyID)
	}
	if !property.HasCalendar() {
		return nil, fmt.Errorf("property %s has no calendar url", propertyID)
	}

	result := &models.SyncResult{
		PropertyID: property.ID,
		Address:    property.Address,
		SyncedAt:   s.clock.Now().UTC(),
	}

	raw, err := s.fetcher.FetchText(ctx, property.CalendarURL)
	if err != nil {
		result.Error = err
		if s.broadcaster != nil {
			s.broadcaster.BroadcastSyncError(property.ID, property.Address, err)
		}
		return result, err
	}

	events := s.parser.Parse(raw)
	result.EventsFound = len(events)

	bookings := Classify(events)
	result.BookingsFound = len(bookings)

	created, err := s.reconciler.Reconcile(ctx, property, bookings)
	result.JobsCreated = created
	if err != nil {
		result.Error = err
		if s.broadcaster != nil {
			s.broadcaster.BroadcastSyncError(property.ID, property.Address, err)
		}
		return result, err
	}

	// Record completion once per run, even when nothing was created.
	if err := s.properties.SetLastSyncedAt(ctx, property.ID, s.clock.Now()); err != nil {
		log.Printf("Failed to record sync time for property %s: %v", property.ID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastSyncCompleted(*result)
	}

	return result, nil
}

// SyncAll synchronizes every property that has a calendar linked, one
// independent task per property. A failing property is logged and never
// blocks the others; there is no ordering guarantee between properties.
func (s *SyncService) SyncAll(ctx context.Context) []models.SyncResult {
	properties, err := s.properties.ListWithCalendar(ctx)
	if err != nil {
		log.Printf("Error listing properties for sync: %v", err)
		return nil
	}

	results := make([]models.SyncResult, len(properties))
	var wg sync.WaitGroup

	for i, property := range properties {
		wg.Add(1)
		go func(i int, property models.Property) {
			defer wg.Done()

			result, err := s.SyncProperty(ctx, property.ID)
			if err != nil {
				log.Printf("Error syncing property %s (%s): %v", property.ID, property.Address, err)
				if result == nil {
					result = &models.SyncResult{
						PropertyID: property.ID,
						Address:    property.Address,
						Error:      err,
						SyncedAt:   s.clock.Now().UTC(),
					}
				}
			}
			results[i] = *result
		}(i, property)
	}

	wg.Wait()
	return results
}

// HandlePropertyUpdated reacts to a property update given its before and
// after state. When the calendar URL transitions from set to empty, future
// feed-created jobs for the address are removed.
func (s *SyncService) HandlePropertyUpdated(ctx context.Context, before, after *models.Property) (int, error) {
	if !before.HasCalendar() || after.HasCalendar() {
		return 0, nil
	}

	deleted, err := s.reconciler.RemoveCalendarJobs(ctx, before.Address)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Printf("Removed %d calendar jobs for %s (calendar unlinked)", deleted, before.Address)
		if s.broadcaster != nil {
			s.broadcaster.BroadcastJobsRemoved(before.Address, deleted)
		}
	}
	return deleted, nil
}

// HandlePropertyDeleted reacts to a property deletion, keyed by the address
// captured before the delete.
func (s *SyncService) HandlePropertyDeleted(ctx context.Context, before *models.Property) (int, error) {
	deleted, err := s.reconciler.RemoveCalendarJobs(ctx, before.Address)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Printf("Removed %d calendar jobs for %s (property deleted)", deleted, before.Address)
		if s.broadcaster != nil {
			s.broadcaster.BroadcastJobsRemoved(before.Address, deleted)
		}
	}
	return deleted, nil
}
