package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/turnover-manager/backend/internal/api/middleware"
	"github.com/turnover-manager/backend/internal/calendar"
	"github.com/turnover-manager/backend/internal/storage"
	"github.com/turnover-manager/backend/internal/storage/models"
)

var validate = validator.New()

// PropertyRequest is the body for creating or updating a property.
type PropertyRequest struct {
	Address          string  `json:"address" validate:"required"`
	CalendarURL      string  `json:"calendar_url" validate:"omitempty,url"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	OwnerID          string  `json:"owner_id"`
	OwnerDisplayName string  `json:"owner_display_name"`
}

// ListProperties returns all properties.
func ListProperties(properties *storage.PropertyRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := properties.List(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query properties")
			return
		}
		if list == nil {
			list = []models.Property{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

// CreateProperty adds a new property. If a calendar URL is supplied, an
// initial sync is triggered immediately.
func CreateProperty(properties *storage.PropertyRepository, scheduler *calendar.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if req.OwnerID == "" {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Owner id is required")
			return
		}
		if err := validate.Struct(req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, err.Error())
			return
		}

		property := &models.Property{
			Address:          req.Address,
			CalendarURL:      req.CalendarURL,
			Latitude:         req.Latitude,
			Longitude:        req.Longitude,
			OwnerID:          req.OwnerID,
			OwnerDisplayName: req.OwnerDisplayName,
		}

		if err := properties.Create(r.Context(), property); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to create property")
			return
		}

		if scheduler != nil && property.HasCalendar() {
			scheduler.TriggerSync(property.ID)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(property)
	}
}

// GetProperty returns a single property by ID.
func GetProperty(properties *storage.PropertyRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		property, err := properties.GetByID(r.Context(), id)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query property")
			return
		}
		if property == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Property not found")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(property)
	}
}

// UpdateProperty updates an existing property. Clearing the calendar URL
// removes the property's future feed-created cleaning jobs; setting a new one
// triggers an immediate sync.
func UpdateProperty(properties *storage.PropertyRepository, syncService *calendar.SyncService, scheduler *calendar.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		ctx := r.Context()

		before, err := properties.GetByID(ctx, id)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query property")
			return
		}
		if before == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Property not found")
			return
		}

		var req PropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, err.Error())
			return
		}

		after := *before
		after.Address = req.Address
		after.CalendarURL = req.CalendarURL
		after.Latitude = req.Latitude
		after.Longitude = req.Longitude
		after.OwnerDisplayName = req.OwnerDisplayName

		if err := properties.Update(ctx, &after); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to update property")
			return
		}

		if syncService != nil {
			if _, err := syncService.HandlePropertyUpdated(ctx, before, &after); err != nil {
				log.Printf("Error removing calendar jobs for %s: %v", before.Address, err)
			}
		}

		if scheduler != nil && after.HasCalendar() && after.CalendarURL != before.CalendarURL {
			scheduler.TriggerSync(after.ID)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&after)
	}
}

// DeleteProperty removes a property and its future feed-created cleaning
// jobs, keyed by the address captured before the delete.
func DeleteProperty(properties *storage.PropertyRepository, syncService *calendar.SyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		ctx := r.Context()

		before, err := properties.GetByID(ctx, id)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query property")
			return
		}
		if before == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Property not found")
			return
		}

		if err := properties.Delete(ctx, id); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to delete property")
			return
		}

		deleted := 0
		if syncService != nil {
			deleted, err = syncService.HandlePropertyDeleted(ctx, before)
			if err != nil {
				log.Printf("Error removing calendar jobs for %s: %v", before.Address, err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"deleted":      true,
			"jobs_removed": deleted,
		})
	}
}
