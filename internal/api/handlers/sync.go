package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/turnover-manager/backend/internal/api/middleware"
	"github.com/turnover-manager/backend/internal/calendar"
	"github.com/turnover-manager/backend/internal/storage/models"
)

// SyncProperty runs an immediate calendar sync for one property and returns
// the result. The terminal sync error is surfaced to the caller.
func SyncProperty(syncService *calendar.SyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		result, err := syncService.SyncProperty(r.Context(), id)
		if err != nil {
			middleware.WriteErrorWithDetails(w, http.StatusBadGateway, middleware.ErrSyncFailed, err.Error(), result)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// SyncAll runs a batch sync over every property with a linked calendar and
// returns the per-property results. Individual failures are reported in the
// results, never aborting the batch.
func SyncAll(syncService *calendar.SyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := syncService.SyncAll(r.Context())
		if results == nil {
			results = []models.SyncResult{}
		}

		type syncSummary struct {
			models.SyncResult
			Error string `json:"error,omitempty"`
		}

		summaries := make([]syncSummary, len(results))
		failed := 0
		for i, result := range results {
			summaries[i] = syncSummary{SyncResult: result}
			if result.Error != nil {
				summaries[i].Error = result.Error.Error()
				failed++
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"synced":  len(results),
			"failed":  failed,
			"results": summaries,
		})
	}
}
