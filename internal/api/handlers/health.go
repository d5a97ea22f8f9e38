// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/turnover-manager/backend/internal/calendar"
	"github.com/turnover-manager/backend/internal/storage"
	"github.com/turnover-manager/backend/internal/websocket"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	DBConnected bool   `json:"db_connected"`
}

// HealthCheck returns a handler that performs a health check.
func HealthCheck(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbConnected := db.Ping() == nil

		status := "healthy"
		if !dbConnected {
			status = "degraded"
		}

		response := HealthResponse{
			Status:      status,
			DBConnected: dbConnected,
		}

		w.Header().Set("Content-Type", "application/json")
		if status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(response)
	}
}

// StatusResponse represents the system status response.
type StatusResponse struct {
	PropertiesCount  int            `json:"properties_count"`
	CalendarsLinked  int            `json:"calendars_linked"`
	JobsByStatus     map[string]int `json:"jobs_by_status"`
	NextSyncAt       string         `json:"next_sync_at,omitempty"`
	ConnectedClients int            `json:"connected_clients"`
}

// Status returns a handler that provides system status information.
func Status(db *storage.DB, jobs *storage.JobRepository, hub *websocket.Hub, scheduler *calendar.Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var propertiesCount int
		db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties").Scan(&propertiesCount)

		var calendarsLinked int
		db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties WHERE TRIM(calendar_url) != ''").Scan(&calendarsLinked)

		jobsByStatus := map[string]int{}
		if counts, err := jobs.CountByStatus(ctx); err == nil {
			for status, count := range counts {
				jobsByStatus[string(status)] = count
			}
		}

		response := StatusResponse{
			PropertiesCount:  propertiesCount,
			CalendarsLinked:  calendarsLinked,
			JobsByStatus:     jobsByStatus,
			ConnectedClients: hub.ClientCount(),
		}

		if scheduler != nil {
			if next := scheduler.NextRun(); next != nil {
				response.NextSyncAt = next.UTC().Format("2006-01-02T15:04:05Z07:00")
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
