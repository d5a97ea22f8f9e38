// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"github.com/gorilla/mux"
	"github.com/turnover-manager/backend/internal/api/handlers"
	"github.com/turnover-manager/backend/internal/api/middleware"
	"github.com/turnover-manager/backend/internal/calendar"
	"github.com/turnover-manager/backend/internal/storage"
	"github.com/turnover-manager/backend/internal/websocket"
)

// Deps bundles the services the router hands to its handlers.
type Deps struct {
	DB         *storage.DB
	Properties *storage.PropertyRepository
	Jobs       *storage.JobRepository
	Hub        *websocket.Hub
	Fetcher    *calendar.Fetcher
	Sync       *calendar.SyncService
	Scheduler  *calendar.Scheduler
}

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(deps Deps) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	// Calendar proxy for mobile clients; top-level because the app calls it
	// directly.
	r.HandleFunc("/fetchCalendar", handlers.FetchCalendar(deps.Fetcher)).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()

	// Health and status endpoints
	api.HandleFunc("/health", handlers.HealthCheck(deps.DB)).Methods("GET")
	api.HandleFunc("/status", handlers.Status(deps.DB, deps.Jobs, deps.Hub, deps.Scheduler)).Methods("GET")

	// WebSocket endpoint
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(deps.Hub)).Methods("GET")

	// Property endpoints
	api.HandleFunc("/properties", handlers.ListProperties(deps.Properties)).Methods("GET")
	api.HandleFunc("/properties", handlers.CreateProperty(deps.Properties, deps.Scheduler)).Methods("POST")
	api.HandleFunc("/properties/{id}", handlers.GetProperty(deps.Properties)).Methods("GET")
	api.HandleFunc("/properties/{id}", handlers.UpdateProperty(deps.Properties, deps.Sync, deps.Scheduler)).Methods("PUT")
	api.HandleFunc("/properties/{id}", handlers.DeleteProperty(deps.Properties, deps.Sync)).Methods("DELETE")
	api.HandleFunc("/properties/{id}/sync", handlers.SyncProperty(deps.Sync)).Methods("POST")

	// Cleaning-job endpoints (read-only; mutated by the pipeline)
	api.HandleFunc("/jobs", handlers.ListJobs(deps.Jobs)).Methods("GET")
	api.HandleFunc("/jobs/{id}", handlers.GetJob(deps.Jobs)).Methods("GET")

	// Batch sync
	api.HandleFunc("/sync", handlers.SyncAll(deps.Sync)).Methods("POST")

	return r
}
