package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/turnover-manager/backend/internal/api/middleware"
	"github.com/turnover-manager/backend/internal/storage"
	"github.com/turnover-manager/backend/internal/storage/models"
)

// Cleaning jobs are materialized and removed by the sync pipeline only; the
// API exposes them read-only.

// ListJobs returns cleaning jobs, optionally filtered by address and status
// query parameters.
func ListJobs(jobs *storage.JobRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := models.JobFilter{
			Address: r.URL.Query().Get("address"),
		}

		if statusParam := r.URL.Query().Get("status"); statusParam != "" {
			status := models.JobStatus(statusParam)
			if !status.Valid() {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Unknown job status")
				return
			}
			filter.StatusIn = []models.JobStatus{status}
		}

		list, err := jobs.Find(r.Context(), filter)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query jobs")
			return
		}
		if list == nil {
			list = []models.CleaningJob{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

// GetJob returns a single cleaning job by ID.
func GetJob(jobs *storage.JobRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		job, err := jobs.GetByID(r.Context(), id)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query job")
			return
		}
		if job == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Job not found")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(job)
	}
}
