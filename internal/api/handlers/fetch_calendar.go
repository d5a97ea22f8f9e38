package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/turnover-manager/backend/internal/calendar"
)

// FetchCalendarRequest is the body for POST /fetchCalendar.
type FetchCalendarRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// FetchCalendarResponse is the success envelope for POST /fetchCalendar.
type FetchCalendarResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
}

// fetchCalendarError matches the envelope mobile clients expect from this
// endpoint, which predates the API-wide error format.
type fetchCalendarError struct {
	Error string `json:"error"`
}

// FetchCalendar proxies a calendar feed for clients that cannot make the
// cross-origin request themselves. Calendar hosts don't send permissive CORS
// headers, so the app calls this endpoint and receives the raw feed text.
//
// Upstream non-2xx statuses are mirrored back; non-calendar content and bad
// requests are 400; network failures after the retry budget are 502.
func FetchCalendar(fetcher *calendar.Fetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req FetchCalendarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(fetchCalendarError{Error: "invalid request body"})
			return
		}
		if err := validate.Struct(req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(fetchCalendarError{Error: "a valid url is required"})
			return
		}

		content, err := fetcher.FetchText(r.Context(), req.URL)
		if err != nil {
			status := http.StatusBadGateway

			var fetchErr *calendar.FetchError
			if errors.As(err, &fetchErr) {
				switch {
				case fetchErr.StatusCode != 0:
					status = fetchErr.StatusCode
				case fetchErr.Message != "":
					status = http.StatusBadRequest
				}
			}

			w.WriteHeader(status)
			json.NewEncoder(w).Encode(fetchCalendarError{Error: err.Error()})
			return
		}

		json.NewEncoder(w).Encode(FetchCalendarResponse{
			Success: true,
			Content: content,
		})
	}
}
