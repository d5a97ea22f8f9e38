package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// calendarMarker must appear in a response body for it to be accepted as an
// iCal feed.
const calendarMarker = "BEGIN:VCALENDAR"

// Calendar providers (Airbnb among them) reject requests that don't look like
// they come from a browser, and none of them set permissive CORS headers, so
// mobile clients can't fetch feeds directly. This gateway performs the request
// server-side with browser-shaped headers.
const (
	acceptHeader    = "text/calendar, application/ics, */*"
	userAgentHeader = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// FetchError describes a failed calendar fetch. StatusCode carries the
// upstream HTTP status when the failure was a non-2xx response, and zero for
// network errors and non-calendar content.
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching calendar %s: %v", e.URL, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching calendar %s: upstream returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching calendar %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves remote calendar feeds, retrying transient failures.
type Fetcher struct {
	client    *http.Client
	attempts  int
	baseDelay time.Duration
	maxDelay  time.Duration
}

// NewFetcher creates a fetcher with the given per-attempt timeout and retry
// budget. Zero values select the defaults (30s timeout, 3 attempts).
func NewFetcher(timeout time.Duration, attempts int) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if attempts <= 0 {
		attempts = 3
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		attempts:  attempts,
		baseDelay: time.Second,
		maxDelay:  8 * time.Second,
	}
}

// FetchText downloads the calendar feed at url and returns its raw text.
// Each attempt is bounded by the client timeout; failed attempts are retried
// with exponential backoff until the budget is exhausted, and only then is
// the terminal *FetchError surfaced.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	var lastErr error
	delay := f.baseDelay

	for attempt := 0; attempt < f.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", &FetchError{URL: url, Err: ctx.Err()}
			}
			delay *= 2
			if delay > f.maxDelay {
				delay = f.maxDelay
			}
		}

		text, err := f.fetchOnce(ctx, url)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}

	return "", lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgentHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	text := string(body)
	if !strings.Contains(text, calendarMarker) {
		return "", &FetchError{URL: url, Message: "response does not contain calendar data"}
	}

	return text, nil
}
