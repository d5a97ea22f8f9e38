package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const minimalFeed = "BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"

func TestFetchTextSetsBrowserHeaders(t *testing.T) {
	var gotAccept, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(minimalFeed))
	}))
	defer server.Close()

	f := NewFetcher(time.Second, 1)
	text, err := f.FetchText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchText: %v", err)
	}
	if text != minimalFeed {
		t.Errorf("unexpected body: %q", text)
	}
	if gotAccept != acceptHeader {
		t.Errorf("Accept = %q, want %q", gotAccept, acceptHeader)
	}
	if !strings.Contains(gotUserAgent, "Mozilla/5.0") {
		t.Errorf("User-Agent = %q, want a browser identity", gotUserAgent)
	}
}

func TestFetchTextRetriesTransientFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(minimalFeed))
	}))
	defer server.Close()

	f := NewFetcher(time.Second, 3)
	f.baseDelay = time.Millisecond
	f.maxDelay = time.Millisecond

	if _, err := f.FetchText(context.Background(), server.URL); err != nil {
		t.Fatalf("FetchText after retries: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

func TestFetchTextUpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := NewFetcher(time.Second, 2)
	f.baseDelay = time.Millisecond

	_, err := f.FetchText(context.Background(), server.URL)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fetchErr.StatusCode)
	}
}

func TestFetchTextRejectsNonCalendarContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>sign in</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(time.Second, 2)
	f.baseDelay = time.Millisecond

	_, err := f.FetchText(context.Background(), server.URL)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fetchErr.StatusCode != 0 || fetchErr.Message == "" {
		t.Errorf("expected content error, got status=%d message=%q", fetchErr.StatusCode, fetchErr.Message)
	}
}

func TestFetchTextHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(time.Second, 3)
	f.baseDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.FetchText(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}
