package models

import "testing"

func TestJobStatusTerminal(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   bool
	}{
		{JobStatusScheduled, false},
		{JobStatusOpen, false},
		{JobStatusBidding, false},
		{JobStatusAccepted, false},
		{JobStatusCompleted, true},
		{JobStatusCancelled, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestJobStatusValid(t *testing.T) {
	if !JobStatusAccepted.Valid() {
		t.Error("accepted should be valid")
	}
	if JobStatus("done").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestActiveStatusesExcludeTerminal(t *testing.T) {
	for _, s := range ActiveStatuses() {
		if s.Terminal() {
			t.Errorf("active statuses must not include terminal status %s", s)
		}
	}
	if len(ActiveStatuses()) != 4 {
		t.Errorf("expected 4 active statuses, got %d", len(ActiveStatuses()))
	}
}

func TestFromICal(t *testing.T) {
	tests := []struct {
		name string
		job  CleaningJob
		want bool
	}{
		{"source set", CleaningJob{Source: SourceICal}, true},
		{"legacy reservation id only", CleaningJob{ReservationID: "HM123"}, true},
		{"both", CleaningJob{Source: SourceICal, ReservationID: "HM123"}, true},
		{"manual", CleaningJob{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.job.FromICal(); got != tt.want {
				t.Errorf("FromICal() = %v, want %v", got, tt.want)
			}
		})
	}
}
