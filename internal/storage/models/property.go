// Package models contains the domain models for the application.
package models

import (
	"strings"
	"time"
)

// Property represents a managed rental property.
//
// Cleaning jobs correlate to a property by address text rather than by id, so
// that deleting and recreating a property under the same address still matches
// its existing jobs.
type Property struct {
	ID               string     `json:"id"`
	Address          string     `json:"address"`
	CalendarURL      string     `json:"calendar_url,omitempty"`
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	OwnerID          string     `json:"owner_id"`
	OwnerDisplayName string     `json:"owner_display_name,omitempty"`
	LastSyncedAt     *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// HasCalendar reports whether the property has a calendar feed linked.
func (p *Property) HasCalendar() bool {
	return strings.TrimSpace(p.CalendarURL) != ""
}
