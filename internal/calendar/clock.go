package calendar

import "time"

// Clock supplies the current time. Sync and reconciliation read "now" exactly
// once per run through this interface so tests can pin the cutoff instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
