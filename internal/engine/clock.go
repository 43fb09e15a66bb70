package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The Calculator reads it once per chart to pick the current year (saeun).
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Useful for reproducible batch runs.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
