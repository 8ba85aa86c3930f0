// Package common holds base types shared across domain packages.
package common

// Event is the marker interface for all domain events published on the
// notification bus.
type Event interface {
	// Type returns the event type identifier used for handler registration.
	Type() string
}
