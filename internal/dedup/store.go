// Package dedup implements the idempotency gate over a shared
// key-value store.
package dedup

import "context"

// Outcome is the tri-state result of a reservation attempt.
type Outcome int

const (
	// Created means the key did not exist and was written: first-seen.
	Created Outcome = iota
	// Exists means the key was already present: duplicate delivery.
	Exists
	// Unavailable means the store could not be reached. Callers map
	// this to the same verdict as Created so an outage never blocks
	// intake.
	Unavailable
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Exists:
		return "exists"
	case Unavailable:
		return "unavailable"
	}
	return "unknown"
}

// Store is the idempotency capability consumed by the intake gate.
// Reserve must be atomic at the store level: a single create-if-absent
// with expiry, never a read followed by a write.
type Store interface {
	Reserve(ctx context.Context, messageID string) Outcome
	Ping(ctx context.Context) error
	Close() error
}
