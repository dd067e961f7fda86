package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// HistoryEntry records one status change: the status entered, who caused it,
// and when. Entries are append-only and monotonically increasing in time.
type HistoryEntry struct {
	status    Status
	actor     kernel.Actor
	timestamp time.Time
}

// NewHistoryEntry creates a history record for a completed transition.
func NewHistoryEntry(status Status, actor kernel.Actor, timestamp time.Time) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := actor.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{status: status, actor: actor, timestamp: timestamp}, nil
}

// Status returns the status the order entered.
func (h HistoryEntry) Status() Status {
	return h.status
}

// Actor returns who caused the change.
func (h HistoryEntry) Actor() kernel.Actor {
	return h.actor
}

// Timestamp returns when the change happened.
func (h HistoryEntry) Timestamp() time.Time {
	return h.timestamp
}
