package calendar

import (
	"context"
	"time"
)

// Event is a committed calendar entry.
type Event struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// Calendar is the scheduling source of truth. Assumed read-after-write
// consistent within a single booking attempt.
type Calendar interface {
	ListEvents(ctx context.Context, from, to time.Time) ([]Event, error)
	InsertEvent(ctx context.Context, ev Event) error
}
