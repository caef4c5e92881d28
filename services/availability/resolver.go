package availability

import (
	"context"
	"time"

	"frontdesk/services/calendar"
	"frontdesk/utils"

	"go.uber.org/zap"
)

// SlotCatalog is the fixed daily schedule appointments start on.
var SlotCatalog = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

// fallbackSlots is offered when the calendar cannot be reached. Availability
// always has some answer so the conversation keeps moving.
var fallbackSlots = []string{"10:00", "14:00"}

// maxSuggestions caps how many free slots are surfaced to the caller.
const maxSuggestions = 3

// Resolver computes free appointment slots for a caller-supplied date
// expression.
type Resolver interface {
	CheckSlots(ctx context.Context, dateExpr string) []string
}

// DefaultResolver subtracts calendar busy times from the fixed slot catalog.
type DefaultResolver struct {
	Calendar calendar.Calendar
	Now      func() time.Time
}

// NewDefaultResolver wires a resolver against the given calendar.
func NewDefaultResolver(cal calendar.Calendar) *DefaultResolver {
	return &DefaultResolver{Calendar: cal, Now: time.Now}
}

// CheckSlots returns up to three free slots, in catalog order, for the window
// the date expression resolves to. A calendar failure degrades to the fixed
// fallback pair; an empty result means no openings remain and must be
// rendered honestly by the caller of this resolver.
func (r *DefaultResolver) CheckSlots(ctx context.Context, dateExpr string) []string {
	logger := utils.GetLogger()

	from, to := ResolveWindow(dateExpr, r.Now())
	events, err := r.Calendar.ListEvents(ctx, from, to)
	if err != nil {
		logger.Warn("CheckSlots: calendar unreachable, using fallback slots",
			zap.String("dateExpr", dateExpr), zap.Error(err))
		out := make([]string, len(fallbackSlots))
		copy(out, fallbackSlots)
		return out
	}

	busy := make(map[string]bool, len(events))
	for _, ev := range events {
		busy[ev.Start.Format("15:04")] = true
	}

	var free []string
	for _, slot := range SlotCatalog {
		if busy[slot] {
			continue
		}
		free = append(free, slot)
		if len(free) == maxSuggestions {
			break
		}
	}
	return free
}
