package dialogue

import (
	"context"
	"fmt"
	"strings"

	"frontdesk/models"
	"frontdesk/services/availability"
	"frontdesk/services/booking"
	"frontdesk/utils"

	"go.uber.org/zap"
)

// Spoken replies for dispatch failures. A bad tool request never crashes a
// turn; it degrades to one of these.
const (
	ReplyUnsupportedTool = "Let me have someone from the office help you with that."
	ReplyClarify         = "I'm sorry, I didn't catch all the details. Could you say that again?"
	ReplyNoOpenings      = "I'm sorry, we have no openings around then. Would another day work?"
)

// Dispatcher maps reasoning-engine tool invocations onto the availability
// resolver and the booking executor.
type Dispatcher struct {
	Resolver availability.Resolver
	Executor booking.Executor
}

// Dispatch validates one tool invocation and renders its spoken result.
// callerPhone is the verified number from the transport; it always overrides
// whatever phone the engine asserted for a booking.
func (d *Dispatcher) Dispatch(ctx context.Context, inv models.ToolInvocation, callerPhone string) string {
	logger := utils.GetLogger()

	switch inv.Name {
	case models.ToolCheckSlots:
		call, err := parseCheckSlots(inv)
		if err != nil {
			logger.Warn("Dispatch: malformed check_slots arguments", zap.Error(err))
			return ReplyClarify
		}
		slots := d.Resolver.CheckSlots(ctx, call.Date)
		if len(slots) == 0 {
			return ReplyNoOpenings
		}
		return fmt.Sprintf("We have openings at %s. Which one works best?", strings.Join(slots, ", "))

	case models.ToolBookAppointment:
		call, err := parseBookAppointment(inv)
		if err != nil {
			logger.Warn("Dispatch: malformed book_appointment arguments", zap.Error(err))
			return ReplyClarify
		}
		// Never book against a model-asserted number.
		call.Phone = callerPhone
		return d.Executor.Book(ctx, call)

	default:
		logger.Warn("Dispatch: unsupported tool requested", zap.String("tool", inv.Name))
		return ReplyUnsupportedTool
	}
}

func parseCheckSlots(inv models.ToolInvocation) (models.CheckSlotsCall, error) {
	date := strings.TrimSpace(inv.Args["date"])
	if date == "" {
		return models.CheckSlotsCall{}, fmt.Errorf("check_slots: missing date")
	}
	return models.CheckSlotsCall{Date: date}, nil
}

// parseBookAppointment requires every field except phone, which is replaced
// with the verified caller number regardless of what the engine sent.
func parseBookAppointment(inv models.ToolInvocation) (models.BookAppointmentCall, error) {
	call := models.BookAppointmentCall{
		Name:    strings.TrimSpace(inv.Args["name"]),
		Phone:   strings.TrimSpace(inv.Args["phone"]),
		Date:    strings.TrimSpace(inv.Args["date"]),
		Time:    strings.TrimSpace(inv.Args["time"]),
		Service: strings.TrimSpace(inv.Args["service"]),
	}
	if call.Name == "" || call.Date == "" || call.Time == "" || call.Service == "" {
		return models.BookAppointmentCall{}, fmt.Errorf("book_appointment: missing required fields")
	}
	return call, nil
}
