package dialogue

import (
	"context"
	"testing"

	"frontdesk/models"
	"frontdesk/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	slots    []string
	lastDate string
}

func (r *stubResolver) CheckSlots(ctx context.Context, dateExpr string) []string {
	r.lastDate = dateExpr
	return r.slots
}

type stubExecutor struct {
	lastReq models.BookAppointmentCall
	calls   int
	reply   string
}

func (e *stubExecutor) Book(ctx context.Context, req models.BookAppointmentCall) string {
	e.calls++
	e.lastReq = req
	if e.reply == "" {
		return booking.ReplyBookingConfirmed
	}
	return e.reply
}

func newDispatcher() (*Dispatcher, *stubResolver, *stubExecutor) {
	resolver := &stubResolver{slots: []string{"09:00", "10:00"}}
	executor := &stubExecutor{}
	return &Dispatcher{Resolver: resolver, Executor: executor}, resolver, executor
}

func TestDispatchCheckSlotsRendersSuggestions(t *testing.T) {
	d, resolver, _ := newDispatcher()

	reply := d.Dispatch(context.Background(), models.ToolInvocation{
		Name: models.ToolCheckSlots,
		Args: map[string]string{"date": "tomorrow"},
	}, "+15550001111")

	assert.Equal(t, "We have openings at 09:00, 10:00. Which one works best?", reply)
	assert.Equal(t, "tomorrow", resolver.lastDate)
}

func TestDispatchCheckSlotsNoOpenings(t *testing.T) {
	d, resolver, _ := newDispatcher()
	resolver.slots = nil

	reply := d.Dispatch(context.Background(), models.ToolInvocation{
		Name: models.ToolCheckSlots,
		Args: map[string]string{"date": "friday"},
	}, "+15550001111")

	assert.Equal(t, ReplyNoOpenings, reply, "an empty result must be an honest no-openings reply")
}

func TestDispatchCheckSlotsMissingDate(t *testing.T) {
	d, _, executor := newDispatcher()

	reply := d.Dispatch(context.Background(), models.ToolInvocation{
		Name: models.ToolCheckSlots,
		Args: map[string]string{},
	}, "+15550001111")

	assert.Equal(t, ReplyClarify, reply)
	assert.Zero(t, executor.calls)
}

func TestDispatchBookOverridesModelAssertedPhone(t *testing.T) {
	d, _, executor := newDispatcher()

	reply := d.Dispatch(context.Background(), models.ToolInvocation{
		Name: models.ToolBookAppointment,
		Args: map[string]string{
			"name":    "Jane",
			"phone":   "+19998887777", // asserted by the model, untrusted
			"date":    "2025-11-03",
			"time":    "14:00",
			"service": "Cleaning",
		},
	}, "+15551234567")

	assert.Equal(t, booking.ReplyBookingConfirmed, reply)
	require.Equal(t, 1, executor.calls)
	assert.Equal(t, "+15551234567", executor.lastReq.Phone,
		"bookings must use the verified transport number")
	assert.Equal(t, "Jane", executor.lastReq.Name)
}

func TestDispatchBookMissingFields(t *testing.T) {
	d, _, executor := newDispatcher()

	reply := d.Dispatch(context.Background(), models.ToolInvocation{
		Name: models.ToolBookAppointment,
		Args: map[string]string{"name": "Jane"},
	}, "+15551234567")

	assert.Equal(t, ReplyClarify, reply)
	assert.Zero(t, executor.calls, "no partial execution on malformed arguments")
}

func TestDispatchUnsupportedTool(t *testing.T) {
	d, _, executor := newDispatcher()

	reply := d.Dispatch(context.Background(), models.ToolInvocation{
		Name: "cancel_appointment",
		Args: map[string]string{"date": "tomorrow"},
	}, "+15551234567")

	assert.Equal(t, ReplyUnsupportedTool, reply)
	assert.Zero(t, executor.calls)
}
