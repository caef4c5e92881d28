package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	recordsRepo "frontdesk/database/repository/records"
	"frontdesk/models"
	"frontdesk/services/calendar"
	"frontdesk/services/messaging"
	"frontdesk/services/tasks"
	"frontdesk/utils"

	"go.uber.org/zap"
)

// Spoken replies for booking outcomes. Booking never surfaces a raw failure
// to the caller's ear; every outcome is a sentence.
const (
	ReplyBookingConfirmed = "Appointment confirmed! I've sent you a text reminder."
	ReplyBookingFailed    = "Sorry, there was an issue. Please try again."
	ReplySlotTaken        = "I'm sorry, that time was just taken. Could you pick another time?"
)

// Executor commits a confirmed slot to the calendar and sends the SMS
// confirmation.
type Executor interface {
	Book(ctx context.Context, req models.BookAppointmentCall) string
}

// DefaultExecutor is the production booking executor. Booking attempts are
// serialized through a single mutex per process and re-checked against the
// calendar inside the critical section, so two concurrent attempts on the
// same slot commit exactly once.
type DefaultExecutor struct {
	Calendar     calendar.Calendar
	Messenger    messaging.Messenger
	Records      recordsRepo.AppointmentRecordRepository
	Reminders    tasks.Scheduler
	BusinessName string
	ReminderLead time.Duration

	mu sync.Mutex
}

// Book commits the appointment and returns the spoken confirmation text.
// The calendar commit is authoritative: SMS, the audit record, and the
// reminder are best-effort and never roll it back.
func (e *DefaultExecutor) Book(ctx context.Context, req models.BookAppointmentCall) string {
	logger := utils.GetLogger()

	err := e.book(ctx, req)
	if err == nil {
		return ReplyBookingConfirmed
	}

	var be *BookingError
	if errors.As(err, &be) && be.Code == CodeSchedulingConflict {
		logger.Info("Book: slot conflict", zap.String("date", req.Date), zap.String("time", req.Time))
		return ReplySlotTaken
	}
	logger.Error("Book: booking failed", zap.Error(err))
	return ReplyBookingFailed
}

func (e *DefaultExecutor) book(ctx context.Context, req models.BookAppointmentCall) error {
	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, time.Local)
	if err != nil {
		return NewMalformedRequestError(fmt.Sprintf("bad date/time %q %q: %v", req.Date, req.Time, err))
	}
	end := start.Add(models.AppointmentDurationMinutes * time.Minute)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkConflict(ctx, start, end); err != nil {
		return err
	}

	ev := calendar.Event{
		Title:       fmt.Sprintf("%s - %s", req.Service, req.Name),
		Description: fmt.Sprintf("Phone: %s", req.Phone),
		Start:       start,
		End:         end,
	}
	if err := e.Calendar.InsertEvent(ctx, ev); err != nil {
		return NewUpstreamError(fmt.Sprintf("calendar insert: %v", err))
	}

	// Calendar commit is the point of no return; everything below is a
	// best-effort courtesy.
	e.sendConfirmation(ctx, req)
	e.recordAppointment(ctx, req)
	e.scheduleReminder(req, start)
	return nil
}

// checkConflict re-lists the slot interval under the booking mutex. Resolver
// suggestions can go stale between turns, so the committed state is what
// counts.
func (e *DefaultExecutor) checkConflict(ctx context.Context, start, end time.Time) error {
	events, err := e.Calendar.ListEvents(ctx, start, end)
	if err != nil {
		// The insert attempt will surface a real outage; conflicts stay the
		// calendar's call in that case.
		utils.GetLogger().Warn("checkConflict: list failed, proceeding to insert", zap.Error(err))
		return nil
	}
	for _, ev := range events {
		evEnd := ev.End
		if evEnd.IsZero() {
			evEnd = ev.Start.Add(models.AppointmentDurationMinutes * time.Minute)
		}
		if ev.Start.Before(end) && evEnd.After(start) {
			return NewSchedulingConflictError(fmt.Sprintf("slot %s already taken", start.Format(time.RFC3339)))
		}
	}
	return nil
}

func (e *DefaultExecutor) sendConfirmation(ctx context.Context, req models.BookAppointmentCall) {
	body := fmt.Sprintf("Hi %s, your %s is confirmed for %s at %s. See you at %s!",
		req.Name, req.Service, req.Date, req.Time, e.BusinessName)
	if err := e.Messenger.SendSMS(ctx, req.Phone, body); err != nil {
		utils.GetLogger().Warn("sendConfirmation: SMS failed", zap.String("to", req.Phone), zap.Error(err))
	}
}

func (e *DefaultExecutor) recordAppointment(ctx context.Context, req models.BookAppointmentCall) {
	if e.Records == nil {
		return
	}
	record := models.AppointmentRecord{
		Name:    req.Name,
		Phone:   req.Phone,
		Date:    req.Date,
		Time:    req.Time,
		Service: req.Service,
	}
	if _, err := e.Records.Create(ctx, record); err != nil {
		utils.GetLogger().Warn("recordAppointment: audit insert failed", zap.Error(err))
	}
}

func (e *DefaultExecutor) scheduleReminder(req models.BookAppointmentCall, start time.Time) {
	if e.Reminders == nil {
		return
	}
	fireAt := start.Add(-e.ReminderLead)
	if fireAt.Before(time.Now()) {
		return
	}
	payload := models.ReminderPayload{
		Phone:   req.Phone,
		Name:    req.Name,
		Service: req.Service,
		Date:    req.Date,
		Time:    req.Time,
	}
	if err := e.Reminders.ScheduleReminder(payload, fireAt); err != nil {
		utils.GetLogger().Warn("scheduleReminder: enqueue failed", zap.Error(err))
	}
}
