package messaging

import "context"

// Messenger delivers SMS messages to callers. Sends are best-effort from the
// booking flow's perspective; a failed send never rolls back a booking.
type Messenger interface {
	SendSMS(ctx context.Context, toPhone, body string) error
}
