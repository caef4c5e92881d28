package models

// Tool names the reasoning engine may request.
const (
	ToolCheckSlots      = "check_slots"
	ToolBookAppointment = "book_appointment"
)

// ToolInvocation is a raw tool request as produced by the reasoning engine.
// It is validated into one of the typed calls at the dispatcher boundary
// before anything acts on it.
type ToolInvocation struct {
	Name string            `json:"name"`
	Args map[string]string `json:"args"`
}

// CheckSlotsCall is a validated check_slots invocation.
type CheckSlotsCall struct {
	Date string
}

// BookAppointmentCall is a validated book_appointment invocation. Phone is
// replaced with the verified transport number before booking.
type BookAppointmentCall struct {
	Name    string
	Phone   string
	Date    string
	Time    string
	Service string
}
