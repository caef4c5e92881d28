package models

import "time"

// AppointmentDurationMinutes is the fixed visit length for every service.
const AppointmentDurationMinutes = 45

// Appointment is a confirmed booking as committed to the calendar. It is
// never mutated after creation; there is no reschedule or cancel path.
type Appointment struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time"` // HH:MM
	Service         string `json:"service"`
	DurationMinutes int    `json:"durationMinutes"`
}

// AppointmentRecord is the audit copy of a committed appointment persisted
// in Mongo, written best-effort after the calendar commit.
type AppointmentRecord struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	Date      string    `bson:"date" json:"date"`
	Time      string    `bson:"time" json:"time"`
	Service   string    `bson:"service" json:"service"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is the task payload for a scheduled SMS reminder.
type ReminderPayload struct {
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}
