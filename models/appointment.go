package models

import "time"

// Appointment statuses. Cancellation is a status transition, never a delete.
const (
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment represents a persisted booking. ProfessionalID is always a
// concrete staff member, even when the draft chose "any professional".
// EndTime is StartTime plus the service duration; the service's break time
// is not part of the stored interval, it only reserves space during slot
// search.
type Appointment struct {
	ID             string    `bson:"id" json:"id"`
	ClientID       string    `bson:"client_id" json:"clientId"`
	ServiceID      string    `bson:"service_id" json:"serviceId"`
	ProfessionalID string    `bson:"professional_id" json:"professionalId"`
	StartTime      time.Time `bson:"start_time" json:"startTime"`
	EndTime        time.Time `bson:"end_time" json:"endTime"`
	Status         string    `bson:"status" json:"status"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitzero"`
}

// Blocks reports whether this appointment occupies its professional's time.
func (a Appointment) Blocks() bool {
	return a.Status == AppointmentConfirmed
}

// AppointmentPatch carries the mutable fields of an appointment for the
// update path. Nil fields are left untouched.
type AppointmentPatch struct {
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Status    *string    `json:"status,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}
