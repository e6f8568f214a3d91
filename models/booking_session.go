package models

// Wizard steps of a booking session.
const (
	StepChoosingService      = "choosing_service"
	StepChoosingProfessional = "choosing_professional"
	StepChoosingDateTime     = "choosing_datetime"
	StepConfirmingBooking    = "confirming_booking"
)

// BookingSession holds the in-progress booking draft between wizard steps.
// It lives in the session cache, never in the database.
type BookingSession struct {
	SessionID    string              `json:"sessionId"`
	ClientID     string              `json:"clientId,omitempty"`
	Step         string              `json:"step"`
	Service      *Service            `json:"service,omitempty"`
	Professional *ProfessionalChoice `json:"professional,omitempty"`
	Date         string              `json:"date,omitempty"` // "2006-01-02"
	Time         string              `json:"time,omitempty"` // "15:04"

	// EditTargetID is set when the session reschedules an existing
	// appointment; service and professional are locked in that case.
	EditTargetID string `json:"editTargetId,omitempty"`

	// Availability is the last computed slot list for AvailabilityKey.
	// The key identifies the (service, professional, date) the slots were
	// computed for, so late responses for a stale selection are discarded.
	Availability    []TimeSlot `json:"availability,omitempty"`
	AvailabilityKey string     `json:"availabilityKey,omitempty"`
}

// ReadyToConfirm reports whether the draft carries everything the
// submission handler needs. The professional may still be "any".
func (s *BookingSession) ReadyToConfirm() bool {
	return s.Service != nil && s.Professional != nil && s.Professional.Valid() &&
		s.Date != "" && s.Time != ""
}

// Editing reports whether the session reschedules an existing appointment.
func (s *BookingSession) Editing() bool {
	return s.EditTargetID != ""
}

// BookingOutcome is the terminal result of a confirm call, surfaced to the
// client as the booking-result notification.
type BookingOutcome struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	Appointment *Appointment `json:"appointment,omitempty"`
}
