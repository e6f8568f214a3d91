package appointmentRepo

import (
	"time"

	"velora/models"
)

// AppointmentRepository defines data access for appointments. Records are
// never physically deleted; cancellation is a status transition.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID.
	GetByID(id string) (*models.Appointment, error)
	// ListForRange retrieves appointments of any status whose interval
	// falls inside [from, to), optionally restricted to the given
	// professionals. An empty professionalIDs slice means no restriction.
	ListForRange(professionalIDs []string, from, to time.Time) ([]models.Appointment, error)
	// ListForClient retrieves a client's appointments, newest first.
	ListForClient(clientID string) ([]models.Appointment, error)
	// Create inserts a new appointment record.
	Create(appt *models.Appointment) error
	// Update applies a patch to an existing appointment.
	Update(id string, patch models.AppointmentPatch) (*models.Appointment, error)
	// Cancel flips an appointment's status to cancelled.
	Cancel(id string) error
	// CompletePastConfirmed flips confirmed appointments whose end time is
	// before the cutoff to completed, returning how many were updated.
	CompletePastConfirmed(cutoff time.Time) (int64, error)
}
