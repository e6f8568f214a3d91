package booking

import "velora/models"

// BookingSessionService defines the interface for the stateful booking
// wizard: service, professional, date/time, confirmation.
type BookingSessionService interface {
	// StartSession creates a fresh, empty booking session for the wizard.
	StartSession(clientID string) (*models.BookingSession, error)
	// StartEditSession creates a session seeded from an existing
	// appointment; only its date and time may change.
	StartEditSession(clientID, appointmentID string) (*models.BookingSession, error)
	// GetSession retrieves the session for pre-selection when navigating.
	GetSession(sessionID string) (*models.BookingSession, error)

	SelectService(sessionID, serviceID string) (*models.BookingSession, error)
	SelectProfessional(sessionID string, choice models.ProfessionalChoice) (*models.BookingSession, error)
	SelectDateTime(sessionID, date, timeOfDay string) (*models.BookingSession, error)
	// StepBack moves one wizard step back without clearing the fields the
	// later steps already chose.
	StepBack(sessionID string) (*models.BookingSession, error)

	// RefreshAvailability computes the slot list for the given day under
	// the session's current service/professional selection, discarding the
	// result if the selection changed while the query was in flight.
	RefreshAvailability(sessionID, date string) (*models.BookingSession, error)
	// FindSlotsByRange scans forward for the next days with free slots
	// inside a time-of-day range.
	FindSlotsByRange(sessionID string, query RangeQuery) ([]models.DaySlots, error)

	// Confirm turns a complete draft into a persisted appointment.
	Confirm(sessionID, clientID string) (*models.BookingOutcome, error)
	// CancelSession discards the draft entirely, edit target included.
	CancelSession(sessionID string) error

	ListServices() ([]models.Service, error)
	ListProfessionals(serviceID string) ([]models.Professional, error)
}
