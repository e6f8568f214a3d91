package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appointmentRepo "velora/database/repository/appointment"
	catalogRepo "velora/database/repository/catalog"
	"velora/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an abandoned draft survives in the cache.
const DefaultSessionTTL = 30 * time.Minute

// DefaultBookingSessionService implements BookingSessionService with the
// draft held as a JSON blob in Redis, keyed by session ID. The transition
// methods here are the only mutators of the draft.
type DefaultBookingSessionService struct {
	Catalog      catalogRepo.CatalogRepository
	Appointments appointmentRepo.AppointmentRepository
	Engine       *SlotEngine
	Cache        *redis.Client
	Reminders    ReminderScheduler
	SessionTTL   time.Duration
}

func (s *DefaultBookingSessionService) ttl() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return DefaultSessionTTL
}

func (s *DefaultBookingSessionService) load(sessionID string) (*models.BookingSession, error) {
	ctx := context.Background()
	data, err := s.Cache.Get(ctx, sessionID).Result()
	if err != nil {
		return nil, ErrSessionNotFound
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

func (s *DefaultBookingSessionService) save(session *models.BookingSession) error {
	ctx := context.Background()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Cache.Set(ctx, session.SessionID, data, s.ttl()).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

// StartSession creates a new empty booking session.
func (s *DefaultBookingSessionService) StartSession(clientID string) (*models.BookingSession, error) {
	session := &models.BookingSession{
		SessionID: uuid.New().String(),
		ClientID:  clientID,
		Step:      models.StepChoosingService,
	}
	if err := s.save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// StartEditSession seeds a session from an existing appointment. The wizard
// enters directly at the date/time step with service and professional
// locked.
func (s *DefaultBookingSessionService) StartEditSession(clientID, appointmentID string) (*models.BookingSession, error) {
	appt, err := s.Appointments.GetByID(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment for rescheduling: %w", err)
	}
	if appt.ClientID != clientID {
		return nil, fmt.Errorf("appointment %s does not belong to this client", appointmentID)
	}
	if appt.Status != models.AppointmentConfirmed {
		return nil, fmt.Errorf("only confirmed appointments can be rescheduled")
	}
	service, err := s.Catalog.GetService(appt.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service for rescheduling: %w", err)
	}

	choice := models.SpecificProfessional(appt.ProfessionalID)
	session := &models.BookingSession{
		SessionID:    uuid.New().String(),
		ClientID:     clientID,
		Step:         models.StepChoosingDateTime,
		Service:      service,
		Professional: &choice,
		Date:         appt.StartTime.Format("2006-01-02"),
		Time:         appt.StartTime.Format("15:04"),
		EditTargetID: appt.ID,
	}
	if err := s.save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session by ID.
func (s *DefaultBookingSessionService) GetSession(sessionID string) (*models.BookingSession, error) {
	return s.load(sessionID)
}

// SelectService sets the draft's service and clears every later choice.
// The edit target, when present, is preserved, but edit sessions cannot
// change their service at all.
func (s *DefaultBookingSessionService) SelectService(sessionID, serviceID string) (*models.BookingSession, error) {
	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Editing() {
		return nil, ErrEditLocked
	}
	service, err := s.Catalog.GetService(serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}

	session.Service = service
	session.Professional = nil
	session.Date = ""
	session.Time = ""
	session.Availability = nil
	session.AvailabilityKey = ""
	session.Step = models.StepChoosingProfessional

	if err := s.save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectProfessional sets the professional choice and clears date/time.
func (s *DefaultBookingSessionService) SelectProfessional(sessionID string, choice models.ProfessionalChoice) (*models.BookingSession, error) {
	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Editing() {
		return nil, ErrEditLocked
	}
	if session.Service == nil {
		return nil, ErrNoServiceSelected
	}
	if !choice.Valid() {
		return nil, ErrNoProfessionalSelected
	}
	if !choice.Any {
		pro, err := s.Catalog.GetProfessional(choice.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load professional: %w", err)
		}
		if !qualified(pro, session.Service.ID) {
			return nil, ErrUnqualifiedProfessional
		}
	}

	session.Professional = &choice
	session.Date = ""
	session.Time = ""
	session.Availability = nil
	session.AvailabilityKey = ""
	session.Step = models.StepChoosingDateTime

	if err := s.save(session); err != nil {
		return nil, err
	}
	return session, nil
}

func qualified(pro *models.Professional, serviceID string) bool {
	for _, id := range pro.Specialties {
		if id == serviceID {
			return true
		}
	}
	return false
}

// SelectDateTime sets the chosen day and start time, advancing the draft to
// the confirmation step.
func (s *DefaultBookingSessionService) SelectDateTime(sessionID, date, timeOfDay string) (*models.BookingSession, error) {
	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Service == nil {
		return nil, ErrNoServiceSelected
	}
	if session.Professional == nil {
		return nil, ErrNoProfessionalSelected
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if _, err := LabelToMinutes(timeOfDay); err != nil {
		return nil, err
	}

	session.Date = date
	session.Time = timeOfDay
	session.Step = models.StepConfirmingBooking

	if err := s.save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// StepBack moves the wizard one step back. Fields chosen at later steps are
// kept so returning forward pre-selects them; in particular, stepping back
// from confirmation retains date and time.
func (s *DefaultBookingSessionService) StepBack(sessionID string) (*models.BookingSession, error) {
	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case models.StepConfirmingBooking:
		session.Step = models.StepChoosingDateTime
	case models.StepChoosingDateTime:
		if session.Editing() {
			// Reschedule sessions enter at date/time; there is nothing
			// earlier to go back to.
			return session, nil
		}
		session.Step = models.StepChoosingProfessional
	case models.StepChoosingProfessional:
		session.Step = models.StepChoosingService
	}

	if err := s.save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// availabilityKey identifies the selection a slot list was computed for.
func availabilityKey(serviceID string, choice models.ProfessionalChoice, date string) string {
	pro := choice.ID
	if choice.Any {
		pro = "any"
	}
	return fmt.Sprintf("%s|%s|%s", serviceID, pro, date)
}

// RefreshAvailability computes the slot list for the given day. The
// requested key is recorded before the query is issued; if the session's
// key changed by the time the query resolved (the user already picked a
// different day or professional), the stale result is discarded.
func (s *DefaultBookingSessionService) RefreshAvailability(sessionID, date string) (*models.BookingSession, error) {
	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Service == nil {
		return nil, ErrNoServiceSelected
	}
	if session.Professional == nil {
		return nil, ErrNoProfessionalSelected
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	key := availabilityKey(session.Service.ID, *session.Professional, date)
	session.Availability = nil
	session.AvailabilityKey = key
	if err := s.save(session); err != nil {
		return nil, err
	}

	slots, err := s.Engine.AvailableSlots(*session.Service, *session.Professional, day)
	if err != nil {
		return nil, err
	}

	// Re-read the session: a concurrent selection change supersedes this
	// result and it must not overwrite the newer key's state.
	current, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if current.AvailabilityKey != key {
		return nil, ErrStaleAvailability
	}

	current.Availability = slots
	if err := s.save(current); err != nil {
		return nil, err
	}
	return current, nil
}

// CancelSession discards the draft entirely, including any edit target.
func (s *DefaultBookingSessionService) CancelSession(sessionID string) error {
	ctx := context.Background()
	if err := s.Cache.Del(ctx, sessionID).Err(); err != nil {
		return fmt.Errorf("failed to cancel booking session: %w", err)
	}
	return nil
}

// ListServices returns the bookable service catalogue.
func (s *DefaultBookingSessionService) ListServices() ([]models.Service, error) {
	return s.Catalog.ListServices()
}

// ListProfessionals returns the professionals qualified for a service.
func (s *DefaultBookingSessionService) ListProfessionals(serviceID string) ([]models.Professional, error) {
	return s.Catalog.ListQualifiedProfessionals(serviceID)
}
