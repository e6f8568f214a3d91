package booking

import (
	"fmt"
	"time"

	"velora/models"
	"velora/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderScheduler schedules a best-effort reminder ahead of an
// appointment. Scheduling failures never fail the booking.
type ReminderScheduler interface {
	ScheduleAppointmentReminder(appt models.Appointment) error
}

// Confirm turns a complete draft into a persisted appointment. On success
// the session is discarded and the caller navigates to the profile view; on
// failure the session is kept intact so the user can retry from the
// confirmation step. The returned outcome carries the user-facing message
// either way.
func (s *DefaultBookingSessionService) Confirm(sessionID, clientID string) (*models.BookingOutcome, error) {
	if clientID == "" {
		return failure(ErrNotAuthenticated.Error()), ErrNotAuthenticated
	}

	session, err := s.load(sessionID)
	if err != nil {
		return failure(err.Error()), err
	}
	if !session.ReadyToConfirm() {
		return failure(ErrIncompleteDraft.Error()), ErrIncompleteDraft
	}

	start, end, err := draftInterval(session)
	if err != nil {
		return failure(err.Error()), err
	}

	professionalID, err := s.resolveProfessional(session, start, end)
	if err != nil {
		return failure(err.Error()), err
	}

	var appt *models.Appointment
	if session.Editing() {
		appt, err = s.reschedule(session, start, end)
	} else {
		appt, err = s.create(session, clientID, professionalID, start, end)
	}
	if err != nil {
		// The draft survives so the user can retry; the backend message is
		// surfaced verbatim.
		return failure(err.Error()), err
	}

	if err := s.CancelSession(sessionID); err != nil {
		utils.GetLogger().Warn("failed to discard booking session after confirm",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleAppointmentReminder(*appt); err != nil {
			utils.GetLogger().Warn("failed to schedule appointment reminder",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	return &models.BookingOutcome{
		Success: true,
		Message: fmt.Sprintf("Your %s appointment is confirmed for %s at %s.",
			session.Service.Name, session.Date, session.Time),
		Appointment: appt,
	}, nil
}

func failure(message string) *models.BookingOutcome {
	return &models.BookingOutcome{Success: false, Message: message}
}

// draftInterval combines the draft's date and time into the appointment
// interval. End time is start plus the service duration; the break buffer
// is not stored, it only reserves space during slot search.
func draftInterval(session *models.BookingSession) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", session.Date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", session.Date, err)
	}
	minutes, err := LabelToMinutes(session.Time)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := day.Add(time.Duration(minutes) * time.Minute)
	end := start.Add(time.Duration(session.Service.Duration) * time.Minute)
	return start, end, nil
}

// resolveProfessional pins the draft's professional choice to a concrete
// staff member, assigning the first free qualified professional when "any"
// was chosen.
func (s *DefaultBookingSessionService) resolveProfessional(session *models.BookingSession, start, end time.Time) (string, error) {
	ids, err := s.Engine.QualifiedProfessionalIDs(*session.Service, *session.Professional)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", ErrNoProfessionalFree
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	existing, err := s.Appointments.ListForRange(ids, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return "", fmt.Errorf("failed to check existing appointments: %w", err)
	}

	// The rescheduled appointment must not block its own new time.
	if session.Editing() {
		filtered := existing[:0]
		for _, appt := range existing {
			if appt.ID != session.EditTargetID {
				filtered = append(filtered, appt)
			}
		}
		existing = filtered
	}

	id, free := FirstFreeProfessional(start, end, ids, existing)
	if !free {
		return "", ErrNoProfessionalFree
	}
	return id, nil
}

func (s *DefaultBookingSessionService) create(session *models.BookingSession, clientID, professionalID string, start, end time.Time) (*models.Appointment, error) {
	appt := &models.Appointment{
		ID:             uuid.New().String(),
		ClientID:       clientID,
		ServiceID:      session.Service.ID,
		ProfessionalID: professionalID,
		StartTime:      start,
		EndTime:        end,
		Status:         models.AppointmentConfirmed,
	}
	if err := s.Appointments.Create(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// reschedule updates only the interval of the edit target; service and
// professional are immutable on this path.
func (s *DefaultBookingSessionService) reschedule(session *models.BookingSession, start, end time.Time) (*models.Appointment, error) {
	patch := models.AppointmentPatch{StartTime: &start, EndTime: &end}
	return s.Appointments.Update(session.EditTargetID, patch)
}
