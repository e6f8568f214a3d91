package booking

import (
	"errors"
	"testing"
	"time"

	"velora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// confirmableSession walks a session to the confirmation step.
func confirmableSession(t *testing.T, svc *DefaultBookingSessionService, choice models.ProfessionalChoice) string {
	t.Helper()

	session, err := svc.StartSession("client-1")
	require.NoError(t, err)
	_, err = svc.SelectService(session.SessionID, "svc-cut")
	require.NoError(t, err)
	_, err = svc.SelectProfessional(session.SessionID, choice)
	require.NoError(t, err)
	_, err = svc.SelectDateTime(session.SessionID, testDay.Format("2006-01-02"), "10:00")
	require.NoError(t, err)
	return session.SessionID
}

func TestConfirmRequiresAuthentication(t *testing.T) {
	svc, _, appointments := newTestService(t)
	sessionID := confirmableSession(t, svc, models.SpecificProfessional("p1"))

	outcome, err := svc.Confirm(sessionID, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	require.NotNil(t, outcome)
	assert.False(t, outcome.Success)
	// Nothing may be persisted for an unauthenticated confirm.
	assert.Zero(t, appointments.createCalls)
	assert.Zero(t, appointments.listCalls)
}

func TestConfirmRejectsIncompleteDraft(t *testing.T) {
	svc, _, appointments := newTestService(t)

	session, err := svc.StartSession("client-1")
	require.NoError(t, err)
	_, err = svc.SelectService(session.SessionID, "svc-cut")
	require.NoError(t, err)

	outcome, err := svc.Confirm(session.SessionID, "client-1")
	assert.ErrorIs(t, err, ErrIncompleteDraft)
	assert.False(t, outcome.Success)
	assert.Zero(t, appointments.createCalls)
}

func TestConfirmCreatesAppointment(t *testing.T) {
	svc, _, _ := newTestService(t)
	reminders := &fakeReminders{}
	svc.Reminders = reminders
	sessionID := confirmableSession(t, svc, models.SpecificProfessional("p1"))

	outcome, err := svc.Confirm(sessionID, "client-1")
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Contains(t, outcome.Message, "Haircut")
	require.NotNil(t, outcome.Appointment)

	appt := outcome.Appointment
	assert.Equal(t, "client-1", appt.ClientID)
	assert.Equal(t, "p1", appt.ProfessionalID)
	assert.Equal(t, models.AppointmentConfirmed, appt.Status)
	assert.Equal(t, at(testDay, 600), appt.StartTime)
	// The stored interval is the treatment only; the break buffer is not
	// part of the appointment.
	assert.Equal(t, at(testDay, 660), appt.EndTime)

	// The draft is gone and a reminder was queued.
	_, err = svc.GetSession(sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	require.Len(t, reminders.scheduled, 1)
	assert.Equal(t, appt.ID, reminders.scheduled[0].ID)
}

func TestConfirmAssignsFirstFreeProfessional(t *testing.T) {
	svc, _, appointments := newTestService(t)
	// p1 sorts first but is busy at 10:00; p2 takes the booking.
	appointments.appointments = []models.Appointment{confirmedAppt("p1", 600, 660)}
	sessionID := confirmableSession(t, svc, models.AnyProfessional())

	outcome, err := svc.Confirm(sessionID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "p2", outcome.Appointment.ProfessionalID)
}

func TestConfirmFailsWhenNobodyFree(t *testing.T) {
	svc, _, appointments := newTestService(t)
	appointments.appointments = []models.Appointment{
		confirmedAppt("p1", 600, 660),
		confirmedAppt("p2", 600, 660),
	}
	sessionID := confirmableSession(t, svc, models.AnyProfessional())

	outcome, err := svc.Confirm(sessionID, "client-1")
	assert.ErrorIs(t, err, ErrNoProfessionalFree)
	assert.False(t, outcome.Success)
	assert.Zero(t, appointments.createCalls)
}

func TestConfirmKeepsSessionOnStorageConflict(t *testing.T) {
	svc, _, appointments := newTestService(t)
	appointments.createErr = errors.New("the selected time is no longer available")
	sessionID := confirmableSession(t, svc, models.SpecificProfessional("p1"))

	outcome, err := svc.Confirm(sessionID, "client-1")
	require.Error(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "the selected time is no longer available", outcome.Message)

	// The draft survives so the user can pick another slot and retry.
	session, err := svc.GetSession(sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmingBooking, session.Step)
}

func TestConfirmReschedulesEditTarget(t *testing.T) {
	svc, _, appointments := newTestService(t)
	appointments.appointments = []models.Appointment{{
		ID:             "appt-1",
		ClientID:       "client-1",
		ServiceID:      "svc-cut",
		ProfessionalID: "p1",
		StartTime:      at(testDay, 600),
		EndTime:        at(testDay, 660),
		Status:         models.AppointmentConfirmed,
	}}

	session, err := svc.StartEditSession("client-1", "appt-1")
	require.NoError(t, err)
	// Move the appointment forward by 30 minutes; the old booking overlaps
	// the new interval but must not block its own move.
	_, err = svc.SelectDateTime(session.SessionID, testDay.Format("2006-01-02"), "10:30")
	require.NoError(t, err)

	outcome, err := svc.Confirm(session.SessionID, "client-1")
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 1, appointments.updateCalls)
	assert.Zero(t, appointments.createCalls)

	moved, err := appointments.GetByID("appt-1")
	require.NoError(t, err)
	assert.Equal(t, at(testDay, 630), moved.StartTime)
	assert.Equal(t, at(testDay, 690), moved.EndTime)
	assert.Equal(t, "p1", moved.ProfessionalID)
}

func TestConfirmRescheduleBlockedByOtherBooking(t *testing.T) {
	svc, _, appointments := newTestService(t)
	appointments.appointments = []models.Appointment{
		{
			ID: "appt-1", ClientID: "client-1", ServiceID: "svc-cut",
			ProfessionalID: "p1", StartTime: at(testDay, 600),
			EndTime: at(testDay, 660), Status: models.AppointmentConfirmed,
		},
		confirmedAppt("p1", 690, 750), // 11:30-12:30
	}

	session, err := svc.StartEditSession("client-1", "appt-1")
	require.NoError(t, err)
	_, err = svc.SelectDateTime(session.SessionID, testDay.Format("2006-01-02"), "11:00")
	require.NoError(t, err)

	_, err = svc.Confirm(session.SessionID, "client-1")
	assert.ErrorIs(t, err, ErrNoProfessionalFree)
	assert.Zero(t, appointments.updateCalls)

	kept, err := appointments.GetByID("appt-1")
	require.NoError(t, err)
	assert.Equal(t, at(testDay, 600), kept.StartTime)
}

func TestConfirmReminderFailureDoesNotFailBooking(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.Reminders = &fakeReminders{err: errors.New("queue down")}
	sessionID := confirmableSession(t, svc, models.SpecificProfessional("p1"))

	outcome, err := svc.Confirm(sessionID, "client-1")
	require.NoError(t, err)
	assert.True(t, outcome.Success)
}

func TestDraftIntervalUsesServiceDuration(t *testing.T) {
	svc := models.Service{ID: "svc-cut", Name: "Haircut", Duration: 60, BreakTime: 15}
	choice := models.SpecificProfessional("p1")
	session := &models.BookingSession{
		Service:      &svc,
		Professional: &choice,
		Date:         "2026-09-14",
		Time:         "10:00",
	}

	start, end, err := draftInterval(session)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 14, 10, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2026, 9, 14, 11, 0, 0, 0, time.Local), end)
}
