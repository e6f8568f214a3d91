package booking

import (
	"testing"
	"time"

	"velora/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*DefaultBookingSessionService, *fakeCatalog, *fakeAppointments) {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	catalog := newFakeCatalog()
	catalog.addService(models.Service{
		ID: "svc-cut", Name: "Haircut", Category: "Hair",
		Duration: 60, BreakTime: 15, Price: 35,
	})
	catalog.addService(models.Service{
		ID: "svc-color", Name: "Coloring", Category: "Hair",
		Duration: 90, BreakTime: 15, Price: 80,
	})
	catalog.addProfessional(models.Professional{
		ID: "p1", FullName: "Ana", Specialties: []string{"svc-cut", "svc-color"},
	})
	catalog.addProfessional(models.Professional{
		ID: "p2", FullName: "Bea", Specialties: []string{"svc-cut"},
	})
	catalog.addProfessional(models.Professional{
		ID: "p3", FullName: "Cruz", Specialties: []string{"svc-color"},
	})

	appointments := &fakeAppointments{}
	windows, err := ParseWorkingHours("09:00-13:00,16:00-20:00")
	require.NoError(t, err)

	svc := &DefaultBookingSessionService{
		Catalog:      catalog,
		Appointments: appointments,
		Engine: &SlotEngine{
			Catalog:      catalog,
			Appointments: appointments,
			Windows:      windows,
		},
		Cache: cache,
	}
	return svc, catalog, appointments
}

func TestStartSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	session, err := svc.StartSession("client-1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, models.StepChoosingService, session.Step)
	assert.Equal(t, "client-1", session.ClientID)

	loaded, err := svc.GetSession(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, session, loaded)
}

func TestGetSessionUnknown(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetSession("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSelectServiceClearsLaterChoices(t *testing.T) {
	svc, _, _ := newTestService(t)
	session, err := svc.StartSession("")
	require.NoError(t, err)

	session, err = svc.SelectService(session.SessionID, "svc-cut")
	require.NoError(t, err)
	_, err = svc.SelectProfessional(session.SessionID, models.SpecificProfessional("p1"))
	require.NoError(t, err)
	_, err = svc.SelectDateTime(session.SessionID, "2026-09-14", "10:00")
	require.NoError(t, err)

	// Picking a different service resets everything chosen after it.
	session, err = svc.SelectService(session.SessionID, "svc-color")
	require.NoError(t, err)
	assert.Equal(t, "svc-color", session.Service.ID)
	assert.Nil(t, session.Professional)
	assert.Empty(t, session.Date)
	assert.Empty(t, session.Time)
	assert.Nil(t, session.Availability)
	assert.Empty(t, session.AvailabilityKey)
	assert.Equal(t, models.StepChoosingProfessional, session.Step)
}

func TestSelectProfessionalValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	session, err := svc.StartSession("")
	require.NoError(t, err)

	_, err = svc.SelectProfessional(session.SessionID, models.SpecificProfessional("p1"))
	assert.ErrorIs(t, err, ErrNoServiceSelected)

	_, err = svc.SelectService(session.SessionID, "svc-cut")
	require.NoError(t, err)

	_, err = svc.SelectProfessional(session.SessionID, models.ProfessionalChoice{})
	assert.ErrorIs(t, err, ErrNoProfessionalSelected)

	// p3 does not perform haircuts.
	_, err = svc.SelectProfessional(session.SessionID, models.SpecificProfessional("p3"))
	assert.ErrorIs(t, err, ErrUnqualifiedProfessional)

	session, err = svc.SelectProfessional(session.SessionID, models.AnyProfessional())
	require.NoError(t, err)
	assert.True(t, session.Professional.Any)
	assert.Equal(t, models.StepChoosingDateTime, session.Step)
}

func TestSelectProfessionalClearsDateTime(t *testing.T) {
	svc, _, _ := newTestService(t)
	session, err := svc.StartSession("")
	require.NoError(t, err)

	_, err = svc.SelectService(session.SessionID, "svc-cut")
	require.NoError(t, err)
	_, err = svc.SelectProfessional(session.SessionID, models.SpecificProfessional("p1"))
	require.NoError(t, err)
	_, err = svc.SelectDateTime(session.SessionID, "2026-09-14", "10:00")
	require.NoError(t, err)

	session, err = svc.SelectProfessional(session.SessionID, models.SpecificProfessional("p2"))
	require.NoError(t, err)
	assert.Empty(t, session.Date)
	assert.Empty(t, session.Time)
	assert.Equal(t, models.StepChoosingDateTime, session.Step)
}

func TestSelectDateTimeValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	session, err := svc.StartSession("")
	require.NoError(t, err)
	_, err = svc.SelectService(session.SessionID, "svc-cut")
	require.NoError(t, err)
	_, err = svc.SelectProfessional(session.SessionID, models.SpecificProfessional("p1"))
	require.NoError(t, err)

	_, err = svc.SelectDateTime(session.SessionID, "14/09/2026", "10:00")
	assert.Error(t, err)
	_, err = svc.SelectDateTime(session.SessionID, "2026-09-14", "25:00")
	assert.Error(t, err)

	session, err = svc.SelectDateTime(session.SessionID, "2026-09-14", "10:00")
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmingBooking, session.Step)
}

func TestStepBackKeepsLaterSelections(t *testing.T) {
	svc, _, _ := newTestService(t)
	session, err := svc.StartSession("")
	require.NoError(t, err)
	_, err = svc.SelectService(session.SessionID, "svc-cut")
	require.NoError(t, err)
	_, err = svc.SelectProfessional(session.SessionID, models.SpecificProfessional("p1"))
	require.NoError(t, err)
	_, err = svc.SelectDateTime(session.SessionID, "2026-09-14", "10:00")
	require.NoError(t, err)

	// Back from confirmation keeps the chosen date and time as the
	// pre-selection for the date/time step.
	session, err = svc.StepBack(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepChoosingDateTime, session.Step)
	assert.Equal(t, "2026-09-14", session.Date)
	assert.Equal(t, "10:00", session.Time)

	session, err = svc.StepBack(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepChoosingProfessional, session.Step)
	assert.Equal(t, "p1", session.Professional.ID)

	session, err = svc.StepBack(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepChoosingService, session.Step)
	assert.Equal(t, "svc-cut", session.Service.ID)
}

func TestEditSessionLocksServiceAndProfessional(t *testing.T) {
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
	assert.Equal(t, models.StepChoosingDateTime, session.Step)
	assert.Equal(t, "appt-1", session.EditTargetID)
	assert.Equal(t, "svc-cut", session.Service.ID)
	assert.Equal(t, "p1", session.Professional.ID)
	assert.Equal(t, testDay.Format("2006-01-02"), session.Date)
	assert.Equal(t, "10:00", session.Time)

	_, err = svc.SelectService(session.SessionID, "svc-color")
	assert.ErrorIs(t, err, ErrEditLocked)
	_, err = svc.SelectProfessional(session.SessionID, models.SpecificProfessional("p2"))
	assert.ErrorIs(t, err, ErrEditLocked)

	// Date/time enters at the first step of an edit session; back stays put.
	session, err = svc.StepBack(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepChoosingDateTime, session.Step)
}

func TestStartEditSessionOwnershipAndStatus(t *testing.T) {
	svc, _, appointments := newTestService(t)
	appointments.appointments = []models.Appointment{
		{
			ID: "appt-1", ClientID: "client-1", ServiceID: "svc-cut",
			ProfessionalID: "p1", StartTime: at(testDay, 600),
			EndTime: at(testDay, 660), Status: models.AppointmentCancelled,
		},
	}

	_, err := svc.StartEditSession("client-2", "appt-1")
	assert.Error(t, err)

	_, err = svc.StartEditSession("client-1", "appt-1")
	assert.Error(t, err)
}

func TestRefreshAvailability(t *testing.T) {
	svc, _, appointments := newTestService(t)
	appointments.appointments = []models.Appointment{
		confirmedAppt("p1", 600, 660),
	}

	session, err := svc.StartSession("")
	require.NoError(t, err)
	_, err = svc.SelectService(session.SessionID, "svc-cut")
	require.NoError(t, err)
	_, err = svc.SelectProfessional(session.SessionID, models.SpecificProfessional("p1"))
	require.NoError(t, err)

	date := testDay.Format("2006-01-02")
	session, err = svc.RefreshAvailability(session.SessionID, date)
	require.NoError(t, err)
	assert.Equal(t, "svc-cut|p1|"+date, session.AvailabilityKey)
	require.NotEmpty(t, session.Availability)

	byTime := make(map[string]bool)
	for _, slot := range session.Availability {
		byTime[slot.Time] = slot.Available
	}
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["10:30"])
	assert.True(t, byTime["11:00"])
	// Occupied span is 75 minutes, so nothing is offered past 11:45.
	assert.Contains(t, byTime, "11:45")
	assert.NotContains(t, byTime, "12:00")
}

func TestRefreshAvailabilityDiscardsStaleResult(t *testing.T) {
	svc, _, appointments := newTestService(t)

	session, err := svc.StartSession("")
	require.NoError(t, err)
	_, err = svc.SelectService(session.SessionID, "svc-cut")
	require.NoError(t, err)
	_, err = svc.SelectProfessional(session.SessionID, models.SpecificProfessional("p1"))
	require.NoError(t, err)

	// While the slot query is in flight the user switches to another day,
	// moving the session's availability key. The in-flight result must be
	// dropped, not stored.
	sessionID := session.SessionID
	appointments.listHook = func() {
		appointments.listHook = nil
		current, err := svc.load(sessionID)
		require.NoError(t, err)
		current.AvailabilityKey = "svc-cut|p1|2026-09-20"
		require.NoError(t, svc.save(current))
	}

	_, err = svc.RefreshAvailability(sessionID, testDay.Format("2006-01-02"))
	assert.ErrorIs(t, err, ErrStaleAvailability)

	current, err := svc.load(sessionID)
	require.NoError(t, err)
	assert.Nil(t, current.Availability)
	assert.Equal(t, "svc-cut|p1|2026-09-20", current.AvailabilityKey)
}

func TestCancelSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	session, err := svc.StartSession("")
	require.NoError(t, err)

	require.NoError(t, svc.CancelSession(session.SessionID))
	_, err = svc.GetSession(session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	svc := &DefaultBookingSessionService{
		Catalog:    newFakeCatalog(),
		Cache:      cache,
		SessionTTL: time.Minute,
	}

	session, err := svc.StartSession("")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = svc.GetSession(session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
