package booking

import (
	"fmt"
	"sort"
	"time"

	"velora/models"
)

// fakeCatalog is an in-memory CatalogRepository for tests.
type fakeCatalog struct {
	services      map[string]models.Service
	professionals map[string]models.Professional
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		services:      make(map[string]models.Service),
		professionals: make(map[string]models.Professional),
	}
}

func (f *fakeCatalog) addService(svc models.Service) {
	f.services[svc.ID] = svc
}

func (f *fakeCatalog) addProfessional(pro models.Professional) {
	f.professionals[pro.ID] = pro
}

func (f *fakeCatalog) ListServices() ([]models.Service, error) {
	out := make([]models.Service, 0, len(f.services))
	for _, svc := range f.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCatalog) GetService(id string) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, fmt.Errorf("service %s not found", id)
	}
	return &svc, nil
}

func (f *fakeCatalog) ListQualifiedProfessionals(serviceID string) ([]models.Professional, error) {
	var out []models.Professional
	for _, pro := range f.professionals {
		for _, s := range pro.Specialties {
			if s == serviceID {
				out = append(out, pro)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCatalog) GetProfessional(id string) (*models.Professional, error) {
	pro, ok := f.professionals[id]
	if !ok {
		return nil, fmt.Errorf("professional %s not found", id)
	}
	return &pro, nil
}

// fakeAppointments is an in-memory AppointmentRepository for tests. The
// hooks let tests inject failures and observe calls.
type fakeAppointments struct {
	appointments []models.Appointment

	createErr   error
	listErr     error
	createCalls int
	updateCalls int
	listCalls   int
	listHook    func()
}

func (f *fakeAppointments) GetByID(id string) (*models.Appointment, error) {
	for _, appt := range f.appointments {
		if appt.ID == id {
			a := appt
			return &a, nil
		}
	}
	return nil, fmt.Errorf("appointment %s not found", id)
}

func (f *fakeAppointments) ListForRange(professionalIDs []string, from, to time.Time) ([]models.Appointment, error) {
	f.listCalls++
	if f.listHook != nil {
		f.listHook()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	allowed := make(map[string]bool, len(professionalIDs))
	for _, id := range professionalIDs {
		allowed[id] = true
	}
	var out []models.Appointment
	for _, appt := range f.appointments {
		if len(professionalIDs) > 0 && !allowed[appt.ProfessionalID] {
			continue
		}
		if appt.StartTime.Before(to) && appt.EndTime.After(from) {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (f *fakeAppointments) ListForClient(clientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range f.appointments {
		if appt.ClientID == clientID {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Create(appt *models.Appointment) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.appointments = append(f.appointments, *appt)
	return nil
}

func (f *fakeAppointments) Update(id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	f.updateCalls++
	for i := range f.appointments {
		if f.appointments[i].ID != id {
			continue
		}
		if patch.StartTime != nil {
			f.appointments[i].StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			f.appointments[i].EndTime = *patch.EndTime
		}
		if patch.Status != nil {
			f.appointments[i].Status = *patch.Status
		}
		if patch.Notes != nil {
			f.appointments[i].Notes = *patch.Notes
		}
		a := f.appointments[i]
		return &a, nil
	}
	return nil, fmt.Errorf("appointment %s not found", id)
}

func (f *fakeAppointments) Cancel(id string) error {
	status := models.AppointmentCancelled
	_, err := f.Update(id, models.AppointmentPatch{Status: &status})
	return err
}

func (f *fakeAppointments) CompletePastConfirmed(cutoff time.Time) (int64, error) {
	var n int64
	for i := range f.appointments {
		if f.appointments[i].Status == models.AppointmentConfirmed && f.appointments[i].EndTime.Before(cutoff) {
			f.appointments[i].Status = models.AppointmentCompleted
			n++
		}
	}
	return n, nil
}

// fakeReminders records scheduled reminders.
type fakeReminders struct {
	scheduled []models.Appointment
	err       error
}

func (f *fakeReminders) ScheduleAppointmentReminder(appt models.Appointment) error {
	if f.err != nil {
		return f.err
	}
	f.scheduled = append(f.scheduled, appt)
	return nil
}
