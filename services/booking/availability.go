package booking

import (
	"fmt"
	"sort"
	"time"

	appointmentRepo "velora/database/repository/appointment"
	catalogRepo "velora/database/repository/catalog"
	"velora/models"
	"velora/utils"

	"go.uber.org/zap"
)

// SlotEngine computes the offerable start times for a service on a day. It
// runs the local time grid against existing bookings, or delegates to the
// remote slot function when one is configured; the contract is the same on
// both paths.
type SlotEngine struct {
	Catalog      catalogRepo.CatalogRepository
	Appointments appointmentRepo.AppointmentRepository
	Windows      []WorkingWindow
	Remote       *SlotFunctionClient
}

// QualifiedProfessionalIDs resolves a professional choice to the ordered
// list of professional IDs considered for availability: the single chosen
// one, or every qualified one in ascending ID order for "any".
func (e *SlotEngine) QualifiedProfessionalIDs(service models.Service, choice models.ProfessionalChoice) ([]string, error) {
	if !choice.Any {
		return []string{choice.ID}, nil
	}
	pros, err := e.Catalog.ListQualifiedProfessionals(service.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list qualified professionals: %w", err)
	}
	ids := make([]string, 0, len(pros))
	for _, p := range pros {
		ids = append(ids, p.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

// AvailableSlots returns the day's slot list for the service and
// professional choice. A failed appointment query propagates as an error;
// the day is never silently reported as all free.
func (e *SlotEngine) AvailableSlots(service models.Service, choice models.ProfessionalChoice, day time.Time) ([]models.TimeSlot, error) {
	if e.Remote != nil {
		times, err := e.Remote.AvailableSlots(service.ID, choice, day.Format("2006-01-02"))
		if err != nil {
			return nil, fmt.Errorf("remote slot function failed: %w", err)
		}
		slots := make([]models.TimeSlot, 0, len(times))
		for _, t := range times {
			slots = append(slots, models.TimeSlot{Time: t, Available: true})
		}
		return slots, nil
	}

	ids, err := e.QualifiedProfessionalIDs(service, choice)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		utils.GetLogger().Warn("no qualified professionals for service",
			zap.String("serviceID", service.ID))
		return []models.TimeSlot{}, nil
	}

	candidates := GenerateStartCandidates(e.Windows, service.OccupiedSpan())
	if len(candidates) == 0 {
		return []models.TimeSlot{}, nil
	}

	dayStart := at(day, 0)
	dayEnd := dayStart.AddDate(0, 0, 1)
	existing, err := e.Appointments.ListForRange(ids, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments for %s: %w", day.Format("2006-01-02"), err)
	}

	return EvaluateCandidates(day, candidates, service.Duration, ids, existing), nil
}
