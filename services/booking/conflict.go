package booking

import (
	"time"

	"velora/models"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back bookings do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// at resolves a minute-of-day offset to an instant on the given day.
func at(day time.Time, minutes int) time.Time {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.Add(time.Duration(minutes) * time.Minute)
}

// professionalFree reports whether the given professional has no blocking
// appointment overlapping [start, end).
func professionalFree(professionalID string, start, end time.Time, existing []models.Appointment) bool {
	for _, appt := range existing {
		if appt.ProfessionalID != professionalID || !appt.Blocks() {
			continue
		}
		if Overlaps(start, end, appt.StartTime, appt.EndTime) {
			return false
		}
	}
	return true
}

// EvaluateCandidates marks each grid candidate available or booked. A
// candidate's occupied interval is [start, start+duration); only confirmed
// appointments block. With more than one professional (the "any" choice) a
// candidate is available when at least one of them is free. Pure function
// of its inputs.
func EvaluateCandidates(day time.Time, candidates []int, duration int, professionalIDs []string, existing []models.Appointment) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, len(candidates))
	for _, cand := range candidates {
		start := at(day, cand)
		end := start.Add(time.Duration(duration) * time.Minute)

		available := false
		for _, id := range professionalIDs {
			if professionalFree(id, start, end, existing) {
				available = true
				break
			}
		}

		slots = append(slots, models.TimeSlot{
			Time:      MinutesToLabel(cand),
			Available: available,
		})
	}
	return slots
}

// FirstFreeProfessional resolves the "any professional" choice at
// submission time: professionals are tried in the given order (ascending
// ID) and the first with no conflicting appointment wins.
func FirstFreeProfessional(start, end time.Time, professionalIDs []string, existing []models.Appointment) (string, bool) {
	for _, id := range professionalIDs {
		if professionalFree(id, start, end, existing) {
			return id, true
		}
	}
	return "", false
}
