package booking

import (
	"fmt"
	"time"

	"velora/models"
)

// Time-of-day ranges for the "find me a slot" search mode.
const (
	RangeAny       = "any"
	RangeMorning   = "morning"   // 09:00–13:59
	RangeAfternoon = "afternoon" // 15:00–19:59
	RangeCustom    = "custom"
)

const (
	searchHorizonDays = 30
	searchMaxDays     = 5
)

// RangeQuery describes a forward search for free slots inside a
// time-of-day range.
type RangeQuery struct {
	Range       string `json:"range" binding:"required"`
	CustomStart string `json:"customStart,omitempty"` // "16:00", custom range only
	CustomEnd   string `json:"customEnd,omitempty"`   // "18:00", custom range only
	From        string `json:"from,omitempty"`        // first day to try, defaults to today
}

func (q RangeQuery) matcher() (func(minuteOfDay int) bool, error) {
	switch q.Range {
	case RangeAny:
		return func(int) bool { return true }, nil
	case RangeMorning:
		return func(m int) bool { h := m / 60; return h >= 9 && h < 14 }, nil
	case RangeAfternoon:
		return func(m int) bool { h := m / 60; return h >= 15 && h < 20 }, nil
	case RangeCustom:
		start, err := LabelToMinutes(q.CustomStart)
		if err != nil {
			return nil, fmt.Errorf("invalid custom range start: %w", err)
		}
		end, err := LabelToMinutes(q.CustomEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid custom range end: %w", err)
		}
		// The custom range is inclusive of its end hour.
		return func(m int) bool { h := m / 60; return h >= start/60 && h <= end/60 }, nil
	default:
		return nil, fmt.Errorf("unknown time range %q", q.Range)
	}
}

// FindSlotsByRange scans forward from the query's start day, collecting the
// next days that have at least one free slot inside the range. The scan
// stops after five matching days or thirty days, whichever comes first.
func (s *DefaultBookingSessionService) FindSlotsByRange(sessionID string, query RangeQuery) ([]models.DaySlots, error) {
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

	inRange, err := query.matcher()
	if err != nil {
		return nil, err
	}

	from := time.Now()
	if query.From != "" {
		from, err = time.ParseInLocation("2006-01-02", query.From, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid search start date %q: %w", query.From, err)
		}
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	var results []models.DaySlots
	for i := 0; i < searchHorizonDays && len(results) < searchMaxDays; i++ {
		day := from.AddDate(0, 0, i)
		slots, err := s.Engine.AvailableSlots(*session.Service, *session.Professional, day)
		if err != nil {
			return nil, err
		}

		var matching []models.TimeSlot
		for _, slot := range slots {
			if !slot.Available {
				continue
			}
			minutes, err := LabelToMinutes(slot.Time)
			if err != nil {
				continue
			}
			if inRange(minutes) {
				matching = append(matching, slot)
			}
		}
		if len(matching) > 0 {
			results = append(results, models.DaySlots{
				Date:  day.Format("2006-01-02"),
				Slots: matching,
			})
		}
	}
	return results, nil
}
