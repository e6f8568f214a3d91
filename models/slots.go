package models

// TimeSlot is a candidate start time for a service on a given day.
// Purely computed, never stored.
type TimeSlot struct {
	Time      string `json:"time"` // wall-clock label, e.g. "09:15"
	Available bool   `json:"available"`
}

// DaySlots groups a day's free slots for the time-range search mode.
type DaySlots struct {
	Date  string     `json:"date"` // "2006-01-02"
	Slots []TimeSlot `json:"slots"`
}
