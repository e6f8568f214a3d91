package booking

import "errors"

var (
	// ErrSessionNotFound is returned when a session ID does not resolve,
	// either because it never existed or because its TTL expired.
	ErrSessionNotFound = errors.New("booking session not found or expired")

	// ErrEditLocked is returned when a reschedule session tries to change
	// its service or professional; only date and time may change.
	ErrEditLocked = errors.New("service and professional cannot be changed while rescheduling")

	// ErrNotAuthenticated is returned when confirm is called without a
	// logged-in client. No persistence call is attempted in that case.
	ErrNotAuthenticated = errors.New("missing required booking data: not authenticated")

	// ErrIncompleteDraft is returned when confirm is called before the
	// draft carries a service, date and time.
	ErrIncompleteDraft = errors.New("missing required booking data")

	ErrNoServiceSelected      = errors.New("no service selected")
	ErrNoProfessionalSelected = errors.New("no professional selected")

	// ErrUnqualifiedProfessional is returned when the chosen professional
	// does not perform the selected service.
	ErrUnqualifiedProfessional = errors.New("professional is not qualified for the selected service")

	// ErrNoProfessionalFree is returned when "any professional" was chosen
	// but nobody qualified is free at the selected time.
	ErrNoProfessionalFree = errors.New("no professional is available at the selected time")

	// ErrStaleAvailability marks a slot-query result that resolved after
	// the selection it was computed for changed. The result is discarded,
	// never surfaced as availability.
	ErrStaleAvailability = errors.New("availability superseded by a newer selection")
)
