package client

import "velora/models"

// ClientService defines account, profile and appointment-history
// operations for salon clients.
type ClientService interface {
	// Register creates an account and returns it with a signed auth token.
	Register(input models.ClientRegistration) (*models.Client, string, error)
	// Authenticate verifies credentials and returns the client with a
	// signed auth token.
	Authenticate(email, password string) (*models.Client, string, error)
	GetProfile(clientID string) (*models.Client, error)
	UpdateProfile(clientID string, update models.ClientProfileUpdate) (*models.Client, error)

	// Appointments returns the client's upcoming confirmed appointments
	// (soonest first) and everything else (most recent first).
	Appointments(clientID string) (upcoming, past []models.Appointment, err error)
	// CancelAppointment flips a client's confirmed appointment to
	// cancelled. The record is kept.
	CancelAppointment(clientID, appointmentID string) error

	// Vouchers returns the client's session packs with remaining balances.
	Vouchers(clientID string) ([]models.ClientVoucher, error)
	// CanBookFromVoucher reports whether the voucher belongs to the client
	// and still has sessions to spend.
	CanBookFromVoucher(clientID, voucherID string) (bool, error)
}
