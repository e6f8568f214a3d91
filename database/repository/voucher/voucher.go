package voucherRepo

import "velora/models"

// VoucherRepository defines read access to session packs. Balances are
// decremented by an external consumption process; this service only reads
// them.
type VoucherRepository interface {
	// ListForClient retrieves a client's vouchers, newest purchase first.
	ListForClient(clientID string) ([]models.ClientVoucher, error)
	// GetVoucher retrieves a voucher by its unique ID.
	GetVoucher(id string) (*models.ClientVoucher, error)
	// GetDefinition retrieves a pack definition by ID.
	GetDefinition(id string) (*models.BonoDefinition, error)
}
