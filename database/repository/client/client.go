package clientRepo

import "velora/models"

// ClientRepository defines data access for client accounts.
type ClientRepository interface {
	// GetByID retrieves a client by their unique ID.
	GetByID(id string) (*models.Client, error)
	// GetByEmail retrieves a client by email, or nil when none exists.
	GetByEmail(email string) (*models.Client, error)
	// Create inserts a new client record.
	Create(client *models.Client) error
	// Update modifies an existing client record.
	Update(client *models.Client) error
}
