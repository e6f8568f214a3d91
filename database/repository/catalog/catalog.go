package catalogRepo

import "velora/models"

// CatalogRepository defines read access to the service and professional
// catalogue. Services and professionals are immutable once fetched; the
// booking flow only reads them.
type CatalogRepository interface {
	// ListServices retrieves every service, ordered by category then name.
	ListServices() ([]models.Service, error)
	// GetService retrieves a service by its unique ID.
	GetService(id string) (*models.Service, error)
	// ListQualifiedProfessionals retrieves the professionals qualified to
	// perform the given service, ordered by ascending ID. The stable order
	// is what makes the "any professional" assignment deterministic.
	ListQualifiedProfessionals(serviceID string) ([]models.Professional, error)
	// GetProfessional retrieves a professional by ID.
	GetProfessional(id string) (*models.Professional, error)
}
