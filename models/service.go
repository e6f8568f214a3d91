package models

// Service represents a treatment offered by the salon.
type Service struct {
	ID              string   `bson:"id" json:"id"`
	Name            string   `bson:"name" json:"name"`
	Category        string   `bson:"category" json:"category"`
	Description     string   `bson:"description,omitempty" json:"description,omitempty"`
	Duration        int      `bson:"duration" json:"duration"`    // in minutes
	BreakTime       int      `bson:"break_time" json:"breakTime"` // buffer after the service, in minutes
	Price           float64  `bson:"price" json:"price"`
	ProfessionalIDs []string `bson:"professional_ids,omitempty" json:"professionalIds,omitempty"` // qualified professionals
}

// OccupiedSpan is the total time a booking of this service keeps the chair
// busy: the treatment itself plus the break before the next client.
func (s Service) OccupiedSpan() int {
	return s.Duration + s.BreakTime
}
