package models

// Professional represents a salon staff member who performs services.
type Professional struct {
	ID          string   `bson:"id" json:"id"`
	FullName    string   `bson:"full_name" json:"fullName"`
	AvatarURL   string   `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	Specialties []string `bson:"specialties,omitempty" json:"specialties,omitempty"` // service IDs
}

// ProfessionalChoice is the wizard's professional selection: either a
// specific staff member or "any professional", meaning the first qualified
// one found free at submission time.
type ProfessionalChoice struct {
	Any bool   `json:"any"`
	ID  string `json:"id,omitempty"`
}

// AnyProfessional returns the "no preference" selection.
func AnyProfessional() ProfessionalChoice {
	return ProfessionalChoice{Any: true}
}

// SpecificProfessional returns a selection pinned to one staff member.
func SpecificProfessional(id string) ProfessionalChoice {
	return ProfessionalChoice{ID: id}
}

// Valid reports whether the choice is either "any" or a concrete ID.
func (c ProfessionalChoice) Valid() bool {
	return c.Any || c.ID != ""
}
