package dto

import (
	"github.com/femcoders/pettrack/internal/domain"
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

// PetRequest payload for pet create/update. Username names the owner.
type PetRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	BirthDate string `json:"birth_date"`
	Image     string `json:"image"`
	Username  string `json:"username"`
}

// PetResponse is the public view of a pet.
type PetResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	BirthDate string `json:"birth_date"`
	Image     string `json:"image"`
	Username  string `json:"username"`
}

// NewPetResponse maps a domain pet.
func NewPetResponse(pet *domain.Pet) PetResponse {
	return PetResponse{
		ID:        pet.ID,
		Name:      pet.Name,
		Species:   pet.Species,
		Breed:     pet.Breed,
		BirthDate: pet.BirthDate.Format(DateLayout),
		Image:     pet.Image,
		Username:  pet.OwnerUsername,
	}
}
