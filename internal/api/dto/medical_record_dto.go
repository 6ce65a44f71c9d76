package dto

import (
	"github.com/femcoders/pettrack/internal/domain"
)

// MedicalRecordRequest payload for clinical entry create/update.
type MedicalRecordRequest struct {
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	PetID       int64   `json:"pet_id"`
}

// MedicalRecordResponse is the public view of a clinical entry.
type MedicalRecordResponse struct {
	ID          int64                    `json:"id"`
	Description string                   `json:"description"`
	Weight      float64                  `json:"weight"`
	Date        string                   `json:"date"`
	Type        domain.MedicalRecordType `json:"type"`
	PetName     string                   `json:"pet_name"`
	CreatedBy   string                   `json:"created_by"`
}

// NewMedicalRecordResponse maps a domain record.
func NewMedicalRecordResponse(record *domain.MedicalRecord) MedicalRecordResponse {
	return MedicalRecordResponse{
		ID:          record.ID,
		Description: record.Description,
		Weight:      record.Weight,
		Date:        record.Date.Format(DateLayout),
		Type:        record.Type,
		PetName:     record.PetName,
		CreatedBy:   record.CreatedByUsername,
	}
}
