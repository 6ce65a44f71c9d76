package domain

import "time"

// MedicalRecordType enumerates the kinds of clinical entries.
type MedicalRecordType string

const (
	RecordTypeVaccination MedicalRecordType = "VACCINATION"
	RecordTypeRevision    MedicalRecordType = "REVISION"
	RecordTypeSurgery     MedicalRecordType = "SURGERY"
)

// ParseMedicalRecordType maps a raw string to a known record type.
func ParseMedicalRecordType(raw string) (MedicalRecordType, bool) {
	switch MedicalRecordType(raw) {
	case RecordTypeVaccination:
		return RecordTypeVaccination, true
	case RecordTypeRevision:
		return RecordTypeRevision, true
	case RecordTypeSurgery:
		return RecordTypeSurgery, true
	}
	return "", false
}

// MedicalRecord is a clinical entry for a pet, authored by a veterinarian.
// Its owner for visibility purposes is the pet's owner, not the author.
type MedicalRecord struct {
	ID                int64
	Description       string
	Weight            float64
	Date              time.Time
	Type              MedicalRecordType
	PetID             int64
	PetName           string
	OwnerID           int64
	CreatedByID       int64
	CreatedByUsername string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
