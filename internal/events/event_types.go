package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventUserUpdated          EventType = "user_updated"
	EventUserDeleted          EventType = "user_deleted"
	EventPetCreated           EventType = "pet_created"
	EventPetUpdated           EventType = "pet_updated"
	EventPetDeleted           EventType = "pet_deleted"
	EventMedicalRecordCreated EventType = "medical_record_created"
	EventMedicalRecordUpdated EventType = "medical_record_updated"
	EventMedicalRecordDeleted EventType = "medical_record_deleted"
)

// Actor identifies who performed the action, when known.
type Actor struct {
	UserID   int64  `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserPayload accompanies user lifecycle events.
type UserPayload struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// PetPayload accompanies pet lifecycle events.
type PetPayload struct {
	PetID   int64  `json:"pet_id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	OwnerID int64  `json:"owner_id"`
}

// MedicalRecordPayload accompanies clinical entry events.
type MedicalRecordPayload struct {
	RecordID int64  `json:"record_id"`
	PetID    int64  `json:"pet_id"`
	PetName  string `json:"pet_name"`
	Type     string `json:"type"`
}
