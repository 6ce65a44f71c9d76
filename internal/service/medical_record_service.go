package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/femcoders/pettrack/internal/auth"
	"github.com/femcoders/pettrack/internal/domain"
	"github.com/femcoders/pettrack/internal/events"
	"github.com/femcoders/pettrack/internal/repository"
	apperrors "github.com/femcoders/pettrack/pkg/util"
)

// MedicalRecordService coordinates clinical entries. Visibility follows the
// pet's owner, not the authoring veterinarian; mutations are
// veterinarian-only.
type MedicalRecordService struct {
	records    repository.MedicalRecordRepository
	pets       repository.PetRepository
	dispatcher events.Dispatcher
}

// NewMedicalRecordService constructs the service.
func NewMedicalRecordService(records repository.MedicalRecordRepository, pets repository.PetRepository, dispatcher events.Dispatcher) *MedicalRecordService {
	return &MedicalRecordService{records: records, pets: pets, dispatcher: dispatcher}
}

// MedicalRecordInput describes create/update payloads.
type MedicalRecordInput struct {
	Description string
	Weight      float64
	Date        time.Time
	Type        domain.MedicalRecordType
	PetID       int64
}

// List returns the caller's visible records: everything for veterinarians,
// only records of owned pets for everyone else.
func (s *MedicalRecordService) List(ctx context.Context, caller *domain.User) ([]domain.MedicalRecord, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthenticated("authentication required")
	}
	if caller.IsVeterinary() {
		return s.records.ListAll(ctx)
	}
	return s.records.ListByOwner(ctx, caller.ID)
}

// GetByID returns a single record when the caller may see it.
func (s *MedicalRecordService) GetByID(ctx context.Context, caller *domain.User, id int64) (*domain.MedicalRecord, error) {
	record, err := s.records.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("MedicalRecord", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}
	if err := auth.CanAccessOwner(caller, record.OwnerID, "You do not have permission to view this medical record"); err != nil {
		return nil, err
	}
	return record, nil
}

// ListByPetName returns records for a named pet. A non-owner asking for a
// pet that has records gets a denial; a pet without records yields an
// empty list for anyone. The distinction keeps "no records" separate from
// "not your records".
func (s *MedicalRecordService) ListByPetName(ctx context.Context, caller *domain.User, petName string) ([]domain.MedicalRecord, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthenticated("authentication required")
	}

	records, err := s.records.ListByPetName(ctx, petName)
	if err != nil {
		return nil, err
	}

	visible := auth.FilterOwned(caller, records, func(r domain.MedicalRecord) int64 { return r.OwnerID })
	if len(records) > 0 && len(visible) == 0 {
		return nil, apperrors.NewForbidden("You do not have permission to view this medical record")
	}
	return visible, nil
}

// Create adds a clinical entry authored by the calling veterinarian.
func (s *MedicalRecordService) Create(ctx context.Context, caller *domain.User, input MedicalRecordInput) (*domain.MedicalRecord, error) {
	if err := auth.RequireVeterinary(caller, "Only veterinaries can manage medical records"); err != nil {
		return nil, err
	}

	pet, err := s.pets.GetByID(ctx, input.PetID)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("Pet", map[string]any{"id": input.PetID})
	}
	if err != nil {
		return nil, err
	}

	record := &domain.MedicalRecord{
		Description:       input.Description,
		Weight:            input.Weight,
		Date:              input.Date,
		Type:              input.Type,
		PetID:             pet.ID,
		PetName:           pet.Name,
		OwnerID:           pet.OwnerID,
		CreatedByID:       caller.ID,
		CreatedByUsername: caller.Username,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventMedicalRecordCreated,
		Actor: actorFrom(caller),
		Payload: events.MedicalRecordPayload{
			RecordID: record.ID,
			PetID:    record.PetID,
			PetName:  record.PetName,
			Type:     string(record.Type),
		},
	})
	return record, nil
}

// Update replaces a record's fields, possibly repointing it at another pet.
func (s *MedicalRecordService) Update(ctx context.Context, caller *domain.User, id int64, input MedicalRecordInput) (*domain.MedicalRecord, error) {
	if err := auth.RequireVeterinary(caller, "Only veterinaries can manage medical records"); err != nil {
		return nil, err
	}

	record, err := s.records.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("MedicalRecord", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}

	pet, err := s.pets.GetByID(ctx, input.PetID)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("Pet", map[string]any{"id": input.PetID})
	}
	if err != nil {
		return nil, err
	}

	record.Description = input.Description
	record.Weight = input.Weight
	record.Date = input.Date
	record.Type = input.Type
	record.PetID = pet.ID
	record.PetName = pet.Name
	record.OwnerID = pet.OwnerID

	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventMedicalRecordUpdated,
		Actor: actorFrom(caller),
		Payload: events.MedicalRecordPayload{
			RecordID: record.ID,
			PetID:    record.PetID,
			PetName:  record.PetName,
			Type:     string(record.Type),
		},
	})
	return record, nil
}

// Delete removes a record and reports a confirmation message.
func (s *MedicalRecordService) Delete(ctx context.Context, caller *domain.User, id int64) (string, error) {
	if err := auth.RequireVeterinary(caller, "Only veterinaries can manage medical records"); err != nil {
		return "", err
	}

	record, err := s.records.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return "", apperrors.NewNotFound("MedicalRecord", map[string]any{"id": id})
	}
	if err != nil {
		return "", err
	}

	if err := s.records.Delete(ctx, record.ID); err != nil {
		return "", err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventMedicalRecordDeleted,
		Actor: actorFrom(caller),
		Payload: events.MedicalRecordPayload{
			RecordID: record.ID,
			PetID:    record.PetID,
			PetName:  record.PetName,
			Type:     string(record.Type),
		},
	})
	return fmt.Sprintf("Medical record with id: %d from pet %s has been deleted successfully", record.ID, record.PetName), nil
}
