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

// PetService coordinates pet records. Reads are visible to any
// authenticated caller; mutations are veterinarian-only.
type PetService struct {
	pets       repository.PetRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewPetService constructs the service.
func NewPetService(pets repository.PetRepository, users repository.UserRepository, dispatcher events.Dispatcher) *PetService {
	return &PetService{pets: pets, users: users, dispatcher: dispatcher}
}

// PetInput describes create/update payloads. Username names the owner.
type PetInput struct {
	Name      string
	Species   string
	Breed     string
	BirthDate time.Time
	Image     string
	Username  string
}

// List returns every pet.
func (s *PetService) List(ctx context.Context) ([]domain.Pet, error) {
	return s.pets.List(ctx, repository.PetFilter{})
}

// Filter returns pets matching the non-blank criteria as case-insensitive
// substrings. All-blank criteria return the full list.
func (s *PetService) Filter(ctx context.Context, name, species, breed string) ([]domain.Pet, error) {
	return s.pets.List(ctx, repository.PetFilter{Name: name, Species: species, Breed: breed})
}

// GetByID returns a single pet.
func (s *PetService) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("Pet", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}
	return pet, nil
}

// Create registers a pet under the named owner.
func (s *PetService) Create(ctx context.Context, caller *domain.User, input PetInput) (*domain.Pet, error) {
	if err := auth.RequireVeterinary(caller, "Only veterinaries can manage pets"); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByUsername(ctx, input.Username)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("User", map[string]any{"username": input.Username})
	}
	if err != nil {
		return nil, err
	}

	pet := &domain.Pet{
		Name:          input.Name,
		Species:       input.Species,
		Breed:         input.Breed,
		BirthDate:     input.BirthDate,
		Image:         input.Image,
		OwnerID:       owner.ID,
		OwnerUsername: owner.Username,
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventPetCreated,
		Actor: actorFrom(caller),
		Payload: events.PetPayload{
			PetID:   pet.ID,
			Name:    pet.Name,
			Species: pet.Species,
			OwnerID: pet.OwnerID,
		},
	})
	return pet, nil
}

// Update replaces a pet's fields, including its owner.
func (s *PetService) Update(ctx context.Context, caller *domain.User, id int64, input PetInput) (*domain.Pet, error) {
	if err := auth.RequireVeterinary(caller, "Only veterinaries can manage pets"); err != nil {
		return nil, err
	}

	pet, err := s.pets.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("Pet", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByUsername(ctx, input.Username)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("User", map[string]any{"username": input.Username})
	}
	if err != nil {
		return nil, err
	}

	pet.Name = input.Name
	pet.Species = input.Species
	pet.Breed = input.Breed
	pet.BirthDate = input.BirthDate
	pet.Image = input.Image
	pet.OwnerID = owner.ID
	pet.OwnerUsername = owner.Username

	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventPetUpdated,
		Actor: actorFrom(caller),
		Payload: events.PetPayload{
			PetID:   pet.ID,
			Name:    pet.Name,
			Species: pet.Species,
			OwnerID: pet.OwnerID,
		},
	})
	return pet, nil
}

// Delete removes a pet and reports a confirmation message.
func (s *PetService) Delete(ctx context.Context, caller *domain.User, id int64) (string, error) {
	if err := auth.RequireVeterinary(caller, "Only veterinaries can manage pets"); err != nil {
		return "", err
	}

	pet, err := s.pets.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return "", apperrors.NewNotFound("Pet", map[string]any{"id": id})
	}
	if err != nil {
		return "", err
	}

	if err := s.pets.Delete(ctx, pet.ID); err != nil {
		return "", err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventPetDeleted,
		Actor: actorFrom(caller),
		Payload: events.PetPayload{
			PetID:   pet.ID,
			Name:    pet.Name,
			Species: pet.Species,
			OwnerID: pet.OwnerID,
		},
	})
	return fmt.Sprintf("Pet '%s' with id:%d has been deleted successfully", pet.Name, pet.ID), nil
}
