package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/femcoders/pettrack/internal/auth"
	"github.com/femcoders/pettrack/internal/domain"
	"github.com/femcoders/pettrack/internal/events"
	"github.com/femcoders/pettrack/internal/repository"
	apperrors "github.com/femcoders/pettrack/pkg/util"
)

// UserService manages the user directory. Every mutating operation and
// every bulk read is restricted to veterinarians.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
	cache      *auth.IdentityCache
	dispatcher events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int, cache *auth.IdentityCache, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, cache: cache, dispatcher: dispatcher}
}

// UserInput describes create payloads.
type UserInput struct {
	Username string
	Email    string
	Password string
}

// UserUpdateInput describes update payloads. An empty role defaults to USER.
type UserUpdateInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// List returns the full directory.
func (s *UserService) List(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	if err := auth.RequireVeterinary(caller, "Only veterinarians can view all users"); err != nil {
		return nil, err
	}
	return s.users.List(ctx, repository.UserFilter{})
}

// FilterByRole returns users matching the role. A nil role means no filter.
func (s *UserService) FilterByRole(ctx context.Context, caller *domain.User, role *domain.Role) ([]domain.User, error) {
	if err := auth.RequireVeterinary(caller, "Only veterinarians can filter users"); err != nil {
		return nil, err
	}
	return s.users.List(ctx, repository.UserFilter{Role: role})
}

// GetByID returns a single profile: veterinarians see any, others only
// their own.
func (s *UserService) GetByID(ctx context.Context, caller *domain.User, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("User", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}
	if err := auth.CanAccessOwner(caller, user.ID, "You do not have permission to view this user"); err != nil {
		return nil, err
	}
	return user, nil
}

// Create adds a directory entry with the default USER role.
func (s *UserService) Create(ctx context.Context, caller *domain.User, input UserInput) (*domain.User, error) {
	if err := auth.RequireVeterinary(caller, "Only veterinarians can create users"); err != nil {
		return nil, err
	}

	if taken, err := s.users.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperrors.NewConflict("Username already exists", nil)
	}
	if taken, err := s.users.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, apperrors.NewConflict("Email already registered", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserRegistered,
		Actor: actorFrom(caller),
		Payload: events.UserPayload{
			UserID:   user.ID,
			Username: user.Username,
			Role:     string(user.Role),
		},
	})
	return user, nil
}

// Update replaces profile fields, re-hashes the password, and may change
// the role. Role changes are only reachable through this staff-only path.
func (s *UserService) Update(ctx context.Context, caller *domain.User, id int64, input UserUpdateInput) (*domain.User, error) {
	if err := auth.RequireVeterinary(caller, "Only veterinarians can edit users"); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("User", map[string]any{"id": id})
	}
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	previousUsername := user.Username
	user.Username = input.Username
	user.Email = input.Email
	user.PasswordHash = hash
	user.Role = input.Role
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, previousUsername, user.Username)

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserUpdated,
		Actor: actorFrom(caller),
		Payload: events.UserPayload{
			UserID:   user.ID,
			Username: user.Username,
			Role:     string(user.Role),
		},
	})
	return user, nil
}

// Delete removes an account and reports a confirmation message.
func (s *UserService) Delete(ctx context.Context, caller *domain.User, id int64) (string, error) {
	if err := auth.RequireVeterinary(caller, "Only veterinarians can delete users"); err != nil {
		return "", err
	}

	user, err := s.users.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return "", apperrors.NewNotFound("User", map[string]any{"id": id})
	}
	if err != nil {
		return "", err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return "", err
	}
	s.cache.Invalidate(ctx, user.Username)

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserDeleted,
		Actor: actorFrom(caller),
		Payload: events.UserPayload{
			UserID:   user.ID,
			Username: user.Username,
			Role:     string(user.Role),
		},
	})
	return fmt.Sprintf("User with id: %d has been deleted successfully", user.ID), nil
}

func actorFrom(caller *domain.User) events.Actor {
	if caller == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: caller.ID, Username: caller.Username}
}
