package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/femcoders/pettrack/internal/auth"
	"github.com/femcoders/pettrack/internal/config"
	"github.com/femcoders/pettrack/internal/domain"
	"github.com/femcoders/pettrack/internal/events"
	"github.com/femcoders/pettrack/internal/repository"
	apperrors "github.com/femcoders/pettrack/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		dispatcher: dispatcher,
	}
}

// RegisterInput describes a self-registration payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new owner account. Self-registration always produces
// the USER role; only a veterinarian can promote an account afterwards.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
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
		Actor: events.Actor{UserID: user.ID, Username: user.Username},
		Payload: events.UserPayload{
			UserID:   user.ID,
			Username: user.Username,
			Role:     string(user.Role),
		},
	})
	return user, nil
}

// Login authenticates by username or email, case-insensitively, trying the
// username first. Unknown identifier and wrong password produce the same
// failure so identifiers cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, identifier)
	if err == pgx.ErrNoRows {
		user, err = s.users.GetByEmail(ctx, identifier)
	}
	if err == pgx.ErrNoRows {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, expiresAt, err := s.tokens.Generate(user.Username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
