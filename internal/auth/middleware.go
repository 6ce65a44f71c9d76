package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/femcoders/pettrack/internal/domain"
	"github.com/femcoders/pettrack/internal/repository"
)

const principalKey = "auth_principal"

// Middleware resolves bearer tokens to caller identities. Resolution never
// rejects a request: a missing, malformed, or expired token leaves the
// request anonymous and downstream gates decide whether that is an error.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	cache  *IdentityCache
}

// NewMiddleware constructs the resolver.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, cache *IdentityCache) *Middleware {
	return &Middleware{tokens: tokens, users: users, cache: cache}
}

// Handle attaches the caller identity when a valid token is presented.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	claims, err := m.tokens.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return c.Next()
	}

	user, ok := m.cache.Get(c.UserContext(), claims.Username)
	if !ok {
		user, err = m.users.GetByUsername(c.UserContext(), claims.Username)
		if err != nil {
			// token subject no longer resolves to an account
			return c.Next()
		}
		m.cache.Set(c.UserContext(), user)
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok && user != nil
}
