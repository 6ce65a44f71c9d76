package auth

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/femcoders/pettrack/internal/domain"
)

const identityKeyPrefix = "identity:"

// cachedIdentity is the subset of a user stored in the cache. The password
// hash never leaves Postgres.
type cachedIdentity struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

// IdentityCache keeps resolved identities in Redis for a short TTL so the
// request resolver does not hit Postgres on every call. All methods are
// safe to call with a nil cache or absent client: they degrade to misses.
type IdentityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdentityCache builds a cache. A nil client disables caching.
func NewIdentityCache(client *redis.Client, ttl time.Duration) *IdentityCache {
	return &IdentityCache{client: client, ttl: ttl}
}

// Get returns the cached identity for the username, if present.
func (c *IdentityCache) Get(ctx context.Context, username string) (*domain.User, bool) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil, false
	}
	payload, err := c.client.Get(ctx, identityKey(username)).Bytes()
	if err != nil {
		return nil, false
	}
	var cached cachedIdentity
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, false
	}
	return &domain.User{
		ID:       cached.ID,
		Username: cached.Username,
		Email:    cached.Email,
		Role:     cached.Role,
	}, true
}

// Set stores the identity under its username.
func (c *IdentityCache) Set(ctx context.Context, user *domain.User) {
	if c == nil || c.client == nil || c.ttl <= 0 || user == nil {
		return
	}
	payload, err := json.Marshal(cachedIdentity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, identityKey(user.Username), payload, c.ttl).Err()
}

// Invalidate drops a cached identity. Called when an account is updated or
// deleted so stale roles do not outlive the TTL.
func (c *IdentityCache) Invalidate(ctx context.Context, usernames ...string) {
	if c == nil || c.client == nil {
		return
	}
	keys := make([]string, 0, len(usernames))
	for _, username := range usernames {
		if username == "" {
			continue
		}
		keys = append(keys, identityKey(username))
	}
	if len(keys) == 0 {
		return
	}
	_ = c.client.Del(ctx, keys...).Err()
}

func identityKey(username string) string {
	return identityKeyPrefix + normalizeUsername(username)
}

// normalizeUsername folds usernames for cache keys; usernames are unique
// case-insensitively.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
