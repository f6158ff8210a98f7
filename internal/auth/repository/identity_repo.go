package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carteapp/carte-backend/internal/auth/domain"
)

const identityKeyPrefix = "carte:identity:" // carte:identity:{user_id}

// IdentityRepository persists the signed-in identity in Redis so a page
// reload restores the session without re-authentication. Absence of the
// entry means logged-out.
type IdentityRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdentityRepository creates a new identity repository. Entries expire
// after ttl; zero means no expiry.
func NewIdentityRepository(client *redis.Client, ttl time.Duration) *IdentityRepository {
	return &IdentityRepository{client: client, ttl: ttl}
}

// Save stores (or refreshes) the identity.
func (r *IdentityRepository) Save(ctx context.Context, id *domain.Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	if err := r.client.Set(ctx, r.key(id.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store identity: %w", err)
	}
	return nil
}

// Get returns the persisted identity, or domain.ErrNotAuthenticated when
// none is stored for the user ID.
func (r *IdentityRepository) Get(ctx context.Context, userID string) (*domain.Identity, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}

	var id domain.Identity
	if err := json.Unmarshal([]byte(data), &id); err != nil {
		return nil, fmt.Errorf("unmarshal identity: %w", err)
	}
	return &id, nil
}

// Delete removes the persisted identity. Deleting an absent entry is a
// no-op.
func (r *IdentityRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, r.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return nil
}

func (r *IdentityRepository) key(userID string) string {
	return identityKeyPrefix + userID
}
