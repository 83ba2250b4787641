package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/domain"
	apperrors "github.com/Emmanation-Designs/Gibsons-Collections3/pkg/errors"
)

const keyPrefix = "state:"

// StateRepository implements repository.StateRepository using Redis. Records
// are written without a TTL: the cart and wishlist survive until explicitly
// cleared, matching the durable client-side record they replace.
type StateRepository struct {
	client *redis.Client
}

// NewStateRepository creates a new Redis-backed client state repository.
func NewStateRepository(client *redis.Client) *StateRepository {
	return &StateRepository{client: client}
}

// Get retrieves the state record for a client.
func (r *StateRepository) Get(ctx context.Context, clientID string) (*domain.ClientState, error) {
	key := keyPrefix + clientID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("state", clientID)
		}
		return nil, fmt.Errorf("redis get state: %w", err)
	}

	var state domain.ClientState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}

	return &state, nil
}

// Save persists the state record for a client without expiry.
func (r *StateRepository) Save(ctx context.Context, clientID string, state *domain.ClientState) error {
	key := keyPrefix + clientID

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set state: %w", err)
	}

	return nil
}

// Delete removes the state record for a client.
func (r *StateRepository) Delete(ctx context.Context, clientID string) error {
	key := keyPrefix + clientID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del state: %w", err)
	}

	return nil
}
