package repository

import (
	"context"
	"time"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/domain"
)

// ProductRepository defines the interface for catalog persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the catalog.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns the full catalog ordered by creation time, newest first.
	List(ctx context.Context) ([]domain.Product, error)

	// ListByIDs returns the products matching the given identifier set, in
	// catalog order. Unknown identifiers are silently skipped.
	ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error)

	// Update modifies an existing product in the catalog.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product from the catalog by its identifier.
	Delete(ctx context.Context, id string) error
}

// StateRepository defines the interface for the durable per-client state
// record holding the cart and the wishlist.
type StateRepository interface {
	// Get retrieves the state record for the given client. Returns
	// apperrors.ErrNotFound when no record exists yet.
	Get(ctx context.Context, clientID string) (*domain.ClientState, error)

	// Save persists the state record for the given client, overwriting any
	// existing record. Records never expire.
	Save(ctx context.Context, clientID string, state *domain.ClientState) error

	// Delete removes the state record for the given client.
	Delete(ctx context.Context, clientID string) error
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user in the store.
	Update(ctx context.Context, user *domain.User) error
}

// RefreshTokenRepository defines the interface for refresh token persistence operations.
type RefreshTokenRepository interface {
	// Create stores a new refresh token hash.
	Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// GetByHash retrieves a refresh token record by its hash.
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)

	// RevokeByUserID revokes all refresh tokens for the given user.
	RevokeByUserID(ctx context.Context, userID string) error

	// Revoke revokes a specific refresh token by its hash.
	Revoke(ctx context.Context, tokenHash string) error
}
