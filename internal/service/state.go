package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/domain"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/repository"
	apperrors "github.com/Emmanation-Designs/Gibsons-Collections3/pkg/errors"
)

// StateService implements the cart and wishlist operations over the durable
// per-client state record. Mutations are pure in-memory transformations on
// the loaded record; persistence is fire-and-forget, so a failed write is
// logged but never surfaced to the caller.
type StateService struct {
	states   repository.StateRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewStateService creates a new client state service.
func NewStateService(states repository.StateRepository, products repository.ProductRepository, logger *slog.Logger) *StateService {
	return &StateService{
		states:   states,
		products: products,
		logger:   logger,
	}
}

// Get returns the state record for a client, or an empty record when none
// exists yet.
func (s *StateService) Get(ctx context.Context, clientID string) (*domain.ClientState, error) {
	if clientID == "" {
		return nil, apperrors.InvalidInput("client id is required")
	}

	state, err := s.states.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewClientState(), nil
		}
		return nil, fmt.Errorf("get state: %w", err)
	}

	return state, nil
}

// AddToCart looks up the product and applies the add-to-cart rule: an
// existing entry has its quantity incremented by 1 with the stored snapshot
// untouched, otherwise a new entry with quantity 1 is appended.
func (s *StateService) AddToCart(ctx context.Context, clientID, productID string) (*domain.ClientState, error) {
	state, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	// Only fetch the product when the cart has no snapshot yet; re-adding
	// must not re-copy fields from the catalog.
	if i := state.FindCartIndex(productID); i < 0 {
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("get product for cart: %w", err)
		}
		state.AddToCart(*product)
	} else {
		state.AddToCart(domain.Product{ID: productID})
	}

	s.persist(ctx, clientID, state)
	return state, nil
}

// RemoveFromCart deletes the entry for the product. No-op if absent.
func (s *StateService) RemoveFromCart(ctx context.Context, clientID, productID string) (*domain.ClientState, error) {
	state, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	state.RemoveFromCart(productID)
	s.persist(ctx, clientID, state)
	return state, nil
}

// UpdateQuantity adds delta to the entry's quantity, clamped at a minimum of
// 1. No-op if absent.
func (s *StateService) UpdateQuantity(ctx context.Context, clientID, productID string, delta int) (*domain.ClientState, error) {
	state, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	state.UpdateQuantity(productID, delta)
	s.persist(ctx, clientID, state)
	return state, nil
}

// ClearCart empties the cart unconditionally, keeping the wishlist.
func (s *StateService) ClearCart(ctx context.Context, clientID string) (*domain.ClientState, error) {
	state, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	state.ClearCart()
	s.persist(ctx, clientID, state)
	return state, nil
}

// ToggleWishlist flips wishlist membership for the product.
func (s *StateService) ToggleWishlist(ctx context.Context, clientID, productID string) (*domain.ClientState, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	state, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	state.ToggleWishlist(productID)
	s.persist(ctx, clientID, state)
	return state, nil
}

// WishlistProducts resolves the wishlist IDs against the catalog. Deleted
// products are skipped.
func (s *StateService) WishlistProducts(ctx context.Context, clientID string) ([]domain.Product, error) {
	state, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListByIDs(ctx, state.Wishlist)
	if err != nil {
		return nil, fmt.Errorf("resolve wishlist: %w", err)
	}

	return products, nil
}

// persist writes the record without surfacing failures.
func (s *StateService) persist(ctx context.Context, clientID string, state *domain.ClientState) {
	if err := s.states.Save(ctx, clientID, state); err != nil {
		s.logger.WarnContext(ctx, "failed to persist client state",
			slog.String("client_id", clientID),
			slog.String("error", err.Error()),
		)
	}
}
