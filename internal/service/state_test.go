package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/domain"
	apperrors "github.com/Emmanation-Designs/Gibsons-Collections3/pkg/errors"
)

func newStateFixture(t *testing.T) (*StateService, *mockStateRepository, *mockProductRepository) {
	t.Helper()
	states := new(mockStateRepository)
	products := new(mockProductRepository)
	svc := NewStateService(states, products, newTestLogger())
	return svc, states, products
}

func TestStateService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("missing record returns empty state", func(t *testing.T) {
		svc, states, _ := newStateFixture(t)
		states.On("Get", ctx, "client-1").Return(nil, apperrors.NotFound("state", "client-1"))

		state, err := svc.Get(ctx, "client-1")

		require.NoError(t, err)
		assert.Empty(t, state.Cart)
		assert.Empty(t, state.Wishlist)
		assert.NotNil(t, state.Cart)
		assert.NotNil(t, state.Wishlist)
	})

	t.Run("empty client id rejected", func(t *testing.T) {
		svc, _, _ := newStateFixture(t)

		_, err := svc.Get(ctx, "")

		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("backend failure surfaces", func(t *testing.T) {
		svc, states, _ := newStateFixture(t)
		states.On("Get", ctx, "client-1").Return(nil, errors.New("connection refused"))

		_, err := svc.Get(ctx, "client-1")

		require.Error(t, err)
	})
}

func TestStateService_AddToCart(t *testing.T) {
	ctx := context.Background()
	product := &domain.Product{ID: "p1", Name: "Diaper Bag", Price: 14500, Category: "Diaper Bags"}

	t.Run("first add fetches product and stores snapshot", func(t *testing.T) {
		svc, states, products := newStateFixture(t)
		states.On("Get", ctx, "client-1").Return(domain.NewClientState(), nil)
		products.On("GetByID", ctx, "p1").Return(product, nil)
		states.On("Save", ctx, "client-1", mock.AnythingOfType("*domain.ClientState")).Return(nil)

		state, err := svc.AddToCart(ctx, "client-1", "p1")

		require.NoError(t, err)
		require.Len(t, state.Cart, 1)
		assert.Equal(t, "Diaper Bag", state.Cart[0].Name)
		assert.Equal(t, 1, state.Cart[0].Quantity)
		products.AssertExpectations(t)
	})

	t.Run("re-add increments without catalog lookup", func(t *testing.T) {
		svc, states, products := newStateFixture(t)
		existing := domain.NewClientState()
		existing.AddToCart(*product)
		states.On("Get", ctx, "client-1").Return(existing, nil)
		states.On("Save", ctx, "client-1", mock.AnythingOfType("*domain.ClientState")).Return(nil)

		state, err := svc.AddToCart(ctx, "client-1", "p1")

		require.NoError(t, err)
		require.Len(t, state.Cart, 1)
		assert.Equal(t, 2, state.Cart[0].Quantity)
		// Snapshot must survive untouched even though only the ID was passed
		// down on the second add.
		assert.Equal(t, "Diaper Bag", state.Cart[0].Name)
		assert.Equal(t, int64(14500), state.Cart[0].Price)
		products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown product surfaces not found", func(t *testing.T) {
		svc, states, products := newStateFixture(t)
		states.On("Get", ctx, "client-1").Return(domain.NewClientState(), nil)
		products.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("product", "missing"))

		_, err := svc.AddToCart(ctx, "client-1", "missing")

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
		states.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("save failure does not surface", func(t *testing.T) {
		svc, states, products := newStateFixture(t)
		states.On("Get", ctx, "client-1").Return(domain.NewClientState(), nil)
		products.On("GetByID", ctx, "p1").Return(product, nil)
		states.On("Save", ctx, "client-1", mock.AnythingOfType("*domain.ClientState")).Return(errors.New("redis down"))

		state, err := svc.AddToCart(ctx, "client-1", "p1")

		require.NoError(t, err)
		require.Len(t, state.Cart, 1)
	})
}

func TestStateService_RemoveFromCart(t *testing.T) {
	ctx := context.Background()
	svc, states, _ := newStateFixture(t)

	existing := domain.NewClientState()
	existing.AddToCart(domain.Product{ID: "p1", Name: "Bag"})
	states.On("Get", ctx, "client-1").Return(existing, nil)
	states.On("Save", ctx, "client-1", mock.AnythingOfType("*domain.ClientState")).Return(nil)

	state, err := svc.RemoveFromCart(ctx, "client-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, state.Cart)

	// Removing an absent product is a no-op.
	state, err = svc.RemoveFromCart(ctx, "client-1", "ghost")
	require.NoError(t, err)
	assert.Empty(t, state.Cart)
}

func TestStateService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	svc, states, _ := newStateFixture(t)

	existing := domain.NewClientState()
	existing.AddToCart(domain.Product{ID: "p1", Name: "Bag"})
	existing.UpdateQuantity("p1", 2) // quantity now 3
	states.On("Get", ctx, "client-1").Return(existing, nil)
	states.On("Save", ctx, "client-1", mock.AnythingOfType("*domain.ClientState")).Return(nil)

	state, err := svc.UpdateQuantity(ctx, "client-1", "p1", -100)

	require.NoError(t, err)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 1, state.Cart[0].Quantity)
}

func TestStateService_ClearCart(t *testing.T) {
	ctx := context.Background()
	svc, states, _ := newStateFixture(t)

	existing := domain.NewClientState()
	existing.AddToCart(domain.Product{ID: "p1"})
	existing.ToggleWishlist("w1")
	states.On("Get", ctx, "client-1").Return(existing, nil)
	states.On("Save", ctx, "client-1", mock.AnythingOfType("*domain.ClientState")).Return(nil)

	state, err := svc.ClearCart(ctx, "client-1")

	require.NoError(t, err)
	assert.Empty(t, state.Cart)
	assert.Equal(t, []string{"w1"}, state.Wishlist)
}

func TestStateService_ToggleWishlist(t *testing.T) {
	ctx := context.Background()
	svc, states, _ := newStateFixture(t)

	existing := domain.NewClientState()
	states.On("Get", ctx, "client-1").Return(existing, nil)
	states.On("Save", ctx, "client-1", mock.AnythingOfType("*domain.ClientState")).Return(nil)

	state, err := svc.ToggleWishlist(ctx, "client-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, state.Wishlist)

	state, err = svc.ToggleWishlist(ctx, "client-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, state.Wishlist)
}

func TestStateService_WishlistProducts(t *testing.T) {
	ctx := context.Background()
	svc, states, products := newStateFixture(t)

	existing := domain.NewClientState()
	existing.ToggleWishlist("p1")
	existing.ToggleWishlist("deleted")
	states.On("Get", ctx, "client-1").Return(existing, nil)
	// The catalog only resolves products that still exist.
	products.On("ListByIDs", ctx, []string{"p1", "deleted"}).Return([]domain.Product{
		{ID: "p1", Name: "Diaper Bag"},
	}, nil)

	resolved, err := svc.WishlistProducts(ctx, "client-1")

	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "p1", resolved[0].ID)
}
