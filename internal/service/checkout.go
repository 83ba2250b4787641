package service

import (
	"context"
	"log/slog"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/domain"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/event"
	apperrors "github.com/Emmanation-Designs/Gibsons-Collections3/pkg/errors"
)

// CheckoutInput holds the parameters for composing an order message.
type CheckoutInput struct {
	Address string `json:"address" validate:"required"`
}

// CheckoutService composes the WhatsApp order hand-off from the client's
// cart. The cart is left intact: the deep link is the hand-off, and the
// shopper clears the cart themselves.
type CheckoutService struct {
	state          *StateService
	producer       event.Publisher
	whatsAppNumber string
	logger         *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(state *StateService, producer event.Publisher, whatsAppNumber string, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		state:          state,
		producer:       producer,
		whatsAppNumber: whatsAppNumber,
		logger:         logger,
	}
}

// Checkout loads the client's cart and composes the order message and deep
// link. An empty or whitespace-only address fails validation before anything
// is composed. On success an order.submitted event is published
// fire-and-forget.
func (s *CheckoutService) Checkout(ctx context.Context, clientID string, input CheckoutInput) (*domain.Order, error) {
	if clientID == "" {
		return nil, apperrors.InvalidInput("client id is required")
	}

	state, err := s.state.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	order, err := domain.ComposeOrder(state.Cart, input.Address, s.whatsAppNumber)
	if err != nil {
		return nil, err
	}

	if err := s.producer.PublishOrderSubmitted(ctx, clientID, order, state.Cart); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order.submitted",
			slog.String("client_id", clientID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}

// WhatsAppNumber exposes the configured support number for the profile page
// contact link.
func (s *CheckoutService) WhatsAppNumber() string {
	return s.whatsAppNumber
}
