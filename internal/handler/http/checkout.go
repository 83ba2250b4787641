package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/service"
	"github.com/Emmanation-Designs/Gibsons-Collections3/pkg/httputil"
	"github.com/Emmanation-Designs/Gibsons-Collections3/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the WhatsApp checkout hand-off.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: svc, logger: logger}
}

// CheckoutRequest is the JSON request body for composing an order.
type CheckoutRequest struct {
	Address string `json:"address" validate:"required"`
}

// Checkout handles POST /api/v1/checkout. It returns the composed order
// message and the wa.me deep link the storefront opens; the cart itself is
// left untouched.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.Checkout(r.Context(), clientIDFromContext(r.Context()), service.CheckoutInput{
		Address: req.Address,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// Support handles GET /api/v1/support. It exposes the WhatsApp contact link
// shown on the profile page.
func (h *CheckoutHandler) Support(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{
		"whatsapp": "https://wa.me/" + h.service.WhatsAppNumber(),
	}})
}
