package domain

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Emmanation-Designs/Gibsons-Collections3/pkg/errors"
)

const testWhatsAppNumber = "2348033464218"

func referenceCart() []CartItem {
	return []CartItem{
		{Product: Product{ID: "a", Name: "Diaper Bag", Price: 1000}, Quantity: 2},
		{Product: Product{ID: "b", Name: "Baby Wipes", Price: 500}, Quantity: 1},
	}
}

func TestComposeOrder_Message(t *testing.T) {
	order, err := ComposeOrder(referenceCart(), "12 Marina Rd, Lagos\n08030000000", testWhatsAppNumber)

	require.NoError(t, err)
	expected := "*New Order from Gibson Collections Website*\n\n" +
		"*Customer Details:*\n12 Marina Rd, Lagos\n08030000000\n\n" +
		"*Order Items:*\n" +
		"- Diaper Bag (x2) - ₦2,000\n" +
		"- Baby Wipes (x1) - ₦500\n" +
		"\n*Total Amount: ₦2,500*"
	assert.Equal(t, expected, order.Message)
	assert.Equal(t, int64(2500), order.Subtotal)
}

func TestComposeOrder_Link(t *testing.T) {
	order, err := ComposeOrder(referenceCart(), "12 Marina Rd", testWhatsAppNumber)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.Link, "https://wa.me/"+testWhatsAppNumber+"?text="), order.Link)

	// The link must decode back to the exact composed message.
	u, err := url.Parse(order.Link)
	require.NoError(t, err)
	assert.Equal(t, order.Message, u.Query().Get("text"))
	assert.NotContains(t, order.Link, "+")
}

func TestComposeOrder_EmptyAddressRejected(t *testing.T) {
	order, err := ComposeOrder(referenceCart(), "", testWhatsAppNumber)

	assert.Nil(t, order)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INVALID_INPUT", appErr.Code)
}

func TestComposeOrder_WhitespaceAddressRejected(t *testing.T) {
	order, err := ComposeOrder(referenceCart(), "  \n\t ", testWhatsAppNumber)

	assert.Nil(t, order)
	assert.Error(t, err)
}

func TestComposeOrder_EmptyCartRejected(t *testing.T) {
	order, err := ComposeOrder(nil, "12 Marina Rd", testWhatsAppNumber)

	assert.Nil(t, order)
	assert.Error(t, err)
}

func TestFormatNaira(t *testing.T) {
	assert.Equal(t, "₦2,500", FormatNaira(2500))
	assert.Equal(t, "₦500", FormatNaira(500))
	assert.Equal(t, "₦1,250,000", FormatNaira(1250000))
	assert.Equal(t, "₦0", FormatNaira(0))
}
