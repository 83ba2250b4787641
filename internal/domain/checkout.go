package domain

import (
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apperrors "github.com/Emmanation-Designs/Gibsons-Collections3/pkg/errors"
)

const whatsAppBaseURL = "https://wa.me/"

// naira formats an amount in whole naira with thousands separators.
var naira = message.NewPrinter(language.English)

// FormatNaira renders an amount as a naira string, e.g. 2500 -> "₦2,500".
func FormatNaira(amount int64) string {
	return naira.Sprintf("₦%d", amount)
}

// Order is a composed checkout hand-off: the human-readable message and the
// WhatsApp deep link carrying it.
type Order struct {
	Message  string `json:"message"`
	Link     string `json:"link"`
	Subtotal int64  `json:"subtotal"`
}

// ComposeOrder builds the WhatsApp order message for the given cart and
// delivery address block, plus the wa.me deep link for the given number.
// An empty or whitespace-only address is a validation failure: no message is
// composed and no link is produced. An empty cart is likewise rejected.
func ComposeOrder(cart []CartItem, address, whatsAppNumber string) (*Order, error) {
	if strings.TrimSpace(address) == "" {
		return nil, apperrors.InvalidInput("delivery address and phone number are required")
	}
	if len(cart) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	var b strings.Builder
	b.WriteString("*New Order from Gibson Collections Website*\n\n")
	b.WriteString("*Customer Details:*\n")
	b.WriteString(address)
	b.WriteString("\n\n*Order Items:*\n")

	var subtotal int64
	for i := range cart {
		item := &cart[i]
		line := item.LineTotal()
		subtotal += line
		naira.Fprintf(&b, "- %s (x%d) - ₦%d\n", item.Name, item.Quantity, line)
	}

	naira.Fprintf(&b, "\n*Total Amount: ₦%d*", subtotal)

	msg := b.String()
	// QueryEscape encodes spaces as "+", which some chat clients render
	// literally. Use percent encoding throughout.
	encoded := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	link := whatsAppBaseURL + whatsAppNumber + "?text=" + encoded

	return &Order{
		Message:  msg,
		Link:     link,
		Subtotal: subtotal,
	}, nil
}
