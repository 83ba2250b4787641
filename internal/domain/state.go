package domain

// CartItem is a product snapshot held in a client's cart together with the
// chosen quantity. The snapshot is taken when the product is first added and
// is not refreshed on subsequent adds.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price times quantity for this cart entry.
func (i *CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// ClientState is the durable per-client record: the cart and the wishlist.
// Search text and session data are transient and never stored here.
type ClientState struct {
	Cart     []CartItem `json:"cart"`
	Wishlist []string   `json:"wishlist"`
}

// NewClientState returns an empty state with non-nil slices so the record
// always marshals as [] rather than null.
func NewClientState() *ClientState {
	return &ClientState{
		Cart:     []CartItem{},
		Wishlist: []string{},
	}
}

// FindCartIndex returns the index of the cart entry for the given product ID,
// or -1 when absent.
func (s *ClientState) FindCartIndex(productID string) int {
	for i := range s.Cart {
		if s.Cart[i].ID == productID {
			return i
		}
	}
	return -1
}

// AddToCart adds the product to the cart. If an entry with the same ID
// already exists its quantity is incremented by 1 and the stored snapshot is
// left untouched; otherwise a new entry with quantity 1 is appended. No upper
// bound on quantity is enforced here.
func (s *ClientState) AddToCart(p Product) {
	if i := s.FindCartIndex(p.ID); i >= 0 {
		s.Cart[i].Quantity++
		return
	}
	s.Cart = append(s.Cart, CartItem{Product: p, Quantity: 1})
}

// RemoveFromCart deletes the entry with the given product ID. No-op if the
// ID is absent.
func (s *ClientState) RemoveFromCart(productID string) {
	i := s.FindCartIndex(productID)
	if i < 0 {
		return
	}
	s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
}

// UpdateQuantity adds delta to the matching entry's quantity, clamping the
// result to a minimum of 1. The entry is never removed, even for large
// negative deltas. No-op if the ID is absent.
func (s *ClientState) UpdateQuantity(productID string, delta int) {
	i := s.FindCartIndex(productID)
	if i < 0 {
		return
	}
	q := s.Cart[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	s.Cart[i].Quantity = q
}

// ClearCart empties the cart unconditionally.
func (s *ClientState) ClearCart() {
	s.Cart = []CartItem{}
}

// ToggleWishlist removes the ID if present, otherwise appends it. Applying
// the toggle twice restores the original membership.
func (s *ClientState) ToggleWishlist(productID string) {
	for i, id := range s.Wishlist {
		if id == productID {
			s.Wishlist = append(s.Wishlist[:i], s.Wishlist[i+1:]...)
			return
		}
	}
	s.Wishlist = append(s.Wishlist, productID)
}

// InWishlist reports whether the product ID is currently wishlisted.
func (s *ClientState) InWishlist(productID string) bool {
	for _, id := range s.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// Subtotal returns the sum of price times quantity over all cart entries.
func (s *ClientState) Subtotal() int64 {
	var total int64
	for i := range s.Cart {
		total += s.Cart[i].LineTotal()
	}
	return total
}

// ItemCount returns the number of distinct entries in the cart.
func (s *ClientState) ItemCount() int {
	return len(s.Cart)
}
