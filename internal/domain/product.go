package domain

import (
	"strings"
	"time"
)

// CategoryAll is the sentinel category filter that matches every product.
const CategoryAll = "All"

// MaxProductImages is the maximum number of images a product may carry.
const MaxProductImages = 5

// Categories is the fixed set of product categories offered by the store.
var Categories = []string{
	// Baby Care
	"Diapers",
	"Wipes",
	"Baby Lotions & Creams",
	"Baby Soaps & Wash",
	"Feeding Essentials",
	"Baby Clothing",

	// Bags
	"Diaper Bags",
	"Handbags",
	"School Bags",
	"Lunch Bags",
	"Backpacks",
	"Wallets & Purses",

	// Shoes
	"Ladies Shoes",
	"Kids Shoes",
	"Sneakers",
	"Sandals & Slippers",

	// Accessories
	"Jewelry",
	"Watches",
	"Sunglasses",
	"Hair Accessories",
	"Belts",
	"Perfumes",
}

// Product represents an item in the store catalog. Price is in whole naira.
// Quantity is nil when stock is unlimited.
type Product struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Quantity    *int      `json:"quantity,omitempty"`
}

// IsValidCategory reports whether name is one of the store categories.
func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Matches reports whether the product is visible for the given search query
// and category filter. A product matches when its name contains the query
// case-insensitively and the category filter is either the "All" sentinel or
// equals the product category exactly. Case folding happens here, at match
// time; the query itself is never normalized.
func (p *Product) Matches(query, category string) bool {
	if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
		return false
	}
	return category == CategoryAll || p.Category == category
}

// FilterProducts returns the subset of products visible for the given search
// query and category filter, preserving input order.
func FilterProducts(products []Product, query, category string) []Product {
	visible := make([]Product, 0, len(products))
	for i := range products {
		if products[i].Matches(query, category) {
			visible = append(visible, products[i])
		}
	}
	return visible
}
