package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterProducts_SearchAllCategories(t *testing.T) {
	products := []Product{
		{ID: "1", Name: "Diaper Bag", Category: "Diaper Bags"},
		{ID: "2", Name: "Sneaker X", Category: "Sneakers"},
	}

	visible := FilterProducts(products, "bag", CategoryAll)

	require.Len(t, visible, 1)
	assert.Equal(t, "Diaper Bag", visible[0].Name)
}

func TestFilterProducts_CaseInsensitiveName(t *testing.T) {
	products := []Product{
		{ID: "1", Name: "DIAPER BAG", Category: "Diaper Bags"},
	}

	assert.Len(t, FilterProducts(products, "diaper", CategoryAll), 1)
	assert.Len(t, FilterProducts(products, "DiApEr", CategoryAll), 1)
}

func TestFilterProducts_CategoryExactMatch(t *testing.T) {
	products := []Product{
		{ID: "1", Name: "Diaper Bag", Category: "Diaper Bags"},
		{ID: "2", Name: "School Bag", Category: "School Bags"},
	}

	visible := FilterProducts(products, "", "School Bags")

	require.Len(t, visible, 1)
	assert.Equal(t, "2", visible[0].ID)
}

func TestFilterProducts_CategoryIsExactNotSubstring(t *testing.T) {
	products := []Product{
		{ID: "1", Name: "Diaper Bag", Category: "Diaper Bags"},
	}

	// "Bags" is not an exact category of any product here.
	assert.Empty(t, FilterProducts(products, "", "Bags"))
}

func TestFilterProducts_EmptyQueryMatchesAll(t *testing.T) {
	products := []Product{
		{ID: "1", Name: "Diaper Bag", Category: "Diaper Bags"},
		{ID: "2", Name: "Sneaker X", Category: "Sneakers"},
	}

	assert.Len(t, FilterProducts(products, "", CategoryAll), 2)
}

func TestFilterProducts_BothFiltersApply(t *testing.T) {
	products := []Product{
		{ID: "1", Name: "Diaper Bag", Category: "Diaper Bags"},
		{ID: "2", Name: "Picnic Bag", Category: "Lunch Bags"},
		{ID: "3", Name: "Sneaker X", Category: "Sneakers"},
	}

	visible := FilterProducts(products, "bag", "Lunch Bags")

	require.Len(t, visible, 1)
	assert.Equal(t, "2", visible[0].ID)
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("Sneakers"))
	assert.True(t, IsValidCategory("Wallets & Purses"))
	assert.False(t, IsValidCategory("sneakers"))
	assert.False(t, IsValidCategory("Electronics"))
}
