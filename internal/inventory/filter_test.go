package inventory

import (
	"testing"

	"storefront/pkg/models"

	"github.com/stretchr/testify/assert"
)

func testItems() []models.InventoryItem {
	return []models.InventoryItem{
		{ID: 1, Name: "Red Saree", Category: "Sarees", Description: "Silk saree in deep red", CostPrice: 40, SellingPrice: 99.5, Quantity: 10},
		{ID: 2, Name: "Blue Kurti", Category: "Kurtis", Description: "Cotton kurti", CostPrice: 12, SellingPrice: 25, Quantity: 0},
		{ID: 3, Name: "Green Saree", Category: "Sarees", Description: "Everyday wear", CostPrice: 20, SellingPrice: 45, Quantity: 3},
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	filter := Filter{Search: "saree"}

	filtered := filter.Apply(testItems())

	assert.Len(t, filtered, 2)
	assert.Equal(t, "Red Saree", filtered[0].Name)
	assert.Equal(t, "Green Saree", filtered[1].Name)
}

func TestFilterSearchMatchesDescriptionAndCategory(t *testing.T) {
	byDescription := Filter{Search: "cotton"}
	assert.Len(t, byDescription.Apply(testItems()), 1)

	byCategory := Filter{Search: "kurtis"}
	assert.Len(t, byCategory.Apply(testItems()), 1)
}

func TestFilterCriteriaCompose(t *testing.T) {
	min := 30.0
	filter := Filter{
		Search:      "saree",
		Category:    "Sarees",
		PriceField:  "selling_price",
		MinPrice:    &min,
		InStockOnly: true,
	}

	filtered := filter.Apply(testItems())

	assert.Len(t, filtered, 2)
	for _, item := range filtered {
		assert.True(t, item.SellingPrice >= min)
		assert.True(t, item.Quantity > 0)
	}
}

func TestFilterPriceRangeIsInclusive(t *testing.T) {
	min := 25.0
	max := 45.0
	filter := Filter{PriceField: "selling_price", MinPrice: &min, MaxPrice: &max}

	filtered := filter.Apply(testItems())

	assert.Len(t, filtered, 2)
	assert.Equal(t, 2, filtered[0].ID)
	assert.Equal(t, 3, filtered[1].ID)
}

func TestFilterOnCostPrice(t *testing.T) {
	max := 15.0
	filter := Filter{PriceField: "cost_price", MaxPrice: &max}

	filtered := filter.Apply(testItems())

	assert.Len(t, filtered, 1)
	assert.Equal(t, "Blue Kurti", filtered[0].Name)
}

func TestFilterInStockOnly(t *testing.T) {
	filter := Filter{InStockOnly: true}

	filtered := filter.Apply(testItems())

	assert.Len(t, filtered, 2)
	for _, item := range filtered {
		assert.True(t, item.InStock())
	}
}

func TestEmptyFilterPassesEverything(t *testing.T) {
	filter := Filter{}

	filtered := filter.Apply(testItems())

	assert.Len(t, filtered, 3)
}
