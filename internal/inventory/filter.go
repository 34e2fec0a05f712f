package inventory

import (
	"strings"

	"storefront/pkg/models"
)

// Filter narrows a fetched inventory list in memory. All set criteria must
// hold for a row to pass.
type Filter struct {
	Search      string   `form:"search"`
	Category    string   `form:"category"`
	PriceField  string   `form:"price_field"`
	MinPrice    *float64 `form:"min_price"`
	MaxPrice    *float64 `form:"max_price"`
	InStockOnly bool     `form:"in_stock"`
}

func (f Filter) priceOf(item models.InventoryItem) float64 {
	if f.PriceField == "cost_price" {
		return item.CostPrice
	}
	return item.SellingPrice
}

func (f Filter) Matches(item models.InventoryItem) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) &&
			!strings.Contains(strings.ToLower(item.Category), needle) {
			return false
		}
	}

	if f.Category != "" && item.Category != f.Category {
		return false
	}

	if f.MinPrice != nil && f.priceOf(item) < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && f.priceOf(item) > *f.MaxPrice {
		return false
	}

	if f.InStockOnly && !item.InStock() {
		return false
	}

	return true
}

func (f Filter) Apply(items []models.InventoryItem) []models.InventoryItem {
	filtered := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
