package sales

import (
	"fmt"
	"time"

	"storefront/pkg/models"
)

// ResolveSale fills in the point-in-time snapshot fields for a new sale.
// Name and price fall back to the referenced item when the request leaves
// them blank; total revenue is computed once here and stored as-is.
func ResolveSale(req models.SaleRequest, item *models.InventoryItem, now time.Time) (models.Sale, error) {
	sale := models.Sale{
		ItemID:       req.ItemID,
		ItemName:     req.ItemName,
		QuantitySold: req.QuantitySold,
		SellingPrice: req.SellingPrice,
	}

	if sale.ItemName == "" && item != nil {
		sale.ItemName = item.Name
	}
	if sale.SellingPrice == 0 && item != nil {
		sale.SellingPrice = item.SellingPrice
	}

	if sale.QuantitySold <= 0 {
		return models.Sale{}, fmt.Errorf("quantity_sold must be positive")
	}
	if sale.SellingPrice < 0 {
		return models.Sale{}, fmt.Errorf("selling_price must be non-negative")
	}

	sale.TotalRevenue = float64(sale.QuantitySold) * sale.SellingPrice

	if req.SaleDate != "" {
		parsed, err := time.Parse("2006-01-02", req.SaleDate)
		if err != nil {
			return models.Sale{}, fmt.Errorf("sale_date must be YYYY-MM-DD: %w", err)
		}
		sale.SaleDate = parsed
	} else {
		sale.SaleDate = now
	}

	return sale, nil
}

// ApplyChanges merges an inline edit into an existing sale and recomputes the
// stored total from the edited quantity and price.
func ApplyChanges(sale models.Sale, changes models.SaleChanges) (models.Sale, error) {
	if changes.ItemName != nil {
		sale.ItemName = *changes.ItemName
	}
	if changes.QuantitySold != nil {
		sale.QuantitySold = *changes.QuantitySold
	}
	if changes.SellingPrice != nil {
		sale.SellingPrice = *changes.SellingPrice
	}
	if changes.SaleDate != nil {
		parsed, err := time.Parse("2006-01-02", *changes.SaleDate)
		if err != nil {
			return models.Sale{}, fmt.Errorf("sale_date must be YYYY-MM-DD: %w", err)
		}
		sale.SaleDate = parsed
	}

	if sale.QuantitySold <= 0 {
		return models.Sale{}, fmt.Errorf("quantity_sold must be positive")
	}
	if sale.SellingPrice < 0 {
		return models.Sale{}, fmt.Errorf("selling_price must be non-negative")
	}

	sale.TotalRevenue = float64(sale.QuantitySold) * sale.SellingPrice

	return sale, nil
}
