package models

import "time"

// Sale is a point-in-time snapshot: item_name, selling_price and
// total_revenue are captured at insert and never reconciled against later
// changes to the inventory row.
type Sale struct {
	ID           int       `json:"id" db:"id"`
	ItemID       int       `json:"item_id" db:"item_id"`
	ItemName     string    `json:"item_name" db:"item_name"`
	QuantitySold int       `json:"quantity_sold" db:"quantity_sold"`
	SellingPrice float64   `json:"selling_price" db:"selling_price"`
	TotalRevenue float64   `json:"total_revenue" db:"total_revenue"`
	SaleDate     time.Time `json:"sale_date" db:"sale_date"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (s *Sale) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "sale",
	}
}

type SaleRequest struct {
	ItemID       int     `json:"item_id" binding:"required"`
	ItemName     string  `json:"item_name"`
	QuantitySold int     `json:"quantity_sold" binding:"required"`
	SellingPrice float64 `json:"selling_price"`
	SaleDate     string  `json:"sale_date"`
}

type SaleChanges struct {
	ItemName     *string  `json:"item_name"`
	QuantitySold *int     `json:"quantity_sold"`
	SellingPrice *float64 `json:"selling_price"`
	SaleDate     *string  `json:"sale_date"`
}

func (c *SaleChanges) HasChanges() bool {
	return c.ItemName != nil || c.QuantitySold != nil || c.SellingPrice != nil || c.SaleDate != nil
}
