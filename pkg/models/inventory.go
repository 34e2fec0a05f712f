package models

import "time"

// LowStockThreshold is a presentation rule, not a stored flag.
const LowStockThreshold = 5

type InventoryItem struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Category     string    `json:"category" db:"category"`
	Description  string    `json:"description" db:"description"`
	CostPrice    float64   `json:"cost_price" db:"cost_price"`
	SellingPrice float64   `json:"selling_price" db:"selling_price"`
	Quantity     int       `json:"quantity" db:"quantity"`
	ImageURL     *string   `json:"image_url,omitempty" db:"image_url"`
	HasVariants  bool      `json:"has_variants" db:"has_variants"`
	BaseItemID   *int      `json:"base_item_id,omitempty" db:"base_item_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (i *InventoryItem) IsVariant() bool {
	return i.BaseItemID != nil
}

func (i *InventoryItem) LowStock() bool {
	return i.Quantity < LowStockThreshold
}

func (i *InventoryItem) InStock() bool {
	return i.Quantity > 0
}

func (i *InventoryItem) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   i.ID,
		ResourceType: "inventory_item",
	}
}

type ItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
	Quantity     int     `json:"quantity"`
	ImageURL     *string `json:"image_url"`
	HasVariants  bool    `json:"has_variants"`
}

// VariantRequest carries the fields a variant owns itself; category, cost
// price and the description suffix are inherited from the parent item.
type VariantRequest struct {
	Name         string  `json:"name" binding:"required"`
	Quantity     int     `json:"quantity"`
	SellingPrice float64 `json:"selling_price"`
	ImageURL     *string `json:"image_url"`
}

type BulkVariantRequest struct {
	Variants []VariantRequest `json:"variants" binding:"required"`
}

type ItemChanges struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Description  *string  `json:"description"`
	CostPrice    *float64 `json:"cost_price"`
	SellingPrice *float64 `json:"selling_price"`
	Quantity     *int     `json:"quantity"`
	ImageURL     *string  `json:"image_url"`
}

func (c *ItemChanges) HasChanges() bool {
	return c.Name != nil || c.Category != nil || c.Description != nil ||
		c.CostPrice != nil || c.SellingPrice != nil || c.Quantity != nil ||
		c.ImageURL != nil
}
