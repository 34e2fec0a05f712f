package models

import (
	"time"

	"github.com/lib/pq"
)

type Supplier struct {
	ID            int            `json:"id" db:"id"`
	Name          string         `json:"name" db:"name"`
	ItemsSupplied pq.StringArray `json:"items_supplied" db:"items_supplied"`
	AmountPaid    float64        `json:"amount_paid" db:"amount_paid"`
	AmountDue     float64        `json:"amount_due" db:"amount_due"`
	Phone         *string        `json:"phone,omitempty" db:"phone"`
	DueDate       *time.Time     `json:"due_date,omitempty" db:"due_date"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

func (s *Supplier) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "supplier",
	}
}

// SupplierRequest takes items_supplied as a single comma-separated string,
// the way the back-office form submits it.
type SupplierRequest struct {
	Name          string  `json:"name" binding:"required"`
	ItemsSupplied string  `json:"items_supplied"`
	AmountPaid    float64 `json:"amount_paid"`
	AmountDue     float64 `json:"amount_due"`
	Phone         *string `json:"phone"`
	DueDate       *string `json:"due_date"`
}
