package models

import "time"

const (
	PaymentTypeCustomer = "customer"
	PaymentTypeSupplier = "supplier"
)

// PendingPayment stores only "pending" or "paid"; the reported status is
// always derived from the due date at read time (see payments.EffectiveStatus).
type PendingPayment struct {
	ID        int       `json:"id" db:"id"`
	Type      string    `json:"type" db:"type"`
	RelatedID *int      `json:"related_id,omitempty" db:"related_id"`
	Name      string    `json:"name" db:"name"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Address   *string   `json:"address,omitempty" db:"address"`
	Amount    float64   `json:"amount" db:"amount"`
	DueDate   time.Time `json:"due_date" db:"due_date"`
	Status    string    `json:"status" db:"status"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (p *PendingPayment) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   p.ID,
		ResourceType: "pending_payment",
	}
}

type PaymentRequest struct {
	Type      string  `json:"type"`
	RelatedID *int    `json:"related_id"`
	Name      string  `json:"name" binding:"required"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Amount    float64 `json:"amount" binding:"required"`
	DueDate   string  `json:"due_date" binding:"required"`
	Notes     string  `json:"notes"`
}
