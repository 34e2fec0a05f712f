package payments

import (
	"time"

	"storefront/pkg/models"
)

const (
	StatusPending = "pending"
	StatusOverdue = "overdue"
	StatusPaid    = "paid"
)

// EffectiveStatus is the single source of truth for overdue-ness: the stored
// column only ever holds pending or paid, and a pending payment whose due
// date has passed reads as overdue. Comparison is at day granularity in the
// server's zone, so a payment due today is not yet overdue.
func EffectiveStatus(stored string, dueDate time.Time, now time.Time) string {
	if stored == StatusPaid {
		return StatusPaid
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	dy, dm, dd := dueDate.Date()
	due := time.Date(dy, dm, dd, 0, 0, 0, 0, now.Location())

	if due.Before(today) {
		return StatusOverdue
	}
	return StatusPending
}

// PaymentView is a PendingPayment with the derived status substituted in.
type PaymentView struct {
	models.PendingPayment
	Status string `json:"status"`
}

func NewPaymentView(payment models.PendingPayment, now time.Time) PaymentView {
	return PaymentView{
		PendingPayment: payment,
		Status:         EffectiveStatus(payment.Status, payment.DueDate, now),
	}
}
