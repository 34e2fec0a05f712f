package payments

import (
	"testing"
	"time"

	"storefront/pkg/models"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestEffectiveStatusPastDueReadsOverdue(t *testing.T) {
	due := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusOverdue, EffectiveStatus(StatusPending, due, now))
}

func TestEffectiveStatusDueTodayIsStillPending(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusPending, EffectiveStatus(StatusPending, due, now))
}

func TestEffectiveStatusFutureDueIsPending(t *testing.T) {
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusPending, EffectiveStatus(StatusPending, due, now))
}

func TestEffectiveStatusPaidWinsOverDueDate(t *testing.T) {
	due := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusPaid, EffectiveStatus(StatusPaid, due, now))
}

func TestNewPaymentViewSubstitutesDerivedStatus(t *testing.T) {
	payment := models.PendingPayment{
		Name:    "Asha",
		Status:  StatusPending,
		DueDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	view := NewPaymentView(payment, now)

	assert.Equal(t, StatusOverdue, view.Status)
}
