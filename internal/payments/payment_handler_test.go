package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/events"
	"storefront/internal/repository"
	"storefront/pkg/auditlog"
	"storefront/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPaymentRepository to mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetPaymentsBy(conditions repository.QueryBuilder) (*[]models.PendingPayment, error) {
	args := m.Called(conditions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*[]models.PendingPayment), args.Error(1)
}

func (m *MockPaymentRepository) GetPayment(id int) (*models.PendingPayment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingPayment), args.Error(1)
}

func (m *MockPaymentRepository) PersistPayment(req models.PaymentRequest) (*models.PendingPayment, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingPayment), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePayment(id int, req models.PaymentRequest) error {
	args := m.Called(id, req)
	return args.Error(0)
}

func (m *MockPaymentRepository) MarkPaid(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPaymentRepository) RemovePayment(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

type nopPersister struct{}

func (nopPersister) PersistLog(models.AuditLog, interface{}) error { return nil }

func setupRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewPaymentHandler(repo, events.NopPublisher{}, auditlog.NewAuditLog(nopPersister{}))
	handler.RegisterRoutes(router.Group(""))

	return router
}

func TestGetPaymentsDerivesOverdueFromDueDate(t *testing.T) {
	repo := new(MockPaymentRepository)
	router := setupRouter(repo)

	payments := []models.PendingPayment{
		{ID: 1, Name: "Asha", Status: StatusPending, DueDate: time.Now().AddDate(0, 0, -3)},
		{ID: 2, Name: "Meera", Status: StatusPending, DueDate: time.Now().AddDate(0, 0, 3)},
		{ID: 3, Name: "Ravi", Status: StatusPaid, DueDate: time.Now().AddDate(0, 0, -30)},
	}
	repo.On("GetPaymentsBy", mock.Anything).Return(&payments, nil)

	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var views []PaymentView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, 3)
	assert.Equal(t, StatusOverdue, views[0].Status)
	assert.Equal(t, StatusPending, views[1].Status)
	assert.Equal(t, StatusPaid, views[2].Status)
}

func TestGetPaymentsStatusFilterUsesDerivedStatus(t *testing.T) {
	repo := new(MockPaymentRepository)
	router := setupRouter(repo)

	payments := []models.PendingPayment{
		{ID: 1, Name: "Asha", Status: StatusPending, DueDate: time.Now().AddDate(0, 0, -3)},
		{ID: 2, Name: "Meera", Status: StatusPending, DueDate: time.Now().AddDate(0, 0, 3)},
	}
	repo.On("GetPaymentsBy", mock.Anything).Return(&payments, nil)

	req := httptest.NewRequest(http.MethodGet, "/payments?status=overdue", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var views []PaymentView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, 1)
	assert.Equal(t, "Asha", views[0].Name)
}

func TestGetPaymentsRejectsUnknownType(t *testing.T) {
	repo := new(MockPaymentRepository)
	router := setupRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/payments?type=vendor", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "GetPaymentsBy", mock.Anything)
}

func TestMarkPaid(t *testing.T) {
	repo := new(MockPaymentRepository)
	router := setupRouter(repo)

	payment := &models.PendingPayment{ID: 5, Name: "Asha", Status: StatusPending}
	repo.On("GetPayment", 5).Return(payment, nil)
	repo.On("MarkPaid", 5).Return(nil)

	req := httptest.NewRequest(http.MethodPatch, "/payments/5/paid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertCalled(t, "MarkPaid", 5)
}
