package payments

import (
	"net/http"
	"strconv"
	"time"

	"storefront/internal/events"
	"storefront/internal/repository"
	"storefront/pkg/auditlog"
	"storefront/pkg/models"

	"github.com/gin-gonic/gin"
)

type Repository interface {
	GetPaymentsBy(conditions repository.QueryBuilder) (*[]models.PendingPayment, error)
	GetPayment(id int) (*models.PendingPayment, error)
	PersistPayment(req models.PaymentRequest) (*models.PendingPayment, error)
	UpdatePayment(id int, req models.PaymentRequest) error
	MarkPaid(id int) error
	RemovePayment(id int) error
}

type PaymentHandler struct {
	r        Repository
	events   events.Publisher
	AuditLog *auditlog.Auditlog
}

func NewPaymentHandler(r Repository, publisher events.Publisher, a *auditlog.Auditlog) *PaymentHandler {
	return &PaymentHandler{
		r:        r,
		events:   publisher,
		AuditLog: a,
	}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/payments", h.GetPayments)
	router.POST("/payments", h.CreatePayment)
	router.PUT("/payments/:id", h.UpdatePayment)
	router.PATCH("/payments/:id/paid", h.MarkPaid)
	router.DELETE("/payments/:id", h.RemovePayment)
}

func (h *PaymentHandler) notifyChange(action string, paymentID int) {
	h.events.Publish(events.TopicDashboardDataUpdated, map[string]interface{}{
		"action":     action,
		"payment_id": paymentID,
	})
}

func validPaymentType(paymentType string) bool {
	return paymentType == models.PaymentTypeCustomer || paymentType == models.PaymentTypeSupplier
}

func (h *PaymentHandler) GetPayments(c *gin.Context) {
	var query fetchPaymentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters", "details": err.Error()})
		return
	}

	if query.Type != "" && !validPaymentType(query.Type) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "type must be customer or supplier"})
		return
	}

	payments, err := h.r.GetPaymentsBy(&query)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get pending payments", "details": err.Error()})
		return
	}

	now := time.Now()
	views := make([]PaymentView, 0, len(*payments))
	for _, payment := range *payments {
		view := NewPaymentView(payment, now)
		if query.Status != "" && view.Status != query.Status {
			continue
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, views)
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	req := models.PaymentRequest{
		Type: models.PaymentTypeCustomer,
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !validPaymentType(req.Type) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "type must be customer or supplier"})
		return
	}
	if req.Amount < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Amount must be non-negative"})
		return
	}

	payment, err := h.r.PersistPayment(req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pending payment", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"name":   payment.Name,
			"amount": payment.Amount,
			"msg":    "Pending payment created successfully",
		},
		payment,
	)
	h.notifyChange("create", payment.ID)

	c.JSON(http.StatusCreated, NewPaymentView(*payment, time.Now()))
}

func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind payment ID"})
		return
	}

	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if req.Type != "" && !validPaymentType(req.Type) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "type must be customer or supplier"})
		return
	}

	if err := h.r.UpdatePayment(id, req); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pending payment", "details": err.Error()})
		return
	}

	payment, err := h.r.GetPayment(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get pending payment", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"update",
		map[string]interface{}{
			"msg": "Pending payment updated successfully",
		},
		payment,
	)
	h.notifyChange("update", id)

	c.JSON(http.StatusOK, NewPaymentView(*payment, time.Now()))
}

func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind payment ID"})
		return
	}

	payment, err := h.r.GetPayment(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get pending payment", "details": err.Error()})
		return
	}
	if payment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending payment not found"})
		return
	}

	if err := h.r.MarkPaid(id); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark payment paid", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"paid",
		map[string]interface{}{
			"name": payment.Name,
			"msg":  "Pending payment marked paid",
		},
		payment,
	)
	h.notifyChange("paid", id)

	c.JSON(http.StatusOK, gin.H{"message": "Payment marked paid"})
}

func (h *PaymentHandler) RemovePayment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind payment ID"})
		return
	}

	payment, err := h.r.GetPayment(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get pending payment", "details": err.Error()})
		return
	}
	if payment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending payment not found"})
		return
	}

	if err := h.r.RemovePayment(id); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pending payment", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"delete",
		map[string]interface{}{
			"name": payment.Name,
			"msg":  "Pending payment removed",
		},
		payment,
	)
	h.notifyChange("delete", id)

	c.JSON(http.StatusOK, gin.H{"message": "Payment removed successfully"})
}
