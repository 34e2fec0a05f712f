package suppliers

import (
	"net/http"
	"strconv"

	"storefront/internal/events"
	"storefront/pkg/auditlog"
	"storefront/pkg/models"

	"github.com/gin-gonic/gin"
)

type Repository interface {
	GetSuppliers() (*[]models.Supplier, error)
	GetSupplier(id int) (*models.Supplier, error)
	PersistSupplier(req models.SupplierRequest) (*models.Supplier, error)
	UpdateSupplier(id int, req models.SupplierRequest) error
	RemoveSupplier(id int) error
}

type SupplierHandler struct {
	r        Repository
	events   events.Publisher
	AuditLog *auditlog.Auditlog
}

func NewSupplierHandler(r Repository, publisher events.Publisher, a *auditlog.Auditlog) *SupplierHandler {
	return &SupplierHandler{
		r:        r,
		events:   publisher,
		AuditLog: a,
	}
}

func (h *SupplierHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/suppliers", h.GetSuppliers)
	router.POST("/suppliers", h.CreateSupplier)
	router.PUT("/suppliers/:id", h.UpdateSupplier)
	router.DELETE("/suppliers/:id", h.RemoveSupplier)
}

func (h *SupplierHandler) notifyChange(action string, supplierID int) {
	h.events.Publish(events.TopicDashboardDataUpdated, map[string]interface{}{
		"action":      action,
		"supplier_id": supplierID,
	})
}

func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	suppliers, err := h.r.GetSuppliers()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get suppliers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req models.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if req.AmountPaid < 0 || req.AmountDue < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Amounts must be non-negative"})
		return
	}

	supplier, err := h.r.PersistSupplier(req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"name": supplier.Name,
			"msg":  "Supplier created successfully",
		},
		supplier,
	)
	h.notifyChange("create", supplier.ID)

	c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind supplier ID"})
		return
	}

	var req models.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.r.UpdateSupplier(id, req); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier", "details": err.Error()})
		return
	}

	supplier, err := h.r.GetSupplier(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get supplier", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"update",
		map[string]interface{}{
			"msg": "Supplier updated successfully",
		},
		supplier,
	)
	h.notifyChange("update", id)

	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) RemoveSupplier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind supplier ID"})
		return
	}

	supplier, err := h.r.GetSupplier(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get supplier", "details": err.Error()})
		return
	}
	if supplier == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	if err := h.r.RemoveSupplier(id); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"delete",
		map[string]interface{}{
			"name": supplier.Name,
			"msg":  "Supplier removed",
		},
		supplier,
	)
	h.notifyChange("delete", id)

	c.JSON(http.StatusOK, gin.H{"message": "Supplier removed successfully"})
}
