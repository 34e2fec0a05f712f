package sales

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/events"
	"storefront/pkg/auditlog"
	"storefront/pkg/models"

	"github.com/gin-gonic/gin"
)

type Repository interface {
	GetSales() (*[]models.Sale, error)
	GetSale(id int) (*models.Sale, error)
	PersistSale(sale models.Sale) (*models.Sale, error)
	UpdateSale(sale models.Sale) error
	RemoveSale(id int) error
}

// ItemResolver looks up the inventory row a sale references, for snapshot
// defaults. A missing row is not an error: the sale keeps whatever the
// request carried.
type ItemResolver interface {
	GetItem(id int) (*models.InventoryItem, error)
}

type SaleHandler struct {
	r        Repository
	items    ItemResolver
	events   events.Publisher
	AuditLog *auditlog.Auditlog
}

func NewSaleHandler(r Repository, items ItemResolver, publisher events.Publisher, a *auditlog.Auditlog) *SaleHandler {
	return &SaleHandler{
		r:        r,
		items:    items,
		events:   publisher,
		AuditLog: a,
	}
}

func (h *SaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/sales", h.GetSales)
	router.GET("/sales/export", h.ExportSales)
	router.POST("/sales", h.CreateSale)
	router.PUT("/sales/:id", h.UpdateSale)
	router.DELETE("/sales/:id", h.RemoveSale)
}

func (h *SaleHandler) notifyChange(action string, saleID int) {
	h.events.Publish(events.TopicDashboardDataUpdated, map[string]interface{}{
		"action":  action,
		"sale_id": saleID,
	})
}

func (h *SaleHandler) GetSales(c *gin.Context) {
	sales, err := h.r.GetSales()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get sales", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req models.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.items.GetItem(req.ItemID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to resolve sold item", "details": err.Error()})
		return
	}

	resolved, err := ResolveSale(req, item, time.Now())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid sale", "details": err.Error()})
		return
	}

	sale, err := h.r.PersistSale(resolved)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"item_name":     sale.ItemName,
			"quantity_sold": sale.QuantitySold,
			"total_revenue": sale.TotalRevenue,
			"msg":           "Sale recorded successfully",
		},
		sale,
	)
	h.notifyChange("create", sale.ID)

	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) UpdateSale(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind sale ID"})
		return
	}

	var changes models.SaleChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !changes.HasChanges() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No changes provided"})
		return
	}

	sale, err := h.r.GetSale(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get sale", "details": err.Error()})
		return
	}
	if sale == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	updated, err := ApplyChanges(*sale, changes)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid sale", "details": err.Error()})
		return
	}

	if err := h.r.UpdateSale(updated); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sale", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"update",
		map[string]interface{}{
			"msg": "Sale updated successfully",
		},
		&updated,
	)
	h.notifyChange("update", id)

	c.JSON(http.StatusOK, updated)
}

func (h *SaleHandler) RemoveSale(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind sale ID"})
		return
	}

	sale, err := h.r.GetSale(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get sale", "details": err.Error()})
		return
	}
	if sale == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	if err := h.r.RemoveSale(id); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"delete",
		map[string]interface{}{
			"item_name": sale.ItemName,
			"msg":       "Sale removed",
		},
		sale,
	)
	h.notifyChange("delete", id)

	c.JSON(http.StatusOK, gin.H{"message": "Sale removed successfully"})
}

func (h *SaleHandler) ExportSales(c *gin.Context) {
	sales, err := h.r.GetSales()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get sales", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sales.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(ExportCSV(*sales)))
}

// ExportCSV mirrors the inventory export format: one header line, one line
// per sale, every field double-quoted with embedded quotes doubled.
func ExportCSV(sales []models.Sale) string {
	header := []string{"Date", "Item", "Quantity Sold", "Selling Price", "Total Revenue"}

	rows := [][]string{header}
	for _, sale := range sales {
		rows = append(rows, []string{
			sale.SaleDate.Format("2006-01-02"),
			sale.ItemName,
			strconv.Itoa(sale.QuantitySold),
			strconv.FormatFloat(sale.SellingPrice, 'f', 2, 64),
			strconv.FormatFloat(sale.TotalRevenue, 'f', 2, 64),
		})
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		quoted := make([]string, len(row))
		for i, field := range row {
			quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(quoted, ","))
	}

	return strings.Join(lines, "\n")
}
