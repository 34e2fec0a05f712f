package inventory

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"storefront/internal/events"
	"storefront/internal/storage"
	"storefront/pkg/auditlog"
	custom_error "storefront/pkg/errors"
	"storefront/pkg/models"

	"github.com/gin-gonic/gin"
)

type Repository interface {
	GetItems() (*[]models.InventoryItem, error)
	GetItem(id int) (*models.InventoryItem, error)
	GetVariants(parentID int) (*[]models.InventoryItem, error)
	CountVariants(parentID int) (int, error)
	PersistItem(req models.ItemRequest) (*models.InventoryItem, error)
	PersistVariant(parent *models.InventoryItem, req models.VariantRequest) (*models.InventoryItem, error)
	UpdateItem(id int, changes models.ItemChanges) error
	RemoveItem(id int) error
}

type InventoryHandler struct {
	r        Repository
	images   *storage.ImageStore
	events   events.Publisher
	AuditLog *auditlog.Auditlog
}

func NewInventoryHandler(r Repository, images *storage.ImageStore, publisher events.Publisher, a *auditlog.Auditlog) *InventoryHandler {
	return &InventoryHandler{
		r:        r,
		images:   images,
		events:   publisher,
		AuditLog: a,
	}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/inventory", h.GetItems)
	router.GET("/inventory/export", h.ExportItems)
	router.GET("/inventory/:id", h.GetItem)
	router.POST("/inventory", h.CreateItem)
	router.POST("/inventory/images", h.UploadImage)
	router.POST("/inventory/:id/variants", h.CreateVariants)
	router.PATCH("/inventory/:id", h.UpdateItem)
	router.DELETE("/inventory/:id", h.RemoveItem)
}

// notifyChange fans the mutation signal out to any mounted dashboard.
func (h *InventoryHandler) notifyChange(action string, itemID int) {
	payload := map[string]interface{}{"action": action, "item_id": itemID}
	h.events.Publish(events.TopicInventoryUpdated, payload)
	h.events.Publish(events.TopicDashboardDataUpdated, payload)
}

func (h *InventoryHandler) GetItems(c *gin.Context) {
	var filter Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters", "details": err.Error()})
		return
	}

	if filter.PriceField != "" && filter.PriceField != "cost_price" && filter.PriceField != "selling_price" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "price_field must be cost_price or selling_price"})
		return
	}

	items, err := h.r.GetItems()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get inventory", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, filter.Apply(*items))
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind item ID"})
		return
	}

	item, err := h.r.GetItem(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get item", "details": err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var variants []models.InventoryItem
	if item.HasVariants {
		fetched, err := h.r.GetVariants(item.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get variants", "details": err.Error()})
			return
		}
		variants = *fetched
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "variants": variants})
}

func validItemNumbers(costPrice float64, sellingPrice float64, quantity int) bool {
	return costPrice >= 0 && sellingPrice >= 0 && quantity >= 0
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req models.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !validItemNumbers(req.CostPrice, req.SellingPrice, req.Quantity) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Prices and quantity must be non-negative"})
		return
	}

	item, err := h.r.PersistItem(req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"name":     item.Name,
			"category": item.Category,
			"quantity": item.Quantity,
			"msg":      "Inventory item created successfully",
		},
		item,
	)
	h.notifyChange("create", item.ID)

	c.JSON(http.StatusCreated, item)
}

// CreateVariants inserts each requested variant independently and
// concurrently. Rows that make it in stay in; failures are reported per
// variant by name.
func (h *InventoryHandler) CreateVariants(c *gin.Context) {
	parentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || parentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind item ID"})
		return
	}

	var req models.BulkVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	for _, variant := range req.Variants {
		if !validItemNumbers(0, variant.SellingPrice, variant.Quantity) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Prices and quantity must be non-negative"})
			return
		}
	}

	parent, err := h.r.GetItem(parentID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get parent item", "details": err.Error()})
		return
	}
	if parent == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent item not found"})
		return
	}
	if parent.IsVariant() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A variant cannot have variants of its own"})
		return
	}
	if !parent.HasVariants {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Item is not flagged for variants"})
		return
	}

	created := make([]*models.InventoryItem, len(req.Variants))
	failures := make([]string, len(req.Variants))

	var wg sync.WaitGroup
	for i, variant := range req.Variants {
		wg.Add(1)
		go func(i int, variant models.VariantRequest) {
			defer wg.Done()
			item, err := h.r.PersistVariant(parent, variant)
			if err != nil {
				failures[i] = fmt.Sprintf("%s: %s", variant.Name, err.Error())
				return
			}
			created[i] = item
		}(i, variant)
	}
	wg.Wait()

	var createdItems []models.InventoryItem
	for _, item := range created {
		if item != nil {
			createdItems = append(createdItems, *item)
			go h.AuditLog.Log(
				"create",
				map[string]interface{}{
					"name":         item.Name,
					"base_item_id": parent.ID,
					"msg":          "Variant created successfully",
				},
				item,
			)
		}
	}

	var errs []string
	for _, failure := range failures {
		if failure != "" {
			errs = append(errs, failure)
		}
	}

	if len(createdItems) > 0 {
		h.notifyChange("create_variants", parent.ID)
	}

	if len(errs) > 0 {
		c.JSON(http.StatusMultiStatus, gin.H{"created": createdItems, "errors": errs})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": createdItems})
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind item ID"})
		return
	}

	var changes models.ItemChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !changes.HasChanges() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No changes provided"})
		return
	}

	if changes.CostPrice != nil && *changes.CostPrice < 0 ||
		changes.SellingPrice != nil && *changes.SellingPrice < 0 ||
		changes.Quantity != nil && *changes.Quantity < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Prices and quantity must be non-negative"})
		return
	}

	if err := h.r.UpdateItem(id, changes); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item", "details": err.Error()})
		return
	}

	item, err := h.r.GetItem(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get item", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"update",
		map[string]interface{}{
			"msg": "Inventory item updated successfully",
		},
		item,
	)
	h.notifyChange("update", id)

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) RemoveItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind item ID"})
		return
	}

	item, err := h.r.GetItem(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get item", "details": err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if err := h.r.RemoveItem(id); err != nil {
		switch err.(type) {
		case *custom_error.ForeignKeyViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Item still has variants, remove them first"})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item", "details": err.Error()})
			return
		}
	}

	if item.ImageURL != nil && h.images != nil {
		h.images.Remove(*item.ImageURL)
	}

	go h.AuditLog.Log(
		"delete",
		map[string]interface{}{
			"name": item.Name,
			"msg":  "Inventory item removed",
		},
		item,
	)
	h.notifyChange("delete", id)

	c.JSON(http.StatusOK, gin.H{"message": "Item removed successfully"})
}

// UploadImage stores the uploaded file and returns its public URL. The item
// insert that references the URL happens in a separate request afterwards, so
// a failed upload never leaves a half-created item behind.
func (h *InventoryHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}
	defer file.Close()

	url, err := h.images.Save(file)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image_url": url})
}

func (h *InventoryHandler) ExportItems(c *gin.Context) {
	var filter Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters", "details": err.Error()})
		return
	}

	items, err := h.r.GetItems()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get inventory", "details": err.Error()})
		return
	}

	filtered := filter.Apply(*items)

	if c.Query("format") == "xlsx" {
		c.Header("Content-Disposition", `attachment; filename="inventory.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := ExportXLSX(filtered, c.Writer); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to build spreadsheet", "details": err.Error()})
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="inventory.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(ExportCSV(filtered)))
}
