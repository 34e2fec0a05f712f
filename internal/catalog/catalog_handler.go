// Package catalog serves the public, read-only product views. Listings show
// parent items only; variant rows surface as color options on their parent.
package catalog

import (
	"net/http"
	"strconv"

	"storefront/internal/inventory"
	"storefront/pkg/models"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 12

type Product struct {
	models.InventoryItem
	Colors   []string `json:"colors,omitempty"`
	LowStock bool     `json:"low_stock"`
}

type ParentRef struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url,omitempty"`
}

type CatalogHandler struct {
	r inventory.Repository
}

func NewCatalogHandler(r inventory.Repository) *CatalogHandler {
	return &CatalogHandler{r: r}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/catalog", h.ListProducts)
	router.GET("/catalog/:id", h.GetProduct)
}

type listQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// BuildProducts folds variant rows into their parents as color names and
// returns parents newest first.
func BuildProducts(items []models.InventoryItem) []Product {
	colorsByParent := map[int][]string{}
	for _, item := range items {
		if item.IsVariant() && item.Name != "" {
			colorsByParent[*item.BaseItemID] = append(colorsByParent[*item.BaseItemID], item.Name)
		}
	}

	var products []Product
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if item.IsVariant() {
			continue
		}
		products = append(products, Product{
			InventoryItem: item,
			Colors:        colorsByParent[item.ID],
			LowStock:      item.LowStock(),
		})
	}

	return products
}

// Paginate clamps the page into range and cuts out one page of products.
func Paginate(products []Product, page int, pageSize int) ([]Product, int) {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	totalPages := (len(products) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(products) {
		start = len(products)
	}
	if end > len(products) {
		end = len(products)
	}

	return products[start:end], totalPages
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter inventory.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters", "details": err.Error()})
		return
	}

	var paging listQuery
	if err := c.ShouldBindQuery(&paging); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid paging parameters", "details": err.Error()})
		return
	}

	items, err := h.r.GetItems()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get products", "details": err.Error()})
		return
	}

	products := BuildProducts(*items)

	filtered := make([]Product, 0, len(products))
	for _, product := range products {
		if filter.Matches(product.InventoryItem) {
			filtered = append(filtered, product)
		}
	}

	pageItems, totalPages := Paginate(filtered, paging.Page, paging.PageSize)

	c.JSON(http.StatusOK, gin.H{
		"products":    pageItems,
		"total":       len(filtered),
		"total_pages": totalPages,
	})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to bind product ID"})
		return
	}

	item, err := h.r.GetItem(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get product", "details": err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
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

	var parent *ParentRef
	if item.IsVariant() {
		parentItem, err := h.r.GetItem(*item.BaseItemID)
		if err == nil && parentItem != nil {
			parent = &ParentRef{ID: parentItem.ID, Name: parentItem.Name, ImageURL: parentItem.ImageURL}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"item":     item,
		"variants": variants,
		"parent":   parent,
	})
}
