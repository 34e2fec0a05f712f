package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/pkg/models"

	"github.com/gin-gonic/gin"
)

const snapshotTTL = 60 * time.Second

type SalesSource interface {
	GetSales() (*[]models.Sale, error)
}

type InventorySource interface {
	GetItems() (*[]models.InventoryItem, error)
}

// SnapshotCache holds the rendered summary between invalidations. A nil cache
// disables caching entirely.
type SnapshotCache interface {
	GetDashboardSnapshot(ctx context.Context) []byte
	StoreDashboardSnapshot(ctx context.Context, body []byte, ttl time.Duration)
}

type AnalyticsHandler struct {
	sales     SalesSource
	inventory InventorySource
	cache     SnapshotCache
}

func NewAnalyticsHandler(sales SalesSource, inventory InventorySource, cache SnapshotCache) *AnalyticsHandler {
	return &AnalyticsHandler{
		sales:     sales,
		inventory: inventory,
		cache:     cache,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/analytics/summary", h.GetSummary)
}

func (h *AnalyticsHandler) fetchSources() (*[]models.Sale, *[]models.InventoryItem, error) {
	salesChannel := make(chan *[]models.Sale, 1)
	inventoryChannel := make(chan *[]models.InventoryItem, 1)
	errChannel := make(chan error, 2)

	go func() {
		sales, err := h.sales.GetSales()

		if err != nil {
			errChannel <- err
			return
		}
		salesChannel <- sales
	}()

	go func() {
		items, err := h.inventory.GetItems()

		if err != nil {
			errChannel <- err
			return
		}
		inventoryChannel <- items
	}()

	var sales *[]models.Sale
	var items *[]models.InventoryItem

	for i := 0; i < 2; i++ {
		select {
		case result := <-salesChannel:
			sales = result
		case result := <-inventoryChannel:
			items = result
		case err := <-errChannel:
			return nil, nil, err
		}
	}

	return sales, items, nil
}

func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	if h.cache != nil {
		if body := h.cache.GetDashboardSnapshot(c.Request.Context()); body != nil {
			c.Data(http.StatusOK, "application/json", body)
			return
		}
	}

	sales, items, err := h.fetchSources()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get analytics data", "details": err.Error()})
		return
	}

	summary := BuildSummary(*sales, *items, time.Now())

	if h.cache != nil {
		if body, err := json.Marshal(summary); err == nil {
			h.cache.StoreDashboardSnapshot(c.Request.Context(), body, snapshotTTL)
		}
	}

	c.JSON(http.StatusOK, summary)
}
