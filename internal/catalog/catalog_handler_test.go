package catalog

import (
	"testing"
	"time"

	"storefront/pkg/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func catalogItems() []models.InventoryItem {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.InventoryItem{
		{ID: 1, Name: "Saree", Quantity: 10, HasVariants: true, CreatedAt: base},
		{ID: 2, Name: "Red", Quantity: 4, BaseItemID: intPtr(1), CreatedAt: base.Add(time.Hour)},
		{ID: 3, Name: "Blue", Quantity: 6, BaseItemID: intPtr(1), CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, Name: "Kurti", Quantity: 2, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func TestBuildProductsFoldsVariantsIntoParents(t *testing.T) {
	products := BuildProducts(catalogItems())

	assert.Len(t, products, 2)

	// newest parent first
	assert.Equal(t, "Kurti", products[0].Name)
	assert.True(t, products[0].LowStock)

	assert.Equal(t, "Saree", products[1].Name)
	assert.Equal(t, []string{"Red", "Blue"}, products[1].Colors)
}

func TestPaginateClampsPageIntoRange(t *testing.T) {
	products := make([]Product, 25)

	first, totalPages := Paginate(products, 0, 12)
	assert.Len(t, first, 12)
	assert.Equal(t, 3, totalPages)

	last, _ := Paginate(products, 99, 12)
	assert.Len(t, last, 1)
}

func TestPaginateEmptyListHasOnePage(t *testing.T) {
	page, totalPages := Paginate(nil, 1, 12)

	assert.Empty(t, page)
	assert.Equal(t, 1, totalPages)
}
