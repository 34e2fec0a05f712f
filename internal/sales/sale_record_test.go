package sales

import (
	"strings"
	"testing"
	"time"

	"storefront/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveSaleSnapshotsNameAndPriceFromItem(t *testing.T) {
	item := &models.InventoryItem{ID: 3, Name: "Red Saree", SellingPrice: 99.5}
	req := models.SaleRequest{ItemID: 3, QuantitySold: 2}

	sale, err := ResolveSale(req, item, time.Now())

	assert.NoError(t, err)
	assert.Equal(t, "Red Saree", sale.ItemName)
	assert.Equal(t, 99.5, sale.SellingPrice)
	assert.Equal(t, 199.0, sale.TotalRevenue)
}

func TestResolveSaleKeepsRequestOverrides(t *testing.T) {
	item := &models.InventoryItem{ID: 3, Name: "Red Saree", SellingPrice: 99.5}
	req := models.SaleRequest{ItemID: 3, ItemName: "Red Saree (sale)", QuantitySold: 1, SellingPrice: 80}

	sale, err := ResolveSale(req, item, time.Now())

	assert.NoError(t, err)
	assert.Equal(t, "Red Saree (sale)", sale.ItemName)
	assert.Equal(t, 80.0, sale.TotalRevenue)
}

func TestResolveSaleSurvivesMissingItem(t *testing.T) {
	req := models.SaleRequest{ItemID: 99, ItemName: "Gone", QuantitySold: 2, SellingPrice: 100}

	sale, err := ResolveSale(req, nil, time.Now())

	assert.NoError(t, err)
	assert.Equal(t, 200.0, sale.TotalRevenue)
}

func TestResolveSaleParsesSaleDate(t *testing.T) {
	req := models.SaleRequest{ItemID: 3, ItemName: "X", QuantitySold: 1, SellingPrice: 10, SaleDate: "2025-02-14"}

	sale, err := ResolveSale(req, nil, time.Now())

	assert.NoError(t, err)
	assert.Equal(t, "2025-02-14", sale.SaleDate.Format("2006-01-02"))
}

func TestResolveSaleRejectsNonPositiveQuantity(t *testing.T) {
	req := models.SaleRequest{ItemID: 3, ItemName: "X", SellingPrice: 10}

	_, err := ResolveSale(req, nil, time.Now())

	assert.Error(t, err)
}

func TestApplyChangesRecomputesTotal(t *testing.T) {
	sale := models.Sale{ID: 1, ItemName: "X", QuantitySold: 2, SellingPrice: 50, TotalRevenue: 100}
	quantity := 3
	price := 40.0

	updated, err := ApplyChanges(sale, models.SaleChanges{QuantitySold: &quantity, SellingPrice: &price})

	assert.NoError(t, err)
	assert.Equal(t, 120.0, updated.TotalRevenue)
}

func TestExportCSVShape(t *testing.T) {
	sales := []models.Sale{
		{ItemName: `The "Classic"`, QuantitySold: 2, SellingPrice: 50, TotalRevenue: 100, SaleDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	csv := ExportCSV(sales)
	lines := strings.Split(csv, "\n")

	assert.Len(t, lines, 2)
	assert.Equal(t, `"Date","Item","Quantity Sold","Selling Price","Total Revenue"`, lines[0])
	assert.Equal(t, `"2025-03-01","The ""Classic""","2","50.00","100.00"`, lines[1])
}
