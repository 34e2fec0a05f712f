package inventory

import (
	"strings"
	"testing"
	"time"

	"storefront/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestExportCSVHasHeaderPlusOneLinePerRow(t *testing.T) {
	items := testItems()

	csv := ExportCSV(items)
	lines := strings.Split(csv, "\n")

	assert.Len(t, lines, len(items)+1)
	assert.Equal(t, `"Name","Category","Description","Cost Price","Selling Price","Quantity","Added Date"`, lines[0])
}

func TestExportCSVQuotesEveryField(t *testing.T) {
	created := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	items := []models.InventoryItem{
		{Name: "Red Saree", Category: "Sarees", Description: "Silk", CostPrice: 40, SellingPrice: 99.5, Quantity: 10, CreatedAt: created},
	}

	csv := ExportCSV(items)
	lines := strings.Split(csv, "\n")

	assert.Equal(t, `"Red Saree","Sarees","Silk","40.00","99.50","10","2025-03-14"`, lines[1])
}

func TestExportCSVDoublesEmbeddedQuotes(t *testing.T) {
	items := []models.InventoryItem{
		{Name: `The "Classic" Kurti`, Category: "Kurtis", Description: "Plain"},
	}

	csv := ExportCSV(items)

	assert.Contains(t, csv, `"The ""Classic"" Kurti"`)
}

func TestExportCSVEmptyListIsHeaderOnly(t *testing.T) {
	csv := ExportCSV(nil)

	assert.Len(t, strings.Split(csv, "\n"), 1)
}
