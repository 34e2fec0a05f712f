package analytics

import (
	"testing"
	"time"

	"storefront/pkg/models"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func saleOn(date time.Time, itemID int, name string, quantity int, price float64) models.Sale {
	return models.Sale{
		ItemID:       itemID,
		ItemName:     name,
		QuantitySold: quantity,
		SellingPrice: price,
		TotalRevenue: float64(quantity) * price,
		SaleDate:     date,
	}
}

func TestBuildSummaryMonthlyBuckets(t *testing.T) {
	sales := []models.Sale{
		saleOn(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 1, "Saree", 2, 50),
		saleOn(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), 1, "Saree", 1, 50),
		saleOn(time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), 1, "Saree", 4, 50), // outside window
	}

	summary := BuildSummary(sales, nil, now)

	assert.Len(t, summary.MonthlySales, 6)
	assert.Equal(t, "Jan", summary.MonthlySales[0].Month)
	assert.Equal(t, "Jun", summary.MonthlySales[5].Month)
	assert.Equal(t, 100.0, summary.MonthlySales[5].Sales)
	assert.Equal(t, 50.0, summary.MonthlySales[4].Sales)
	assert.Equal(t, 0.0, summary.MonthlySales[0].Sales)
}

func TestBuildSummaryGrowthIsZeroWhenLastMonthEmpty(t *testing.T) {
	sales := []models.Sale{
		saleOn(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 1, "Saree", 2, 100),
	}

	summary := BuildSummary(sales, nil, now)

	assert.Equal(t, 0.0, summary.MonthlyGrowth)
}

func TestBuildSummaryGrowthComparesAdjacentMonths(t *testing.T) {
	sales := []models.Sale{
		saleOn(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 1, "Saree", 3, 100),
		saleOn(time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), 1, "Saree", 2, 100),
	}

	summary := BuildSummary(sales, nil, now)

	assert.InDelta(t, 50.0, summary.MonthlyGrowth, 0.0001)
}

func TestBuildSummaryProfitUsesZeroCostForMissingItem(t *testing.T) {
	sales := []models.Sale{
		saleOn(now, 999, "Gone", 2, 100),
	}

	summary := BuildSummary(sales, nil, now)

	assert.Equal(t, 200.0, summary.TotalProfit)
}

func TestBuildSummaryProfitSubtractsCostBasis(t *testing.T) {
	inventory := []models.InventoryItem{
		{ID: 1, CostPrice: 40, Quantity: 10},
	}
	sales := []models.Sale{
		saleOn(now, 1, "Saree", 2, 100),
	}

	summary := BuildSummary(sales, inventory, now)

	assert.Equal(t, 120.0, summary.TotalProfit)
	assert.Equal(t, 400.0, summary.InventoryWorth)
}

func TestBuildSummaryMostSoldTopFourThisMonthOnly(t *testing.T) {
	sales := []models.Sale{
		saleOn(now, 1, "Saree", 5, 10),
		saleOn(now, 2, "Kurti", 8, 10),
		saleOn(now, 3, "Lehenga", 3, 10),
		saleOn(now, 4, "Dupatta", 6, 10),
		saleOn(now, 5, "Shawl", 1, 10),
		saleOn(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 6, "OldHit", 50, 10),
	}

	summary := BuildSummary(sales, nil, now)

	assert.Len(t, summary.MostSoldItems, 4)
	assert.Equal(t, SoldItem{Name: "Kurti", Value: 8}, summary.MostSoldItems[0])
	assert.Equal(t, SoldItem{Name: "Dupatta", Value: 6}, summary.MostSoldItems[1])
	for _, item := range summary.MostSoldItems {
		assert.NotEqual(t, "OldHit", item.Name)
	}
}

func TestBuildSummaryMostSoldTiesBreakByName(t *testing.T) {
	sales := []models.Sale{
		saleOn(now, 1, "Zari", 5, 10),
		saleOn(now, 2, "Anarkali", 5, 10),
	}

	summary := BuildSummary(sales, nil, now)

	assert.Equal(t, "Anarkali", summary.MostSoldItems[0].Name)
	assert.Equal(t, "Zari", summary.MostSoldItems[1].Name)
}

func TestBuildSummaryTodayAndAverage(t *testing.T) {
	sales := []models.Sale{
		saleOn(now, 1, "Saree", 1, 100),
		saleOn(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 1, "Saree", 1, 50),
	}

	summary := BuildSummary(sales, nil, now)

	assert.Equal(t, 100.0, summary.TodaySales)
	assert.Equal(t, 75.0, summary.AvgOrderValue)
}

func TestBuildSummaryEmptyInput(t *testing.T) {
	summary := BuildSummary(nil, nil, now)

	assert.Len(t, summary.MonthlySales, 6)
	assert.Equal(t, 0.0, summary.AvgOrderValue)
	assert.Equal(t, 0.0, summary.MonthlyGrowth)
	assert.Empty(t, summary.MostSoldItems)
}

func TestBuildSummaryWindowAcrossYearBoundary(t *testing.T) {
	january := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	sales := []models.Sale{
		saleOn(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), 1, "Saree", 1, 10),
		saleOn(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), 1, "Saree", 1, 20),
	}

	summary := BuildSummary(sales, nil, january)

	assert.Equal(t, "Aug", summary.MonthlySales[0].Month)
	assert.Equal(t, 10.0, summary.MonthlySales[0].Sales)
	assert.Equal(t, "Jan", summary.MonthlySales[5].Month)
	assert.Equal(t, 20.0, summary.MonthlySales[5].Sales)
}
