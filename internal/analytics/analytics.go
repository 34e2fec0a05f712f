// Package analytics computes the dashboard aggregates from fetched sales and
// inventory rows. Everything here is pure; fetching and caching live in the
// handler.
package analytics

import (
	"sort"
	"time"

	"storefront/pkg/models"
)

type MonthlyBucket struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

type SoldItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Summary struct {
	MonthlySales   []MonthlyBucket `json:"monthly_sales"`
	MostSoldItems  []SoldItem      `json:"most_sold_items"`
	InventoryWorth float64         `json:"inventory_worth"`
	TodaySales     float64         `json:"today_sales"`
	MonthlyGrowth  float64         `json:"monthly_growth"`
	AvgOrderValue  float64         `json:"avg_order_value"`
	TotalProfit    float64         `json:"total_profit"`
}

const mostSoldLimit = 4

func sameMonth(date time.Time, year int, month time.Month) bool {
	return date.Year() == year && date.Month() == month
}

// BuildSummary derives every dashboard figure in one pass over the fetched
// rows. Buckets are keyed by calendar month, not month name, so a six-month
// window spanning a year boundary never merges two Januaries.
func BuildSummary(sales []models.Sale, inventory []models.InventoryItem, now time.Time) Summary {
	summary := Summary{}

	// last six calendar months, oldest first
	type monthKey struct {
		year  int
		month time.Month
	}
	bucketIndex := map[monthKey]int{}
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 5; i >= 0; i-- {
		m := firstOfMonth.AddDate(0, -i, 0)
		bucketIndex[monthKey{m.Year(), m.Month()}] = len(summary.MonthlySales)
		summary.MonthlySales = append(summary.MonthlySales, MonthlyBucket{Month: m.Format("Jan")})
	}

	thisMonth := 0.0
	lastMonth := 0.0
	prior := firstOfMonth.AddDate(0, -1, 0)
	today := now.Format("2006-01-02")

	unitsSold := map[string]int{}

	for _, sale := range sales {
		if idx, ok := bucketIndex[monthKey{sale.SaleDate.Year(), sale.SaleDate.Month()}]; ok {
			summary.MonthlySales[idx].Sales += sale.TotalRevenue
		}

		if sameMonth(sale.SaleDate, now.Year(), now.Month()) {
			thisMonth += sale.TotalRevenue
			unitsSold[sale.ItemName] += sale.QuantitySold
		}
		if sameMonth(sale.SaleDate, prior.Year(), prior.Month()) {
			lastMonth += sale.TotalRevenue
		}
		if sale.SaleDate.Format("2006-01-02") == today {
			summary.TodaySales += sale.TotalRevenue
		}

		summary.AvgOrderValue += sale.TotalRevenue
	}

	for name, value := range unitsSold {
		summary.MostSoldItems = append(summary.MostSoldItems, SoldItem{Name: name, Value: value})
	}
	sort.Slice(summary.MostSoldItems, func(i, j int) bool {
		if summary.MostSoldItems[i].Value != summary.MostSoldItems[j].Value {
			return summary.MostSoldItems[i].Value > summary.MostSoldItems[j].Value
		}
		return summary.MostSoldItems[i].Name < summary.MostSoldItems[j].Name
	})
	if len(summary.MostSoldItems) > mostSoldLimit {
		summary.MostSoldItems = summary.MostSoldItems[:mostSoldLimit]
	}

	costByID := map[int]float64{}
	for _, item := range inventory {
		summary.InventoryWorth += item.CostPrice * float64(item.Quantity)
		costByID[item.ID] = item.CostPrice
	}

	// a sale whose item is gone contributes with cost basis 0
	for _, sale := range sales {
		cost := costByID[sale.ItemID]
		summary.TotalProfit += (sale.SellingPrice - cost) * float64(sale.QuantitySold)
	}

	if lastMonth != 0 {
		summary.MonthlyGrowth = (thisMonth - lastMonth) / lastMonth * 100
	}

	if len(sales) > 0 {
		summary.AvgOrderValue /= float64(len(sales))
	}

	return summary
}
