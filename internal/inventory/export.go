package inventory

import (
	"io"
	"strconv"
	"strings"

	"storefront/pkg/models"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Name", "Category", "Description", "Cost Price", "Selling Price", "Quantity", "Added Date"}

func exportRow(item models.InventoryItem) []string {
	return []string{
		item.Name,
		item.Category,
		item.Description,
		strconv.FormatFloat(item.CostPrice, 'f', 2, 64),
		strconv.FormatFloat(item.SellingPrice, 'f', 2, 64),
		strconv.Itoa(item.Quantity),
		item.CreatedAt.Format("2006-01-02"),
	}
}

func quoteField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// ExportCSV renders the list as one header line plus one line per row, every
// field double-quoted.
func ExportCSV(items []models.InventoryItem) string {
	lines := make([]string, 0, len(items)+1)

	rows := [][]string{exportHeader}
	for _, item := range items {
		rows = append(rows, exportRow(item))
	}

	for _, row := range rows {
		quoted := make([]string, len(row))
		for i, field := range row {
			quoted[i] = quoteField(field)
		}
		lines = append(lines, strings.Join(quoted, ","))
	}

	return strings.Join(lines, "\n")
}

// ExportXLSX writes the same table as a spreadsheet.
func ExportXLSX(items []models.InventoryItem, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	for rowIdx, item := range items {
		for col, value := range exportRow(item) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
