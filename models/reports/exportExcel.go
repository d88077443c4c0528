package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildSalesReportWorkbook renders a sales report as an xlsx workbook.
// The caller streams it with excelize.File.Write.
func BuildSalesReportWorkbook(report *SalesReportResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "SalesReport"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headings := []string{"Region", "Dealer", "Orders", "TotalAmount", "AverageAmount"}
	for i, h := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, h)
	}

	for i, row := range report.Rows {
		rowNo := i + 2
		f.SetCellValue(sheetName, "A"+fmt.Sprint(rowNo), row.RegionName)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(rowNo), row.DealerName)
		f.SetCellValue(sheetName, "C"+fmt.Sprint(rowNo), row.OrderCount)
		f.SetCellValue(sheetName, "D"+fmt.Sprint(rowNo), row.TotalAmount.InexactFloat64())
		f.SetCellValue(sheetName, "E"+fmt.Sprint(rowNo), row.AverageAmount.InexactFloat64())
	}

	totalRow := len(report.Rows) + 3
	f.SetCellValue(sheetName, "A"+fmt.Sprint(totalRow), "Total")
	f.SetCellValue(sheetName, "C"+fmt.Sprint(totalRow), report.OrderCount)
	f.SetCellValue(sheetName, "D"+fmt.Sprint(totalRow), report.GrandTotal.InexactFloat64())

	return f, nil
}
