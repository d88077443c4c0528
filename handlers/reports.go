package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
	"github.com/namnm309/evdealer-backend/models/reports"
)

func salesReportFilter(c *gin.Context) (reports.SalesReportFilter, error) {
	filter := reports.SalesReportFilter{
		Year:     intQuery(c, "year"),
		Month:    time.Month(intQuery(c, "month")),
		RegionId: intQuery(c, "region_id"),
		DealerId: scopedDealerId(c),
	}
	if raw := c.Query("period"); raw != "" {
		period, err := models.ParseReportPeriod(raw)
		if err != nil {
			return filter, err
		}
		filter.Period = period
	}
	return filter, nil
}

func GetSalesReport(c *gin.Context) {
	filter, err := salesReportFilter(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	report, err := reports.GetSalesReport(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, report, "")
}

func ExportSalesReport(c *gin.Context) {
	filter, err := salesReportFilter(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	report, err := reports.GetSalesReport(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	workbook, err := reports.BuildSalesReportWorkbook(report)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("sales-report-%s.xlsx", report.FromDate.Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := workbook.Write(c.Writer); err != nil {
		respondError(c, http.StatusInternalServerError, err)
	}
}

func GetInventoryReport(c *gin.Context) {
	rows, err := reports.GetInventoryReport(c.Request.Context(), scopedDealerId(c))
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, rows, "")
}

func GetDashboardReport(c *gin.Context) {
	report, err := reports.GetDashboardReport(c.Request.Context(), scopedDealerId(c))
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, report, "")
}
