package reports

import (
	"context"
	"errors"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/models"
	"github.com/namnm309/evdealer-backend/utils"
	"github.com/shopspring/decimal"
)

type SalesReportFilter struct {
	Period   models.ReportPeriod
	Year     int
	Month    time.Month
	RegionId int
	DealerId int
}

type SalesReportRow struct {
	RegionId      int             `json:"region_id"`
	RegionName    string          `json:"region_name"`
	DealerId      int             `json:"dealer_id"`
	DealerName    string          `json:"dealer_name"`
	OrderCount    int64           `json:"order_count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AverageAmount decimal.Decimal `json:"average_amount"`
}

type SalesReportResponse struct {
	FromDate   time.Time        `json:"from_date"`
	ToDate     time.Time        `json:"to_date"`
	Rows       []*SalesReportRow `json:"rows"`
	GrandTotal decimal.Decimal  `json:"grand_total"`
	OrderCount int64            `json:"order_count"`
}

func (filter *SalesReportFilter) dateRange() (time.Time, time.Time, error) {
	year := filter.Year
	month := filter.Month
	if year == 0 {
		now := time.Now()
		year = now.Year()
		if month == 0 {
			month = now.Month()
		}
	}
	if month == 0 {
		month = time.January
	}
	switch filter.Period {
	case models.ReportPeriodMonthly, "":
		from, to := utils.GetMonthRange(year, month)
		return from, to, nil
	case models.ReportPeriodQuarterly:
		from, to := utils.GetQuarterRange(year, month)
		return from, to, nil
	case models.ReportPeriodYearly:
		from, to := utils.GetYearRange(year)
		return from, to, nil
	}
	return time.Time{}, time.Time{}, errors.New("unsupported report period")
}

// GetSalesReport aggregates delivered and paid orders per region and dealer.
func GetSalesReport(ctx context.Context, filter SalesReportFilter) (*SalesReportResponse, error) {
	db := config.GetDB()

	fromDate, toDate, err := filter.dateRange()
	if err != nil {
		return nil, err
	}

	sql := `
SELECT
    regions.id AS region_id,
    regions.name AS region_name,
    dealers.id AS dealer_id,
    dealers.name AS dealer_name,
    COUNT(orders.id) AS order_count,
    COALESCE(SUM(orders.final_amount), 0) AS total_amount,
    COALESCE(AVG(orders.final_amount), 0) AS average_amount
FROM
    orders
        JOIN
    dealers ON dealers.id = orders.dealer_id
        LEFT JOIN
    regions ON regions.id = dealers.region_id
WHERE
    orders.status IN ('Delivered' , 'Paid')
        AND orders.created_at BETWEEN @fromDate AND @toDate
        AND (@regionId = 0 OR dealers.region_id = @regionId)
        AND (@dealerId = 0 OR orders.dealer_id = @dealerId)
GROUP BY regions.id , regions.name , dealers.id , dealers.name
ORDER BY total_amount DESC;
`

	var rows []*SalesReportRow
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"fromDate": fromDate,
		"toDate":   toDate,
		"regionId": filter.RegionId,
		"dealerId": filter.DealerId,
	}).Scan(&rows).Error; err != nil {
		return nil, err
	}

	response := SalesReportResponse{
		FromDate: fromDate,
		ToDate:   toDate,
		Rows:     rows,
	}
	for _, row := range rows {
		response.GrandTotal = response.GrandTotal.Add(row.TotalAmount)
		response.OrderCount += row.OrderCount
	}

	return &response, nil
}
