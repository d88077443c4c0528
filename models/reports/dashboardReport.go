package reports

import (
	"context"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/models"
	"github.com/shopspring/decimal"
)

type OrderStatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

type DashboardResponse struct {
	OrdersByStatus        []OrderStatusCount `json:"orders_by_status"`
	MonthlySalesTotal     decimal.Decimal    `json:"monthly_sales_total"`
	PendingPurchaseOrders int64              `json:"pending_purchase_orders"`
	UpcomingTestDrives    int64              `json:"upcoming_test_drives"`
	LowStockAllocations   int64              `json:"low_stock_allocations"`
	ActiveCustomers       int64              `json:"active_customers"`
}

// GetDashboardReport collects the headline counters shown on the admin
// landing page. dealerId 0 aggregates the whole network.
func GetDashboardReport(ctx context.Context, dealerId int) (*DashboardResponse, error) {
	db := config.GetDB()

	var response DashboardResponse

	ordersQuery := db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").Group("status")
	if dealerId > 0 {
		ordersQuery = ordersQuery.Where("dealer_id = ?", dealerId)
	}
	if err := ordersQuery.Scan(&response.OrdersByStatus).Error; err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	salesQuery := db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(final_amount), 0)").
		Where("status IN ?", []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusPaid}).
		Where("created_at >= ?", monthStart)
	if dealerId > 0 {
		salesQuery = salesQuery.Where("dealer_id = ?", dealerId)
	}
	if err := salesQuery.Scan(&response.MonthlySalesTotal).Error; err != nil {
		return nil, err
	}

	poQuery := db.WithContext(ctx).Model(&models.PurchaseOrder{}).
		Where("status = ?", models.PurchaseOrderStatusPending)
	if dealerId > 0 {
		poQuery = poQuery.Where("dealer_id = ?", dealerId)
	}
	if err := poQuery.Count(&response.PendingPurchaseOrders).Error; err != nil {
		return nil, err
	}

	testDriveQuery := db.WithContext(ctx).Model(&models.TestDrive{}).
		Where("status IN ?", []models.TestDriveStatus{models.TestDriveStatusPending, models.TestDriveStatusConfirmed}).
		Where("scheduled_date >= ?", now)
	if dealerId > 0 {
		testDriveQuery = testDriveQuery.Where("dealer_id = ?", dealerId)
	}
	if err := testDriveQuery.Count(&response.UpcomingTestDrives).Error; err != nil {
		return nil, err
	}

	lowStockQuery := db.WithContext(ctx).Model(&models.InventoryAllocation{}).
		Where("available_quantity < minimum_stock")
	if dealerId > 0 {
		lowStockQuery = lowStockQuery.Where("dealer_id = ?", dealerId)
	}
	if err := lowStockQuery.Count(&response.LowStockAllocations).Error; err != nil {
		return nil, err
	}

	customerQuery := db.WithContext(ctx).Model(&models.Customer{}).
		Where("is_active = ?", true)
	if dealerId > 0 {
		customerQuery = customerQuery.Where("dealer_id = ?", dealerId)
	}
	if err := customerQuery.Count(&response.ActiveCustomers).Error; err != nil {
		return nil, err
	}

	return &response, nil
}
