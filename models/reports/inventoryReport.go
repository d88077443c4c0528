package reports

import (
	"context"

	"github.com/namnm309/evdealer-backend/config"
)

type InventoryReportRow struct {
	DealerId          int    `json:"dealer_id"`
	DealerName        string `json:"dealer_name"`
	ProductId         int    `json:"product_id"`
	ProductName       string `json:"product_name"`
	ProductSku        string `json:"product_sku"`
	AvailableQuantity int    `json:"available_quantity"`
	AllocatedQuantity int    `json:"allocated_quantity"`
	MinimumStock      int    `json:"minimum_stock"`
	MaximumStock      int    `json:"maximum_stock"`
	StockStatus       string `json:"stock_status"`
}

const (
	StockStatusOutOfStock = "OutOfStock"
	StockStatusCritical   = "Critical"
	StockStatusLow        = "Low"
	StockStatusOverstock  = "Overstock"
	StockStatusNormal     = "Normal"
)

// classifyStock buckets an allocation by how its availability compares to
// the configured bounds.
func classifyStock(available, minimum, maximum int) string {
	switch {
	case available <= 0:
		return StockStatusOutOfStock
	case available < minimum/2:
		return StockStatusCritical
	case available < minimum:
		return StockStatusLow
	case maximum > 0 && available > maximum:
		return StockStatusOverstock
	}
	return StockStatusNormal
}

// GetInventoryReport lists every allocation with its stock classification.
func GetInventoryReport(ctx context.Context, dealerId int) ([]*InventoryReportRow, error) {
	db := config.GetDB()

	sql := `
SELECT
    dealers.id AS dealer_id,
    dealers.name AS dealer_name,
    products.id AS product_id,
    products.name AS product_name,
    products.sku AS product_sku,
    ia.available_quantity,
    ia.allocated_quantity,
    ia.minimum_stock,
    ia.maximum_stock
FROM
    inventory_allocations AS ia
        JOIN
    dealers ON dealers.id = ia.dealer_id
        JOIN
    products ON products.id = ia.product_id
WHERE
    (@dealerId = 0 OR ia.dealer_id = @dealerId)
ORDER BY dealers.name , products.name;
`

	var rows []*InventoryReportRow
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"dealerId": dealerId,
	}).Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		row.StockStatus = classifyStock(row.AvailableQuantity, row.MinimumStock, row.MaximumStock)
	}

	return rows, nil
}
