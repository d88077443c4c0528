package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
	"gorm.io/gorm"
)

// InventoryAllocation tracks one vehicle model's stock position at one dealer.
type InventoryAllocation struct {
	ID                int       `gorm:"primary_key" json:"id"`
	ProductId         int       `gorm:"uniqueIndex:idx_product_dealer;not null" json:"product_id" binding:"required"`
	Product           *Product  `json:"product,omitempty"`
	DealerId          int       `gorm:"uniqueIndex:idx_product_dealer;not null" json:"dealer_id" binding:"required"`
	Dealer            *Dealer   `json:"dealer,omitempty"`
	AllocatedQuantity int       `gorm:"not null;default:0" json:"allocated_quantity"`
	AvailableQuantity int       `gorm:"not null;default:0" json:"available_quantity"`
	ReservedQuantity  int       `gorm:"not null;default:0" json:"reserved_quantity"`
	MinimumStock      int       `gorm:"not null;default:0" json:"minimum_stock"`
	MaximumStock      int       `gorm:"not null;default:0" json:"maximum_stock"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type InventoryTransaction struct {
	ID                 int                      `gorm:"primary_key" json:"id"`
	ProductId          int                      `gorm:"index;not null" json:"product_id"`
	Product            *Product                 `json:"product,omitempty"`
	DealerId           int                      `gorm:"index;not null" json:"dealer_id"`
	Type               InventoryTransactionType `gorm:"type:enum('Import','Export','Transfer','Adjustment');not null" json:"type"`
	Quantity           int                      `gorm:"not null" json:"quantity"`
	Reason             string                   `gorm:"type:text" json:"reason"`
	Reference          string                   `gorm:"size:50" json:"reference"`
	CounterpartDealer  int                      `gorm:"default:0" json:"counterpart_dealer"`
	ProcessedById      int                      `gorm:"index" json:"processed_by_id"`
	CreatedAt          time.Time                `gorm:"autoCreateTime" json:"created_at"`
}

type NewInventoryAllocation struct {
	ProductId         int `json:"product_id" binding:"required"`
	DealerId          int `json:"dealer_id" binding:"required"`
	AllocatedQuantity int `json:"allocated_quantity"`
	AvailableQuantity int `json:"available_quantity"`
	ReservedQuantity  int `json:"reserved_quantity"`
	MinimumStock      int `json:"minimum_stock"`
	MaximumStock      int `json:"maximum_stock"`
}

// validateAllocationBounds enforces the stock invariants shared by create
// and update: no negative quantities and MaximumStock > MinimumStock >= 0.
func validateAllocationBounds(allocated, available, reserved, minStock, maxStock int) error {
	if allocated < 0 || available < 0 || reserved < 0 {
		return errors.New("quantities cannot be negative")
	}
	if minStock < 0 {
		return errors.New("minimum stock cannot be negative")
	}
	if maxStock <= minStock {
		return errors.New("maximum stock must be greater than minimum stock")
	}
	return nil
}

// requireDealerScope rejects stock writes aimed at another dealer.
// Manufacturer-side staff may operate on any dealer's allocation.
func requireDealerScope(ctx context.Context, dealerId int) error {
	if isManufacturer, _ := utils.GetIsManufacturerFromContext(ctx); isManufacturer {
		return nil
	}
	if ctxDealerId, ok := utils.GetDealerIdFromContext(ctx); ok && ctxDealerId == dealerId {
		return nil
	}
	return errors.New("cannot operate on another dealer's stock")
}

func (input *NewInventoryAllocation) validate(ctx context.Context) error {
	if err := validateAllocationBounds(input.AllocatedQuantity, input.AvailableQuantity, input.ReservedQuantity, input.MinimumStock, input.MaximumStock); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[Product](ctx, 0, input.ProductId); err != nil {
		return errors.New("vehicle not found")
	}
	if err := utils.ValidateResourceId[Dealer](ctx, 0, input.DealerId); err != nil {
		return errors.New("dealer not found")
	}
	return nil
}

func CreateInventoryAllocation(ctx context.Context, input *NewInventoryAllocation) (*InventoryAllocation, error) {
	db := config.GetDB()

	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	if err := requireDealerScope(ctx, input.DealerId); err != nil {
		return nil, err
	}

	var count int64
	if err := db.WithContext(ctx).Model(&InventoryAllocation{}).
		Where("product_id = ? AND dealer_id = ?", input.ProductId, input.DealerId).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("allocation already exists for this vehicle and dealer")
	}

	allocation := InventoryAllocation{
		ProductId:         input.ProductId,
		DealerId:          input.DealerId,
		AllocatedQuantity: input.AllocatedQuantity,
		AvailableQuantity: input.AvailableQuantity,
		ReservedQuantity:  input.ReservedQuantity,
		MinimumStock:      input.MinimumStock,
		MaximumStock:      input.MaximumStock,
	}

	if err := db.WithContext(ctx).Create(&allocation).Error; err != nil {
		return nil, err
	}

	return &allocation, nil
}

func UpdateInventoryAllocation(ctx context.Context, id int, input *NewInventoryAllocation) (*InventoryAllocation, error) {
	db := config.GetDB()

	allocation, err := utils.FetchSingleModel[InventoryAllocation](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateAllocationBounds(input.AllocatedQuantity, input.AvailableQuantity, input.ReservedQuantity, input.MinimumStock, input.MaximumStock); err != nil {
		return nil, err
	}

	allocation.AllocatedQuantity = input.AllocatedQuantity
	allocation.AvailableQuantity = input.AvailableQuantity
	allocation.ReservedQuantity = input.ReservedQuantity
	allocation.MinimumStock = input.MinimumStock
	allocation.MaximumStock = input.MaximumStock

	if err := db.WithContext(ctx).Save(allocation).Error; err != nil {
		return nil, err
	}

	return allocation, nil
}

func DeleteInventoryAllocation(ctx context.Context, id int) (*InventoryAllocation, error) {
	db := config.GetDB()

	allocation, err := utils.FetchSingleModel[InventoryAllocation](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Delete(allocation).Error; err != nil {
		return nil, err
	}

	return allocation, nil
}

type TransferStockInput struct {
	ProductId    int    `json:"product_id" binding:"required"`
	FromDealerId int    `json:"from_dealer_id" binding:"required"`
	ToDealerId   int    `json:"to_dealer_id" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required"`
	Reason       string `json:"reason"`
}

func (input *TransferStockInput) validate() error {
	if input.Quantity <= 0 {
		return errors.New("quantity must be greater than zero")
	}
	if input.FromDealerId == input.ToDealerId {
		return errors.New("source and destination dealers must differ")
	}
	return nil
}

// TransferStock moves quantity between two dealers' allocations under a
// per-product redis lock so concurrent transfers can't oversell the source.
func TransferStock(ctx context.Context, input *TransferStockInput) error {
	db := config.GetDB()

	if err := input.validate(); err != nil {
		return err
	}
	// Only the source dealer's own staff (or manufacturer) may debit it.
	if err := requireDealerScope(ctx, input.FromDealerId); err != nil {
		return err
	}

	lock, err := utils.ResourceLock(ctx, "StockTransfer", fmt.Sprint(input.ProductId), "inventory", "TransferStock")
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release(ctx) }()

	userId, _ := utils.GetUserIdFromContext(ctx)

	tx := db.Begin()

	var source InventoryAllocation
	if err := tx.WithContext(ctx).
		Where("product_id = ? AND dealer_id = ?", input.ProductId, input.FromDealerId).
		First(&source).Error; err != nil {
		tx.Rollback()
		return errors.New("source allocation not found")
	}
	if source.AvailableQuantity < input.Quantity {
		tx.Rollback()
		return errors.New("insufficient stock at source dealer")
	}

	var dest InventoryAllocation
	if err := tx.WithContext(ctx).
		Where("product_id = ? AND dealer_id = ?", input.ProductId, input.ToDealerId).
		First(&dest).Error; err != nil {
		tx.Rollback()
		return errors.New("destination allocation not found")
	}

	source.AvailableQuantity -= input.Quantity
	source.AllocatedQuantity -= input.Quantity
	dest.AvailableQuantity += input.Quantity
	dest.AllocatedQuantity += input.Quantity

	// Updates (never Save) so a zero-row match errors instead of upserting.
	res := tx.WithContext(ctx).Model(&source).Updates(map[string]interface{}{
		"available_quantity": source.AvailableQuantity,
		"allocated_quantity": source.AllocatedQuantity,
	})
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return errors.New("source allocation not found")
	}

	// The destination belongs to the other dealer; crediting it is the point
	// of a transfer, so the dealer scope is skipped for this one write.
	skipCtx := utils.SetSkipDealerScopeInContext(ctx, true)
	res = tx.WithContext(skipCtx).Model(&dest).Updates(map[string]interface{}{
		"available_quantity": dest.AvailableQuantity,
		"allocated_quantity": dest.AllocatedQuantity,
	})
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return errors.New("destination allocation not found")
	}

	outbound := InventoryTransaction{
		ProductId:         input.ProductId,
		DealerId:          input.FromDealerId,
		Type:              InventoryTransactionTypeTransfer,
		Quantity:          -input.Quantity,
		Reason:            input.Reason,
		CounterpartDealer: input.ToDealerId,
		ProcessedById:     userId,
	}
	inbound := InventoryTransaction{
		ProductId:         input.ProductId,
		DealerId:          input.ToDealerId,
		Type:              InventoryTransactionTypeTransfer,
		Quantity:          input.Quantity,
		Reason:            input.Reason,
		CounterpartDealer: input.FromDealerId,
		ProcessedById:     userId,
	}
	if err := tx.WithContext(ctx).Create(&outbound).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.WithContext(ctx).Create(&inbound).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

type AdjustStockInput struct {
	ProductId int    `json:"product_id" binding:"required"`
	DealerId  int    `json:"dealer_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Reason    string `json:"reason"`
}

// AdjustStock applies a signed correction to an allocation. Quantity zero
// is rejected, and an adjustment may never push stock below zero.
func AdjustStock(ctx context.Context, input *AdjustStockInput) (*InventoryAllocation, error) {
	db := config.GetDB()

	if input.Quantity == 0 {
		return nil, errors.New("quantity cannot be zero")
	}
	if err := requireDealerScope(ctx, input.DealerId); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)

	tx := db.Begin()

	var allocation InventoryAllocation
	if err := tx.WithContext(ctx).
		Where("product_id = ? AND dealer_id = ?", input.ProductId, input.DealerId).
		First(&allocation).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("allocation not found")
	}

	if allocation.AvailableQuantity+input.Quantity < 0 || allocation.AllocatedQuantity+input.Quantity < 0 {
		tx.Rollback()
		return nil, errors.New("adjustment would push stock below zero")
	}

	allocation.AvailableQuantity += input.Quantity
	allocation.AllocatedQuantity += input.Quantity

	res := tx.WithContext(ctx).Model(&allocation).Updates(map[string]interface{}{
		"available_quantity": allocation.AvailableQuantity,
		"allocated_quantity": allocation.AllocatedQuantity,
	})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, errors.New("allocation not found")
	}

	trans := InventoryTransaction{
		ProductId:     input.ProductId,
		DealerId:      input.DealerId,
		Type:          InventoryTransactionTypeAdjustment,
		Quantity:      input.Quantity,
		Reason:        input.Reason,
		ProcessedById: userId,
	}
	if err := tx.WithContext(ctx).Create(&trans).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &allocation, nil
}

// creditDealerStock receives delivered purchase-order stock into the dealer's
// allocation, creating the allocation row on first delivery. Runs inside the
// caller's transaction.
func creditDealerStock(tx *gorm.DB, dealerId int, productId int, quantity int, reference string) error {
	var allocation InventoryAllocation
	err := tx.Where("product_id = ? AND dealer_id = ?", productId, dealerId).First(&allocation).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		allocation = InventoryAllocation{
			ProductId:    productId,
			DealerId:     dealerId,
			MinimumStock: 0,
			MaximumStock: quantity * 2,
		}
	}

	allocation.AllocatedQuantity += quantity
	allocation.AvailableQuantity += quantity
	if allocation.MaximumStock <= allocation.MinimumStock {
		allocation.MaximumStock = allocation.MinimumStock + quantity
	}

	if allocation.ID == 0 {
		if err := tx.Create(&allocation).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Save(&allocation).Error; err != nil {
			return err
		}
	}

	userId, _ := utils.GetUserIdFromContext(tx.Statement.Context)
	trans := InventoryTransaction{
		ProductId:     productId,
		DealerId:      dealerId,
		Type:          InventoryTransactionTypeImport,
		Quantity:      quantity,
		Reason:        "Purchase order delivery",
		Reference:     reference,
		ProcessedById: userId,
	}
	return tx.Create(&trans).Error
}

func GetInventoryAllocation(ctx context.Context, id int) (*InventoryAllocation, error) {
	return utils.FetchSingleModel[InventoryAllocation](ctx, id, "Product", "Dealer")
}

type InventoryFilter struct {
	DealerId  int
	ProductId int
	Limit     int
	Offset    int
}

func ListInventoryAllocations(ctx context.Context, filter InventoryFilter) ([]*InventoryAllocation, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Product").Preload("Dealer")
	if filter.DealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", filter.DealerId)
	}
	if filter.ProductId > 0 {
		dbCtx = dbCtx.Where("product_id = ?", filter.ProductId)
	}
	if filter.Limit > 0 {
		dbCtx = dbCtx.Limit(filter.Limit).Offset(filter.Offset)
	}
	var results []*InventoryAllocation
	if err := dbCtx.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListLowStockAllocations returns allocations below their minimum.
// critical=true tightens the cut to half the minimum.
func ListLowStockAllocations(ctx context.Context, dealerId int, critical bool) ([]*InventoryAllocation, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Product").Preload("Dealer")
	if dealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", dealerId)
	}
	if critical {
		dbCtx = dbCtx.Where("available_quantity < minimum_stock / 2")
	} else {
		dbCtx = dbCtx.Where("available_quantity < minimum_stock")
	}
	var results []*InventoryAllocation
	if err := dbCtx.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ListOutOfStockAllocations(ctx context.Context, dealerId int) ([]*InventoryAllocation, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Product").Preload("Dealer").Where("available_quantity = 0")
	if dealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", dealerId)
	}
	var results []*InventoryAllocation
	if err := dbCtx.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetStockSummary maps product id to total available quantity across dealers.
func GetStockSummary(ctx context.Context, dealerId int) (map[int]int, error) {
	db := config.GetDB()
	type row struct {
		ProductId int
		Total     int
	}
	dbCtx := db.WithContext(ctx).Model(&InventoryAllocation{}).
		Select("product_id, sum(available_quantity) as total").
		Group("product_id")
	if dealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", dealerId)
	}
	var rows []row
	if err := dbCtx.Scan(&rows).Error; err != nil {
		return nil, err
	}
	summary := make(map[int]int, len(rows))
	for _, r := range rows {
		summary[r.ProductId] = r.Total
	}
	return summary, nil
}

type InventoryTransactionFilter struct {
	DealerId  int
	ProductId int
	Type      InventoryTransactionType
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
	Offset    int
}

func ListInventoryTransactions(ctx context.Context, filter InventoryTransactionFilter) ([]*InventoryTransaction, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Product")
	if filter.DealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", filter.DealerId)
	}
	if filter.ProductId > 0 {
		dbCtx = dbCtx.Where("product_id = ?", filter.ProductId)
	}
	if filter.Type != "" {
		dbCtx = dbCtx.Where("type = ?", filter.Type)
	}
	if filter.FromDate != nil {
		dbCtx = dbCtx.Where("created_at >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		dbCtx = dbCtx.Where("created_at <= ?", filter.ToDate)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var results []*InventoryTransaction
	if err := dbCtx.Order("created_at DESC").Limit(limit).Offset(filter.Offset).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
