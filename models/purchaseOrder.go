package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
	"github.com/shopspring/decimal"
)

// PurchaseOrder is a dealer's restock request towards the manufacturer.
type PurchaseOrder struct {
	ID                   int                 `gorm:"primary_key" json:"id"`
	OrderNumber          string              `gorm:"size:30;uniqueIndex;not null" json:"order_number"`
	SequenceNo           int64               `gorm:"index;not null" json:"sequence_no"`
	DealerId             int                 `gorm:"index;not null" json:"dealer_id"`
	Dealer               *Dealer             `json:"dealer,omitempty"`
	ProductId            int                 `gorm:"index;not null" json:"product_id" binding:"required"`
	Product              *Product            `json:"product,omitempty"`
	RequestedById        int                 `gorm:"index;not null" json:"requested_by_id"`
	ApprovedById         *int                `gorm:"index" json:"approved_by_id"`
	RequestedQuantity    int                 `gorm:"not null" json:"requested_quantity" binding:"required"`
	UnitPrice            decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"unit_price" binding:"required"`
	TotalAmount          decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"total_amount"`
	Reason               string              `gorm:"type:text;not null" json:"reason" binding:"required"`
	Notes                string              `gorm:"type:text" json:"notes"`
	RejectReason         string              `gorm:"type:text" json:"reject_reason"`
	Status               PurchaseOrderStatus `gorm:"type:enum('Pending','Approved','Rejected','InTransit','Delivered','Cancelled');not null;default:'Pending'" json:"status"`
	RequestedDate        time.Time           `gorm:"not null" json:"requested_date"`
	ApprovedDate         *time.Time          `json:"approved_date"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time          `json:"actual_delivery_date"`
	CreatedAt            time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPurchaseOrder struct {
	DealerId          int             `json:"dealer_id"`
	ProductId         int             `json:"product_id" binding:"required"`
	RequestedQuantity int             `json:"requested_quantity" binding:"required"`
	UnitPrice         decimal.Decimal `json:"unit_price" binding:"required"`
	Reason            string          `json:"reason" binding:"required"`
	Notes             string          `json:"notes"`
}

func (input *NewPurchaseOrder) validate(ctx context.Context, dealerId int, requestedById int) error {
	if dealerId <= 0 || input.ProductId <= 0 || requestedById <= 0 {
		return errors.New("dealer, product and requester are required")
	}
	if input.RequestedQuantity <= 0 {
		return errors.New("quantity must be greater than zero")
	}
	if !input.UnitPrice.IsPositive() {
		return errors.New("unit price must be greater than zero")
	}
	if strings.TrimSpace(input.Reason) == "" {
		return errors.New("reason is required")
	}
	if err := utils.ValidateResourceId[Product](ctx, 0, input.ProductId); err != nil {
		return errors.New("vehicle not found")
	}
	if err := utils.ValidateResourceId[Dealer](ctx, 0, dealerId); err != nil {
		return errors.New("dealer not found")
	}
	return nil
}

// canTransitionPurchaseOrder encodes the restock state machine.
func canTransitionPurchaseOrder(from, to PurchaseOrderStatus) error {
	switch to {
	case PurchaseOrderStatusInTransit:
		if from != PurchaseOrderStatusApproved {
			return errors.New("only approved purchase orders can move to in-transit")
		}
	case PurchaseOrderStatusDelivered:
		if from != PurchaseOrderStatusInTransit {
			return errors.New("only in-transit purchase orders can be delivered")
		}
	case PurchaseOrderStatusCancelled:
		if from == PurchaseOrderStatusDelivered {
			return errors.New("delivered purchase orders cannot be cancelled")
		}
	case PurchaseOrderStatusApproved, PurchaseOrderStatusRejected:
		if from != PurchaseOrderStatusPending {
			return errors.New("only pending purchase orders can be " + strings.ToLower(string(to)))
		}
	default:
		return errors.New("unsupported purchase order status")
	}
	return nil
}

func purchaseOrderNumber(now time.Time, seqNo int64) string {
	return fmt.Sprintf("PO-%s-%04d", now.UTC().Format("200601"), seqNo)
}

func CreatePurchaseOrder(ctx context.Context, input *NewPurchaseOrder) (*PurchaseOrder, error) {
	db := config.GetDB()

	dealerId := input.DealerId
	if ctxDealerId, ok := utils.GetDealerIdFromContext(ctx); ok && ctxDealerId > 0 {
		dealerId = ctxDealerId
	}
	requestedById, _ := utils.GetUserIdFromContext(ctx)

	if err := input.validate(ctx, dealerId, requestedById); err != nil {
		return nil, err
	}

	seqNo, err := utils.GetSequence[PurchaseOrder](ctx, dealerId)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	po := PurchaseOrder{
		OrderNumber:       purchaseOrderNumber(now, seqNo),
		SequenceNo:        seqNo,
		DealerId:          dealerId,
		ProductId:         input.ProductId,
		RequestedById:     requestedById,
		RequestedQuantity: input.RequestedQuantity,
		UnitPrice:         input.UnitPrice,
		TotalAmount:       input.UnitPrice.Mul(decimal.NewFromInt(int64(input.RequestedQuantity))),
		Reason:            input.Reason,
		Notes:             input.Notes,
		Status:            PurchaseOrderStatusPending,
		RequestedDate:     now,
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&po).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createHistory(tx.WithContext(ctx), "Create", po.ID, "purchase_orders", nil, po, "Purchase order "+po.OrderNumber+" created."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &po, nil
}

type ApprovePurchaseOrderInput struct {
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
	Note                 string     `json:"note"`
}

func ApprovePurchaseOrder(ctx context.Context, id int, input *ApprovePurchaseOrderInput) (*PurchaseOrder, error) {
	db := config.GetDB()

	po, err := utils.FetchSingleModel[PurchaseOrder](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canTransitionPurchaseOrder(po.Status, PurchaseOrderStatusApproved); err != nil {
		return nil, err
	}

	approverId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || approverId <= 0 {
		return nil, errors.New("approver is required")
	}

	before := *po
	now := time.Now().UTC()
	po.Status = PurchaseOrderStatusApproved
	po.ApprovedById = &approverId
	po.ApprovedDate = &now
	if input != nil {
		if input.ExpectedDeliveryDate != nil {
			expected := input.ExpectedDeliveryDate.UTC()
			po.ExpectedDeliveryDate = &expected
		}
		if strings.TrimSpace(input.Note) != "" {
			if po.Notes != "" {
				po.Notes += "\n"
			}
			po.Notes += "[Approved]: " + input.Note
		}
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Save(po).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createHistory(tx.WithContext(ctx), "Approve", po.ID, "purchase_orders", before, po, "Purchase order "+po.OrderNumber+" approved."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return po, nil
}

func RejectPurchaseOrder(ctx context.Context, id int, rejectReason string) (*PurchaseOrder, error) {
	db := config.GetDB()

	if strings.TrimSpace(rejectReason) == "" {
		return nil, errors.New("reject reason is required")
	}

	po, err := utils.FetchSingleModel[PurchaseOrder](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canTransitionPurchaseOrder(po.Status, PurchaseOrderStatusRejected); err != nil {
		return nil, err
	}

	approverId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || approverId <= 0 {
		return nil, errors.New("approver is required")
	}

	before := *po
	now := time.Now().UTC()
	po.Status = PurchaseOrderStatusRejected
	po.ApprovedById = &approverId
	po.ApprovedDate = &now
	po.RejectReason = rejectReason

	tx := db.Begin()
	if err := tx.WithContext(ctx).Save(po).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createHistory(tx.WithContext(ctx), "Reject", po.ID, "purchase_orders", before, po, "Purchase order "+po.OrderNumber+" rejected."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return po, nil
}

type PurchaseOrderStatusInput struct {
	Status             PurchaseOrderStatus `json:"status" binding:"required"`
	ActualDeliveryDate *time.Time          `json:"actual_delivery_date"`
}

// UpdatePurchaseOrderStatus drives the shipping leg of the state machine.
// Delivered credits the receiving dealer's stock in the same transaction.
func UpdatePurchaseOrderStatus(ctx context.Context, id int, input *PurchaseOrderStatusInput) (*PurchaseOrder, error) {
	db := config.GetDB()

	po, err := utils.FetchSingleModel[PurchaseOrder](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canTransitionPurchaseOrder(po.Status, input.Status); err != nil {
		return nil, err
	}

	before := *po
	po.Status = input.Status

	if input.Status == PurchaseOrderStatusDelivered {
		deliveredAt := time.Now().UTC()
		if input.ActualDeliveryDate != nil {
			deliveredAt = input.ActualDeliveryDate.UTC()
		}
		po.ActualDeliveryDate = &deliveredAt
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Save(po).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if input.Status == PurchaseOrderStatusDelivered {
		if err := creditDealerStock(tx.WithContext(ctx), po.DealerId, po.ProductId, po.RequestedQuantity, po.OrderNumber); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := createHistory(tx.WithContext(ctx), "Status", po.ID, "purchase_orders", before, po, "Purchase order "+po.OrderNumber+" moved to "+string(input.Status)+"."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return po, nil
}

func CancelPurchaseOrder(ctx context.Context, id int) (*PurchaseOrder, error) {
	return UpdatePurchaseOrderStatus(ctx, id, &PurchaseOrderStatusInput{Status: PurchaseOrderStatusCancelled})
}

func GetPurchaseOrder(ctx context.Context, id int) (*PurchaseOrder, error) {
	return utils.FetchSingleModel[PurchaseOrder](ctx, id, "Product", "Dealer")
}

type PurchaseOrderFilter struct {
	DealerId  int
	ProductId int
	Status    PurchaseOrderStatus
	Limit     int
	Offset    int
}

func ListPurchaseOrders(ctx context.Context, filter PurchaseOrderFilter) ([]*PurchaseOrder, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Product").Preload("Dealer")
	if filter.DealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", filter.DealerId)
	}
	if filter.ProductId > 0 {
		dbCtx = dbCtx.Where("product_id = ?", filter.ProductId)
	}
	if filter.Status != "" {
		dbCtx = dbCtx.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		dbCtx = dbCtx.Limit(filter.Limit).Offset(filter.Offset)
	}
	var results []*PurchaseOrder
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
