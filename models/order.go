package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
	"github.com/shopspring/decimal"
)

// Order is a sales order: it starts life as a quotation (Draft) and walks
// Draft -> Confirmed -> Paid -> Delivered, or gets Cancelled along the way.
type Order struct {
	ID             int             `gorm:"primary_key" json:"id"`
	OrderNumber    string          `gorm:"size:30;uniqueIndex;not null" json:"order_number"`
	ProductId      int             `gorm:"index;not null" json:"product_id" binding:"required"`
	Product        *Product        `json:"product,omitempty"`
	CustomerId     int             `gorm:"index;not null" json:"customer_id" binding:"required"`
	Customer       *Customer       `json:"customer,omitempty"`
	DealerId       int             `gorm:"index;not null" json:"dealer_id"`
	Dealer         *Dealer         `json:"dealer,omitempty"`
	RegionId       int             `gorm:"index" json:"region_id"`
	SalesPersonId  *int            `gorm:"index" json:"sales_person_id"`
	Price          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	Discount       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"final_amount"`
	Description    string          `gorm:"type:text" json:"description"`
	Notes          string          `gorm:"type:text" json:"notes"`
	Status         OrderStatus     `gorm:"type:enum('Draft','Confirmed','Paid','Delivered','Cancelled');not null;default:'Draft'" json:"status"`
	PaymentStatus  PaymentStatus   `gorm:"type:enum('Unpaid','Partial','Paid');not null;default:'Unpaid'" json:"payment_status"`
	PaymentMethod  string          `gorm:"size:50" json:"payment_method"`
	OrderDate      *time.Time      `json:"order_date"`
	DeliveryDate   *time.Time      `json:"delivery_date"`
	PaymentDueDate *time.Time      `json:"payment_due_date"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewQuotation struct {
	ProductId     int             `json:"product_id" binding:"required"`
	CustomerId    int             `json:"customer_id" binding:"required"`
	DealerId      int             `json:"dealer_id"`
	SalesPersonId *int            `json:"sales_person_id"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Discount      decimal.Decimal `json:"discount"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
}

// computeFinalAmount applies the quotation pricing rule:
// price must be positive, discount in [0, price], final = price - discount.
func computeFinalAmount(price, discount decimal.Decimal) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, errors.New("price must be greater than zero")
	}
	if discount.IsNegative() {
		return decimal.Zero, errors.New("discount cannot be negative")
	}
	final := price.Sub(discount)
	if final.IsNegative() {
		return decimal.Zero, errors.New("discount cannot exceed price")
	}
	return final, nil
}

// newOrderNumber formats QT-YYYYMMDD-XXXXXXXX with an uppercased uuid fragment.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("QT-%s-%s", now.UTC().Format("20060102"), suffix)
}

func canConfirmOrder(status OrderStatus) error {
	if status != OrderStatusDraft {
		return errors.New("only draft orders can be confirmed")
	}
	return nil
}

func canDeliverOrder(status OrderStatus) error {
	if status != OrderStatusPaid && status != OrderStatusConfirmed {
		return errors.New("only paid or confirmed orders can be delivered")
	}
	return nil
}

func canCancelOrder(status OrderStatus) error {
	if status == OrderStatusDelivered {
		return errors.New("delivered orders cannot be cancelled")
	}
	return nil
}

// canUpdateOrderPayment only bites under STRICT_ORDER_LIFECYCLE_GUARDS;
// the legacy contract lets payment updates through regardless of status.
func canUpdateOrderPayment(status OrderStatus, strict bool) error {
	if !strict {
		return nil
	}
	if status == OrderStatusCancelled || status == OrderStatusDelivered {
		return errors.New("payment cannot be updated on a " + strings.ToLower(string(status)) + " order")
	}
	return nil
}

func (input *NewQuotation) validate(ctx context.Context, dealerId int) error {
	if input.ProductId <= 0 || input.CustomerId <= 0 || dealerId <= 0 {
		return errors.New("product, customer and dealer are required")
	}
	if err := utils.ValidateResourceId[Product](ctx, 0, input.ProductId); err != nil {
		return errors.New("vehicle not found")
	}
	if err := utils.ValidateResourceId[Customer](ctx, dealerId, input.CustomerId); err != nil {
		return errors.New("customer not found")
	}
	if err := utils.ValidateResourceId[Dealer](ctx, 0, dealerId); err != nil {
		return errors.New("dealer not found")
	}
	if input.SalesPersonId != nil {
		if err := utils.ValidateResourceId[User](ctx, 0, *input.SalesPersonId); err != nil {
			return errors.New("sales person not found")
		}
	}
	return nil
}

// CreateQuotation opens a Draft order. OrderDate stays nil until confirm.
func CreateQuotation(ctx context.Context, input *NewQuotation) (*Order, error) {
	db := config.GetDB()

	dealerId := input.DealerId
	if ctxDealerId, ok := utils.GetDealerIdFromContext(ctx); ok && ctxDealerId > 0 {
		dealerId = ctxDealerId
	}

	if err := input.validate(ctx, dealerId); err != nil {
		return nil, err
	}

	finalAmount, err := computeFinalAmount(input.Price, input.Discount)
	if err != nil {
		return nil, err
	}

	dealer, err := utils.FetchSingleModel[Dealer](ctx, dealerId)
	if err != nil {
		return nil, errors.New("dealer not found")
	}

	order := Order{
		OrderNumber:   newOrderNumber(time.Now()),
		ProductId:     input.ProductId,
		CustomerId:    input.CustomerId,
		DealerId:      dealerId,
		RegionId:      dealer.RegionId,
		SalesPersonId: input.SalesPersonId,
		Price:         input.Price,
		Discount:      input.Discount,
		FinalAmount:   finalAmount,
		Description:   input.Description,
		Notes:         input.Notes,
		Status:        OrderStatusDraft,
		PaymentStatus: PaymentStatusUnpaid,
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createHistory(tx.WithContext(ctx), "Create", order.ID, "orders", nil, order, "Quotation "+order.OrderNumber+" created."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &order, nil
}

func ConfirmOrder(ctx context.Context, id int) (*Order, error) {
	db := config.GetDB()

	order, err := utils.FetchSingleModel[Order](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canConfirmOrder(order.Status); err != nil {
		return nil, err
	}

	before := *order
	now := time.Now().UTC()
	order.Status = OrderStatusConfirmed
	order.OrderDate = &now

	tx := db.Begin()
	if err := tx.WithContext(ctx).Save(order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createHistory(tx.WithContext(ctx), "Confirm", order.ID, "orders", before, order, "Order "+order.OrderNumber+" confirmed."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return order, nil
}

type OrderPaymentInput struct {
	PaymentStatus  PaymentStatus `json:"payment_status" binding:"required"`
	PaymentMethod  string        `json:"payment_method"`
	PaymentDueDate *time.Time    `json:"payment_due_date"`
}

// UpdateOrderPayment records payment state. When the order becomes fully
// paid the order status follows.
func UpdateOrderPayment(ctx context.Context, id int, input *OrderPaymentInput) (*Order, error) {
	db := config.GetDB()

	order, err := utils.FetchSingleModel[Order](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canUpdateOrderPayment(order.Status, config.StrictOrderLifecycleGuards()); err != nil {
		return nil, err
	}

	before := *order
	order.PaymentStatus = input.PaymentStatus
	if input.PaymentMethod != "" {
		order.PaymentMethod = input.PaymentMethod
	}
	if input.PaymentDueDate != nil {
		due := input.PaymentDueDate.UTC()
		order.PaymentDueDate = &due
	}
	if order.PaymentStatus == PaymentStatusPaid {
		order.Status = OrderStatusPaid
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Save(order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createHistory(tx.WithContext(ctx), "Payment", order.ID, "orders", before, order, "Order "+order.OrderNumber+" payment updated."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return order, nil
}

type OrderDeliveryInput struct {
	DeliveryDate *time.Time `json:"delivery_date"`
}

func DeliverOrder(ctx context.Context, id int, input *OrderDeliveryInput) (*Order, error) {
	db := config.GetDB()

	order, err := utils.FetchSingleModel[Order](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canDeliverOrder(order.Status); err != nil {
		return nil, err
	}

	before := *order
	deliveryDate := time.Now().UTC()
	if input != nil && input.DeliveryDate != nil {
		deliveryDate = input.DeliveryDate.UTC()
	}
	order.Status = OrderStatusDelivered
	order.DeliveryDate = &deliveryDate

	tx := db.Begin()
	if err := tx.WithContext(ctx).Save(order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createHistory(tx.WithContext(ctx), "Deliver", order.ID, "orders", before, order, "Order "+order.OrderNumber+" delivered."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return order, nil
}

func CancelOrder(ctx context.Context, id int, reason string) (*Order, error) {
	db := config.GetDB()

	order, err := utils.FetchSingleModel[Order](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := canCancelOrder(order.Status); err != nil {
		return nil, err
	}

	before := *order
	order.Status = OrderStatusCancelled
	if reason != "" {
		if order.Notes != "" {
			order.Notes += "\n"
		}
		order.Notes += "[Cancelled]: " + reason
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Save(order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createHistory(tx.WithContext(ctx), "Cancel", order.ID, "orders", before, order, "Order "+order.OrderNumber+" cancelled."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return order, nil
}

func GetOrder(ctx context.Context, id int) (*Order, error) {
	return utils.FetchSingleModel[Order](ctx, id, "Product", "Customer", "Dealer")
}

type OrderFilter struct {
	DealerId      int
	CustomerId    int
	Status        OrderStatus
	PaymentStatus PaymentStatus
	FromDate      *time.Time
	ToDate        *time.Time
	Limit         int
	Offset        int
}

func ListOrders(ctx context.Context, filter OrderFilter) ([]*Order, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Product").Preload("Customer").Preload("Dealer")
	if filter.DealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", filter.DealerId)
	}
	if filter.CustomerId > 0 {
		dbCtx = dbCtx.Where("customer_id = ?", filter.CustomerId)
	}
	if filter.Status != "" {
		dbCtx = dbCtx.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		dbCtx = dbCtx.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.FromDate != nil {
		dbCtx = dbCtx.Where("created_at >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		dbCtx = dbCtx.Where("created_at <= ?", filter.ToDate)
	}
	if filter.Limit > 0 {
		dbCtx = dbCtx.Limit(filter.Limit).Offset(filter.Offset)
	}
	var results []*Order
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
