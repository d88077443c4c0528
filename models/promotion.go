package models

import (
	"context"
	"errors"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
	"github.com/shopspring/decimal"
)

// Promotion is a discount campaign. DealerId 0 means network-wide.
type Promotion struct {
	ID              int             `gorm:"primary_key" json:"id"`
	Name            string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Description     string          `gorm:"type:text" json:"description"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	StartDate       time.Time       `gorm:"not null" json:"start_date" binding:"required"`
	EndDate         time.Time       `gorm:"not null" json:"end_date" binding:"required"`
	DealerId        int             `gorm:"index;default:0" json:"dealer_id"`
	IsActive        *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPromotion struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	StartDate       time.Time       `json:"start_date" binding:"required"`
	EndDate         time.Time       `json:"end_date" binding:"required"`
	DealerId        int             `json:"dealer_id"`
}

func (input *NewPromotion) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Promotion](ctx, 0, id); err != nil {
			return err
		}
	}
	if input.DiscountPercent.IsNegative() || input.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("discount percent must be between 0 and 100")
	}
	if input.DiscountAmount.IsNegative() {
		return errors.New("discount amount cannot be negative")
	}
	if input.DiscountPercent.IsZero() && input.DiscountAmount.IsZero() {
		return errors.New("a discount percent or amount is required")
	}
	if !input.EndDate.After(input.StartDate) {
		return errors.New("end date must be after start date")
	}
	if input.DealerId > 0 {
		if err := utils.ValidateResourceId[Dealer](ctx, 0, input.DealerId); err != nil {
			return errors.New("dealer not found")
		}
	}
	return nil
}

func CreatePromotion(ctx context.Context, input *NewPromotion) (*Promotion, error) {
	db := config.GetDB()

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	promotion := Promotion{
		Name:            input.Name,
		Description:     input.Description,
		DiscountPercent: input.DiscountPercent,
		DiscountAmount:  input.DiscountAmount,
		StartDate:       input.StartDate.UTC(),
		EndDate:         input.EndDate.UTC(),
		DealerId:        input.DealerId,
		IsActive:        utils.NewTrue(),
	}

	if err := db.WithContext(ctx).Create(&promotion).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Promotion](input.DealerId)

	return &promotion, nil
}

func UpdatePromotion(ctx context.Context, id int, input *NewPromotion) (*Promotion, error) {
	db := config.GetDB()

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	promotion, err := utils.FetchSingleModel[Promotion](ctx, id)
	if err != nil {
		return nil, err
	}

	promotion.Name = input.Name
	promotion.Description = input.Description
	promotion.DiscountPercent = input.DiscountPercent
	promotion.DiscountAmount = input.DiscountAmount
	promotion.StartDate = input.StartDate.UTC()
	promotion.EndDate = input.EndDate.UTC()
	promotion.DealerId = input.DealerId

	if err := db.WithContext(ctx).Save(promotion).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Promotion](promotion.DealerId)
	_ = utils.RemoveRedisItem[Promotion](id)

	return promotion, nil
}

func DeletePromotion(ctx context.Context, id int) (*Promotion, error) {
	db := config.GetDB()

	promotion, err := utils.FetchSingleModel[Promotion](ctx, id)
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Delete(promotion).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Promotion](promotion.DealerId)
	_ = utils.RemoveRedisItem[Promotion](id)

	return promotion, nil
}

func GetPromotion(ctx context.Context, id int) (*Promotion, error) {
	return utils.FetchSingleModel[Promotion](ctx, id)
}

// ListPromotions returns network-wide promotions plus the dealer's own.
func ListPromotions(ctx context.Context, dealerId int, activeOnly bool) ([]*Promotion, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Promotion{})
	if dealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ? OR dealer_id = 0", dealerId)
	}
	if activeOnly {
		now := time.Now().UTC()
		dbCtx = dbCtx.Where("is_active = ?", true).
			Where("start_date <= ? AND end_date >= ?", now, now)
	}
	var results []*Promotion
	if err := dbCtx.Order("start_date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActivePromotion(ctx context.Context, id int, isActive bool) (*Promotion, error) {
	db := config.GetDB()

	promotion, err := utils.FetchSingleModel[Promotion](ctx, id)
	if err != nil {
		return nil, err
	}

	promotion.IsActive = &isActive
	if err := db.WithContext(ctx).Save(promotion).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Promotion](promotion.DealerId)
	_ = utils.RemoveRedisItem[Promotion](id)

	return promotion, nil
}
