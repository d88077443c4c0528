package models

import (
	"context"
	"errors"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
)

type Feedback struct {
	ID         int            `gorm:"primary_key" json:"id"`
	CustomerId int            `gorm:"index;not null" json:"customer_id" binding:"required"`
	Customer   *Customer      `json:"customer,omitempty"`
	DealerId   int            `gorm:"index;not null" json:"dealer_id"`
	ProductId  *int           `gorm:"index" json:"product_id"`
	Product    *Product       `json:"product,omitempty"`
	Rating     int            `gorm:"not null" json:"rating" binding:"required"`
	Comment    string         `gorm:"type:text" json:"comment"`
	Response   string         `gorm:"type:text" json:"response"`
	Status     FeedbackStatus `gorm:"type:enum('New','Reviewed','Resolved');not null;default:'New'" json:"status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewFeedback struct {
	CustomerId int    `json:"customer_id" binding:"required"`
	DealerId   int    `json:"dealer_id"`
	ProductId  *int   `json:"product_id"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}

func (input *NewFeedback) validate(ctx context.Context, dealerId int) error {
	if input.Rating < 1 || input.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if err := utils.ValidateResourceId[Customer](ctx, dealerId, input.CustomerId); err != nil {
		return errors.New("customer not found")
	}
	if input.ProductId != nil {
		if err := utils.ValidateResourceId[Product](ctx, 0, *input.ProductId); err != nil {
			return errors.New("vehicle not found")
		}
	}
	return nil
}

func CreateFeedback(ctx context.Context, input *NewFeedback) (*Feedback, error) {
	db := config.GetDB()

	dealerId := input.DealerId
	if ctxDealerId, ok := utils.GetDealerIdFromContext(ctx); ok && ctxDealerId > 0 {
		dealerId = ctxDealerId
	}
	if dealerId <= 0 {
		return nil, errors.New("dealer id is required")
	}

	if err := input.validate(ctx, dealerId); err != nil {
		return nil, err
	}

	feedback := Feedback{
		CustomerId: input.CustomerId,
		DealerId:   dealerId,
		ProductId:  input.ProductId,
		Rating:     input.Rating,
		Comment:    input.Comment,
		Status:     FeedbackStatusNew,
	}

	if err := db.WithContext(ctx).Create(&feedback).Error; err != nil {
		return nil, err
	}

	return &feedback, nil
}

type FeedbackStatusInput struct {
	Status   FeedbackStatus `json:"status" binding:"required"`
	Response string         `json:"response"`
}

func UpdateFeedbackStatus(ctx context.Context, id int, input *FeedbackStatusInput) (*Feedback, error) {
	db := config.GetDB()

	feedback, err := utils.FetchSingleModel[Feedback](ctx, id)
	if err != nil {
		return nil, err
	}

	feedback.Status = input.Status
	if input.Response != "" {
		feedback.Response = input.Response
	}

	if err := db.WithContext(ctx).Save(feedback).Error; err != nil {
		return nil, err
	}

	return feedback, nil
}

func GetFeedback(ctx context.Context, id int) (*Feedback, error) {
	return utils.FetchSingleModel[Feedback](ctx, id, "Customer", "Product")
}

type FeedbackFilter struct {
	DealerId  int
	ProductId int
	Status    FeedbackStatus
	MinRating int
	Limit     int
	Offset    int
}

func ListFeedbacks(ctx context.Context, filter FeedbackFilter) ([]*Feedback, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Customer").Preload("Product")
	if filter.DealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", filter.DealerId)
	}
	if filter.ProductId > 0 {
		dbCtx = dbCtx.Where("product_id = ?", filter.ProductId)
	}
	if filter.Status != "" {
		dbCtx = dbCtx.Where("status = ?", filter.Status)
	}
	if filter.MinRating > 0 {
		dbCtx = dbCtx.Where("rating >= ?", filter.MinRating)
	}
	if filter.Limit > 0 {
		dbCtx = dbCtx.Limit(filter.Limit).Offset(filter.Offset)
	}
	var results []*Feedback
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
