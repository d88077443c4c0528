package models

import (
	"context"
	"errors"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
)

type Brand struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name" binding:"required"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBrand struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (input *NewBrand) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Brand](ctx, 0, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateUnique[Brand](ctx, 0, "name", input.Name, id); err != nil {
		return err
	}
	return nil
}

func CreateBrand(ctx context.Context, input *NewBrand) (*Brand, error) {
	db := config.GetDB()

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	brand := Brand{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    utils.NewTrue(),
	}

	if err := db.WithContext(ctx).Create(&brand).Error; err != nil {
		return nil, err
	}

	return &brand, nil
}

func UpdateBrand(ctx context.Context, id int, input *NewBrand) (*Brand, error) {
	db := config.GetDB()

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	brand, err := utils.FetchSingleModel[Brand](ctx, id)
	if err != nil {
		return nil, err
	}

	brand.Name = input.Name
	brand.Description = input.Description

	if err := db.WithContext(ctx).Save(brand).Error; err != nil {
		return nil, err
	}

	return brand, nil
}

func DeleteBrand(ctx context.Context, id int) (*Brand, error) {
	db := config.GetDB()

	brand, err := utils.FetchSingleModel[Brand](ctx, id)
	if err != nil {
		return nil, err
	}

	var productCount int64
	if err := db.WithContext(ctx).Model(&Product{}).Where("brand_id = ?", id).Count(&productCount).Error; err != nil {
		return nil, err
	}
	if productCount > 0 {
		return nil, errors.New("brand has products")
	}

	if err := db.WithContext(ctx).Delete(brand).Error; err != nil {
		return nil, err
	}

	return brand, nil
}

func GetBrand(ctx context.Context, id int) (*Brand, error) {
	return utils.FetchSingleModel[Brand](ctx, id)
}

func ListBrands(ctx context.Context) ([]*Brand, error) {
	db := config.GetDB()
	var results []*Brand
	if err := db.WithContext(ctx).Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveBrand(ctx context.Context, id int, isActive bool) (*Brand, error) {
	db := config.GetDB()

	brand, err := utils.FetchSingleModel[Brand](ctx, id)
	if err != nil {
		return nil, err
	}

	brand.IsActive = &isActive
	if err := db.WithContext(ctx).Save(brand).Error; err != nil {
		return nil, err
	}

	return brand, nil
}
