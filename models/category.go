package models

import (
	"context"
	"errors"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
)

type Category struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name" binding:"required"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCategory struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (input *NewCategory) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Category](ctx, 0, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateUnique[Category](ctx, 0, "name", input.Name, id); err != nil {
		return err
	}
	return nil
}

func CreateCategory(ctx context.Context, input *NewCategory) (*Category, error) {
	db := config.GetDB()

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	category := Category{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    utils.NewTrue(),
	}

	if err := db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

func UpdateCategory(ctx context.Context, id int, input *NewCategory) (*Category, error) {
	db := config.GetDB()

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	category, err := utils.FetchSingleModel[Category](ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description

	if err := db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}

	return category, nil
}

func DeleteCategory(ctx context.Context, id int) (*Category, error) {
	db := config.GetDB()

	category, err := utils.FetchSingleModel[Category](ctx, id)
	if err != nil {
		return nil, err
	}

	var productCount int64
	if err := db.WithContext(ctx).Model(&Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return nil, err
	}
	if productCount > 0 {
		return nil, errors.New("category has products")
	}

	if err := db.WithContext(ctx).Delete(category).Error; err != nil {
		return nil, err
	}

	return category, nil
}

func GetCategory(ctx context.Context, id int) (*Category, error) {
	return utils.FetchSingleModel[Category](ctx, id)
}

func ListCategories(ctx context.Context) ([]*Category, error) {
	db := config.GetDB()
	var results []*Category
	if err := db.WithContext(ctx).Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveCategory(ctx context.Context, id int, isActive bool) (*Category, error) {
	db := config.GetDB()

	category, err := utils.FetchSingleModel[Category](ctx, id)
	if err != nil {
		return nil, err
	}

	category.IsActive = &isActive
	if err := db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}

	return category, nil
}
