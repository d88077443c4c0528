package models

import (
	"context"
	"errors"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
)

type Region struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Code      string    `gorm:"size:20;uniqueIndex;not null" json:"code" binding:"required"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewRegion struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

func (input *NewRegion) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Region](ctx, 0, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateUnique[Region](ctx, 0, "code", input.Code, id); err != nil {
		return err
	}
	return nil
}

func CreateRegion(ctx context.Context, input *NewRegion) (*Region, error) {
	db := config.GetDB()

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	region := Region{
		Name:     input.Name,
		Code:     input.Code,
		IsActive: utils.NewTrue(),
	}

	if err := db.WithContext(ctx).Create(&region).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Region](0)

	return &region, nil
}

func UpdateRegion(ctx context.Context, id int, input *NewRegion) (*Region, error) {
	db := config.GetDB()

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	region, err := utils.FetchSingleModel[Region](ctx, id)
	if err != nil {
		return nil, err
	}

	region.Name = input.Name
	region.Code = input.Code

	if err := db.WithContext(ctx).Save(region).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Region](0)
	_ = utils.RemoveRedisItem[Region](id)

	return region, nil
}

func DeleteRegion(ctx context.Context, id int) (*Region, error) {
	db := config.GetDB()

	region, err := utils.FetchSingleModel[Region](ctx, id)
	if err != nil {
		return nil, err
	}

	var dealerCount int64
	if err := db.WithContext(ctx).Model(&Dealer{}).Where("region_id = ?", id).Count(&dealerCount).Error; err != nil {
		return nil, err
	}
	if dealerCount > 0 {
		return nil, errors.New("region has dealers")
	}

	if err := db.WithContext(ctx).Delete(region).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Region](0)
	_ = utils.RemoveRedisItem[Region](id)

	return region, nil
}

func GetRegion(ctx context.Context, id int) (*Region, error) {
	return utils.FetchSingleModel[Region](ctx, id)
}

func ListRegions(ctx context.Context) ([]*Region, error) {
	cached, err := utils.RetrieveRedisList[Region](0)
	if err == nil && cached != nil {
		return cached, nil
	}

	db := config.GetDB()
	var results []*Region
	if err := db.WithContext(ctx).Order("name").Find(&results).Error; err != nil {
		return nil, err
	}

	_ = utils.StoreRedisList[Region](results, 0)

	return results, nil
}
