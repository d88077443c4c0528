package models

import (
	"context"
	"errors"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
	"github.com/shopspring/decimal"
)

// Product is a sellable EV model in the manufacturer catalog.
type Product struct {
	ID              int             `gorm:"primary_key" json:"id"`
	Name            string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Sku             string          `gorm:"size:50;uniqueIndex;not null" json:"sku" binding:"required"`
	BrandId         int             `gorm:"index;not null" json:"brand_id" binding:"required"`
	Brand           *Brand          `json:"brand,omitempty"`
	CategoryId      int             `gorm:"index;not null" json:"category_id" binding:"required"`
	Category        *Category       `json:"category,omitempty"`
	ModelYear       int             `gorm:"not null" json:"model_year"`
	BatteryCapacity decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"battery_capacity"`
	RangeKm         int             `gorm:"default:0" json:"range_km"`
	Price           decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price" binding:"required"`
	Description     string          `gorm:"type:text" json:"description"`
	ImageUrl        string          `gorm:"size:500" json:"image_url"`
	IsActive        *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Name            string          `json:"name" binding:"required"`
	Sku             string          `json:"sku" binding:"required"`
	BrandId         int             `json:"brand_id" binding:"required"`
	CategoryId      int             `json:"category_id" binding:"required"`
	ModelYear       int             `json:"model_year"`
	BatteryCapacity decimal.Decimal `json:"battery_capacity"`
	RangeKm         int             `json:"range_km"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	Description     string          `json:"description"`
	ImageUrl        string          `json:"image_url"`
}

type ProductFilter struct {
	Search     string
	BrandId    int
	CategoryId int
	ActiveOnly bool
	Limit      int
	Offset     int
}

func (input *NewProduct) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Product](ctx, 0, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateUnique[Product](ctx, 0, "sku", input.Sku, id); err != nil {
		return err
	}
	if !input.Price.IsPositive() {
		return errors.New("price must be greater than zero")
	}
	if input.BatteryCapacity.IsNegative() {
		return errors.New("battery capacity cannot be negative")
	}
	if input.RangeKm < 0 {
		return errors.New("range cannot be negative")
	}
	if err := utils.ValidateResourceId[Brand](ctx, 0, input.BrandId); err != nil {
		return errors.New("brand not found")
	}
	if err := utils.ValidateResourceId[Category](ctx, 0, input.CategoryId); err != nil {
		return errors.New("category not found")
	}
	if input.ImageUrl != "" {
		if err := utils.CheckImageExistInGCS(input.ImageUrl); err != nil {
			return errors.New("image url is not reachable")
		}
	}
	return nil
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	db := config.GetDB()

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	product := Product{
		Name:            input.Name,
		Sku:             input.Sku,
		BrandId:         input.BrandId,
		CategoryId:      input.CategoryId,
		ModelYear:       input.ModelYear,
		BatteryCapacity: input.BatteryCapacity,
		RangeKm:         input.RangeKm,
		Price:           input.Price,
		Description:     input.Description,
		ImageUrl:        input.ImageUrl,
		IsActive:        utils.NewTrue(),
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&product).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createHistory(tx.WithContext(ctx), "Create", product.ID, "products", nil, product, "Vehicle "+product.Name+" created."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Product](0)

	return &product, nil
}

func UpdateProduct(ctx context.Context, id int, input *NewProduct) (*Product, error) {
	db := config.GetDB()

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	product, err := utils.FetchSingleModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	before := *product

	product.Name = input.Name
	product.Sku = input.Sku
	product.BrandId = input.BrandId
	product.CategoryId = input.CategoryId
	product.ModelYear = input.ModelYear
	product.BatteryCapacity = input.BatteryCapacity
	product.RangeKm = input.RangeKm
	product.Price = input.Price
	product.Description = input.Description
	if input.ImageUrl != "" {
		product.ImageUrl = input.ImageUrl
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Save(product).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createHistory(tx.WithContext(ctx), "Update", product.ID, "products", before, product, "Vehicle "+product.Name+" updated."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Product](0)
	_ = utils.RemoveRedisItem[Product](id)

	return product, nil
}

func DeleteProduct(ctx context.Context, id int) (*Product, error) {
	db := config.GetDB()

	product, err := utils.FetchSingleModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	var orderCount int64
	if err := db.WithContext(ctx).Model(&Order{}).Where("product_id = ?", id).Count(&orderCount).Error; err != nil {
		return nil, err
	}
	if orderCount > 0 {
		return nil, errors.New("vehicle has orders")
	}

	if err := db.WithContext(ctx).Delete(product).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Product](0)
	_ = utils.RemoveRedisItem[Product](id)

	return product, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	cached, err := utils.RetrieveRedis[Product](id)
	if err == nil && cached != nil {
		return cached, nil
	}

	product, err := utils.FetchSingleModel[Product](ctx, id, "Brand", "Category")
	if err != nil {
		return nil, err
	}

	_ = utils.StoreRedis[Product](product, id)

	return product, nil
}

func ListProducts(ctx context.Context, filter ProductFilter) ([]*Product, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Brand").Preload("Category")
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where("name LIKE ? OR sku LIKE ?", like, like)
	}
	if filter.BrandId > 0 {
		dbCtx = dbCtx.Where("brand_id = ?", filter.BrandId)
	}
	if filter.CategoryId > 0 {
		dbCtx = dbCtx.Where("category_id = ?", filter.CategoryId)
	}
	if filter.ActiveOnly {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}
	if filter.Limit > 0 {
		dbCtx = dbCtx.Limit(filter.Limit).Offset(filter.Offset)
	}
	var results []*Product
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveProduct(ctx context.Context, id int, isActive bool) (*Product, error) {
	db := config.GetDB()

	product, err := utils.FetchSingleModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	product.IsActive = &isActive
	if err := db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Product](0)
	_ = utils.RemoveRedisItem[Product](id)

	return product, nil
}

// UpdateProductImage stores the uploaded image url on the vehicle.
func UpdateProductImage(ctx context.Context, id int, imageUrl string) (*Product, error) {
	db := config.GetDB()

	product, err := utils.FetchSingleModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	product.ImageUrl = imageUrl
	if err := db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisItem[Product](id)

	return product, nil
}
