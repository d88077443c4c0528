package models

import (
	"context"
	"errors"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
)

type Customer struct {
	ID        int       `gorm:"primary_key" json:"id"`
	DealerId  int       `gorm:"index;not null" json:"dealer_id"`
	FullName  string    `gorm:"size:100;not null" json:"full_name" binding:"required"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:20;not null" json:"phone" binding:"required"`
	Address   string    `gorm:"type:text" json:"address"`
	Notes     string    `gorm:"type:text" json:"notes"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
}

func (input *NewCustomer) validate(ctx context.Context, dealerId int, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Customer](ctx, dealerId, id); err != nil {
			return err
		}
	}
	if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
		return errors.New("invalid phone number")
	}
	if err := utils.ValidateUnique[Customer](ctx, dealerId, "phone", input.Phone, id); err != nil {
		return err
	}
	if input.Email != "" {
		if !utils.IsValidEmail(input.Email) {
			return errors.New("invalid email")
		}
		if err := utils.ValidateUnique[Customer](ctx, dealerId, "email", input.Email, id); err != nil {
			return err
		}
	}
	return nil
}

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {
	db := config.GetDB()

	dealerId, ok := utils.GetDealerIdFromContext(ctx)
	if !ok || dealerId <= 0 {
		return nil, errors.New("dealer id is required")
	}

	if err := input.validate(ctx, dealerId, 0); err != nil {
		return nil, err
	}

	customer := Customer{
		DealerId: dealerId,
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		Notes:    input.Notes,
		IsActive: utils.NewTrue(),
	}

	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

func UpdateCustomer(ctx context.Context, id int, input *NewCustomer) (*Customer, error) {
	db := config.GetDB()

	dealerId, _ := utils.GetDealerIdFromContext(ctx)

	if err := input.validate(ctx, dealerId, id); err != nil {
		return nil, err
	}

	customer, err := utils.FetchSingleModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	customer.FullName = input.FullName
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.Notes = input.Notes

	if err := db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}

	return customer, nil
}

func DeleteCustomer(ctx context.Context, id int) (*Customer, error) {
	db := config.GetDB()

	customer, err := utils.FetchSingleModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	var orderCount int64
	if err := db.WithContext(ctx).Model(&Order{}).Where("customer_id = ?", id).Count(&orderCount).Error; err != nil {
		return nil, err
	}
	if orderCount > 0 {
		return nil, errors.New("customer has orders")
	}

	if err := db.WithContext(ctx).Delete(customer).Error; err != nil {
		return nil, err
	}

	return customer, nil
}

func GetCustomer(ctx context.Context, id int) (*Customer, error) {
	return utils.FetchSingleModel[Customer](ctx, id)
}

type CustomerFilter struct {
	Search     string
	DealerId   int
	ActiveOnly bool
	Limit      int
	Offset     int
}

func ListCustomers(ctx context.Context, filter CustomerFilter) ([]*Customer, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Customer{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where("full_name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like)
	}
	if filter.DealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", filter.DealerId)
	}
	if filter.ActiveOnly {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}
	if filter.Limit > 0 {
		dbCtx = dbCtx.Limit(filter.Limit).Offset(filter.Offset)
	}
	var results []*Customer
	if err := dbCtx.Order("full_name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
