package models

import (
	"context"
	"errors"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
	"github.com/shopspring/decimal"
)

type Dealer struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Code      string    `gorm:"size:20;uniqueIndex;not null" json:"code" binding:"required"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Email     string    `gorm:"size:100" json:"email"`
	Address   string    `gorm:"type:text" json:"address"`
	RegionId  int       `gorm:"index;not null" json:"region_id" binding:"required"`
	Region    *Region   `json:"region,omitempty"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDealer struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	RegionId int    `json:"region_id" binding:"required"`
}

type DealerContract struct {
	ID             int             `gorm:"primary_key" json:"id"`
	DealerId       int             `gorm:"index;not null" json:"dealer_id" binding:"required"`
	ContractNumber string          `gorm:"size:50;uniqueIndex;not null" json:"contract_number" binding:"required"`
	StartDate      time.Time       `gorm:"not null" json:"start_date" binding:"required"`
	EndDate        time.Time       `gorm:"not null" json:"end_date" binding:"required"`
	SalesTarget    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sales_target"`
	Status         ContractStatus  `gorm:"type:enum('Active','Expired','Terminated');not null;default:'Active'" json:"status"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDealerContract struct {
	ContractNumber string          `json:"contract_number" binding:"required"`
	StartDate      time.Time       `json:"start_date" binding:"required"`
	EndDate        time.Time       `json:"end_date" binding:"required"`
	SalesTarget    decimal.Decimal `json:"sales_target"`
}

func (input *NewDealer) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[Dealer](ctx, 0, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateUnique[Dealer](ctx, 0, "code", input.Code, id); err != nil {
		return err
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	if err := utils.ValidateResourceId[Region](ctx, 0, input.RegionId); err != nil {
		return errors.New("region not found")
	}
	return nil
}

func CreateDealer(ctx context.Context, input *NewDealer) (*Dealer, error) {
	db := config.GetDB()

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	dealer := Dealer{
		Name:     input.Name,
		Code:     input.Code,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		RegionId: input.RegionId,
		IsActive: utils.NewTrue(),
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&dealer).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createHistory(tx.WithContext(ctx), "Create", dealer.ID, "dealers", nil, dealer, "Dealer "+dealer.Name+" created."); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Dealer](0)

	return &dealer, nil
}

func UpdateDealer(ctx context.Context, id int, input *NewDealer) (*Dealer, error) {
	db := config.GetDB()

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	dealer, err := utils.FetchSingleModel[Dealer](ctx, id)
	if err != nil {
		return nil, err
	}

	dealer.Name = input.Name
	dealer.Code = input.Code
	dealer.Phone = input.Phone
	dealer.Email = input.Email
	dealer.Address = input.Address
	dealer.RegionId = input.RegionId

	if err := db.WithContext(ctx).Save(dealer).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Dealer](0)
	_ = utils.RemoveRedisItem[Dealer](id)

	return dealer, nil
}

func DeleteDealer(ctx context.Context, id int) (*Dealer, error) {
	db := config.GetDB()

	dealer, err := utils.FetchSingleModel[Dealer](ctx, id)
	if err != nil {
		return nil, err
	}

	var orderCount int64
	if err := db.WithContext(ctx).Model(&Order{}).Where("dealer_id = ?", id).Count(&orderCount).Error; err != nil {
		return nil, err
	}
	if orderCount > 0 {
		return nil, errors.New("dealer has orders")
	}

	if err := db.WithContext(ctx).Delete(dealer).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Dealer](0)
	_ = utils.RemoveRedisItem[Dealer](id)

	return dealer, nil
}

func GetDealer(ctx context.Context, id int) (*Dealer, error) {
	return utils.FetchSingleModel[Dealer](ctx, id, "Region")
}

func ListDealers(ctx context.Context, regionId int, activeOnly bool) ([]*Dealer, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Region")
	if regionId > 0 {
		dbCtx = dbCtx.Where("region_id = ?", regionId)
	}
	if activeOnly {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}
	var results []*Dealer
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveDealer(ctx context.Context, id int, isActive bool) (*Dealer, error) {
	db := config.GetDB()

	dealer, err := utils.FetchSingleModel[Dealer](ctx, id)
	if err != nil {
		return nil, err
	}

	dealer.IsActive = &isActive
	if err := db.WithContext(ctx).Save(dealer).Error; err != nil {
		return nil, err
	}

	_ = utils.RemoveRedisList[Dealer](0)
	_ = utils.RemoveRedisItem[Dealer](id)

	return dealer, nil
}

func (input *NewDealerContract) validate(ctx context.Context, dealerId int) error {
	if err := utils.ValidateResourceId[Dealer](ctx, 0, dealerId); err != nil {
		return errors.New("dealer not found")
	}
	if !input.EndDate.After(input.StartDate) {
		return errors.New("end date must be after start date")
	}
	if input.SalesTarget.IsNegative() {
		return errors.New("sales target cannot be negative")
	}
	if err := utils.ValidateUnique[DealerContract](ctx, 0, "contract_number", input.ContractNumber, 0); err != nil {
		return err
	}
	return nil
}

func CreateDealerContract(ctx context.Context, dealerId int, input *NewDealerContract) (*DealerContract, error) {
	db := config.GetDB()

	if err := input.validate(ctx, dealerId); err != nil {
		return nil, err
	}

	contract := DealerContract{
		DealerId:       dealerId,
		ContractNumber: input.ContractNumber,
		StartDate:      input.StartDate.UTC(),
		EndDate:        input.EndDate.UTC(),
		SalesTarget:    input.SalesTarget,
		Status:         ContractStatusActive,
	}

	if err := db.WithContext(ctx).Create(&contract).Error; err != nil {
		return nil, err
	}

	return &contract, nil
}

func ListDealerContracts(ctx context.Context, dealerId int) ([]*DealerContract, error) {
	db := config.GetDB()
	var results []*DealerContract
	if err := db.WithContext(ctx).Where("dealer_id = ?", dealerId).Order("start_date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateDealerContractStatus(ctx context.Context, id int, status ContractStatus) (*DealerContract, error) {
	db := config.GetDB()

	contract, err := utils.FetchSingleModel[DealerContract](ctx, id)
	if err != nil {
		return nil, err
	}

	contract.Status = status
	if err := db.WithContext(ctx).Save(contract).Error; err != nil {
		return nil, err
	}

	return contract, nil
}
