package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
)

const (
	// bookings must be made at least this far in advance
	testDriveMinLeadTime = 30 * time.Minute
	// two bookings for the same dealer+vehicle conflict inside this window
	testDriveSlotWindow = 90 * time.Minute
)

type TestDrive struct {
	ID            int             `gorm:"primary_key" json:"id"`
	CustomerId    int             `gorm:"index;not null" json:"customer_id" binding:"required"`
	Customer      *Customer       `json:"customer,omitempty"`
	ProductId     int             `gorm:"index;not null" json:"product_id" binding:"required"`
	Product       *Product        `json:"product,omitempty"`
	DealerId      int             `gorm:"index;not null" json:"dealer_id"`
	Dealer        *Dealer         `json:"dealer,omitempty"`
	ScheduledDate time.Time       `gorm:"not null" json:"scheduled_date" binding:"required"`
	Status        TestDriveStatus `gorm:"type:enum('Pending','Confirmed','Successfully','Failed','Canceled');not null;default:'Pending'" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTestDrive struct {
	CustomerId    int       `json:"customer_id" binding:"required"`
	ProductId     int       `json:"product_id" binding:"required"`
	DealerId      int       `json:"dealer_id"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
	Notes         string    `json:"notes"`
}

// validateTestDriveLeadTime rejects slots booked less than 30 minutes out.
func validateTestDriveLeadTime(scheduled, now time.Time) error {
	if scheduled.Before(now.Add(testDriveMinLeadTime)) {
		return errors.New("test drive must be scheduled at least 30 minutes in advance")
	}
	return nil
}

// testDriveSlotsConflict reports whether two bookings for the same
// dealer+vehicle are too close together.
func testDriveSlotsConflict(a, b time.Time) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff < testDriveSlotWindow
}

func (input *NewTestDrive) validate(ctx context.Context, dealerId int) error {
	if input.CustomerId <= 0 || input.ProductId <= 0 || dealerId <= 0 {
		return errors.New("customer, vehicle and dealer are required")
	}
	if err := validateTestDriveLeadTime(input.ScheduledDate, time.Now()); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[Customer](ctx, dealerId, input.CustomerId); err != nil {
		return errors.New("customer not found")
	}
	if err := utils.ValidateResourceId[Product](ctx, 0, input.ProductId); err != nil {
		return errors.New("vehicle not found")
	}
	if err := utils.ValidateResourceId[Dealer](ctx, 0, dealerId); err != nil {
		return errors.New("dealer not found")
	}
	return nil
}

// CreateTestDrive books a slot. The overlap check and the insert run under
// a dealer+vehicle redis lock so two concurrent requests can't both pass
// the check and double-book the slot.
func CreateTestDrive(ctx context.Context, input *NewTestDrive) (*TestDrive, error) {
	db := config.GetDB()

	dealerId := input.DealerId
	if ctxDealerId, ok := utils.GetDealerIdFromContext(ctx); ok && ctxDealerId > 0 {
		dealerId = ctxDealerId
	}

	if err := input.validate(ctx, dealerId); err != nil {
		return nil, err
	}

	lockKey := fmt.Sprintf("%d:%d", dealerId, input.ProductId)
	lock, err := utils.ResourceLock(ctx, "TestDriveSlot", lockKey, "testDrive", "CreateTestDrive")
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release(ctx) }()

	scheduled := input.ScheduledDate.UTC()

	// The SQL range is only a prefilter; testDriveSlotsConflict decides, so
	// the window semantics live in exactly one place.
	var booked []time.Time
	err = db.WithContext(ctx).Model(&TestDrive{}).
		Where("dealer_id = ? AND product_id = ?", dealerId, input.ProductId).
		Where("status <> ?", TestDriveStatusCanceled).
		Where("scheduled_date >= ? AND scheduled_date <= ?",
			scheduled.Add(-testDriveSlotWindow), scheduled.Add(testDriveSlotWindow)).
		Pluck("scheduled_date", &booked).Error
	if err != nil {
		return nil, err
	}
	for _, existing := range booked {
		if testDriveSlotsConflict(scheduled, existing) {
			return nil, errors.New("another test drive is already booked for this slot")
		}
	}

	testDrive := TestDrive{
		CustomerId:    input.CustomerId,
		ProductId:     input.ProductId,
		DealerId:      dealerId,
		ScheduledDate: scheduled,
		Status:        TestDriveStatusPending,
		Notes:         input.Notes,
	}

	if err := db.WithContext(ctx).Create(&testDrive).Error; err != nil {
		return nil, err
	}

	return &testDrive, nil
}

func setTestDriveStatus(ctx context.Context, id int, status TestDriveStatus, note string) (*TestDrive, error) {
	db := config.GetDB()

	testDrive, err := utils.FetchSingleModel[TestDrive](ctx, id)
	if err != nil {
		return nil, err
	}

	if config.StrictOrderLifecycleGuards() {
		switch status {
		case TestDriveStatusConfirmed:
			if testDrive.Status != TestDriveStatusPending {
				return nil, errors.New("only pending test drives can be confirmed")
			}
		case TestDriveStatusSuccessfully, TestDriveStatusFailed:
			if testDrive.Status != TestDriveStatusConfirmed {
				return nil, errors.New("only confirmed test drives can be completed")
			}
		case TestDriveStatusCanceled:
			if testDrive.Status == TestDriveStatusSuccessfully || testDrive.Status == TestDriveStatusFailed {
				return nil, errors.New("completed test drives cannot be canceled")
			}
		}
	}

	testDrive.Status = status
	if note != "" {
		if testDrive.Notes != "" {
			testDrive.Notes += "\n"
		}
		testDrive.Notes += note
	}

	if err := db.WithContext(ctx).Save(testDrive).Error; err != nil {
		return nil, err
	}

	return testDrive, nil
}

func ConfirmTestDrive(ctx context.Context, id int) (*TestDrive, error) {
	return setTestDriveStatus(ctx, id, TestDriveStatusConfirmed, "")
}

// CompleteTestDrive closes the booking as Successfully or Failed.
func CompleteTestDrive(ctx context.Context, id int, success bool, note string) (*TestDrive, error) {
	status := TestDriveStatusSuccessfully
	if !success {
		status = TestDriveStatusFailed
	}
	return setTestDriveStatus(ctx, id, status, note)
}

func CancelTestDrive(ctx context.Context, id int, note string) (*TestDrive, error) {
	return setTestDriveStatus(ctx, id, TestDriveStatusCanceled, note)
}

func GetTestDrive(ctx context.Context, id int) (*TestDrive, error) {
	return utils.FetchSingleModel[TestDrive](ctx, id, "Customer", "Product", "Dealer")
}

type TestDriveFilter struct {
	DealerId   int
	ProductId  int
	CustomerId int
	Status     TestDriveStatus
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}

func ListTestDrives(ctx context.Context, filter TestDriveFilter) ([]*TestDrive, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Customer").Preload("Product").Preload("Dealer")
	if filter.DealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", filter.DealerId)
	}
	if filter.ProductId > 0 {
		dbCtx = dbCtx.Where("product_id = ?", filter.ProductId)
	}
	if filter.CustomerId > 0 {
		dbCtx = dbCtx.Where("customer_id = ?", filter.CustomerId)
	}
	if filter.Status != "" {
		dbCtx = dbCtx.Where("status = ?", filter.Status)
	}
	if filter.FromDate != nil {
		dbCtx = dbCtx.Where("scheduled_date >= ?", filter.FromDate)
	}
	if filter.ToDate != nil {
		dbCtx = dbCtx.Where("scheduled_date <= ?", filter.ToDate)
	}
	if filter.Limit > 0 {
		dbCtx = dbCtx.Limit(filter.Limit).Offset(filter.Offset)
	}
	var results []*TestDrive
	if err := dbCtx.Order("scheduled_date").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
