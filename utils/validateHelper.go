package utils

import (
	"context"
	"errors"
	"reflect"

	"github.com/namnm309/evdealer-backend/config"
)

// check if id exists, using dealer_id in WHERE, return RecordNotFound Error.
// dealerId 0 skips the dealer filter (manufacturer-side lookups).
func ValidateResourceId[T any](ctx context.Context, dealerId int, id interface{}) error {

	count, err := ResourceCountWhere[T](ctx, dealerId, "id = ?", id)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrorRecordNotFound
	}

	return nil
}

func ValidateUnique[T any](ctx context.Context, dealerId int, column string, value interface{}, exceptId interface{}) error {
	var count int64
	var err error
	if reflect.ValueOf(exceptId).IsZero() {
		count, err = ResourceCountWhere[T](ctx, dealerId, column+" = ?", value)
	} else {
		count, err = ResourceCountWhere[T](ctx, dealerId, column+" = ? AND NOT id = ?", value, exceptId)
	}

	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate " + column)
	}
	return nil
}

// count records, using WHERE dealer_id = ? AND $condition
// dealerId can be 0 for manufacturer-side users
func ResourceCountWhere[T any](ctx context.Context, dealerId int, condition string, value ...interface{}) (int64, error) {
	var model T

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&model)
	var count int64
	if dealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", dealerId)
	}
	dbCtx = dbCtx.Where(condition, value...)
	if err := dbCtx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
