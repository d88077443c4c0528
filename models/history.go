package models

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
	"gorm.io/gorm"
)

type History struct {
	ID            int       `gorm:"primary_key" json:"id"`
	DealerId      int       `gorm:"index" json:"dealer_id"`
	ActionType    string    `gorm:"size:10;not null" json:"action_type" binding:"required"`
	Before        string    `gorm:"type:text" json:"before"`
	After         string    `gorm:"type:text" json:"after"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	ReferenceID   int       `gorm:"index" json:"reference_id"`
	ReferenceType string    `gorm:"size:255" json:"reference_type"`
	UserId        int       `gorm:"index;not null" json:"user_id"`
	UserName      string    `gorm:"size:100" json:"user_name"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// createHistory writes an audit row inside the caller's transaction.
// DealerId 0 marks a manufacturer-side action.
func createHistory(tx *gorm.DB,
	actionType string,
	referenceId int,
	referenceType string,
	before interface{},
	after interface{},
	description string) (err error) {

	var history History

	b, _ := json.Marshal(before)
	a, _ := json.Marshal(after)

	ctx := tx.Statement.Context
	// get dealerId, userId, userName from context
	dealerId, _ := utils.GetDealerIdFromContext(ctx)
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return errors.New("user id is required")
	}
	userName, ok := utils.GetUserNameFromContext(ctx)
	if !ok {
		return errors.New("user name is required")
	}

	history.DealerId = dealerId
	history.ActionType = actionType
	history.Before = string(b)
	history.After = string(a)
	history.Description = description
	history.ReferenceID = referenceId
	history.ReferenceType = referenceType
	history.UserId = userId
	history.UserName = userName

	err = tx.Create(&history).Error
	return err
}

type HistoryFilter struct {
	ReferenceType string
	ReferenceId   int
	UserId        int
	Limit         int
	Offset        int
}

func ListHistory(ctx context.Context, filter HistoryFilter) ([]*History, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&History{})
	if filter.ReferenceType != "" {
		dbCtx = dbCtx.Where("reference_type = ?", filter.ReferenceType)
	}
	if filter.ReferenceId > 0 {
		dbCtx = dbCtx.Where("reference_id = ?", filter.ReferenceId)
	}
	if filter.UserId > 0 {
		dbCtx = dbCtx.Where("user_id = ?", filter.UserId)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = config.SearchLimit
	}
	var results []*History
	err := dbCtx.Order("created_at DESC").Limit(limit).Offset(filter.Offset).Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
