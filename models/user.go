package models

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/utils"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username" binding:"required"`
	FullName  string    `gorm:"size:100;not null" json:"full_name" binding:"required"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email" binding:"required"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('ADMIN','EVM_STAFF','DEALER_MANAGER','DEALER_STAFF');not null;default:'DEALER_STAFF'" json:"role"`
	DealerId  int       `gorm:"index;default:0" json:"dealer_id"`
	Dealer    *Dealer   `json:"dealer,omitempty"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Username string   `json:"username" binding:"required"`
	FullName string   `json:"full_name" binding:"required"`
	Email    string   `json:"email" binding:"required"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	Password string   `json:"password" binding:"required"`
	Role     UserRole `json:"role"`
	DealerId int      `json:"dealer_id"`
}

type LoginInput struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string  `json:"token"`
	Jwt      string  `json:"jwt"`
	User     *User   `json:"user"`
	Dealer   *Dealer `json:"dealer,omitempty"`
	Role     string  `json:"role"`
	DealerId int     `json:"dealer_id"`
}

func sessionLifespan() time.Duration {
	return utils.GetCacheLifespan() * 24
}

// Login accepts username or email plus password and opens a session.
func Login(ctx context.Context, input *LoginInput) (*LoginResponse, error) {
	db := config.GetDB()

	login := strings.TrimSpace(input.Login)
	var user User
	err := db.WithContext(ctx).Where("username = ? OR email = ?", login, login).First(&user).Error
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := utils.ComparePassword(user.Password, input.Password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	if user.IsActive == nil || !*user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	// opaque session token, resolvable via redis by the session middleware
	token := uuid.New().String()
	if err := config.SetRedisValue("Token:"+token, user.Username, sessionLifespan()); err != nil {
		return nil, err
	}
	if err := config.AddRedisSet("Tokens:"+user.Username, token); err != nil {
		return nil, err
	}

	jwtToken, err := utils.JwtGenerate(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	resp := LoginResponse{
		Token:    token,
		Jwt:      jwtToken,
		User:     &user,
		Role:     string(user.Role),
		DealerId: user.DealerId,
	}

	if user.DealerId > 0 {
		dealer, err := utils.FetchSingleModel[Dealer](ctx, user.DealerId, "Region")
		if err == nil {
			resp.Dealer = dealer
		}
	}

	return &resp, nil
}

func Logout(ctx context.Context) error {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return errors.New("no active session")
	}
	// session middleware already resolved the username for this token
	if username, ok := utils.GetUsernameFromContext(ctx); ok && username != "" {
		_ = config.RemoveRedisSetMember("Tokens:"+username, token)
	}
	return config.RemoveRedisKey("Token:" + token)
}

// destroySessions drops every session token issued for the username.
func destroySessions(username string) error {
	tokens, err := config.GetRedisSetMembers("Tokens:" + username)
	if err != nil {
		return err
	}
	for _, token := range tokens {
		if err := config.RemoveRedisKey("Token:" + token); err != nil {
			return err
		}
	}
	return config.RemoveRedisKey("Tokens:" + username)
}

func (input *NewUser) validate(ctx context.Context, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[User](ctx, 0, id); err != nil {
			return err
		}
	}
	if err := utils.ValidateUnique[User](ctx, 0, "username", input.Username, id); err != nil {
		return err
	}
	if !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	if err := utils.ValidateUnique[User](ctx, 0, "email", input.Email, id); err != nil {
		return err
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	if input.DealerId > 0 {
		if err := utils.ValidateResourceId[Dealer](ctx, 0, input.DealerId); err != nil {
			return errors.New("dealer not found")
		}
	}
	switch input.Role {
	case "", UserRoleAdmin, UserRoleEVMStaff:
	case UserRoleDealerManager, UserRoleDealerStaff:
		if input.DealerId <= 0 {
			return errors.New("dealer id is required for dealer roles")
		}
	default:
		return errors.New("invalid user role")
	}
	return nil
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	db := config.GetDB()

	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = UserRoleDealerStaff
	}

	user := User{
		Username: html.EscapeString(strings.TrimSpace(input.Username)),
		FullName: input.FullName,
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:    input.Phone,
		Address:  input.Address,
		Password: string(hashed),
		Role:     role,
		DealerId: input.DealerId,
		IsActive: utils.NewTrue(),
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Register is the public sign-up path: always lands as dealer staff.
func Register(ctx context.Context, input *NewUser) (*User, error) {
	input.Role = UserRoleDealerStaff
	return CreateUser(ctx, input)
}

type UpdateUserInput struct {
	FullName string   `json:"full_name"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	Role     UserRole `json:"role"`
	DealerId int      `json:"dealer_id"`
}

func UpdateUser(ctx context.Context, id int, input *UpdateUserInput) (*User, error) {
	db := config.GetDB()

	user, err := utils.FetchSingleModel[User](ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, errors.New("invalid phone number")
		}
		user.Phone = input.Phone
	}
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.Role != "" {
		if input.Role == UserRoleDealerManager || input.Role == UserRoleDealerStaff {
			dealerId := input.DealerId
			if dealerId == 0 {
				dealerId = user.DealerId
			}
			if dealerId <= 0 {
				return nil, errors.New("dealer id is required for dealer roles")
			}
		}
		user.Role = input.Role
	}
	if input.DealerId > 0 {
		if err := utils.ValidateResourceId[Dealer](ctx, 0, input.DealerId); err != nil {
			return nil, errors.New("dealer not found")
		}
		user.DealerId = input.DealerId
	}

	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func ToggleActiveUser(ctx context.Context, id int, isActive bool) (*User, error) {
	db := config.GetDB()

	user, err := utils.FetchSingleModel[User](ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = &isActive
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}

	if !isActive {
		_ = destroySessions(user.Username)
	}

	return user, nil
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	db := config.GetDB()

	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return errors.New("user id is required")
	}

	user, err := utils.FetchSingleModel[User](ctx, userId)
	if err != nil {
		return err
	}

	if err := utils.ComparePassword(user.Password, input.OldPassword); err != nil {
		return errors.New("old password does not match")
	}

	if len(input.NewPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return err
	}

	// force re-login everywhere after a password change
	return destroySessions(user.Username)
}

func GetUser(ctx context.Context, id int) (*User, error) {
	return utils.FetchSingleModel[User](ctx, id, "Dealer")
}

func GetUserByUsername(ctx context.Context, username string) (*User, error) {
	db := config.GetDB()
	var user User
	err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &user, nil
}

type UserFilter struct {
	Search   string
	Role     UserRole
	DealerId int
	Limit    int
	Offset   int
}

func ListUsers(ctx context.Context, filter UserFilter) ([]*User, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Dealer")
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where("username LIKE ? OR full_name LIKE ? OR email LIKE ?", like, like, like)
	}
	if filter.Role != "" {
		dbCtx = dbCtx.Where("role = ?", filter.Role)
	}
	if filter.DealerId > 0 {
		dbCtx = dbCtx.Where("dealer_id = ?", filter.DealerId)
	}
	if filter.Limit > 0 {
		dbCtx = dbCtx.Limit(filter.Limit).Offset(filter.Offset)
	}
	var results []*User
	if err := dbCtx.Order("username").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// sequence-free helper for seed jobs
func CountUsersByRole(ctx context.Context, role UserRole) (int64, error) {
	db := config.GetDB()
	var count int64
	err := db.WithContext(ctx).Model(&User{}).Where("role = ?", role).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
