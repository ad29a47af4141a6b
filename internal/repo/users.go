package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/postbook/postbook/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserExists
	}
	return nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Preload("Roles").
		Preload("Claims").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Preload("Roles").
		Preload("Claims").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GrantRole attaches a role to the user, creating the role row on first use.
func (r *GormRepo) GrantRole(ctx context.Context, user *models.User, roleName string) error {
	var role models.Role
	if err := r.DB.WithContext(ctx).Where("name = ?", roleName).FirstOrCreate(&role, models.Role{Name: roleName}).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Model(user).Association("Roles").Append(&role)
}

func (r *GormRepo) AddClaim(ctx context.Context, user *models.User, name, value string) error {
	claim := models.UserClaim{UserID: user.ID, Name: name, Value: value}
	if err := r.DB.WithContext(ctx).Create(&claim).Error; err != nil {
		return err
	}
	user.Claims = append(user.Claims, claim)
	return nil
}
