package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/postbook/postbook/internal/models"
)

func (r *GormRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(token).Error
}

func (r *GormRepo) GetRefreshToken(ctx context.Context, value string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.DB.WithContext(ctx).Where("token = ?", value).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshNotFound
		}
		return nil, err
	}
	return &token, nil
}

// ConsumeRefreshToken marks a refresh token used with a compare-and-set
// update, so a token replayed by a concurrent request is redeemed at most
// once. Zero rows affected means another request got there first.
func (r *GormRepo) ConsumeRefreshToken(ctx context.Context, value string) error {
	res := r.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ? AND used = ? AND invalidated = ?", value, false, false).
		Update("used", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyRedeemed
	}
	return nil
}

// InvalidateUserTokens revokes every outstanding refresh token of a user.
func (r *GormRepo) InvalidateUserTokens(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("user_id = ? AND used = ? AND invalidated = ?", userID, false, false).
		Update("invalidated", true).Error
}
