package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/postbook/postbook/internal/models"
)

func (r *GormRepo) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormRepo) GetTagByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag inserts the tag unless one with the same name exists. The name is
// the canonical tag identity.
func (r *GormRepo) CreateTag(ctx context.Context, tag *models.Tag) error {
	tx := r.DB.WithContext(ctx).Where("name = ?", tag.Name).FirstOrCreate(tag)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrTagExists
	}
	return nil
}

func (r *GormRepo) DeleteTag(ctx context.Context, name string) (bool, error) {
	res := r.DB.WithContext(ctx).Where("name = ?", name).Delete(&models.Tag{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IsNotFound reports whether err is the store's record-absent signal.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
