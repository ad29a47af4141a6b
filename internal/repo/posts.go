package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/postbook/postbook/internal/models"
	"github.com/postbook/postbook/internal/pagination"
)

// PostFilter narrows a post listing. Zero value matches everything.
type PostFilter struct {
	UserID uuid.UUID
}

func (r *GormRepo) CreatePost(ctx context.Context, post *models.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *GormRepo) GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.DB.WithContext(ctx).
		Preload("Tags").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts returns the full unfiltered collection when p is nil. Otherwise
// the filter is applied first, then the skip/take window. Rows are ordered by
// creation time with the id as tie-breaker so pages are deterministic.
func (r *GormRepo) GetPosts(ctx context.Context, filter *PostFilter, p *pagination.Filter) ([]models.Post, error) {
	q := r.DB.WithContext(ctx).Model(&models.Post{}).Preload("Tags")

	var posts []models.Post
	if p == nil {
		if err := q.Order("created_at ASC, id ASC").Find(&posts).Error; err != nil {
			return nil, err
		}
		return posts, nil
	}

	if filter != nil && filter.UserID != uuid.Nil {
		q = q.Where("user_id = ?", filter.UserID)
	}

	skip, take := p.Offset()
	err := q.Order("created_at ASC, id ASC").
		Offset(skip).
		Limit(take).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *GormRepo) UserOwnsPost(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdatePost rewrites the post body and replaces its tag set. Reports whether
// any row was affected.
func (r *GormRepo) UpdatePost(ctx context.Context, post *models.Post) (bool, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", post.ID).
			Update("name", post.Name)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}

		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		if len(post.Tags) == 0 {
			return nil
		}
		return tx.Create(&post.Tags).Error
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *GormRepo) DeletePost(ctx context.Context, id uuid.UUID) (bool, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
