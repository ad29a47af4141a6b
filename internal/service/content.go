package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/postbook/postbook/internal/authz"
	"github.com/postbook/postbook/internal/logging"
	"github.com/postbook/postbook/internal/models"
	"github.com/postbook/postbook/internal/pagination"
	"github.com/postbook/postbook/internal/repo"
)

var (
	// ErrNotOwner is a business error, reported as a 400, not a 403: the
	// caller is authenticated and authorized, the resource just isn't theirs.
	ErrNotOwner = errors.New("you do not own this post")
	ErrNotFound = errors.New("resource not found")
)

type ContentService struct {
	Repo *repo.GormRepo
}

func (s *ContentService) CreatePost(ctx context.Context, principal authz.Principal, name string, tagNames []string) (*models.Post, error) {
	l := logging.FromContext(ctx).With("svc", "content.create_post")

	id := uuid.New()
	post := models.Post{
		ID:     id,
		Name:   name,
		UserID: principal.ID,
		Tags:   buildTags(id, tagNames),
	}

	if err := s.Repo.CreatePost(ctx, &post); err != nil {
		l.Error("create_post_failed", "error", err)
		return nil, err
	}

	l.Info("post_created", "post_id", post.ID, "user_id", principal.ID)
	return &post, nil
}

func (s *ContentService) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.Repo.GetPostByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// GetPosts lists posts. An invalid page window (page or size below one) is
// treated the same as no pagination: the full unfiltered set comes back.
func (s *ContentService) GetPosts(ctx context.Context, filter *repo.PostFilter, p *pagination.Filter) ([]models.Post, error) {
	if !p.Valid() {
		p = nil
	}
	return s.Repo.GetPosts(ctx, filter, p)
}

// UpdatePost runs the ownership gate before touching the store.
func (s *ContentService) UpdatePost(ctx context.Context, principal authz.Principal, postID uuid.UUID, name string, tagNames []string) (*models.Post, error) {
	l := logging.FromContext(ctx).With("svc", "content.update_post", "post_id", postID)

	owns, err := s.Repo.UserOwnsPost(ctx, postID, principal.ID)
	if err != nil {
		return nil, err
	}
	if !owns {
		l.Warn("update_denied", "user_id", principal.ID)
		return nil, ErrNotOwner
	}

	post, err := s.Repo.GetPostByID(ctx, postID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	post.Name = name
	if tagNames != nil {
		post.Tags = buildTags(post.ID, tagNames)
	}

	updated, err := s.Repo.UpdatePost(ctx, post)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}

	l.Info("post_updated", "user_id", principal.ID)
	return post, nil
}

func (s *ContentService) DeletePost(ctx context.Context, principal authz.Principal, postID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "content.delete_post", "post_id", postID)

	owns, err := s.Repo.UserOwnsPost(ctx, postID, principal.ID)
	if err != nil {
		return err
	}
	if !owns {
		l.Warn("delete_denied", "user_id", principal.ID)
		return ErrNotOwner
	}

	deleted, err := s.Repo.DeletePost(ctx, postID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	l.Info("post_deleted", "user_id", principal.ID)
	return nil
}

func buildTags(postID uuid.UUID, names []string) []models.PostTag {
	tags := make([]models.PostTag, 0, len(names))
	for _, n := range names {
		tags = append(tags, models.PostTag{PostID: postID, TagName: n})
	}
	return tags
}
