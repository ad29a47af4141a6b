package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/postbook/postbook/internal/authz"
	"github.com/postbook/postbook/internal/logging"
	"github.com/postbook/postbook/internal/models"
	"github.com/postbook/postbook/internal/repo"
)

var ErrInvalidTagName = errors.New("tag name may only contain letters, numbers and spaces")

var tagNameRE = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)

func (s *ContentService) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	return s.Repo.GetAllTags(ctx)
}

func (s *ContentService) GetTag(ctx context.Context, name string) (*models.Tag, error) {
	tag, err := s.Repo.GetTagByName(ctx, name)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tag, nil
}

// CreateTag validates the name and inserts the tag. Idempotency is not
// enforced here: a duplicate name is a store-level constraint violation the
// repo reports as ErrTagExists.
func (s *ContentService) CreateTag(ctx context.Context, principal authz.Principal, name string) (*models.Tag, error) {
	l := logging.FromContext(ctx).With("svc", "content.create_tag", "tag", name)

	if name == "" || !tagNameRE.MatchString(name) {
		l.Warn("create_tag_rejected", "reason", "invalid name")
		return nil, ErrInvalidTagName
	}

	tag := models.Tag{
		Name:      name,
		CreatorID: principal.ID,
	}
	if err := s.Repo.CreateTag(ctx, &tag); err != nil {
		return nil, err
	}

	l.Info("tag_created", "user_id", principal.ID)
	return &tag, nil
}

func (s *ContentService) DeleteTag(ctx context.Context, name string) error {
	deleted, err := s.Repo.DeleteTag(ctx, name)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
