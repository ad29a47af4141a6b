package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/postbook/postbook/internal/authz"
	"github.com/postbook/postbook/internal/models"
	"github.com/postbook/postbook/internal/pagination"
	"github.com/postbook/postbook/internal/repo"
)

func newTestService(t *testing.T) *ContentService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Post{},
		&models.PostTag{},
		&models.Tag{},
	))

	return &ContentService{Repo: repo.New(db)}
}

func principal() authz.Principal {
	return authz.Principal{ID: uuid.New(), Email: "alice@example.com", Roles: []string{authz.RolePoster}}
}

func TestCreatePost(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	owner := principal()

	post, err := svc.CreatePost(context.Background(), owner, "first post", []string{"go", "news"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, post.UserID)
	assert.Len(t, post.Tags, 2)

	got, err := svc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "first post", got.Name)
	assert.Len(t, got.Tags, 2)
}

func TestGetPost_Missing(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.GetPost(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePost_OwnershipGate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	owner := principal()
	post, err := svc.CreatePost(ctx, owner, "original", []string{"go"})
	require.NoError(t, err)

	stranger := principal()
	_, err = svc.UpdatePost(ctx, stranger, post.ID, "hijacked", nil)
	assert.ErrorIs(t, err, ErrNotOwner)

	// The denied update must not have touched the post.
	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Name)

	updated, err := svc.UpdatePost(ctx, owner, post.ID, "renamed", []string{"go", "update"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Len(t, updated.Tags, 2)
}

func TestUpdatePost_Missing(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.UpdatePost(context.Background(), principal(), uuid.New(), "name", nil)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestDeletePost_OwnershipGate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	owner := principal()
	post, err := svc.CreatePost(ctx, owner, "doomed", nil)
	require.NoError(t, err)

	err = svc.DeletePost(ctx, principal(), post.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.DeletePost(ctx, owner, post.ID))

	_, err = svc.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPosts_InvalidPaginationReturnsFullSet(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	owner := principal()

	for i := 0; i < 3; i++ {
		_, err := svc.CreatePost(ctx, owner, "post", nil)
		require.NoError(t, err)
	}

	posts, err := svc.GetPosts(ctx, nil, &pagination.Filter{PageNumber: 0, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	posts, err = svc.GetPosts(ctx, nil, &pagination.Filter{PageNumber: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestCreateTag_NameValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	creator := principal()

	tests := []struct {
		name    string
		tagName string
		wantErr error
	}{
		{name: "letters digits and spaces", tagName: "ok tag 1", wantErr: nil},
		{name: "punctuation rejected", tagName: "bad!tag", wantErr: ErrInvalidTagName},
		{name: "empty rejected", tagName: "", wantErr: ErrInvalidTagName},
		{name: "unicode rejected", tagName: "café", wantErr: ErrInvalidTagName},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tag, err := svc.CreateTag(ctx, creator, tt.tagName)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.tagName, tag.Name)
			assert.Equal(t, creator.ID, tag.CreatorID)
		})
	}
}

func TestCreateTag_Duplicate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTag(ctx, principal(), "golang")
	require.NoError(t, err)

	_, err = svc.CreateTag(ctx, principal(), "golang")
	assert.ErrorIs(t, err, repo.ErrTagExists)
}

func TestDeleteTag(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTag(ctx, principal(), "old")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTag(ctx, "old"))
	assert.ErrorIs(t, svc.DeleteTag(ctx, "old"), ErrNotFound)
}
