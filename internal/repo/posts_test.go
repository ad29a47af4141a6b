package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postbook/postbook/internal/models"
	"github.com/postbook/postbook/internal/pagination"
)

func seedPosts(t *testing.T, r *GormRepo, owner uuid.UUID, n int) []models.Post {
	t.Helper()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := models.Post{
			ID:        uuid.New(),
			Name:      fmt.Sprintf("post %d", i+1),
			UserID:    owner,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, r.CreatePost(context.Background(), &post))
		posts = append(posts, post)
	}
	return posts
}

func TestGetPosts_NoPaginationReturnsEverything(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	seedPosts(t, r, uuid.New(), 5)

	posts, err := r.GetPosts(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, posts, 5)
}

func TestGetPosts_WindowIsDeterministic(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	seeded := seedPosts(t, r, uuid.New(), 5)

	page, err := r.GetPosts(context.Background(), nil, &pagination.Filter{PageNumber: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)

	assert.Equal(t, seeded[2].ID, page[0].ID)
	assert.Equal(t, seeded[3].ID, page[1].ID)
}

func TestGetPosts_FilterByOwner(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	alice := uuid.New()
	bob := uuid.New()
	seedPosts(t, r, alice, 3)
	seedPosts(t, r, bob, 2)

	posts, err := r.GetPosts(context.Background(), &PostFilter{UserID: bob}, &pagination.Filter{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, bob, p.UserID)
	}
}

func TestUserOwnsPost(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	owner := uuid.New()
	posts := seedPosts(t, r, owner, 1)

	owns, err := r.UserOwnsPost(context.Background(), posts[0].ID, owner)
	require.NoError(t, err)
	assert.True(t, owns)

	owns, err = r.UserOwnsPost(context.Background(), posts[0].ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, owns)

	owns, err = r.UserOwnsPost(context.Background(), uuid.New(), owner)
	require.NoError(t, err)
	assert.False(t, owns)
}

func TestUpdatePost_ReplacesTagsAndReportsAffected(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	owner := uuid.New()
	posts := seedPosts(t, r, owner, 1)

	post := posts[0]
	post.Name = "renamed"
	post.Tags = []models.PostTag{{PostID: post.ID, TagName: "golang"}}

	updated, err := r.UpdatePost(context.Background(), &post)
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := r.GetPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "golang", got.Tags[0].TagName)
}

func TestUpdatePost_MissingRowReportsZeroAffected(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	post := models.Post{ID: uuid.New(), Name: "ghost", UserID: uuid.New()}

	updated, err := r.UpdatePost(context.Background(), &post)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestDeletePost(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	posts := seedPosts(t, r, uuid.New(), 1)

	deleted, err := r.DeletePost(context.Background(), posts[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.DeletePost(context.Background(), posts[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
