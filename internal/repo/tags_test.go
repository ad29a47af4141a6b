package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postbook/postbook/internal/models"
)

func TestCreateTag_DuplicateName(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	tag := models.Tag{Name: "golang", CreatorID: uuid.New()}
	require.NoError(t, r.CreateTag(context.Background(), &tag))

	dup := models.Tag{Name: "golang", CreatorID: uuid.New()}
	err := r.CreateTag(context.Background(), &dup)
	assert.ErrorIs(t, err, ErrTagExists)
}

func TestGetTagByName(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	tag := models.Tag{Name: "news", CreatorID: uuid.New()}
	require.NoError(t, r.CreateTag(context.Background(), &tag))

	got, err := r.GetTagByName(context.Background(), "news")
	require.NoError(t, err)
	assert.Equal(t, "news", got.Name)

	_, err = r.GetTagByName(context.Background(), "absent")
	assert.True(t, IsNotFound(err))
}

func TestDeleteTag(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	tag := models.Tag{Name: "old", CreatorID: uuid.New()}
	require.NoError(t, r.CreateTag(context.Background(), &tag))

	deleted, err := r.DeleteTag(context.Background(), "old")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.DeleteTag(context.Background(), "old")
	require.NoError(t, err)
	assert.False(t, deleted)
}
