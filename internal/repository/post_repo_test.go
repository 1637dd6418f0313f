package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartstream/analytics-sync/internal/domain"
)

func newPostRow(id string) *domain.PostModel {
	return &domain.PostModel{
		PostID:       id,
		PostType:     "text",
		AuthorUserID: "u1",
		TextContent:  strPtr("hello"),
		CreatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestPostUpsertPreservesAuthorship(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newPostRow("p1")))

	replay := newPostRow("p1")
	replay.AuthorUserID = "u2"
	replay.TextContent = strPtr("edited")
	replay.LikeCount = 5
	require.NoError(t, repo.Upsert(ctx, replay))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.AuthorUserID, "authorship is immutable")
	assert.Equal(t, "edited", *got.TextContent)
	assert.Equal(t, 5, got.LikeCount)
}

func TestPostSoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newPostRow("p1")))

	eventID := "evt-del-1"
	ts := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SoftDelete(ctx, "p1", &eventID, &ts))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got.DeletedAt)
	assert.Equal(t, "hello", *got.TextContent, "soft delete keeps row data")
}

func TestPostListPublishedFiltersDraftsAndDeleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	draft := newPostRow("draft")
	require.NoError(t, repo.Upsert(ctx, draft))

	published := newPostRow("published")
	published.PublishedAt = timePtr(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(ctx, published))

	deleted := newPostRow("deleted")
	deleted.PublishedAt = timePtr(time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(ctx, deleted))
	require.NoError(t, repo.SoftDelete(ctx, "deleted", nil, nil))

	rows, err := repo.ListPublished(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "published", rows[0].PostID)
}
