package upload

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"snapwall/internal/database"
	"snapwall/internal/domain"
)

func setupRepo(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Upload{}))

	return NewRepository(db), db
}

func draft(owner int64) *Upload {
	return &Upload{
		ID:                         uuid.New().String(),
		OwnerID:                    owner,
		Owner:                      domain.User{ID: owner, Username: fmt.Sprintf("user%d", owner)},
		Attachments:                []string{},
		AllowAdditionalAttachments: true,
		Timestamp:                  time.Now().UTC(),
	}
}

func TestRepository_FindForAttachment_Gates(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	u := draft(42)
	require.NoError(t, repo.Create(ctx, u))

	found, err := repo.FindForAttachment(ctx, u.ID, 42)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	// wrong owner
	found, err = repo.FindForAttachment(ctx, u.ID, 7)
	require.NoError(t, err)
	assert.Nil(t, found)

	// nonexistent id
	found, err = repo.FindForAttachment(ctx, uuid.New().String(), 42)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_AppendAttachment_LocksRecord(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	u := draft(42)
	require.NoError(t, repo.Create(ctx, u))

	ok, err := repo.AppendAttachment(ctx, u.ID, []string{"abc.png"})
	require.NoError(t, err)
	assert.True(t, ok)

	// the gate re-check makes a second append a no-op
	ok, err = repo.AppendAttachment(ctx, u.ID, []string{"abc.png", "def.png"})
	require.NoError(t, err)
	assert.False(t, ok)

	// the record is now invisible to the attachment filter too
	found, err := repo.FindForAttachment(ctx, u.ID, 42)
	require.NoError(t, err)
	assert.Nil(t, found)

	stored, err := repo.FindForPublish(ctx, u.ID, 42)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"abc.png"}, stored.Attachments)
	assert.False(t, stored.AllowAdditionalAttachments)
}

func TestRepository_MarkPublished_OneShot(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	u := draft(42)
	require.NoError(t, repo.Create(ctx, u))

	ok, err := repo.MarkPublished(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkPublished(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, ok, "publish must be one-shot")

	found, err := repo.FindForPublish(ctx, u.ID, 42)
	require.NoError(t, err)
	assert.Nil(t, found, "published records leave the publish filter")
}

func TestRepository_ListPublished_PaginatesDescending(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		u := draft(42)
		u.Attachments = []string{fmt.Sprintf("blob%d.png", i)}
		u.Timestamp = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, u))
		ok, err := repo.MarkPublished(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// an unpublished draft must never show up
	require.NoError(t, repo.Create(ctx, draft(42)))

	page, err := repo.ListPublished(ctx, nil, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, []string{"blob4.png"}, page[0].Attachments)
	assert.Equal(t, []string{"blob3.png"}, page[1].Attachments)
	assert.Equal(t, []string{"blob2.png"}, page[2].Attachments)

	oldestSeen := page[2].Timestamp
	next, err := repo.ListPublished(ctx, &oldestSeen, 3)
	require.NoError(t, err)
	require.Len(t, next, 2, "cursor is exclusive and skips everything already seen")
	assert.Equal(t, []string{"blob1.png"}, next[0].Attachments)
	assert.Equal(t, []string{"blob0.png"}, next[1].Attachments)
}

func TestRepository_ListPublished_ExcludesDrafts(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, draft(42)))

	locked := draft(42)
	require.NoError(t, repo.Create(ctx, locked))
	ok, err := repo.AppendAttachment(ctx, locked.ID, []string{"a.png"})
	require.NoError(t, err)
	require.True(t, ok)

	page, err := repo.ListPublished(ctx, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}
