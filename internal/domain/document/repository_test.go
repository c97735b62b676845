package document

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // one in-memory database across the pool

	require.NoError(t, db.AutoMigrate(&Document{}))
	return NewRepository(db)
}

func newDoc(propertyID, filename string, at time.Time) *Document {
	return &Document{
		ID:               uuid.New().String(),
		PropertyID:       propertyID,
		Filename:         filename,
		OriginalFilename: filename,
		Path:             propertyID + "/docs/" + filename,
		CreatedAt:        at,
	}
}

func TestListByPropertyID_OrdersByUploadTime(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	propertyID := uuid.New().String()

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, newDoc(propertyID, "second.pdf", now.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, newDoc(propertyID, "first.pdf", now)))
	require.NoError(t, repo.Create(ctx, newDoc(uuid.New().String(), "other.pdf", now)))

	docs, err := repo.ListByPropertyID(ctx, propertyID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first.pdf", docs[0].Filename)
	assert.Equal(t, "second.pdf", docs[1].Filename)
}

func TestDelete_ReturnsRowForFileCleanup(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	d := newDoc(uuid.New().String(), "plan.pdf", time.Now())
	require.NoError(t, repo.Create(ctx, d))

	deleted, err := repo.Delete(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Path, deleted.Path)

	_, err = repo.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Delete(ctx, d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteByPropertyID_RemovesOnlyThatProperty(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	keep := newDoc("prop-keep", "keep.pdf", time.Now())
	require.NoError(t, repo.Create(ctx, keep))
	require.NoError(t, repo.Create(ctx, newDoc("prop-gone", "a.pdf", time.Now())))
	require.NoError(t, repo.Create(ctx, newDoc("prop-gone", "b.pdf", time.Now())))

	removed, err := repo.DeleteByPropertyID(ctx, "prop-gone")
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	kept, err := repo.ListByPropertyID(ctx, "prop-keep")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
