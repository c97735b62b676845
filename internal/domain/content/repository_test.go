package content

import (
	"context"
	"testing"

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

	require.NoError(t, db.AutoMigrate(&Page{}, &Section{}, &SiteService{}))
	return NewRepository(db)
}

func TestPages_SlugLookupLoadsSectionsInOrder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	page := &Page{ID: uuid.New().String(), Slug: "about", Title: "About us", Active: true}
	require.NoError(t, repo.CreatePage(ctx, page))

	require.NoError(t, repo.CreateSection(ctx, &Section{
		ID: uuid.New().String(), PageID: page.ID, Key: "history", Title: "History", SortOrder: 2,
	}))
	require.NoError(t, repo.CreateSection(ctx, &Section{
		ID: uuid.New().String(), PageID: page.ID, Key: "team", Title: "Team", SortOrder: 1,
	}))

	got, err := repo.GetPageBySlug(ctx, "about")
	require.NoError(t, err)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "team", got.Sections[0].Key)
	assert.Equal(t, "history", got.Sections[1].Key)

	_, err = repo.GetPageBySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPages_ListFiltersInactive(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreatePage(ctx, &Page{ID: uuid.New().String(), Slug: "about", Title: "About", Active: true}))
	require.NoError(t, repo.CreatePage(ctx, &Page{ID: uuid.New().String(), Slug: "draft", Title: "Draft", Active: false}))

	visible, err := repo.ListPages(ctx, false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := repo.ListPages(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPages_DeleteCascadesSections(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	page := &Page{ID: uuid.New().String(), Slug: "about", Title: "About", Active: true}
	require.NoError(t, repo.CreatePage(ctx, page))
	require.NoError(t, repo.CreateSection(ctx, &Section{ID: uuid.New().String(), PageID: page.ID, Key: "team"}))

	require.NoError(t, repo.DeletePage(ctx, page.ID))

	_, err := repo.GetPageBySlug(ctx, "about")
	assert.ErrorIs(t, err, ErrNotFound)

	var sections int64
	repo.db.Model(&Section{}).Where("page_id = ?", page.ID).Count(&sections)
	assert.Zero(t, sections)

	assert.ErrorIs(t, repo.DeletePage(ctx, page.ID), ErrNotFound)
}

func TestSections_UpdateAndDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	s := &Section{ID: uuid.New().String(), PageID: uuid.New().String(), Key: "team", Title: "Team"}
	require.NoError(t, repo.CreateSection(ctx, s))

	require.NoError(t, repo.UpdateSection(ctx, s.ID, map[string]any{"title": "Our team"}))
	assert.ErrorIs(t, repo.UpdateSection(ctx, uuid.New().String(), map[string]any{"title": "x"}), ErrNotFound)

	require.NoError(t, repo.DeleteSection(ctx, s.ID))
	assert.ErrorIs(t, repo.DeleteSection(ctx, s.ID), ErrNotFound)
}

func TestServices_ListOrdersBySortOrder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateService(ctx, &SiteService{ID: uuid.New().String(), Title: "Valuation", SortOrder: 2, Active: true}))
	require.NoError(t, repo.CreateService(ctx, &SiteService{ID: uuid.New().String(), Title: "Rentals", SortOrder: 1, Active: true}))
	require.NoError(t, repo.CreateService(ctx, &SiteService{ID: uuid.New().String(), Title: "Hidden", SortOrder: 0, Active: false}))

	visible, err := repo.ListServices(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, "Rentals", visible[0].Title)
	assert.Equal(t, "Valuation", visible[1].Title)

	all, err := repo.ListServices(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
