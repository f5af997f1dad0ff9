package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navmark/navmark/internal/domain/entity"
)

func newTestBookmarkService(t *testing.T) (*BookmarkService, *fakeUserRepo, *fakeBookmarkRepo, *fakeCategoryRepo, *entity.User) {
	t.Helper()
	users := newFakeUserRepo()
	bookmarks := newFakeBookmarkRepo()
	categories := newFakeCategoryRepo(bookmarks)

	u := &entity.User{Username: "alice", Email: "alice@example.com", Password: "x", BookmarkLimit: 99}
	require.NoError(t, users.Create(context.Background(), u))

	return NewBookmarkService(bookmarks, categories, users), users, bookmarks, categories, u
}

func TestBookmarkCreate(t *testing.T) {
	svc, _, _, categories, u := newTestBookmarkService(t)
	ctx := context.Background()

	t.Run("defaults applied", func(t *testing.T) {
		b, err := svc.Create(ctx, u.ID, CreateBookmarkInput{Title: "  Example  ", URL: " https://example.com "})
		require.NoError(t, err)
		assert.Equal(t, "Example", b.Title)
		assert.Equal(t, "https://example.com", b.URL)
		assert.Equal(t, "🔗", b.Icon)
		assert.False(t, b.IsPublic)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := svc.Create(ctx, u.ID, CreateBookmarkInput{Title: "   ", URL: "https://example.com"})
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("missing url", func(t *testing.T) {
		_, err := svc.Create(ctx, u.ID, CreateBookmarkInput{Title: "Example", URL: ""})
		assert.ErrorIs(t, err, ErrURLRequired)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := svc.Create(ctx, u.ID, CreateBookmarkInput{Title: "Example", URL: "not a url"})
		assert.ErrorIs(t, err, ErrInvalidURL)
	})

	t.Run("unknown category", func(t *testing.T) {
		missing := int64(404)
		_, err := svc.Create(ctx, u.ID, CreateBookmarkInput{Title: "Example", URL: "https://example.com", CategoryID: &missing})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("category of another user", func(t *testing.T) {
		other := &entity.Category{UserID: u.ID + 100, Name: "theirs"}
		require.NoError(t, categories.Create(ctx, other))

		_, err := svc.Create(ctx, u.ID, CreateBookmarkInput{Title: "Example", URL: "https://example.com", CategoryID: &other.ID})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestBookmarkLimit(t *testing.T) {
	svc, users, _, _, u := newTestBookmarkService(t)
	ctx := context.Background()

	u.BookmarkLimit = 2
	require.NoError(t, users.Update(ctx, u))

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, u.ID, CreateBookmarkInput{Title: "Example", URL: "https://example.com"})
		require.NoError(t, err)
	}

	_, err := svc.Create(ctx, u.ID, CreateBookmarkInput{Title: "One too many", URL: "https://example.com"})
	assert.ErrorIs(t, err, ErrBookmarkLimit)
}

func TestBookmarkUpdate(t *testing.T) {
	svc, _, _, categories, u := newTestBookmarkService(t)
	ctx := context.Background()

	cat := &entity.Category{UserID: u.ID, Name: "tools"}
	require.NoError(t, categories.Create(ctx, cat))

	b, err := svc.Create(ctx, u.ID, CreateBookmarkInput{Title: "Example", URL: "https://example.com", CategoryID: &cat.ID})
	require.NoError(t, err)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		title := "Renamed"
		got, err := svc.Update(ctx, b.ID, u.ID, UpdateBookmarkInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, "https://example.com", got.URL)
		require.NotNil(t, got.CategoryID)
		assert.Equal(t, cat.ID, *got.CategoryID)
	})

	t.Run("clear category", func(t *testing.T) {
		got, err := svc.Update(ctx, b.ID, u.ID, UpdateBookmarkInput{ClearCategory: true})
		require.NoError(t, err)
		assert.Nil(t, got.CategoryID)
	})

	t.Run("invalid url rejected", func(t *testing.T) {
		bad := "nope"
		_, err := svc.Update(ctx, b.ID, u.ID, UpdateBookmarkInput{URL: &bad})
		assert.ErrorIs(t, err, ErrInvalidURL)
	})

	t.Run("not visible to another user", func(t *testing.T) {
		title := "hijack"
		_, err := svc.Update(ctx, b.ID, u.ID+1, UpdateBookmarkInput{Title: &title})
		assert.ErrorIs(t, err, ErrBookmarkNotFound)
	})
}

func TestBookmarkListPublic(t *testing.T) {
	svc, users, _, _, u := newTestBookmarkService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, u.ID, CreateBookmarkInput{Title: "Private", URL: "https://example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, u.ID, CreateBookmarkInput{Title: "Public", URL: "https://example.com", IsPublic: true})
	require.NoError(t, err)

	t.Run("only public rows", func(t *testing.T) {
		got, err := svc.ListPublic(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Public", got[0].Title)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ListPublic(ctx, "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("disabled user is hidden", func(t *testing.T) {
		u.Disabled = true
		require.NoError(t, users.Update(ctx, u))

		_, err := svc.ListPublic(ctx, "alice")
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}
