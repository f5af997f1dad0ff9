package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navmark/navmark/internal/domain/entity"
)

func newTestAdminService(t *testing.T, userCount int) (*AdminService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	bookmarks := newFakeBookmarkRepo()
	categories := newFakeCategoryRepo(bookmarks)

	for i := 0; i < userCount; i++ {
		u := &entity.User{
			Username:      fmt.Sprintf("user%d", i),
			Email:         fmt.Sprintf("user%d@example.com", i),
			Password:      "x",
			BookmarkLimit: 99,
		}
		require.NoError(t, users.Create(context.Background(), u))
	}
	return NewAdminService(users, bookmarks, categories), users
}

func TestAdminListUsers(t *testing.T) {
	svc, _ := newTestAdminService(t, 25)
	ctx := context.Background()

	users, p, err := svc.ListUsers(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, users, 10)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, int64(3), p.TotalPages)

	users, _, err = svc.ListUsers(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, users, 5)

	// Out-of-range inputs fall back to defaults.
	_, p, err = svc.ListUsers(ctx, -1, 10000)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
}

func TestAdminSuperAdminProtected(t *testing.T) {
	svc, _ := newTestAdminService(t, 3)
	ctx := context.Background()

	disabled := true
	_, err := svc.UpdateUser(ctx, 1, UpdateUserInput{Disabled: &disabled})
	assert.ErrorIs(t, err, ErrSuperAdmin)

	assert.ErrorIs(t, svc.DeleteUser(ctx, 1), ErrSuperAdmin)
}

func TestAdminUpdateUser(t *testing.T) {
	svc, users := newTestAdminService(t, 3)
	ctx := context.Background()

	disabled := true
	limit := 10
	role := "admin"
	u, err := svc.UpdateUser(ctx, 2, UpdateUserInput{Disabled: &disabled, BookmarkLimit: &limit, Role: &role})
	require.NoError(t, err)
	assert.True(t, u.Disabled)
	assert.Equal(t, 10, u.BookmarkLimit)
	assert.Equal(t, "admin", u.Role)

	stored, err := users.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, stored.Disabled)

	_, err = svc.UpdateUser(ctx, 404, UpdateUserInput{Disabled: &disabled})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminStats(t *testing.T) {
	svc, users := newTestAdminService(t, 7)
	ctx := context.Background()

	u, err := users.GetByID(ctx, 3)
	require.NoError(t, err)
	u.Disabled = true
	require.NoError(t, users.Update(ctx, u))

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalUsers)
	assert.Equal(t, int64(6), stats.ActiveUsers)
	assert.Len(t, stats.RecentUsers, 5)
}
