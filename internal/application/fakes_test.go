package application

import (
	"context"
	"sort"
	"time"

	"github.com/navmark/navmark/internal/domain/entity"
	repo "github.com/navmark/navmark/internal/domain/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	nextID int64
	users  map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	for id, existing := range f.users {
		if id != u.ID && existing.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*entity.User, error) {
	all := f.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, u := range f.users {
		if !u.Disabled {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) Recent(_ context.Context, limit int) ([]*entity.User, error) {
	all := f.sorted()
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (f *fakeUserRepo) sorted() []*entity.User {
	out := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// fakeBookmarkRepo is an in-memory BookmarkRepository.
type fakeBookmarkRepo struct {
	nextID    int64
	bookmarks map[int64]*entity.Bookmark
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{bookmarks: make(map[int64]*entity.Bookmark)}
}

func (f *fakeBookmarkRepo) ListByUser(_ context.Context, userID int64) ([]*entity.Bookmark, error) {
	var out []*entity.Bookmark
	for _, b := range f.sorted() {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookmarkRepo) ListPublicByUser(_ context.Context, userID int64) ([]*entity.Bookmark, error) {
	var out []*entity.Bookmark
	for _, b := range f.sorted() {
		if b.UserID == userID && b.IsPublic {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookmarkRepo) GetByID(_ context.Context, id, userID int64) (*entity.Bookmark, error) {
	b, ok := f.bookmarks[id]
	if !ok || b.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookmarkRepo) Create(_ context.Context, b *entity.Bookmark) error {
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	f.bookmarks[b.ID] = &cp
	return nil
}

func (f *fakeBookmarkRepo) Update(_ context.Context, b *entity.Bookmark) error {
	existing, ok := f.bookmarks[b.ID]
	if !ok || existing.UserID != b.UserID {
		return repo.ErrNotFound
	}
	cp := *b
	f.bookmarks[b.ID] = &cp
	return nil
}

func (f *fakeBookmarkRepo) Delete(_ context.Context, id, userID int64) error {
	b, ok := f.bookmarks[id]
	if !ok || b.UserID != userID {
		return repo.ErrNotFound
	}
	delete(f.bookmarks, id)
	return nil
}

func (f *fakeBookmarkRepo) CountByUser(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, b := range f.bookmarks {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookmarkRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.bookmarks)), nil
}

func (f *fakeBookmarkRepo) sorted() []*entity.Bookmark {
	out := make([]*entity.Bookmark, 0, len(f.bookmarks))
	for _, b := range f.bookmarks {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// fakeCategoryRepo is an in-memory CategoryRepository. Deleting a category
// detaches bookmarks through the shared bookmark fake.
type fakeCategoryRepo struct {
	nextID     int64
	categories map[int64]*entity.Category
	bookmarks  *fakeBookmarkRepo
}

func newFakeCategoryRepo(bookmarks *fakeBookmarkRepo) *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*entity.Category), bookmarks: bookmarks}
}

func (f *fakeCategoryRepo) ListByUser(_ context.Context, userID int64) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.sorted() {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id, userID int64) (*entity.Category, error) {
	c, ok := f.categories[id]
	if !ok || c.UserID != userID {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) GetByName(_ context.Context, userID int64, name string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.UserID == userID && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, existing := range f.categories {
		if existing.UserID == c.UserID && existing.Name == c.Name {
			return repo.ErrDuplicate
		}
	}
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) DeleteAndDetach(_ context.Context, id, userID int64) error {
	c, ok := f.categories[id]
	if !ok || c.UserID != userID {
		return repo.ErrNotFound
	}
	if f.bookmarks != nil {
		for _, b := range f.bookmarks.bookmarks {
			if b.CategoryID != nil && *b.CategoryID == id {
				b.CategoryID = nil
			}
		}
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.categories)), nil
}

func (f *fakeCategoryRepo) sorted() []*entity.Category {
	out := make([]*entity.Category, 0, len(f.categories))
	for _, c := range f.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
