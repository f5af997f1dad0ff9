package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/navmark/navmark/internal/domain/entity"
	"github.com/navmark/navmark/internal/domain/repository"
)

const userColumns = `id, username, email, password_hash, role, bookmark_limit, disabled,
	site_name, site_desc, bg_mode, bg_color, bg_image,
	enable_particles, particle_style, particle_color,
	card_color, card_opacity, card_text_color, enable_minimal_mode,
	created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.BookmarkLimit, &u.Disabled,
		&u.SiteName, &u.SiteDesc, &u.BgMode, &u.BgColor, &u.BgImage,
		&u.EnableParticles, &u.ParticleStyle, &u.ParticleColor,
		&u.CardColor, &u.CardOpacity, &u.CardTextColor, &u.EnableMinimalMode,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role, bookmark_limit, disabled,
			site_name, site_desc, bg_mode, bg_color, bg_image,
			enable_particles, particle_style, particle_color,
			card_color, card_opacity, card_text_color, enable_minimal_mode)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.Password, u.Role, u.BookmarkLimit, u.Disabled,
		u.SiteName, u.SiteDesc, u.BgMode, u.BgColor, u.BgImage,
		u.EnableParticles, u.ParticleStyle, u.ParticleColor,
		u.CardColor, u.CardOpacity, u.CardTextColor, u.EnableMinimalMode)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $1, role = $2, bookmark_limit = $3, disabled = $4,
			site_name = $5, site_desc = $6, bg_mode = $7, bg_color = $8, bg_image = $9,
			enable_particles = $10, particle_style = $11, particle_color = $12,
			card_color = $13, card_opacity = $14, card_text_color = $15,
			enable_minimal_mode = $16, updated_at = $17
		WHERE id = $18
	`, u.Email, u.Role, u.BookmarkLimit, u.Disabled,
		u.SiteName, u.SiteDesc, u.BgMode, u.BgColor, u.BgImage,
		u.EnableParticles, u.ParticleStyle, u.ParticleColor,
		u.CardColor, u.CardOpacity, u.CardTextColor,
		u.EnableMinimalMode, u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
	`, hash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the user; owned bookmarks and categories go with it via
// ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE NOT disabled`).Scan(&n)
	return n, err
}

func (r *UserRepository) Recent(ctx context.Context, limit int) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	users := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
