package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navmark/navmark/internal/domain/entity"
	repo "github.com/navmark/navmark/internal/domain/repository"
	"github.com/navmark/navmark/pkg/helpers"
	"github.com/navmark/navmark/pkg/response"
)

type stubUserRepo struct {
	users map[int64]*entity.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error        { return nil }
func (s *stubUserRepo) GetByUsername(context.Context, string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}
func (s *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}
func (s *stubUserRepo) Update(context.Context, *entity.User) error            { return nil }
func (s *stubUserRepo) UpdatePassword(context.Context, int64, string) error   { return nil }
func (s *stubUserRepo) Delete(context.Context, int64) error                   { return nil }
func (s *stubUserRepo) List(context.Context, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) Count(context.Context) (int64, error)       { return 0, nil }
func (s *stubUserRepo) CountActive(context.Context) (int64, error) { return 0, nil }
func (s *stubUserRepo) Recent(context.Context, int) ([]*entity.User, error) {
	return nil, nil
}

func newAuthTestRouter(t *testing.T, users repo.UserRepository, jwt *helpers.JWTManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwt, users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": CurrentUserID(c)})
	})
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthMiddleware(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour, 24*time.Hour)
	users := &stubUserRepo{users: map[int64]*entity.User{
		1: {ID: 1, Username: "alice", Password: "hash"},
		2: {ID: 2, Username: "mallory", Password: "hash", Disabled: true},
	}}
	r := newAuthTestRouter(t, users, jwt)

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, "Access token required", env.Message)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := doRequest(r, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Access token required", decodeEnvelope(t, w).Message)
	})

	t.Run("malformed token", func(t *testing.T) {
		w := doRequest(r, "Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid or expired token", decodeEnvelope(t, w).Message)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := helpers.NewJWTManager("secret", -time.Minute, 24*time.Hour)
		token, err := expired.GenerateAccessToken(1, "alice", "user")
		require.NoError(t, err)

		w := doRequest(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid or expired token", decodeEnvelope(t, w).Message)
	})

	t.Run("valid token but deleted account", func(t *testing.T) {
		token, err := jwt.GenerateAccessToken(404, "ghost", "user")
		require.NoError(t, err)

		w := doRequest(r, "Bearer "+token)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", decodeEnvelope(t, w).Message)
	})

	t.Run("disabled account", func(t *testing.T) {
		token, err := jwt.GenerateAccessToken(2, "mallory", "user")
		require.NoError(t, err)

		w := doRequest(r, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Account is disabled", decodeEnvelope(t, w).Message)
	})

	t.Run("success", func(t *testing.T) {
		token, err := jwt.GenerateAccessToken(1, "alice", "user")
		require.NoError(t, err)

		w := doRequest(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":1`)
	})
}

func TestAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	allowlist := map[string]struct{}{"root": {}}

	newRouter := func(u *entity.User) *gin.Engine {
		r := gin.New()
		r.GET("/admin", func(c *gin.Context) {
			if u != nil {
				c.Set(CtxUser, u)
				c.Set(CtxUserID, u.ID)
			}
		}, AdminOnly(allowlist), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	get := func(r *gin.Engine) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("admin role passes", func(t *testing.T) {
		w := get(newRouter(&entity.User{ID: 1, Username: "alice", Role: "admin"}))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("allowlisted username passes", func(t *testing.T) {
		w := get(newRouter(&entity.User{ID: 2, Username: "root", Role: "user"}))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("regular user rejected", func(t *testing.T) {
		w := get(newRouter(&entity.User{ID: 3, Username: "bob", Role: "user"}))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no user rejected", func(t *testing.T) {
		w := get(newRouter(nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
