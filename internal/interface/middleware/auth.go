package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/navmark/navmark/internal/domain/entity"
	repo "github.com/navmark/navmark/internal/domain/repository"
	"github.com/navmark/navmark/pkg/helpers"
	"github.com/navmark/navmark/pkg/response"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUser   = "user"
	CtxUserID = "userID"
)

// Auth authenticates requests via a Bearer access token. Token claims are
// never trusted for account state: the account is re-read on every request so
// deletions and disables take effect immediately.
func Auth(jwt *helpers.JWTManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Abort(c, http.StatusUnauthorized, "Access token required")
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.Abort(c, http.StatusNotFound, "User not found")
				return
			}
			response.Abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if u.Disabled {
			response.Abort(c, http.StatusForbidden, "Account is disabled")
			return
		}

		u.Password = ""
		c.Set(CtxUser, u)
		c.Set(CtxUserID, u.ID)
		c.Next()
	}
}

// CurrentUser returns the account attached by Auth.
func CurrentUser(c *gin.Context) *entity.User {
	u, _ := c.Get(CtxUser)
	user, _ := u.(*entity.User)
	return user
}

// CurrentUserID returns the account id attached by Auth.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}
