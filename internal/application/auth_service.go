package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/navmark/navmark/internal/domain/entity"
	repo "github.com/navmark/navmark/internal/domain/repository"
	"github.com/navmark/navmark/pkg/helpers"
	"github.com/navmark/navmark/pkg/mailer"
)

const resetCodeTTL = 15 * time.Minute

// TokenPair is the canonical token response shape for register, login, and
// refresh.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService implements registration, login, token refresh, and the
// password lifecycle. Hashing is an explicit step on each write path so a
// logical password change hashes exactly once.
type AuthService struct {
	Users       repo.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
	Logger      *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, pub *helpers.RabbitPublisher, mailEnabled bool, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Pub: pub, MailEnabled: mailEnabled, Logger: logger}
}

// newUser applies the account defaults used at registration.
func newUser(username, email, passwordHash string) *entity.User {
	return &entity.User{
		Username:      username,
		Email:         email,
		Password:      passwordHash,
		Role:          "user",
		BookmarkLimit: 99,
		SiteName:      "My Navigation",
		SiteDesc:      "Personal bookmark collection",
		BgMode:        "gradient",
		BgColor:       "#667eea",
		ParticleStyle: "stars",
		ParticleColor: "#ffffff",
		CardColor:     "#ffffff",
		CardOpacity:   85,
		CardTextColor: "#333333",
	}
}

func (s *AuthService) issueTokens(u *entity.User) (TokenPair, error) {
	access, err := s.JWT.GenerateAccessToken(u.ID, u.Username, u.Role)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.JWT.GenerateRefreshToken(u.ID, u.Username, u.Role)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Token: access, RefreshToken: refresh}, nil
}

// Register validates the password policy, rejects duplicate identities, and
// creates the account with its plaintext password replaced by a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*entity.User, TokenPair, error) {
	if ok, reason := helpers.ValidatePassword(password); !ok {
		return nil, TokenPair{}, &PolicyError{Reason: reason}
	}

	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		return nil, TokenPair{}, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, TokenPair{}, err
	}
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, TokenPair{}, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, TokenPair{}, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, TokenPair{}, err
	}

	u := newUser(username, email, hash)
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, TokenPair{}, ErrUsernameTaken
		}
		return nil, TokenPair{}, err
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Login verifies credentials and mints a fresh token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrUsernameNotFound
		}
		return nil, TokenPair{}, err
	}
	if u.Disabled {
		return nil, TokenPair{}, ErrAccountDisabled
	}
	if !helpers.CheckPassword(u.Password, password) {
		return nil, TokenPair{}, ErrIncorrectPassword
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh verifies the presented refresh token's signature and expiry and
// that it belongs to the already-authenticated account, then reissues a pair.
func (s *AuthService) Refresh(ctx context.Context, u *entity.User, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.Parse(refreshToken)
	if err != nil || claims.UserID != u.ID {
		return TokenPair{}, ErrInvalidToken
	}
	return s.issueTokens(u)
}

// ChangePassword verifies the current password, applies the policy to the new
// one, and re-hashes once.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !helpers.CheckPassword(u.Password, current) {
		return ErrIncorrectPassword
	}
	if ok, reason := helpers.ValidatePassword(next); !ok {
		return &PolicyError{Reason: reason}
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, userID, hash)
}

// ForgotPassword stores a short-lived reset code in Redis and queues its
// delivery. The code is returned so callers running without mail delivery can
// surface it directly.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrEmailNotFound
		}
		return "", err
	}

	code, err := helpers.GenResetCode()
	if err != nil {
		return "", err
	}
	if err := s.Redis.Set(ctx, helpers.KeyResetCode(u.Email), code, resetCodeTTL).Err(); err != nil {
		return "", err
	}

	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:      u.Email,
			Subject: "Password reset code",
			Text:    "Your password reset code is " + code + ". It expires in 15 minutes.",
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("queueing reset email failed")
		}
	}
	return code, nil
}

// ResetPassword redeems a reset code; codes are single use.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, next string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEmailNotFound
		}
		return err
	}

	stored, err := s.Redis.Get(ctx, helpers.KeyResetCode(u.Email)).Result()
	if err != nil || stored == "" || stored != code {
		return ErrInvalidResetCode
	}

	if ok, reason := helpers.ValidatePassword(next); !ok {
		return &PolicyError{Reason: reason}
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	s.Redis.Del(ctx, helpers.KeyResetCode(u.Email))
	return nil
}
