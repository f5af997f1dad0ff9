package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"

	"github.com/navmark/navmark/internal/domain/entity"
	repo "github.com/navmark/navmark/internal/domain/repository"
	"github.com/navmark/navmark/pkg/helpers"
)

// UserService covers the authenticated profile surface and the public
// profile page.
type UserService struct {
	Users     repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(users repo.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfileInput carries partial profile updates; nil fields are left
// untouched.
type UpdateProfileInput struct {
	Email             *string
	SiteName          *string
	SiteDesc          *string
	BgMode            *string
	BgColor           *string
	BgImage           *string
	EnableParticles   *bool
	ParticleStyle     *string
	ParticleColor     *string
	CardColor         *string
	CardOpacity       *int
	CardTextColor     *string
	EnableMinimalMode *bool
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.SiteName != nil {
		u.SiteName = *in.SiteName
	}
	if in.SiteDesc != nil {
		u.SiteDesc = *in.SiteDesc
	}
	if in.BgMode != nil {
		u.BgMode = *in.BgMode
	}
	if in.BgColor != nil {
		u.BgColor = *in.BgColor
	}
	if in.BgImage != nil {
		u.BgImage = in.BgImage
	}
	if in.EnableParticles != nil {
		u.EnableParticles = *in.EnableParticles
	}
	if in.ParticleStyle != nil {
		u.ParticleStyle = *in.ParticleStyle
	}
	if in.ParticleColor != nil {
		u.ParticleColor = *in.ParticleColor
	}
	if in.CardColor != nil {
		u.CardColor = *in.CardColor
	}
	if in.CardOpacity != nil {
		u.CardOpacity = *in.CardOpacity
	}
	if in.CardTextColor != nil {
		u.CardTextColor = *in.CardTextColor
	}
	if in.EnableMinimalMode != nil {
		u.EnableMinimalMode = *in.EnableMinimalMode
	}

	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// GetPublicProfile resolves a username for the public navigation page.
// Disabled accounts are hidden behind a 403.
func (s *UserService) GetPublicProfile(ctx context.Context, username string) (*entity.PublicProfile, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Disabled {
		return nil, ErrAccountDisabled
	}
	return u.Public(), nil
}

// DeleteAccount removes the account; owned bookmarks and categories cascade
// at the database layer.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.Users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// UploadBackground stores a background image in GCS and records its public
// URL on the profile.
func (s *UserService) UploadBackground(ctx context.Context, userID int64, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage is not configured")
	}

	ext := filepath.Ext(filename)
	object := fmt.Sprintf("backgrounds/%d/%d%s", userID, time.Now().UnixNano(), ext)
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, object, contentType, r)
	if err != nil {
		return "", err
	}

	mode := "image"
	if _, err := s.UpdateProfile(ctx, u.ID, UpdateProfileInput{BgImage: &url, BgMode: &mode}); err != nil {
		return "", err
	}
	return url, nil
}
