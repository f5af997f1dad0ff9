package entity

import "time"

// User is the aggregate root for the account domain. Password holds a bcrypt
// hash and is never serialized outward.
type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	Role          string    `json:"role"`
	BookmarkLimit int       `json:"bookmarkLimit"`
	Disabled      bool      `json:"disabled"`

	// Presentation preferences for the public navigation page.
	SiteName          string  `json:"siteName"`
	SiteDesc          string  `json:"siteDesc"`
	BgMode            string  `json:"bgMode"`
	BgColor           string  `json:"bgColor"`
	BgImage           *string `json:"bgImage"`
	EnableParticles   bool    `json:"enableParticles"`
	ParticleStyle     string  `json:"particleStyle"`
	ParticleColor     string  `json:"particleColor"`
	CardColor         string  `json:"cardColor"`
	CardOpacity       int     `json:"cardOpacity"`
	CardTextColor     string  `json:"cardTextColor"`
	EnableMinimalMode bool    `json:"enableMinimalMode"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicProfile is the view of a user exposed on /users/:username. Email,
// disabled flag, bookmark limit, and role are withheld.
type PublicProfile struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	SiteName          string    `json:"siteName"`
	SiteDesc          string    `json:"siteDesc"`
	BgMode            string    `json:"bgMode"`
	BgColor           string    `json:"bgColor"`
	BgImage           *string   `json:"bgImage"`
	EnableParticles   bool      `json:"enableParticles"`
	ParticleStyle     string    `json:"particleStyle"`
	ParticleColor     string    `json:"particleColor"`
	CardColor         string    `json:"cardColor"`
	CardOpacity       int       `json:"cardOpacity"`
	CardTextColor     string    `json:"cardTextColor"`
	EnableMinimalMode bool      `json:"enableMinimalMode"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Public returns the profile view safe to expose without authentication.
func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:                u.ID,
		Username:          u.Username,
		SiteName:          u.SiteName,
		SiteDesc:          u.SiteDesc,
		BgMode:            u.BgMode,
		BgColor:           u.BgColor,
		BgImage:           u.BgImage,
		EnableParticles:   u.EnableParticles,
		ParticleStyle:     u.ParticleStyle,
		ParticleColor:     u.ParticleColor,
		CardColor:         u.CardColor,
		CardOpacity:       u.CardOpacity,
		CardTextColor:     u.CardTextColor,
		EnableMinimalMode: u.EnableMinimalMode,
		CreatedAt:         u.CreatedAt,
	}
}
