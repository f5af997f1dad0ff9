package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed tokens, signature mismatches, and expired
// tokens alike; callers must not distinguish between them.
var ErrInvalidToken = errors.New("invalid or expired token")

// JWTManager issues and verifies the signed tokens carried by clients.
// Access and refresh tokens share the claim shape and secret and differ only
// in lifetime.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Claims is the token payload: account id, username, and role.
type Claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken mints a short-lived access token.
func (m *JWTManager) GenerateAccessToken(userID int64, username, role string) (string, error) {
	return m.generate(userID, username, role, m.accessTTL)
}

// GenerateRefreshToken mints a long-lived refresh token.
func (m *JWTManager) GenerateRefreshToken(userID int64, username, role string) (string, error) {
	return m.generate(userID, username, role, m.refreshTTL)
}

func (m *JWTManager) generate(userID int64, username, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Parse verifies a token's signature and expiry and returns its claims.
// It fails closed: any defect maps to ErrInvalidToken.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
