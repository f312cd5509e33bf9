package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// SetJWTSecret sets the signing secret. Must be called before any token
// is generated or parsed.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// TokenSubject is the identity baked into an access token.
type TokenSubject struct {
	UserID         uint   `json:"user_id"`
	Username       string `json:"username"`
	OrganizationID uint   `json:"organization_id,omitempty"`
	RoleID         uint   `json:"role_id,omitempty"`
	IsAdmin        bool   `json:"is_admin,omitempty"`
	IsSuperadmin   bool   `json:"is_superadmin,omitempty"`
}

// Claims is the JWT payload for access tokens.
type Claims struct {
	TokenSubject
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 access token valid for the given number
// of hours.
func GenerateToken(subject TokenSubject, hours int) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenSubject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(hours) * time.Hour)),
			Subject:   subject.Username,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
