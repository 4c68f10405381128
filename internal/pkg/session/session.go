package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("session token has expired")
	ErrTokenInvalid = errors.New("session token is invalid")
)

// TTL is the fixed session lifetime. Sessions are never renewed in
// place; a new login issues a new token.
const TTL = 5 * 24 * time.Hour

// CookieName is the fixed name of the session cookie
const CookieName = "fk_session"

// Claims represents the session token claims. The subject id lives in
// RegisteredClaims.Subject; TokenID ties the token to its server-side
// session record.
type Claims struct {
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

// Generate mints a session token for a subject with the fixed TTL
func Generate(subjectID, tokenID, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "feinkost-backend",
			Subject:   subjectID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Validate parses and verifies a session token and returns its claims
func Validate(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

// ExpiryTime returns the expiry of a token issued now
func ExpiryTime() time.Time {
	return time.Now().Add(TTL)
}
