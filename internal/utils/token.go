package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned by VerifyToken for every possible failure:
// malformed input, wrong signature, wrong algorithm or expiry.  Collapsing
// the causes into one value keeps callers from leaking which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the payload embedded in both access and refresh tokens.
// The two kinds share this exact shape; they differ only in signing secret
// and lifetime.  Subject holds the user id as a decimal string.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserID parses the subject claim back into a numeric user id.
func (c *Claims) UserID() (uint64, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// SignedToken bundles a serialized JWT with its expiration time.  The Exp
// field is informational; the authoritative expiry lives inside the token.
type SignedToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs a short-lived HS256 JWT for a user.  The
// claims hold the user id as subject plus the email and role so protected
// handlers can authorize without a user lookup.
func NewAccessToken(secret string, userID uint64, email, role string, ttlMin int) (SignedToken, error) {
	return newSignedToken(secret, userID, email, role, time.Duration(ttlMin)*time.Minute)
}

// NewRefreshToken signs the same payload with the refresh secret and a
// lifetime measured in days.  Because verification is secret-bound, a
// refresh token presented where an access token is expected always fails,
// and vice versa; no type marker is needed.
func NewRefreshToken(secret string, userID uint64, email, role string, ttlDays int) (SignedToken, error) {
	return newSignedToken(secret, userID, email, role, time.Duration(ttlDays)*24*time.Hour)
}

func newSignedToken(secret string, userID uint64, email, role string, ttl time.Duration) (SignedToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
		Role:  role,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// VerifyToken parses raw against the given secret and returns the decoded
// claims.  Tokens signed with any other secret or algorithm, and expired or
// malformed tokens, all fail with ErrInvalidToken.
func VerifyToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
