package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel errors for token verification failures
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string. Exp stores the
// expiration timestamp. Access tokens are short-lived (30 minutes by
// default), carried in the Authorization header, and there is no refresh
// mechanism: clients re-authenticate after expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned by VerifyAccessToken for any token that is
// malformed, signed with the wrong key or algorithm, expired, or missing
// its subject claim. Callers never learn which; verification fails closed.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT whose subject is the
// user's email. It takes the signing secret and a TTL in minutes and
// returns the signed token together with its expiration time. Claims:
// sub (email), exp and iat.
func NewAccessToken(secret, email string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": email,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken parses and validates a serialized token and returns
// the subject email. Signature and expiry are both checked by the
// parser; an HMAC signing method is required so tokens signed with a
// different algorithm are rejected outright.
func VerifyAccessToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
