package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"  // secure random number generation for upload names
	"encoding/hex" // hex encoding of random bytes
	"time"         // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessTokenTTL is the lifetime of an issued access token. The API
// hands out a fresh token on every login; there is no refresh flow.
const AccessTokenTTL = 3600 * time.Second

// Fixed registered-claim values carried by every issued token. The
// claim of interest to the server is the email; these exist so tokens
// are well-formed for standard validators.
const (
	tokenIssuer   = "socialnet"
	tokenAudience = "socialnet-api"
	tokenSubject  = "access"
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. Access tokens are short-lived and encoded
// in the Authorization header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret and the user's email and returns an AccessToken with
// the signed token and its expiration time. The JWT carries iss, aud,
// sub, iat, exp (issued-at + AccessTokenTTL) and the email claim used
// by the auth middleware to resolve the principal.
func NewAccessToken(secret, email string) (AccessToken, error) {
	iat := time.Now().UTC()
	exp := iat.Add(AccessTokenTTL)
	claims := jwt.MapClaims{
		"iss":   tokenIssuer,
		"aud":   tokenAudience,
		"sub":   tokenSubject,
		"iat":   iat.Unix(),
		"exp":   exp.Unix(),
		"email": email,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// RandomName returns a hex-encoded string generated from n bytes of
// cryptographically secure random data. It is used to produce
// collision-free names for uploaded files.
func RandomName(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
